package server

import (
	"github.com/aved-sa/aved-web/internal/backend"
	"github.com/aved-sa/aved-web/internal/cache"
	"github.com/aved-sa/aved-web/internal/metrics"
	"github.com/aved-sa/aved-web/internal/service"
)

// Dependencies holds the collaborators the server is built from
type Dependencies struct {
	Cache     cache.Store
	Backend   *backend.Client
	Metrics   *metrics.Metrics
	Recaptcha service.RecaptchaVerifier
}
