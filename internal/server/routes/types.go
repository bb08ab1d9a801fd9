package routes

import (
	"net/http"

	"github.com/aved-sa/aved-web/internal/api/handlers"
	"github.com/aved-sa/aved-web/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers contains all the route handlers
type Handlers struct {
	Health  *handlers.HealthHandler
	Pages   *handlers.PageHandler
	Contact *handlers.ContactHandler
	Content *handlers.ContentHandler
	Site    handlers.Site
	Metrics http.Handler
}

// Middleware contains the per-route middleware
type Middleware struct {
	Validation  *middleware.ValidationMiddleware
	CSRF        gin.HandlerFunc
	ContactRate gin.HandlerFunc
}
