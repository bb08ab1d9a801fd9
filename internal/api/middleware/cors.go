package middleware

import (
	"time"

	"github.com/aved-sa/aved-web/internal/api/constants"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured origins to call the JSON API. Outside
// production every origin is accepted when none are configured.
func CORS(allowedOrigins []string, production bool) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", constants.HeaderCSRF, constants.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", constants.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	switch {
	case len(allowedOrigins) > 0:
		cfg.AllowOrigins = allowedOrigins
	case !production:
		// Reflect any origin in development
		cfg.AllowOriginFunc = func(origin string) bool { return true }
	default:
		// Same-origin only
		cfg.AllowOriginFunc = func(origin string) bool { return false }
	}

	return cors.New(cfg)
}
