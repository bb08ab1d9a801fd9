package routes

import (
	"github.com/aved-sa/aved-web/internal/api/middleware"
	"github.com/aved-sa/aved-web/internal/config"
	"github.com/aved-sa/aved-web/internal/i18n"
	"github.com/aved-sa/aved-web/internal/logging"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetLogger()

	// Create base API v1 group
	v1 := router.Group("/api/v1")

	// Health and metrics
	SetupHealthRoutes(router, h.Health, h.Metrics)

	// Site pages
	SetupPageRoutes(router, h, m)

	// Contact routes (public)
	SetupContactRoutes(v1, h.Contact, m)

	// Static content as JSON
	SetupContentRoutes(v1, h.Content)

	router.NoRoute(h.Site.NotFound)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.Use(middleware.Recovery(logger))
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger, cfg.LogRequests))
	router.Use(middleware.CORS(cfg.AllowedOrigins, cfg.IsProduction()))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.Locale(i18n.DefaultCatalog(), cfg.IsProduction()))
}
