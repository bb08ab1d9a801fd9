package routes

import (
	"net/http"

	"github.com/aved-sa/aved-web/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures health check and metrics endpoints
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler, metrics http.Handler) {
	router.GET("/health", health.Check)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}
}
