package routes

import (
	"github.com/aved-sa/aved-web/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContentRoutes configures the static content endpoints
func SetupContentRoutes(router *gin.RouterGroup, content *handlers.ContentHandler) {
	router.GET("/content/:type", content.Get)
}
