package routes

import (
	"github.com/aved-sa/aved-web/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures the JSON contact endpoints
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	public := router.Group("/contact")
	{
		// Public endpoint with per-IP rate limiting (no auth required)
		public.POST("/submit",
			m.ContactRate,
			m.Validation.ValidateContactRequest(),
			contact.Submit,
		)
		public.POST("/validate",
			m.Validation.ValidateFieldRequest(),
			contact.Validate,
		)
	}
}
