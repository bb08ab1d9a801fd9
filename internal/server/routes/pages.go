package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupPageRoutes configures the HTML pages and their form posts
func SetupPageRoutes(router *gin.Engine, h *Handlers, m *Middleware) {
	pages := router.Group("/")
	pages.Use(m.CSRF)
	{
		pages.GET("/", h.Pages.Home)
		pages.GET("/about-us", h.Pages.AboutUs)
		pages.GET("/contact-us", h.Pages.ContactUs)
		pages.GET("/privacy-policy", h.Pages.PrivacyPolicy)
		pages.GET("/term-condition", h.Pages.TermsCondition)
		pages.GET("/property/:id", h.Pages.Property)

		pages.POST("/contact-us", m.ContactRate, h.Contact.SubmitForm)
		pages.POST("/property/:id/contact", m.ContactRate, h.Contact.SubmitPropertyForm)
	}
}
