package handlers

import (
	"errors"
	"net/http"

	"github.com/aved-sa/aved-web/internal/api/middleware"
	"github.com/aved-sa/aved-web/internal/api/views"
	"github.com/aved-sa/aved-web/internal/backend"
	"github.com/aved-sa/aved-web/internal/contact"
	"github.com/aved-sa/aved-web/internal/content"
	"github.com/aved-sa/aved-web/internal/logging"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the public pages
type PageHandler struct {
	content ContentSource
	site    Site
	logger  *logging.Logger
}

func NewPageHandler(source ContentSource, site Site) *PageHandler {
	return &PageHandler{
		content: source,
		site:    site,
		logger:  logging.GetLogger(),
	}
}

// page loads a static document. Failures are logged and yield the empty
// fallback so the page still renders.
func (h *PageHandler) page(c *gin.Context, t content.Type) *content.Page {
	locale := middleware.GetLocale(c)
	page, err := h.content.Page(c.Request.Context(), t, locale)
	if err != nil {
		h.logger.Warn("Rendering %s without content: %v", t, err)
		return content.Fallback(t, locale)
	}
	return page
}

func (h *PageHandler) Home(c *gin.Context) {
	l := middleware.GetLocalizer(c)
	c.HTML(http.StatusOK, views.PageHome, views.HomePage{
		Layout: h.site.layout(c, l.T("home")),
		About:  h.page(c, content.About),
	})
}

func (h *PageHandler) AboutUs(c *gin.Context) {
	l := middleware.GetLocalizer(c)
	c.HTML(http.StatusOK, views.PageAbout, views.ContentPage{
		Layout: h.site.layout(c, l.T("pages.aboutUs")),
		Page:   h.page(c, content.About),
	})
}

func (h *PageHandler) PrivacyPolicy(c *gin.Context) {
	h.document(c, content.PrivacyPolicy, "pages.privacyPolicy")
}

func (h *PageHandler) TermsCondition(c *gin.Context) {
	h.document(c, content.TermsCondition, "pages.termsCondition")
}

func (h *PageHandler) document(c *gin.Context, t content.Type, titleKey string) {
	page := h.page(c, t)
	title := page.Title
	if title == "" {
		title = middleware.GetLocalizer(c).T(titleKey)
	}
	c.HTML(http.StatusOK, views.PageContent, views.ContentPage{
		Layout: h.site.layout(c, title),
		Page:   page,
	})
}

// ContactUs renders the contact page with a general inquiry form
func (h *PageHandler) ContactUs(c *gin.Context) {
	l := middleware.GetLocalizer(c)
	ctrl := contact.NewController(contact.NewForm(readPrefill(c)), nil, contact.WithLocalizer(l))
	c.HTML(http.StatusOK, views.PageContact, views.ContactPage{
		Layout: h.site.layout(c, l.T("nav.contactUs")),
		Form:   views.NewContactForm(ctrl, l, contactAction, l.T("contactSection.generalTitle"), nil),
	})
}

// Property renders a listing with its reservation form
func (h *PageHandler) Property(c *gin.Context) {
	l := middleware.GetLocalizer(c)
	id := c.Param("id")

	property, err := h.content.Property(c.Request.Context(), id, l.Locale())
	if errors.Is(err, backend.ErrNotFound) {
		h.site.renderError(c, http.StatusNotFound, "pages.notFound", "")
		return
	}
	if err != nil {
		h.logger.Warn("Rendering property %s without content: %v", id, err)
		property = &content.Property{ID: id, Locale: l.Locale()}
	}

	ctrl := contact.NewController(
		contact.NewForm(readPrefill(c), contact.WithProperty(propertyRef(property))),
		nil, contact.WithLocalizer(l),
	)
	c.HTML(http.StatusOK, views.PageProperty, views.PropertyPage{
		Layout:   h.site.layout(c, propertyTitle(l, property)),
		Property: property,
		Form:     views.NewContactForm(ctrl, l, propertyAction(id), reserveTitle(l, property), nil),
	})
}
