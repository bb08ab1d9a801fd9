package handlers

import (
	"context"
	"net/http"

	"github.com/aved-sa/aved-web/internal/api/middleware"
	"github.com/aved-sa/aved-web/internal/api/views"
	"github.com/aved-sa/aved-web/internal/content"
	"github.com/aved-sa/aved-web/internal/i18n"

	"github.com/gin-gonic/gin"
)

// ContentSource resolves localized CMS content. *content.Service implements it.
type ContentSource interface {
	Page(ctx context.Context, t content.Type, locale i18n.Locale) (*content.Page, error)
	Property(ctx context.Context, id string, locale i18n.Locale) (*content.Property, error)
}

// Site holds what every rendered page needs besides its own data.
type Site struct {
	RecaptchaSiteKey string
	Support          views.Support
	SecureCookies    bool
}

func (s Site) layout(c *gin.Context, title string) views.Layout {
	l := middleware.GetLocalizer(c)
	return views.Layout{
		L:                l,
		Locale:           l.Locale(),
		Dir:              l.Dir(),
		Title:            title,
		Path:             c.Request.URL.Path,
		CSRFToken:        middleware.GetCSRFToken(c),
		RecaptchaSiteKey: s.RecaptchaSiteKey,
		Support:          s.Support,
	}
}

func (s Site) renderError(c *gin.Context, status int, titleKey, messageKey string) {
	l := middleware.GetLocalizer(c)
	page := views.ErrorPage{Layout: s.layout(c, l.T(titleKey))}
	if messageKey != "" {
		page.Message = l.T(messageKey)
	}
	c.HTML(status, views.PageError, page)
}

// NotFound answers unknown routes with JSON on the API and a page elsewhere
func (s Site) NotFound(c *gin.Context) {
	if middleware.IsAPIRequest(c) {
		c.AbortWithStatusJSON(http.StatusNotFound, notFoundResponse)
		return
	}
	s.renderError(c, http.StatusNotFound, "pages.notFound", "")
}
