package middleware

import (
	"net/http"
	"strings"

	"github.com/aved-sa/aved-web/internal/api/constants"
	"github.com/aved-sa/aved-web/internal/i18n"

	"github.com/gin-gonic/gin"
)

// Locale resolves the visitor language from ?lang=, then the language
// cookie, then Accept-Language. A valid ?lang= is persisted in the cookie.
func Locale(catalog *i18n.Catalog, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale, fromQuery := resolveLocale(c)
		if fromQuery {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(constants.CookieLang, locale.String(), constants.CookieDurationYear,
				constants.CookiePathRoot, "", secureCookies, false)
		}

		c.Set(constants.ContextKeyLocale, locale)
		c.Set(constants.ContextKeyLocalizer, catalog.Localizer(locale))
		c.Header("Content-Language", locale.String())
		c.Next()
	}
}

func resolveLocale(c *gin.Context) (i18n.Locale, bool) {
	if q := c.Query("lang"); q != "" {
		if l, ok := i18n.Parse(q); ok {
			return l, true
		}
	}
	if v, err := c.Cookie(constants.CookieLang); err == nil {
		if l, ok := i18n.Parse(v); ok {
			return l, false
		}
	}
	return i18n.MatchAcceptLanguage(c.GetHeader("Accept-Language")), false
}

// GetLocale returns the locale resolved by Locale, or the default
func GetLocale(c *gin.Context) i18n.Locale {
	if v, ok := c.Get(constants.ContextKeyLocale); ok {
		if l, ok := v.(i18n.Locale); ok {
			return l
		}
	}
	return i18n.Default
}

// GetLocalizer returns the localizer bound by Locale
func GetLocalizer(c *gin.Context) i18n.Localizer {
	if v, ok := c.Get(constants.ContextKeyLocalizer); ok {
		if l, ok := v.(i18n.Localizer); ok {
			return l
		}
	}
	return i18n.DefaultCatalog().Localizer(GetLocale(c))
}

// IsAPIRequest reports whether the request targets the JSON API
func IsAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
