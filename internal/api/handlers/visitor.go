package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aved-sa/aved-web/internal/api/constants"
	"github.com/aved-sa/aved-web/internal/api/sanitization"
	"github.com/aved-sa/aved-web/internal/contact"

	"github.com/gin-gonic/gin"
)

type visitorProfile struct {
	Name  string `json:"n"`
	Email string `json:"e"`
}

// readPrefill returns the profile saved after the visitor's last successful
// submission, or an empty prefill.
func readPrefill(c *gin.Context) contact.Prefill {
	raw, err := c.Cookie(constants.CookieVisitor)
	if err != nil || raw == "" {
		return contact.Prefill{}
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return contact.Prefill{}
	}
	var p visitorProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return contact.Prefill{}
	}
	return contact.Prefill{
		Name:  sanitization.SanitizeName(p.Name),
		Email: sanitization.SanitizeEmail(p.Email),
	}
}

func writePrefill(c *gin.Context, p contact.Prefill, secure bool) {
	data, err := json.Marshal(visitorProfile{Name: p.Name, Email: p.Email})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CookieVisitor, base64.RawURLEncoding.EncodeToString(data),
		constants.CookieDurationYear, constants.CookiePathRoot, "", secure, true)
}
