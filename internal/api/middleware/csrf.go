package middleware

import (
	"net/http"

	"github.com/aved-sa/aved-web/internal/api/constants"
	"github.com/aved-sa/aved-web/internal/api/dto/common"
	"github.com/aved-sa/aved-web/internal/service"
	"github.com/aved-sa/aved-web/internal/utils"

	"github.com/gin-gonic/gin"
)

// CSRFMiddleware implements the double-submit cookie pattern. Safe methods
// get a token cookie (and the token in the context for forms); unsafe
// methods must echo it in the X-CSRF-Token header or the csrf_token field.
func CSRFMiddleware(csrfService service.CSRFService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(constants.CookieCSRF)

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			if err != nil || csrfCookie == "" {
				token, genErr := csrfService.GenerateToken()
				if genErr != nil {
					utils.HandleAPIError(c, genErr, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to issue CSRF token")
					return
				}
				c.SetSameSite(http.SameSiteStrictMode)
				c.SetCookie(constants.CookieCSRF, token, constants.CookieDuration24h,
					constants.CookiePathRoot, "", secureCookies, true)
				csrfCookie = token
			}
			c.Set(constants.ContextKeyCSRFToken, csrfCookie)
			c.Next()
			return
		}

		submitted := c.GetHeader(constants.HeaderCSRF)
		if submitted == "" {
			submitted = c.PostForm(constants.FormFieldCSRF)
		}
		if err != nil || !csrfService.ValidateToken(csrfCookie, submitted) {
			message := GetLocalizer(c).T("errors.csrfInvalid")
			if IsAPIRequest(c) {
				utils.HandleAPIError(c, nil, http.StatusForbidden, common.ErrCodeForbidden, message)
				return
			}
			c.String(http.StatusForbidden, message)
			c.Abort()
			return
		}
		c.Set(constants.ContextKeyCSRFToken, csrfCookie)
		c.Next()
	}
}

// GetCSRFToken returns the token to embed in forms
func GetCSRFToken(c *gin.Context) string {
	return c.GetString(constants.ContextKeyCSRFToken)
}
