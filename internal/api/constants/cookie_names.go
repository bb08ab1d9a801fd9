package constants

// Cookie names used in the application
const (
	CookieLang    = "aved_lang"    // Selected site language
	CookieCSRF    = "aved_csrf"    // Double-submit CSRF token
	CookieVisitor = "aved_visitor" // Name and email of a returning visitor (HttpOnly)

	// Cookie paths
	CookiePathRoot = "/" // Root path for cookies available throughout the site

	// Cookie duration in seconds
	CookieDuration24h  = 86400    // 24 hours
	CookieDuration30d  = 2592000  // 30 days
	CookieDurationYear = 31536000 // 365 days
)

// Header names
const (
	HeaderCSRF      = "X-CSRF-Token"
	HeaderRequestID = "X-Request-ID"
)

// HTML form field names that are not contact inputs
const (
	FormFieldCSRF      = "csrf_token"
	FormFieldFormID    = "form_id"
	FormFieldRecaptcha = "g-recaptcha-response"
)
