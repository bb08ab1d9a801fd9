package constants

// Context keys for values set by middleware
const (
	// Request context keys
	ContextKeyRequestID = "requestID"
	ContextKeyLocale    = "locale"
	ContextKeyLocalizer = "localizer"
	ContextKeyCSRFToken = "csrfToken"

	// Validated request bodies
	ContextKeyContact       = "contact"
	ContextKeyValidateField = "validateField"
)
