package validation

import (
	"errors"
	"fmt"

	"github.com/aved-sa/aved-web/internal/api/dto/common"
	"github.com/aved-sa/aved-web/internal/api/sanitization"
	"github.com/aved-sa/aved-web/internal/contact"
	"github.com/aved-sa/aved-web/internal/i18n"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers the contact tags on gin's binding engine so
// DTO binding tags can use them.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return contact.RegisterValidators(v)
}

// CleanField prepares a raw contact input for the rules. Fields with rules
// keep their whitespace so blur and submit agree on the verdict; the others
// are trimmed.
func CleanField(field contact.Field, value string) string {
	switch field {
	case contact.FieldName, contact.FieldEmail, contact.FieldPhone, contact.FieldMessage:
		return sanitization.SanitizeInput(value)
	default:
		return sanitization.SanitizeString(value)
	}
}

// FormatValidationError formats binding errors into a user-friendly response
func FormatValidationError(err error) []common.ValidationError {
	var out []common.ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			msg := fmt.Sprintf("failed on the %q rule", e.Tag())
			if e.Param() != "" {
				msg = fmt.Sprintf("failed on the %q rule (%s)", e.Tag(), e.Param())
			}
			out = append(out, common.ValidationError{
				Field:   e.Field(),
				Message: msg,
			})
		}
	}
	return out
}

// FormatViolations renders contact form violations in display order.
func FormatViolations(vs contact.Violations, l i18n.Localizer) []common.ValidationError {
	sorted := vs.Sorted()
	out := make([]common.ValidationError, 0, len(sorted))
	for _, v := range sorted {
		out = append(out, common.ValidationError{
			Field:   string(v.Field),
			Message: v.Message(l),
		})
	}
	return out
}
