package middleware

import (
	"net/http"

	"github.com/aved-sa/aved-web/internal/api/constants"
	"github.com/aved-sa/aved-web/internal/api/dto/common"
	"github.com/aved-sa/aved-web/internal/api/dto/v1/contact"
	"github.com/aved-sa/aved-web/internal/api/sanitization"
	"github.com/aved-sa/aved-web/internal/api/validation"
	domain "github.com/aved-sa/aved-web/internal/contact"
	"github.com/aved-sa/aved-web/internal/logging"

	"github.com/gin-gonic/gin"
)

// ValidationMiddleware binds and sanitizes JSON request bodies
type ValidationMiddleware struct{}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	if err := validation.RegisterValidators(); err != nil {
		logging.GetLogger().Warn("Failed to register contact validators: %v", err)
	}
	return &ValidationMiddleware{}
}

// ValidateContactRequest validates contact form submission
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(
				common.ErrCodeBadRequest, "Invalid request body", validation.FormatValidationError(err)))
			return
		}

		// Sanitize inputs
		req.FormID = sanitization.SanitizeString(req.FormID)
		req.Name = validation.CleanField(domain.FieldName, req.Name)
		req.Email = validation.CleanField(domain.FieldEmail, req.Email)
		req.Phone = validation.CleanField(domain.FieldPhone, req.Phone)
		req.Message = validation.CleanField(domain.FieldMessage, req.Message)
		req.PropertyType = validation.CleanField(domain.FieldPropertyType, req.PropertyType)
		req.UnitNumber = validation.CleanField(domain.FieldUnitNumber, req.UnitNumber)
		req.FloorNumber = validation.CleanField(domain.FieldFloorNumber, req.FloorNumber)
		req.PropertyID = sanitization.SanitizeString(req.PropertyID)

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}

// ValidateFieldRequest validates a single-field check request
func (m *ValidationMiddleware) ValidateFieldRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ValidateFieldRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(
				common.ErrCodeBadRequest, "Invalid request body", validation.FormatValidationError(err)))
			return
		}

		req.Value = validation.CleanField(domain.Field(req.Field), req.Value)

		c.Set(constants.ContextKeyValidateField, &req)
		c.Next()
	}
}
