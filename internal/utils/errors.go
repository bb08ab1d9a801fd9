package utils

import (
	"github.com/aved-sa/aved-web/internal/api/dto/common"
	"github.com/aved-sa/aved-web/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError is a utility function for consistent error handling across the API
// It ensures underlying error details are only exposed outside release mode
func HandleAPIError(c *gin.Context, err error, defaultStatus int, defaultCode common.ErrorCode, defaultMessage string) {
	// Log the error
	if err != nil || defaultStatus >= 500 {
		logger := logging.GetLogger()
		logger.LogHTTPError(
			c.Request.Method,
			c.Request.URL.Path,
			GetRealIP(c),
			defaultStatus,
			defaultMessage,
			err,
		)
	}

	// In production, don't expose error details
	var errorDetails interface{} = nil
	if err != nil && gin.Mode() != gin.ReleaseMode {
		errorDetails = err.Error()
	}

	c.AbortWithStatusJSON(defaultStatus, common.NewErrorResponse(defaultCode, defaultMessage, errorDetails))
}

// HandleValidationError responds 422 with per-field details
func HandleValidationError(c *gin.Context, message string, details []common.ValidationError) {
	c.AbortWithStatusJSON(422, common.NewErrorResponse(common.ErrCodeValidation, message, details))
}
