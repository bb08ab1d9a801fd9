package middleware

import (
	"fmt"
	"net/http"

	"github.com/aved-sa/aved-web/internal/api/dto/common"
	"github.com/aved-sa/aved-web/internal/logging"
	"github.com/aved-sa/aved-web/internal/utils"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 response and logs it
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.LogHTTPError(
			c.Request.Method,
			c.Request.URL.Path,
			utils.GetRealIP(c),
			http.StatusInternalServerError,
			"panic recovered",
			fmt.Errorf("%v", recovered),
		)
		if IsAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				common.NewErrorResponse(common.ErrCodeInternalServer, "Internal server error", nil))
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
