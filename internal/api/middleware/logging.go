package middleware

import (
	"time"

	"github.com/aved-sa/aved-web/internal/logging"
	"github.com/aved-sa/aved-web/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request when enabled. Server errors are
// always logged.
func RequestLogger(logger *logging.Logger, enabled bool) gin.HandlerFunc {
	logger.Debug("RequestLogger middleware initialized (enabled=%v)", enabled)

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		// Process request
		c.Next()

		status := c.Writer.Status()
		if !enabled && status < 500 {
			return
		}

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			GetRequestID(c),
			status,
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
