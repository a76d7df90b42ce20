package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tiendascan/pkg/logger"
)

// RequestID assigns every request a correlation ID, echoes it back in the
// X-Request-ID header and stashes it on the request context so downstream
// logging picks it up via logger.FromContext.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("RequestID", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(
			logger.WithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}
