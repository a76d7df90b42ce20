package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tiendascan/pkg/logger"
)

// ErrorHandler logs errors attached to the gin context and answers with a
// generic Spanish envelope when no handler wrote a response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			logger.FromContext(c.Request.Context()).Error("request error",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				logger.ErrorField(err.Err),
				zap.Int("status", c.Writer.Status()),
			)

			// Don't override response if already written
			if !c.Writer.Written() {
				status := c.Writer.Status()
				if status == 0 || status == 200 {
					status = 500
				}

				c.JSON(status, gin.H{
					"error":      true,
					"message":    "Error interno del servidor",
					"request_id": c.GetString("RequestID"),
				})
			}
		}
	}
}

// Recovery handles panics and recovers gracefully
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.FromContext(c.Request.Context()).Error("panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Stack("stack"),
		)

		c.AbortWithStatusJSON(500, gin.H{
			"error":      true,
			"message":    "Error interno del servidor",
			"request_id": c.GetString("RequestID"),
		})
	})
}
