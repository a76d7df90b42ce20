package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendascan/pkg/logger"
)

// RequireAPIToken guards mutating catalog routes with a bearer token.
// An empty configured token disables the guard entirely, which keeps
// local development friction-free.
func RequireAPIToken(token string) gin.HandlerFunc {
	expected := "Bearer " + token

	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		got := c.GetHeader("Authorization")
		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			logger.Warn("Rejected request with missing or invalid API token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   true,
				"message": "No autorizado. Token inválido o faltante.",
			})
			return
		}

		c.Next()
	}
}
