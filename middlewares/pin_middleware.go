package middlewares

import (
	"net/http"

	"github.com/naoki6532b/cat-health-log/config"

	"github.com/gin-gonic/gin"
)

// PinMiddleware gates the API behind the static shared secret. When no
// PIN is configured the gate is disabled, matching local development.
func PinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		required := config.Pin()
		if required == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-Catlog-Pin") != required {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "PIN required"})
			return
		}
		c.Next()
	}
}
