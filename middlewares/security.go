package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders aplica os headers basicos de protecao. As paginas de
// pagamento carregam o payload PIX, entao tambem saem com no-store.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if strings.HasPrefix(c.Request.URL.Path, "/pagamento") {
			c.Header("Cache-Control", "no-store")
		}

		c.Next()
	}
}
