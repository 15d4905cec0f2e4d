package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const InternalSecretHeader = "X-Internal-Secret"

// InternalSecretMiddleware 保护 /internal 接口。密钥只从 Header 读取，避免出现在 URL 与访问日志里。
// 未配置密钥时整组接口不可用。
func InternalSecretMiddleware(secret string) gin.HandlerFunc {
	want := []byte(strings.TrimSpace(secret))
	return func(c *gin.Context) {
		if len(want) == 0 {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "internal api disabled"})
			return
		}
		got := []byte(strings.TrimSpace(c.GetHeader(InternalSecretHeader)))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
