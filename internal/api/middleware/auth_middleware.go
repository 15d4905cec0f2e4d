package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumeStudio/internal/auth"
)

// UserIDKey 是认证后用户 id 在 gin.Context 中的键。
const UserIDKey = "userID"

// TokenValidator 由 auth.AuthService 实现。
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.TokenClaims, error)
}

// bearerToken 解析 "Bearer <token>"，scheme 大小写不敏感。
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || token == "" || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return token, true
}

func accessClaims(validator TokenValidator, header string) (*auth.TokenClaims, bool) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, false
	}
	claims, err := validator.ValidateToken(token)
	if err != nil || claims.TokenType != auth.TokenTypeAccess {
		return nil, false
	}
	return claims, true
}

// AuthMiddleware 要求有效的访问令牌。
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := accessClaims(validator, c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware 有令牌就识别用户，没有或无效时按匿名继续。
// 无状态渲染接口用它：匿名调用也能预览，只是不解析头像对象。
func OptionalAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := accessClaims(validator, c.GetHeader("Authorization")); ok {
			c.Set(UserIDKey, claims.UserID)
		}
		c.Next()
	}
}

// UserID 返回认证中间件写入的用户 id。
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok && id != 0
}
