package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const refreshTokenCookieName = "refresh_token"

// refreshCookie 描述刷新令牌 Cookie；Secure 随请求协议（含反向代理头）决定。
type refreshCookie struct {
	domain string
	path   string
}

func (rc refreshCookie) write(c *gin.Context, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if value == "" {
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshTokenCookieName,
		Value:    value,
		Path:     rc.path,
		Domain:   strings.TrimSpace(rc.domain),
		MaxAge:   maxAge,
		Secure:   requestIsHTTPS(c.Request),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (rc refreshCookie) clear(c *gin.Context) { rc.write(c, "", 0) }

func requestIsHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
