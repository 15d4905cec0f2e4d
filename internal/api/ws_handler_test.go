package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"resumeStudio/internal/auth"
)

type staticValidator map[string]*auth.TokenClaims

func (v staticValidator) ValidateToken(token string) (*auth.TokenClaims, error) {
	if c, ok := v[token]; ok {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

func dialWs(t *testing.T, validator staticValidator) *websocket.Conn {
	t.Helper()
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0", MaxRetries: -1})
	t.Cleanup(func() { _ = redisClient.Close() })

	h := NewWsHandler(redisClient, validator, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	r := gin.New()
	r.GET("/ws", h.HandleConnection)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func expectClose(t *testing.T, conn *websocket.Conn, code int) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) || closeErr.Code != code {
		t.Fatalf("expected close %d, got %v", code, err)
	}
}

func TestWsRejectsInvalidToken(t *testing.T) {
	conn := dialWs(t, staticValidator{})
	if err := conn.WriteJSON(wsAuthMessage{Type: "auth", Token: "nope"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	expectClose(t, conn, websocket.ClosePolicyViolation)
}

func TestWsRejectsRefreshToken(t *testing.T) {
	conn := dialWs(t, staticValidator{"r": {UserID: 1, TokenType: auth.TokenTypeRefresh}})
	if err := conn.WriteJSON(wsAuthMessage{Type: "auth", Token: "r"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	expectClose(t, conn, websocket.ClosePolicyViolation)
}

func TestWsRejectsMalformedAuth(t *testing.T) {
	conn := dialWs(t, staticValidator{})
	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	expectClose(t, conn, websocket.ClosePolicyViolation)
}

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "http://api.example/v1/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	sameOrigin := originChecker(nil)
	if !sameOrigin(req("")) || !sameOrigin(req("https://api.example")) || sameOrigin(req("https://evil.example")) {
		t.Fatal("same-origin policy not enforced")
	}

	listed := originChecker([]string{"https://app.example"})
	if !listed(req("https://app.example")) || listed(req("https://api.example")) {
		t.Fatal("allow list not enforced")
	}
}
