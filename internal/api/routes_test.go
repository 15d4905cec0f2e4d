package api

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resumeStudio/internal/auth"
	"resumeStudio/internal/config"
)

func newTestAuthService(t *testing.T) *auth.AuthService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	svc, err := auth.NewAuthService(privPEM, pubPEM, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc
}

func newTestServer(t *testing.T) (*gin.Engine, *fakeQueue) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	queue := &fakeQueue{}
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0", MaxRetries: -1})
	t.Cleanup(func() { _ = redisClient.Close() })

	cfg := &config.Config{
		API: config.APIConfig{
			InternalSecret:   "s3cret",
			MaxResumes:       5,
			PreviewMaxWidth:  794,
			AssetMaxBytes:    1 << 20,
			MaxAssetsPerUser: 10,
		},
		Auth: config.AuthConfig{
			LoginRateLimitPerHour: 10,
			LoginLockThreshold:    5,
			LoginLockTTL:          time.Minute,
		},
	}

	router := NewRouter(logger)
	RegisterRoutes(router, Deps{
		DB:          newTestDB(t),
		Queue:       queue,
		AuthService: newTestAuthService(t),
		Redis:       redisClient,
		Storage:     newFakeStorage(),
		Logger:      logger,
		Config:      cfg,
	})
	return router, queue
}

func TestRouterPublicEndpoints(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
	if w.Header().Get("X-Correlation-ID") == "" {
		t.Fatal("correlation id header missing")
	}
	if w := doJSON(t, r, http.MethodGet, "/metrics", nil); w.Code != http.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/v1/templates/categories", nil); w.Code != http.StatusOK {
		t.Fatalf("templates should be public, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/v1/resume", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("resume list needs auth, got %d", w.Code)
	}
}

func TestInternalRoutesNeedSecret(t *testing.T) {
	r, queue := newTestServer(t)

	if w := doJSON(t, r, http.MethodPost, "/internal/templates/thumbnails", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/internal/templates/thumbnails", nil)
	req.Header.Set("X-Internal-Secret", "s3cret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusAccepted || len(queue.tasks) != 1 {
		t.Fatalf("expected 202 and one task, got %d tasks=%d", w.Code, len(queue.tasks))
	}
}

func TestRegisterLoginAndUseToken(t *testing.T) {
	r, _ := newTestServer(t)
	creds := map[string]string{"username": "jane", "password": "correct horse"}

	if w := doJSON(t, r, http.MethodPost, "/v1/auth/register", creds); w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodPost, "/v1/auth/register", creds); w.Code != http.StatusConflict {
		t.Fatalf("duplicate register should 409, got %d", w.Code)
	}

	bad := map[string]string{"username": "jane", "password": "wrong password"}
	if w := doJSON(t, r, http.MethodPost, "/v1/auth/login", bad); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password should 401, got %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/v1/auth/login", creds)
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var tok tokenResponse
	decodeBody(t, w, &tok)
	if tok.AccessToken == "" || tok.TokenType != "Bearer" {
		t.Fatalf("unexpected token response %+v", tok)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/resume/latest", nil)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("authorized request failed: %d %s", w.Code, w.Body.String())
	}
}

func TestRefreshRejectsMissingAndAccessTokens(t *testing.T) {
	r, _ := newTestServer(t)
	creds := map[string]string{"username": "Sam", "password": "correct horse"}
	if w := doJSON(t, r, http.MethodPost, "/v1/auth/register", creds); w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	// 用户名大小写不敏感
	creds["username"] = "  sam "
	w := doJSON(t, r, http.MethodPost, "/v1/auth/login", creds)
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var tok tokenResponse
	decodeBody(t, w, &tok)

	var refresh *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == refreshTokenCookieName {
			refresh = ck
		}
	}
	if refresh == nil || !refresh.HttpOnly || refresh.Path != "/v1/auth" {
		t.Fatalf("unexpected refresh cookie %+v", refresh)
	}

	if w := doJSON(t, r, http.MethodPost, "/v1/auth/refresh", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh without token should 401, got %d", w.Code)
	}
	body := map[string]string{"refresh_token": tok.AccessToken}
	if w := doJSON(t, r, http.MethodPost, "/v1/auth/refresh", body); w.Code != http.StatusUnauthorized {
		t.Fatalf("access token used as refresh should 401, got %d", w.Code)
	}

	// 撤销表不可用时拒绝轮换，而不是放行。
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
	req.AddCookie(refresh)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("refresh with redis down should 500, got %d", rec.Code)
	}
}

func TestAnonymousRenderPreview(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/v1/render/preview", map[string]any{
		"data":            map[string]any{"personalInfo": map[string]any{"fullName": "Ada"}},
		"template_id":     "modern-01",
		"container_width": 397,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous preview: %d %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("X-Preview-Scale"); got != "0.5" {
		t.Fatalf("unexpected scale %q", got)
	}
}
