package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumeStudio/internal/api/middleware"
	"resumeStudio/internal/auth"
	"resumeStudio/internal/config"
	"resumeStudio/internal/database"
)

const revokedRefreshPrefix = "auth:refresh:revoked:"

// AuthHandler 是认证边界：注册、登录、令牌轮换与退出。
type AuthHandler struct {
	db          *gorm.DB
	authService *auth.AuthService
	redis       redis.UniversalClient
	logger      *slog.Logger
	guard       *loginGuard
	cookie      refreshCookie
}

func NewAuthHandler(db *gorm.DB, authService *auth.AuthService, redisClient redis.UniversalClient, logger *slog.Logger, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		db:          db,
		authService: authService,
		redis:       redisClient,
		logger:      logger,
		guard:       newLoginGuard(redisClient, cfg.LoginRateLimitPerHour, cfg.LoginLockThreshold, cfg.LoginLockTTL),
		cookie:      refreshCookie{domain: cfg.CookieDomain, path: "/v1/auth"},
	}
}

type credentials struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (h *AuthHandler) log(c *gin.Context) *slog.Logger {
	return middleware.LoggerFromContextOr(c, h.logger)
}

// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	username := normalizeUsername(req.Username)
	logger := h.log(c).With(slog.String("username", username))

	hashed, err := h.authService.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			BadRequest(c, err.Error())
			return
		}
		logger.Error("hash password failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	ctx := c.Request.Context()
	var taken int64
	if err := h.db.WithContext(ctx).Model(&database.User{}).Where("username = ?", username).Count(&taken).Error; err != nil {
		logger.Error("register lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if taken > 0 {
		Conflict(c, "username already taken")
		return
	}

	user := database.User{Username: username, PasswordHash: hashed}
	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		// 并发注册同名用户时唯一索引兜底。
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "username already taken")
			return
		}
		logger.Error("create user failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	username := normalizeUsername(req.Username)
	ctx := c.Request.Context()
	logger := h.log(c).With(slog.String("username", username))

	if retryAfter, reason := h.guard.admit(ctx, c.ClientIP(), username, time.Now()); retryAfter > 0 {
		logger.Info("login throttled", slog.String("reason", reason))
		TooManyRequests(c, reason, retryAfter)
		return
	}

	var user database.User
	err := h.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// 不存在的用户与口令错误返回同样的响应，也同样计入失败次数。
		h.guard.failed(ctx, username)
		Unauthorized(c)
		return
	case err != nil:
		logger.Error("login query failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if !h.authService.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Info("login failed: password mismatch", slog.Uint64("user_id", uint64(user.ID)))
		h.guard.failed(ctx, username)
		Unauthorized(c)
		return
	}
	h.guard.succeeded(ctx, username)

	logger.Info("user logged in", slog.Uint64("user_id", uint64(user.ID)))
	h.issueTokens(c, user.ID)
}

// POST /v1/auth/refresh
// 刷新令牌只能用一次：签发新令牌的同时吊销旧 jti。
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	logger := h.log(c)

	claims, ok := h.refreshClaims(c)
	if !ok {
		return
	}

	revoked, err := h.isRevoked(ctx, claims.ID)
	if err != nil {
		logger.Error("revocation lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if revoked {
		logger.Warn("revoked refresh token presented", slog.String("jti", claims.ID))
		Unauthorized(c)
		return
	}

	var user database.User
	if err := h.db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		Unauthorized(c)
		return
	}
	if err := h.revoke(ctx, claims); err != nil {
		logger.Error("revoke rotated token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	h.issueTokens(c, user.ID)
}

// POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := h.refreshClaims(c)
	if !ok {
		return
	}
	if err := h.revoke(c.Request.Context(), claims); err != nil {
		h.log(c).Error("logout revoke failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	h.cookie.clear(c)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) issueTokens(c *gin.Context, userID uint) {
	pair, err := h.authService.GenerateTokenPair(userID)
	if err != nil {
		h.log(c).Error("generate token pair failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	h.cookie.write(c, pair.RefreshToken, h.authService.RefreshTokenTTL())
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.authService.AccessTokenTTL().Seconds()),
	})
}

// refreshClaims 优先读 Cookie，其次读 JSON 体里的 refresh_token；失败时已写好 401。
func (h *AuthHandler) refreshClaims(c *gin.Context) (*auth.TokenClaims, bool) {
	token, _ := c.Cookie(refreshTokenCookieName)
	if token == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.ShouldBindJSON(&body)
		token = body.RefreshToken
	}

	claims, err := h.authService.ValidateTokenOfType(token, auth.TokenTypeRefresh)
	if err != nil || claims.ID == "" {
		h.log(c).Info("refresh token rejected", slog.Any("error", err))
		Unauthorized(c)
		return nil, false
	}
	return claims, true
}

func (h *AuthHandler) isRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := h.redis.Exists(ctx, revokedRefreshPrefix+jti).Result()
	return n > 0, err
}

// revoke 把 jti 记入黑名单，保留到令牌自然过期为止。
func (h *AuthHandler) revoke(ctx context.Context, claims *auth.TokenClaims) error {
	ttl := h.authService.RefreshTokenTTL()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	return h.redis.Set(ctx, revokedRefreshPrefix+claims.ID, "1", ttl).Err()
}
