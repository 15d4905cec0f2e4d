package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"resumeStudio/internal/api/middleware"
	"resumeStudio/internal/auth"
	"resumeStudio/internal/worker"
)

const (
	wsPingInterval = 30 * time.Second
	wsPongWait     = 70 * time.Second
	wsWriteWait    = 5 * time.Second
	// 连接建立后第一条消息必须是鉴权消息。
	wsAuthTimeout = 10 * time.Second
)

var errWsUnauthorized = errors.New("websocket unauthorized")

// WsHandler 把 worker 发布到 Redis 的导出通知转发给浏览器。
// 令牌不放在 URL 里，而是作为连接后的第一条消息发送。
type WsHandler struct {
	redisClient redis.UniversalClient
	validator   middleware.TokenValidator
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

func NewWsHandler(redisClient redis.UniversalClient, validator middleware.TokenValidator, logger *slog.Logger, allowedOrigins []string) *WsHandler {
	return &WsHandler{
		redisClient: redisClient,
		validator:   validator,
		logger:      logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}
}

// originChecker 未配置白名单时只允许同源；没有 Origin 头的非浏览器客户端放行。
func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if len(allowed) > 0 {
			return slices.Contains(allowed, origin)
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

type wsAuthMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// GET /v1/ws
func (h *WsHandler) HandleConnection(c *gin.Context) {
	logger := middleware.LoggerFromContextOr(c, h.logger).With(slog.String("client_ip", c.ClientIP()))

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("upgrade websocket failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	userID, err := h.authenticate(conn)
	if err != nil {
		logger.Info("websocket authentication failed", slog.Any("error", err))
		closeWith(conn, websocket.ClosePolicyViolation, "unauthorized")
		return
	}
	logger = logger.With(slog.Uint64("user_id", uint64(userID)))
	logger.Info("websocket authenticated")

	err = h.serve(c.Request.Context(), conn, userID, logger)
	var closeErr *websocket.CloseError
	switch {
	case err == nil, errors.As(err, &closeErr), errors.Is(err, context.Canceled):
		logger.Info("websocket closed")
	default:
		logger.Warn("websocket closed with error", slog.Any("error", err))
	}
}

// authenticate 同步读取第一条消息并校验访问令牌。
func (h *WsHandler) authenticate(conn *websocket.Conn) (uint, error) {
	_ = conn.SetReadDeadline(time.Now().Add(wsAuthTimeout))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return 0, fmt.Errorf("read auth message: %w", err)
	}

	var msg wsAuthMessage
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != "auth" || msg.Token == "" {
		return 0, fmt.Errorf("%w: malformed auth message", errWsUnauthorized)
	}
	claims, err := h.validator.ValidateToken(msg.Token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errWsUnauthorized, err)
	}
	if claims.TokenType != auth.TokenTypeAccess {
		return 0, fmt.Errorf("%w: %s token", errWsUnauthorized, claims.TokenType)
	}
	return claims.UserID, nil
}

// serve 运行两个协程：读端只用来感知断开和续期 pong，写端转发通知并定时 ping。
// 任意一端退出都会结束整个连接。
func (h *WsHandler) serve(ctx context.Context, conn *websocket.Conn, userID uint, logger *slog.Logger) error {
	channel := worker.NotifyChannel(userID)
	pubsub := h.redisClient.Subscribe(ctx, channel)
	defer pubsub.Close()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			// 客户端之后发来的内容一律丢弃。
			if _, _, err := conn.ReadMessage(); err != nil {
				return err
			}
		}
	})

	g.Go(func() error {
		// 读协程阻塞在 ReadMessage 上，只能靠关闭连接唤醒。
		defer conn.Close()

		if err := writeJSON(conn, gin.H{"type": "ready"}); err != nil {
			return err
		}

		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				closeWith(conn, websocket.CloseGoingAway, "server shutdown")
				return ctx.Err()
			case msg, ok := <-messages:
				if !ok {
					return errors.New("notification channel closed")
				}
				logger.Debug("forwarding export notification", slog.String("channel", channel))
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
					return fmt.Errorf("write notification: %w", err)
				}
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return fmt.Errorf("write ping: %w", err)
				}
			}
		}
	})

	return g.Wait()
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(v)
}

func closeWith(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(wsWriteWait))
}
