package api

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// loginGuard 组合两种保护：按 IP+用户名的每小时尝试次数，
// 以及连续失败达到阈值后的账号临时锁定。
type loginGuard struct {
	redis     redis.UniversalClient
	attempts  fixedWindow
	threshold int64
	lockTTL   time.Duration
}

func newLoginGuard(client redis.UniversalClient, perHour, threshold int, lockTTL time.Duration) *loginGuard {
	return &loginGuard{
		redis:     client,
		attempts:  fixedWindow{client: client, prefix: "rate:login", window: time.Hour, limit: int64(perHour)},
		threshold: int64(threshold),
		lockTTL:   lockTTL,
	}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (g *loginGuard) failKey(username string) string { return "login:fail:" + username }
func (g *loginGuard) lockKey(username string) string { return "login:lock:" + username }

// admit 在校验口令前调用；返回非零 retryAfter 表示应拒绝。
// Redis 不可用时放行，登录本身不依赖 Redis。
func (g *loginGuard) admit(ctx context.Context, ip, username string, now time.Time) (retryAfter time.Duration, reason string) {
	if exceeded, err := g.attempts.hit(ctx, ip+":"+username, now); err == nil && exceeded {
		return g.attempts.retryAfter(now), "rate limit exceeded"
	}
	if ttl, err := g.redis.TTL(ctx, g.lockKey(username)).Result(); err == nil && ttl > 0 {
		return ttl, "account temporarily locked"
	}
	return 0, ""
}

// failed 记录一次失败，达到阈值时锁定账号。
func (g *loginGuard) failed(ctx context.Context, username string) {
	if g.threshold <= 0 {
		return
	}
	count, err := incrWithTTL(ctx, g.redis, g.failKey(username), g.lockTTL)
	if err != nil || count < g.threshold {
		return
	}
	_ = g.redis.Set(ctx, g.lockKey(username), "1", g.lockTTL).Err()
}

func (g *loginGuard) succeeded(ctx context.Context, username string) {
	_ = g.redis.Del(ctx, g.failKey(username)).Err()
}
