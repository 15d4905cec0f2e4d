package api

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// fixedWindow 是按时间窗口分桶的计数器：key 由前缀、主体与窗口起点组成，
// 窗口结束后由 TTL 自动清理。
type fixedWindow struct {
	client redisRateCounter
	prefix string
	window time.Duration
	limit  int64
}

func (w fixedWindow) key(subject string, now time.Time) string {
	return w.prefix + ":" + subject + ":" + now.UTC().Truncate(w.window).Format("20060102T1504")
}

// retryAfter 返回当前窗口剩余的时间。
func (w fixedWindow) retryAfter(now time.Time) time.Duration {
	start := now.UTC().Truncate(w.window)
	return start.Add(w.window).Sub(now.UTC())
}

// hit 计一次数并报告是否超限。Redis 出错时返回 error，是否放行由调用方决定。
func (w fixedWindow) hit(ctx context.Context, subject string, now time.Time) (exceeded bool, err error) {
	if w.client == nil || w.limit <= 0 {
		return false, nil
	}
	count, err := incrWithTTL(ctx, w.client, w.key(subject, now), w.window)
	if err != nil {
		return false, err
	}
	return count > w.limit, nil
}

func incrWithTTL(ctx context.Context, client redisRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}
