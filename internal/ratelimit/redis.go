package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"praisetabernacle/internal/domain"
)

// RedisLimiter keeps fixed-window counters in Redis so every instance shares them.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
}

// NewRedisLimiter returns a limiter storing counters under prefix.
func NewRedisLimiter(client redis.Cmdable, prefix string) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix}
}

// NewRedisClient parses url (redis://...) and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

var _ domain.RateLimiter = (*RedisLimiter)(nil)

// Allow increments the counter for key. The first increment of a window sets its expiry.
func (l *RedisLimiter) Allow(ctx context.Context, key string, max int, win time.Duration) (domain.RateLimitResult, error) {
	k := l.prefix + key
	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return domain.RateLimitResult{}, fmt.Errorf("incr %s: %w", k, err)
	}
	if count == 1 {
		if err := l.client.PExpire(ctx, k, win).Err(); err != nil {
			return domain.RateLimitResult{}, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	if count <= int64(max) {
		return domain.RateLimitResult{Allowed: true}, nil
	}
	ttl, err := l.client.PTTL(ctx, k).Result()
	if err != nil {
		return domain.RateLimitResult{}, fmt.Errorf("pttl %s: %w", k, err)
	}
	if ttl < 0 {
		// Key lost its expiry; restore it so the counter cannot stick forever.
		_ = l.client.PExpire(ctx, k, win).Err()
		ttl = win
	}
	return domain.RateLimitResult{Allowed: false, RetryAfterSeconds: retryAfter(ttl)}, nil
}
