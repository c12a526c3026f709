package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisLimiter keeps fixed-window counters in Redis so that limits hold
// across server instances. Same Decision shape as the in-process
// Limiter; windows are approximated with INCR plus an expiry set on the
// first hit.
type RedisLimiter struct {
	client *redis.Client
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, policy Policy) (Decision, error) {
	rk := redisKeyPrefix + key

	count, err := l.client.Incr(ctx, rk).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("increment rate window: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, rk, policy.Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("set rate window expiry: %w", err)
		}
	}

	ttl, err := l.client.TTL(ctx, rk).Result()
	if err != nil || ttl < 0 {
		ttl = policy.Window
	}
	resetAt := time.Now().Add(ttl)

	if count > int64(policy.MaxRequests) {
		return Decision{Allowed: false, Limit: policy.MaxRequests, Remaining: 0, ResetAt: resetAt}, nil
	}
	return Decision{
		Allowed:   true,
		Limit:     policy.MaxRequests,
		Remaining: policy.MaxRequests - int(count),
		ResetAt:   resetAt,
	}, nil
}
