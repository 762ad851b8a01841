package cache

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter is a fixed window limiter shared across gateway instances.
// Keys look like ratelimit:{window start unix}:{client key}.
type RateLimiter struct {
	redis  *RedisClient
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter allows limit requests per key per window.
func NewRateLimiter(redis *RedisClient, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redis,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow counts one request for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.redis.IncrWithTTL(ctx, l.key(key), l.window)
	if err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}
	return count <= int64(l.limit), nil
}

func (l *RateLimiter) key(client string) string {
	start := l.now().Truncate(l.window).Unix()
	return fmt.Sprintf("ratelimit:%d:%s", start, client)
}
