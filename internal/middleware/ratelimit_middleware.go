package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/addresskit/internal/utils"
)

// Limiter decides whether key may make another request in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryRateLimiter is an in-process fixed window limiter, used when Redis
// is not available.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	attempts map[string]*attemptInfo
	now      func() time.Time
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

// NewMemoryRateLimiter allows limit requests per key per window.
func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limit:    limit,
		window:   window,
		attempts: make(map[string]*attemptInfo),
		now:      time.Now,
	}
}

// Allow checks if key can make another request.
func (r *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	info, exists := r.attempts[key]
	if !exists || now.Sub(info.firstAt) >= r.window {
		r.attempts[key] = &attemptInfo{count: 1, firstAt: now}
		return true, nil
	}

	if info.count >= r.limit {
		return false, nil
	}
	info.count++
	return true, nil
}

// RunCleanup evicts expired windows every interval until ctx is done.
func (r *MemoryRateLimiter) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.evict()
		}
	}
}

func (r *MemoryRateLimiter) evict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for key, info := range r.attempts {
		if now.Sub(info.firstAt) >= r.window {
			delete(r.attempts, key)
		}
	}
}

// RateLimitMiddleware rejects clients over the limit with 429. Limiter
// failures let the request through.
func RateLimitMiddleware(limiter Limiter, window time.Duration) gin.HandlerFunc {
	retryAfter := strconv.Itoa(retryAfterSeconds(window))

	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn().Err(err).Str("ip", c.ClientIP()).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", retryAfter)
			utils.AbortError(c, http.StatusTooManyRequests, utils.ErrRateLimited.Error(), "Too many requests, please slow down")
			return
		}
		c.Next()
	}
}

// retryAfterSeconds rounds window up to whole seconds, minimum 1.
func retryAfterSeconds(window time.Duration) int {
	secs := int((window + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
