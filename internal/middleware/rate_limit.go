package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Limiter decides whether a request for key may proceed.
type Limiter interface {
	// IsAllowed returns: allowed, remaining requests, reset time, error
	IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error)
	Config() RateLimitConfig
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

func (rl *RateLimiter) Config() RateLimitConfig {
	return rl.config
}

// IsAllowed counts the request in a fixed window shared by every replica.
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()
	windowStart := now.Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := windowStart.Add(rl.config.Window)
	allowed := count <= rl.config.Limit

	return allowed, remaining, resetTime, nil
}

// LocalRateLimiter is a per-process token bucket limiter used when Redis is
// not configured. Buckets refill evenly over the window. Full buckets are
// dropped once per window since a fresh bucket behaves the same.
type LocalRateLimiter struct {
	config RateLimitConfig
	now    func() time.Time

	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	lastPrune time.Time
}

var _ Limiter = (*LocalRateLimiter)(nil)

func NewLocalRateLimiter(config RateLimitConfig) *LocalRateLimiter {
	if config.Limit < 1 {
		config.Limit = 1
	}
	return &LocalRateLimiter{
		config:   config,
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *LocalRateLimiter) Config() RateLimitConfig {
	return l.config
}

func (l *LocalRateLimiter) IsAllowed(_ context.Context, key string) (bool, int, time.Time, error) {
	now := l.now()

	l.mu.Lock()
	l.pruneLocked(now)
	lim, ok := l.limiters[key]
	if !ok {
		every := l.config.Window / time.Duration(l.config.Limit)
		lim = rate.NewLimiter(rate.Every(every), l.config.Limit)
		l.limiters[key] = lim
	}
	l.mu.Unlock()

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)
	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}

	reset := now
	if tokens < 1 {
		missing := 1 - tokens
		reset = now.Add(time.Duration(missing * float64(time.Second) / float64(lim.Limit())))
	}
	return allowed, remaining, reset, nil
}

func (l *LocalRateLimiter) pruneLocked(now time.Time) {
	if l.lastPrune.IsZero() {
		l.lastPrune = now
		return
	}
	if now.Sub(l.lastPrune) < l.config.Window {
		return
	}
	l.lastPrune = now
	burst := float64(l.config.Limit)
	for key, lim := range l.limiters {
		if lim.TokensAt(now) >= burst {
			delete(l.limiters, key)
		}
	}
}

// NewAIRateLimiter limits AI-backed requests per scope. It uses Redis when a
// client is given and an in-process limiter otherwise.
func NewAIRateLimiter(redisClient *redis.Client, perHour int) Limiter {
	config := RateLimitConfig{
		Window:    time.Hour,
		Limit:     perHour,
		KeyPrefix: "rate_limit:ai",
	}
	if redisClient != nil {
		return NewRateLimiter(redisClient, config)
	}
	return NewLocalRateLimiter(config)
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting
// per scope. It must run after ScopeMiddleware. A failing limiter lets the
// request through.
func RateLimitMiddleware(rl Limiter, log *zap.Logger) gin.HandlerFunc {
	config := rl.Config()
	return func(c *gin.Context) {
		scopeID := ScopeID(c)
		if scopeID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "scope not authenticated"})
			c.Abort()
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), scopeID)
		if err != nil {
			log.Warn("rate limit check failed", zap.String("scope_id", scopeID), zap.Error(err))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":                "rate limit exceeded",
				"message":              fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", config.Limit, config.Window),
				"rate_limit_remaining": remaining,
				"rate_limit_reset":     resetTime.Unix(),
				"retry_after":          int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
