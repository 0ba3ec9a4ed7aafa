package auth

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter caps public form submissions per client IP using a fixed
// window.
type RateLimiter struct {
	mu              sync.Mutex
	attempts        map[string]*attemptRecord
	maxRequests     int
	windowDuration  time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
}

type attemptRecord struct {
	count       int
	windowStart time.Time
}

type RateLimitConfig struct {
	MaxRequests     int           // requests allowed per window (default: 10)
	WindowDuration  time.Duration // default: 1h
	CleanupInterval time.Duration // how often expired records are dropped (default: 5m)
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests:     10,
		WindowDuration:  time.Hour,
		CleanupInterval: 5 * time.Minute,
	}
}

// NewRateLimiter creates a rate limiter and starts its cleanup loop.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	defaults := DefaultRateLimitConfig()
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = defaults.MaxRequests
	}
	if cfg.WindowDuration <= 0 {
		cfg.WindowDuration = defaults.WindowDuration
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = defaults.CleanupInterval
	}

	rl := &RateLimiter{
		attempts:        make(map[string]*attemptRecord),
		maxRequests:     cfg.MaxRequests,
		windowDuration:  cfg.WindowDuration,
		cleanupInterval: cfg.CleanupInterval,
		stopCleanup:     make(chan struct{}),
		now:             time.Now,
	}

	go rl.cleanupLoop()

	return rl
}

// Stop stops the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

// Allow counts a request from ip and reports whether it fits in the current
// window. When it does not, retryAfter is the time left in the window.
func (rl *RateLimiter) Allow(ip string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	record, exists := rl.attempts[ip]
	if !exists || now.Sub(record.windowStart) >= rl.windowDuration {
		rl.attempts[ip] = &attemptRecord{count: 1, windowStart: now}
		return true, 0
	}

	if record.count >= rl.maxRequests {
		return false, record.windowStart.Add(rl.windowDuration).Sub(now)
	}

	record.count++
	return true, 0
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanup removes records whose window has passed.
func (rl *RateLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, record := range rl.attempts {
		if now.Sub(record.windowStart) >= rl.windowDuration {
			delete(rl.attempts, key)
		}
	}
}

// Middleware limits POST requests for which limited reports true.
func (rl *RateLimiter) Middleware(limited func(c *gin.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || (limited != nil && !limited(c)) {
			c.Next()
			return
		}

		allowed, retryAfter := rl.Allow(c.ClientIP())
		if !allowed {
			seconds := int(retryAfter.Round(time.Second) / time.Second)
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many submissions, try again later",
				"code":        "rate_limited",
				"retry_after": seconds,
			})
			return
		}

		c.Next()
	}
}
