package auth

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter throttles login attempts per client IP over a fixed window.
// Account lockout in Service covers attempts spread across many IPs.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptWindow
	limit    int
	window   time.Duration
	lockout  time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type attemptWindow struct {
	count       int
	start       time.Time
	lockedUntil time.Time
}

type RateLimitConfig struct {
	MaxAttempts     int
	Window          time.Duration
	Lockout         time.Duration
	CleanupInterval time.Duration
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxAttempts:     10,
		Window:          15 * time.Minute,
		Lockout:         15 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	def := DefaultRateLimitConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.Lockout <= 0 {
		cfg.Lockout = def.Lockout
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}

	rl := &RateLimiter{
		attempts: make(map[string]*attemptWindow),
		limit:    cfg.MaxAttempts,
		window:   cfg.Window,
		lockout:  cfg.Lockout,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop(cfg.CleanupInterval)
	return rl
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Allow reports whether key may attempt a login and, if not, for how long it must wait.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.attempts[key]
	if !ok {
		return true, 0
	}
	now := rl.now()
	if now.Before(w.lockedUntil) {
		return false, w.lockedUntil.Sub(now)
	}
	return true, 0
}

// Fail counts a failed attempt and reports whether key is now locked out.
func (rl *RateLimiter) Fail(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.attempts[key]
	if !ok || now.Sub(w.start) > rl.window {
		w = &attemptWindow{start: now}
		rl.attempts[key] = w
	}
	w.count++
	if w.count >= rl.limit {
		w.lockedUntil = now.Add(rl.lockout)
		return true
	}
	return false
}

// Reset forgets key after a successful login.
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	delete(rl.attempts, key)
	rl.mu.Unlock()
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.attempts {
		if now.Sub(w.start) > rl.window && !now.Before(w.lockedUntil) {
			delete(rl.attempts, key)
		}
	}
}

// Middleware rejects clients that are locked out with 429 and a Retry-After in seconds.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, wait := rl.Allow(c.ClientIP())
		if !allowed {
			seconds := int(wait.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many login attempts",
				"retry_after": seconds,
			})
			return
		}
		c.Next()
	}
}
