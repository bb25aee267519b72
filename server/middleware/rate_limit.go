package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token-bucket limiter per client IP so one noisy
// client cannot starve the chat endpoint for everyone else.
type RateLimiter struct {
	mu       sync.Mutex
	limits   map[string]*clientLimiter
	rps      rate.Limit
	burst    int
	lastSeen time.Duration
}

type clientLimiter struct {
	limiter *rate.Limiter
	seen    time.Time
}

// NewRateLimiter creates a rate limiter allowing rps requests per
// second with the given burst per client.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limits:   make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		lastSeen: 10 * time.Minute,
	}
	go rl.evictLoop()
	return rl
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if cl, ok := rl.limits[key]; ok {
		cl.seen = time.Now()
		return cl.limiter
	}
	cl := &clientLimiter{
		limiter: rate.NewLimiter(rl.rps, rl.burst),
		seen:    time.Now(),
	}
	rl.limits[key] = cl
	return cl.limiter
}

// Allow reports whether a request from key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware returns an echo middleware that rejects over-limit
// requests with 429.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests. Please slow down.")
			}
			return next(c)
		}
	}
}

// evictLoop drops limiters for clients idle longer than lastSeen.
func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-rl.lastSeen)
		rl.mu.Lock()
		for key, cl := range rl.limits {
			if cl.seen.Before(cutoff) {
				delete(rl.limits, key)
			}
		}
		rl.mu.Unlock()
	}
}
