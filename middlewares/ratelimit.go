package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/five/internal"
)

// RateLimitConfig configures the RateLimit stage.
type RateLimitConfig struct {
	KeyFunc         func(c internal.Context) string // default: remote IP
	Rate            float64                         // requests per second
	Burst           int                             // max burst
	CleanupInterval time.Duration                   // how often to prune idle limiters (default: 1m)
	MaxIdle         time.Duration                   // remove limiters idle longer than this (default: 5m)
}

// RateLimit returns a stage that applies per-key token bucket limiting.
// Requests over the limit fail with 429 and a Retry-After header.
//
//	app.Use(middlewares.RateLimit(middlewares.RateLimitConfig{Rate: 10, Burst: 20}))
func RateLimit(cfg RateLimitConfig) internal.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = remoteIP
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 {
		maxIdle = 5 * time.Minute
	}

	retryAfter := "1"
	if cfg.Rate > 0 && cfg.Rate < 1 {
		retryAfter = strconv.FormatFloat(1/cfg.Rate, 'f', 0, 64)
	}

	var (
		mu          sync.Mutex
		limiters    = make(map[string]*limiterEntry)
		lastCleanup time.Time
	)

	return func(c internal.Context) error {
		key := cfg.KeyFunc(c)

		mu.Lock()
		now := time.Now()

		// Lazy cleanup of expired limiters.
		if now.Sub(lastCleanup) >= cleanupInterval {
			for k, e := range limiters {
				if now.Sub(e.lastSeen) > maxIdle {
					delete(limiters, k)
				}
			}
			lastCleanup = now
		}

		entry, ok := limiters[key]
		if !ok {
			entry = &limiterEntry{
				limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
			}
			limiters[key] = entry
		}
		entry.lastSeen = now
		mu.Unlock()

		if !entry.limiter.Allow() {
			c.SetHeader("Retry-After", retryAfter)
			return c.SendError(http.StatusTooManyRequests)
		}
		return nil
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func remoteIP(c internal.Context) string {
	addr := c.Request().RemoteAddr
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
