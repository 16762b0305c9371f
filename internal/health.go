package internal

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
	defaultHealthTimeout = 5 * time.Second
)

// CheckFunc reports whether a dependency is usable. It must honor ctx.
type CheckFunc func(ctx context.Context) error

// healthConfig describes the two probe routes registered by WithHealthChecks.
type healthConfig struct {
	checks        map[string]CheckFunc
	livenessPath  string
	readinessPath string
	timeout       time.Duration
}

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath moves the liveness probe. Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath moves the readiness probe. Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessTimeout bounds the whole readiness probe. Defaults to 5s.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithReadinessCheck adds a named check to the readiness probe. Checks run
// concurrently; any failure makes the probe answer 503.
//
// Example:
//
//	five.WithReadinessCheck("db", func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
func WithReadinessCheck(name string, fn CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if name != "" && fn != nil {
			c.checks[name] = fn
		}
	}
}

// healthReport is the JSON body of both probes.
type healthReport struct {
	Checks map[string]checkResult `json:"checks,omitempty"`
	Status string                 `json:"status"`
}

type checkResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (r *healthReport) healthy() bool {
	return r.Status == "healthy"
}

// registerHealthRoutes adds both probes as ordinary GET routes, so they go
// through CORS and middleware stages like everything else.
func (a *App) registerHealthRoutes() {
	cfg := a.healthConfig
	a.GET(cfg.livenessPath, func(c Context) error {
		return respondHealth(c, &healthReport{Status: "healthy"})
	})
	a.GET(cfg.readinessPath, func(c Context) error {
		return respondHealth(c, probe(c, cfg.checks, cfg.timeout, c.Logger()))
	})
}

// probe runs every check under one deadline and collects all outcomes.
func probe(ctx context.Context, checks map[string]CheckFunc, timeout time.Duration, log *slog.Logger) *healthReport {
	report := &healthReport{Status: "healthy"}
	if len(checks) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	report.Checks = make(map[string]checkResult, len(checks))
	for name, check := range checks {
		g.Go(func() error {
			res := checkResult{Status: "healthy"}
			if err := check(ctx); err != nil {
				res = checkResult{Status: "unhealthy", Error: err.Error()}
				log.WarnContext(ctx, "readiness check failed", slog.String("check", name), slog.Any("error", err))
			}

			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = res
			if res.Error != "" {
				report.Status = "unhealthy"
			}
			// Failures are recorded, not returned, so no check cancels another.
			return nil
		})
	}
	_ = g.Wait()
	return report
}

// respondHealth answers JSON for API clients and a bare word otherwise.
func respondHealth(c Context, report *healthReport) error {
	code, text := http.StatusOK, "OK"
	if !report.healthy() {
		code, text = http.StatusServiceUnavailable, "Service Unavailable"
	}

	r := c.Request()
	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), MIMEApplicationJSON) {
		return c.JSON(code, report)
	}
	return c.String(code, text)
}
