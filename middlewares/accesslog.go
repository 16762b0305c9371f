package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/five/internal"
)

// AccessLogConfig configures the access log stage.
type AccessLogConfig struct {
	Logger *slog.Logger // Defaults to the app logger
	Level  slog.Level
}

// AccessLogOption configures AccessLogConfig.
type AccessLogOption func(*AccessLogConfig)

// WithAccessLogger writes access entries to l instead of the app logger.
func WithAccessLogger(l *slog.Logger) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.Logger = l
	}
}

// WithAccessLogLevel sets the level of access entries. Defaults to Info.
func WithAccessLogLevel(level slog.Level) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.Level = level
	}
}

// AccessLog returns a stage that logs one entry per request when the
// response headers are committed. Stages have no "after" step, so the
// entry is emitted from the response writer's before-write hook and
// records the status actually sent.
//
// Requests the dispatcher answers before the chain runs get no entry:
// preflight, unknown routes and rejected bodies (400, 413, 415).
//
// Register it after RequestID so that entries carry the request ID:
//
//	app.Use(middlewares.RequestID(), middlewares.AccessLog())
func AccessLog(opts ...AccessLogOption) internal.HandlerFunc {
	cfg := &AccessLogConfig{Level: slog.LevelInfo}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c internal.Context) error {
		rw := c.ResponseWriter()
		if rw == nil {
			return nil
		}

		log := cfg.Logger
		if log == nil {
			log = c.Logger()
		}

		start := time.Now()
		req := c.Request()
		ctx := req.Context()
		rw.OnBeforeWrite(func() {
			log.Log(ctx, cfg.Level, "request",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", rw.Status()),
				slog.Duration("duration", time.Since(start)),
			)
		})
		return nil
	}
}
