package internal

import (
	"context"
	"log/slog"
	"time"
)

// RunOption configures the server runtime.
type RunOption func(*runner)

// Address sets the listen address used when Run gets an empty one.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return func(r *runner) {
		if addr != "" {
			r.address = addr
		}
	}
}

// Logger sets the logger for lifecycle messages (start, shutdown, hook
// failures). Request logs go to the App logger.
func Logger(l *slog.Logger) RunOption {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// ShutdownTimeout bounds draining in-flight requests and running shutdown
// hooks, together. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(r *runner) {
		if d > 0 {
			r.shutdownTimeout = d
		}
	}
}

// StartupHook registers a function to run before the listener opens.
// The first failing hook aborts Run.
func StartupHook(fn func(context.Context) error) RunOption {
	return func(r *runner) {
		if fn != nil {
			r.startupHooks = append(r.startupHooks, fn)
		}
	}
}

// ShutdownHook registers a cleanup function that runs after the server
// stopped accepting requests. Hooks run in registration order and all of
// them run even if one fails.
//
// Example:
//
//	five.ShutdownHook(func(ctx context.Context) error {
//	    return db.Close()
//	})
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(r *runner) {
		if fn != nil {
			r.shutdownHooks = append(r.shutdownHooks, fn)
		}
	}
}

// WithContext sets the parent of the signal context. Cancelling it stops
// the server the same way SIGINT does.
func WithContext(ctx context.Context) RunOption {
	return func(r *runner) {
		if ctx != nil {
			r.baseCtx = ctx
		}
	}
}
