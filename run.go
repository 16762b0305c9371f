package five

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/five/internal"
)

// Address is the listen address used when Run is given "". Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger receives server lifecycle messages.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds draining plus shutdown hooks. Defaults to 30s.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook runs fn before the listener opens; an error aborts Run.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook runs fn after the server stopped accepting requests.
//
// Example:
//
//	app.Run(":8080", five.ShutdownHook(logger.FlushSentry(2*time.Second)))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext stops the server when ctx is cancelled, in addition to
// SIGINT and SIGTERM.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}
