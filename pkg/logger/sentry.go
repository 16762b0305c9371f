package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
// Field tags let it be embedded in a kong CLI struct.
type SentryConfig struct {
	// Base receives every record besides Sentry. Defaults to JSON on stdout.
	Base        slog.Handler `kong:"-"`
	DSN         string       `env:"SENTRY_DSN" help:"Sentry DSN; empty disables Sentry."`
	Environment string       `env:"SENTRY_ENVIRONMENT" default:"production" help:"Sentry environment."`
	Release     string       `env:"SENTRY_RELEASE" help:"Release reported to Sentry."`
	// MinLevel determines which log levels to send to Sentry (e.g., slog.LevelWarn for warnings+errors)
	MinLevel slog.Level `kong:"-"`
}

// NewWithSentry creates a logger that sends logs to both the base handler and Sentry.
// If DSN is empty, only the base handler is used (graceful fallback for local dev).
// Context extractors are applied to logs sent to both destinations.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	base := cfg.Base
	if base == nil {
		base = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	// If no DSN, fall back to the base handler only
	if cfg.DSN == "" {
		return slog.New(NewContextHandler(base, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		// Graceful degradation: keep logging locally if Sentry init fails
		slog.New(base).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(base, extractors...))
	}

	eventLevel, logLevel := sentryLevels(cfg.MinLevel)
	sentryHandler := sentryslog.Option{
		EventLevel: eventLevel, // Errors create Issues in Sentry
		LogLevel:   logLevel,   // Logs stored for context/search
	}.NewSentryHandler(context.Background())

	// Extractors apply to both destinations
	return slog.New(NewContextHandler(fanout{base, sentryHandler}, extractors...))
}

// FlushSentry waits up to timeout for buffered Sentry events to be sent.
// Suitable as a shutdown hook; it is a no-op when Sentry is not initialized.
func FlushSentry(timeout time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		if d, ok := ctx.Deadline(); ok && time.Until(d) < timeout {
			timeout = time.Until(d)
		}
		sentry.Flush(timeout)
		return nil
	}
}

// sentryLevels picks the levels sent to Sentry. Only errors become issues;
// warnings are stored as logs unless MinLevel is Error.
func sentryLevels(minLevel slog.Level) (events, logs []slog.Level) {
	events = []slog.Level{slog.LevelError}
	logs = []slog.Level{slog.LevelWarn, slog.LevelError}
	if minLevel >= slog.LevelError {
		logs = []slog.Level{slog.LevelError}
	}
	return events, logs
}
