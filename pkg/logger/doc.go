// Package logger builds log/slog loggers with context extraction and
// optional Sentry fan-out.
//
// A ContextExtractor pulls one attribute out of a context.Context on every
// log call, so request-scoped values such as request IDs show up without
// being passed around:
//
//	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(requestIDExtractor)
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// {"level":"INFO","msg":"request processed","status":200,"request_id":"abc-123"}
//
// # Factories
//
//   - New: JSON on stdout at Info.
//   - NewConsole: colored text for local development.
//   - NewNope: discards everything; the default when logging is not configured.
//   - NewWithSentry: base handler plus Sentry. Errors become Sentry issues,
//     warnings are kept as Sentry logs. An empty DSN falls back to the base
//     handler only, so the same code path works in development.
//
// Flush buffered Sentry events on shutdown with FlushSentry:
//
//	app.Run(":8080", five.ShutdownHook(logger.FlushSentry(2*time.Second)))
//
// # Context Handler
//
// NewContextHandler wraps any slog.Handler with extractors:
//
//	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
//	log := slog.New(logger.NewContextHandler(h, extractors...))
package logger
