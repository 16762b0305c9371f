package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/five/pkg/logger"
)

type traceKey struct{}

func traceExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(traceKey{}).(string); ok && v != "" {
		return slog.String("trace", v), true
	}
	return slog.Attr{}, false
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestContextHandler(t *testing.T) {
	t.Parallel()

	t.Run("adds extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(&buf, nil), traceExtractor))

		ctx := context.WithValue(context.Background(), traceKey{}, "abc")
		log.InfoContext(ctx, "hello")

		entry := decode(t, &buf)
		require.Equal(t, "abc", entry["trace"])
		require.Equal(t, "hello", entry["msg"])
	})

	t.Run("skips missing values", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(&buf, nil), traceExtractor))

		log.InfoContext(context.Background(), "hello")

		entry := decode(t, &buf)
		require.NotContains(t, entry, "trace")
	})

	t.Run("ignores nil extractors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(&buf, nil), nil, traceExtractor))

		ctx := context.WithValue(context.Background(), traceKey{}, "xyz")
		require.NotPanics(t, func() { log.InfoContext(ctx, "hello") })
		require.Equal(t, "xyz", decode(t, &buf)["trace"])
	})

	t.Run("keeps extractors across With", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(&buf, nil), traceExtractor)).
			With("component", "api")

		ctx := context.WithValue(context.Background(), traceKey{}, "abc")
		log.InfoContext(ctx, "hello")

		entry := decode(t, &buf)
		require.Equal(t, "api", entry["component"])
		require.Equal(t, "abc", entry["trace"])
	})
}

func TestNewConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewConsole(&buf, slog.LevelWarn, true, traceExtractor)

	ctx := context.WithValue(context.Background(), traceKey{}, "abc")
	log.InfoContext(ctx, "dropped")
	log.WarnContext(ctx, "kept")

	out := buf.String()
	require.NotContains(t, out, "dropped")
	require.Contains(t, out, "kept")
	require.Contains(t, out, "trace=abc")
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithSentry(logger.SentryConfig{
		Base: slog.NewJSONHandler(&buf, nil),
	}, traceExtractor)

	ctx := context.WithValue(context.Background(), traceKey{}, "abc")
	log.ErrorContext(ctx, "boom")

	entry := decode(t, &buf)
	require.Equal(t, "boom", entry["msg"])
	require.Equal(t, "abc", entry["trace"])
}

func TestFlushSentry(t *testing.T) {
	t.Parallel()

	require.NoError(t, logger.FlushSentry(0)(context.Background()))
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}
