package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestFanout(t *testing.T) {
	t.Parallel()

	var info, errs bytes.Buffer
	h := fanout{
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	log := slog.New(h).With("component", "api")

	log.Info("routine")
	log.Error("broken")

	require.Contains(t, info.String(), "routine")
	require.Contains(t, info.String(), "broken")
	require.NotContains(t, errs.String(), "routine")
	require.Contains(t, errs.String(), "component=api")
	require.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestFanout_ContinuesPastFailures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := fanout{
		failingHandler{slog.NewTextHandler(&bytes.Buffer{}, nil)},
		slog.NewTextHandler(&buf, nil),
	}

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still delivered", 0))
	require.Error(t, err)
	require.Contains(t, buf.String(), "still delivered")
}
