package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// New creates a JSON-formatted logger on stdout with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	log := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(NewContextHandler(log, extractors...))
}

// NewConsole creates a colored, human-readable logger for local development.
// Colors are disabled when noColor is set, e.g. when w is not a terminal.
func NewConsole(w io.Writer, level slog.Level, noColor bool, extractors ...ContextExtractor) *slog.Logger {
	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	})
	return slog.New(NewContextHandler(h, extractors...))
}
