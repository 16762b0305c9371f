package middlewares_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/five"
	"github.com/dmitrymomot/five/middlewares"
	"github.com/dmitrymomot/five/pkg/logger"
)

func TestAccessLog(t *testing.T) {
	t.Parallel()

	t.Run("logs the committed status with request id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(&buf, nil), middlewares.RequestIDExtractor()))

		app := five.New(five.WithCustomLogger(log))
		app.Use(middlewares.RequestID(), middlewares.AccessLog())
		app.POST("/things", func(c five.Context) error {
			return c.Send(http.StatusCreated, "ok")
		})

		req := httptest.NewRequest(http.MethodPost, "/things", nil)
		req.Header.Set("X-Request-ID", "req-1")
		app.ServeHTTP(httptest.NewRecorder(), req)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "request", entry["msg"])
		require.Equal(t, "POST", entry["method"])
		require.Equal(t, "/things", entry["path"])
		require.EqualValues(t, http.StatusCreated, entry["status"])
		require.Equal(t, "req-1", entry["request_id"])
	})

	t.Run("logs error replies and pending status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

		app := five.New()
		app.Use(middlewares.AccessLog(
			middlewares.WithAccessLogger(log),
			middlewares.WithAccessLogLevel(slog.LevelWarn),
		))
		app.GET("/missing", func(c five.Context) error { return five.ErrNotFound("") })
		app.DELETE("/gone", func(c five.Context) error {
			c.Status(http.StatusNoContent)
			return nil
		})

		app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
		require.Contains(t, buf.String(), `"status":404`)
		require.Contains(t, buf.String(), `"level":"WARN"`)

		buf.Reset()
		app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/gone", nil))
		require.Contains(t, buf.String(), `"status":204`)
	})

	t.Run("requests answered before the chain are not logged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		app := five.New()
		app.Use(middlewares.AccessLog(middlewares.WithAccessLogger(slog.New(slog.NewJSONHandler(&buf, nil)))))
		app.POST("/things", func(c five.Context) error { return c.Send() })

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader("x"))
		req.Header.Set("Content-Type", "application/xml")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

		rec = httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/things", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)

		require.Empty(t, buf.String())
	})
}
