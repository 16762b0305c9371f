package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/five"
	"github.com/dmitrymomot/five/middlewares"
)

// newApp returns an app with stages applied and a handler echoing the request ID.
func newApp(stages ...five.HandlerFunc) *five.App {
	app := five.New()
	app.Use(stages...)
	app.GET("/", func(c five.Context) error {
		return c.Send(middlewares.GetRequestID(c))
	})
	return app
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a UUID when not present", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		newApp(middlewares.RequestID()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, id, rec.Body.String())
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "existing-request-id-123")
		rec := httptest.NewRecorder()
		newApp(middlewares.RequestID()).ServeHTTP(rec, req)

		require.Equal(t, "existing-request-id-123", rec.Header().Get("X-Request-ID"))
		require.Equal(t, "existing-request-id-123", rec.Body.String())
	})

	t.Run("falls back to correlation header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")
		rec := httptest.NewRecorder()
		newApp(middlewares.RequestID()).ServeHTTP(rec, req)

		require.Equal(t, "corr-1", rec.Body.String())
	})

	t.Run("custom sources generator and header", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.RequestID(
			middlewares.WithRequestIDSources(five.FromQuery("rid")),
			middlewares.WithRequestIDGenerator(func() string { return "generated" }),
			middlewares.WithRequestIDResponseHeader("X-Trace-ID"),
		)

		req := httptest.NewRequest(http.MethodGet, "/?rid=from-query", nil)
		req.Header.Set("X-Request-ID", "ignored")
		rec := httptest.NewRecorder()
		newApp(mw).ServeHTTP(rec, req)
		require.Equal(t, "from-query", rec.Header().Get("X-Trace-ID"))

		rec = httptest.NewRecorder()
		newApp(mw).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, "generated", rec.Body.String())
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "default-header")
		req.Header.Set("X-Amzn-Trace-Id", "amzn")
		rec := httptest.NewRecorder()
		newApp(middlewares.RequestID(middlewares.WithRequestIDHeaders("X-Amzn-Trace-Id"))).ServeHTTP(rec, req)

		require.Equal(t, "amzn", rec.Body.String())
	})

	t.Run("replaces unsafe incoming IDs", func(t *testing.T) {
		t.Parallel()

		for _, bad := range []string{strings.Repeat("a", 129), "has space", "line\nbreak"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header["X-Request-Id"] = []string{bad}
			rec := httptest.NewRecorder()
			newApp(middlewares.RequestID()).ServeHTTP(rec, req)

			_, err := uuid.Parse(rec.Body.String())
			require.NoError(t, err, "incoming %q", bad)
		}
	})

	t.Run("GetRequestID is empty without the stage", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		newApp().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Empty(t, rec.Body.String())
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	t.Run("returns attribute when request ID present", func(t *testing.T) {
		t.Parallel()

		var ctx context.Context
		app := five.New()
		app.Use(middlewares.RequestID())
		app.GET("/", func(c five.Context) error {
			ctx = c.Context()
			return c.Send()
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc")
		app.ServeHTTP(httptest.NewRecorder(), req)

		attr, ok := middlewares.RequestIDExtractor()(ctx)
		require.True(t, ok)
		require.Equal(t, "request_id", attr.Key)
		require.Equal(t, "abc", attr.Value.String())
	})

	t.Run("returns false when missing", func(t *testing.T) {
		t.Parallel()

		_, ok := middlewares.RequestIDExtractor()(context.Background())
		require.False(t, ok)
	})
}
