package five_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/five"
	"github.com/dmitrymomot/five/middlewares"
	"github.com/dmitrymomot/five/pkg/codec"
)

type createItem struct {
	Name string `json:"name" yaml:"name"`
}

func newApp() *five.App {
	app := five.New(
		five.WithParser(codec.MIMEApplicationYAML, codec.YAML),
		five.WithHealthChecks(),
	)
	app.Use(middlewares.RequestID())

	api := app.Namespace("/api")
	api.GET("/items/{id}", func(c five.Context) error {
		return c.Send(map[string]any{"id": five.Param[int](c, "id")})
	})
	api.With(five.MaxBodySize(64)).POST("/items", func(c five.Context) error {
		in, err := five.Bind[createItem](c)
		if err != nil {
			return err
		}
		return c.Send(http.StatusCreated, in)
	})
	return app
}

func TestApp(t *testing.T) {
	t.Parallel()

	app := newApp()

	t.Run("typed params", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items/7", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"id":7}`, rec.Body.String())
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("yaml body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader("name: widget\n"))
		req.Header.Set("Content-Type", "application/yaml")
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.JSONEq(t, `{"name":"widget"}`, rec.Body.String())
	})

	t.Run("route body limit", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(`{"name":"`+strings.Repeat("x", 100)+`"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("health", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("routes", func(t *testing.T) {
		t.Parallel()

		var patterns []string
		for _, r := range app.Routes() {
			patterns = append(patterns, r.Method+" "+r.Pattern)
		}
		require.Contains(t, patterns, "GET /api/items/{id}")
		require.Contains(t, patterns, "POST /api/items")
	})
}

func TestHTTPErrors(t *testing.T) {
	t.Parallel()

	err := five.ErrNotFound("", five.WithError(http.ErrNoCookie))
	require.True(t, five.IsHTTPError(err))
	require.Equal(t, "Not Found", err.Message)
	require.ErrorIs(t, err, http.ErrNoCookie)
	require.Equal(t, http.StatusBadRequest, five.AsHTTPError(five.ErrMalformedPayload("application/json")).Code)
	require.Nil(t, five.AsHTTPError(http.ErrNoCookie))
}
