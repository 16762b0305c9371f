package internal_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/five/internal"
)

func TestNew_Options(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cfg := internal.New().Config()
		require.Equal(t, internal.DefaultMaxBodySize, cfg.MaxBodySize)
		require.Equal(t, []string{internal.MIMEApplicationJSON}, cfg.AllowedContentTypes)
		require.Equal(t, internal.DefaultOrigin, cfg.CORS.Origin)
		require.True(t, *cfg.CORS.Credentials)
		require.Contains(t, cfg.Parsers, internal.MIMEApplicationJSON)
	})

	t.Run("config copy is detached", func(t *testing.T) {
		t.Parallel()

		app := internal.New()
		cfg := app.Config()
		cfg.AllowedContentTypes[0] = "text/html"
		*cfg.CORS.Credentials = false
		delete(cfg.Parsers, internal.MIMEApplicationJSON)

		fresh := app.Config()
		require.Equal(t, internal.MIMEApplicationJSON, fresh.AllowedContentTypes[0])
		require.True(t, *fresh.CORS.Credentials)
		require.Contains(t, fresh.Parsers, internal.MIMEApplicationJSON)
	})

	t.Run("parser allows its type", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithParser("text/csv", func(data []byte, v any) error {
			*(v.(*any)) = strings.Split(string(data), ",")
			return nil
		}))
		app.POST("/csv", func(c internal.Context) error { return c.Send(c.Body()) })

		req := httptest.NewRequest(http.MethodPost, "/csv", strings.NewReader("a,b"))
		req.Header.Set("Content-Type", "text/csv")
		rec := serve(app, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `["a","b"]`, rec.Body.String())
	})

	t.Run("config document", func(t *testing.T) {
		t.Parallel()

		doc, err := internal.ParseConfig([]byte("maxBodySize: 4\ncors:\n  origin: localhost\n"))
		require.NoError(t, err)

		app := internal.New(internal.WithConfig(doc))
		app.POST("/", func(c internal.Context) error { return c.Send() })

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[1,2]`))
		req.Header.Set("Content-Type", "application/json")
		rec := serve(app, req)
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		require.Equal(t, "localhost", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("negative body size is ignored", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, internal.DefaultMaxBodySize, internal.New(internal.WithMaxBodySize(-1)).Config().MaxBodySize)
		require.Zero(t, internal.New(internal.WithMaxBodySize(0)).Config().MaxBodySize)
	})

	t.Run("custom matcher", func(t *testing.T) {
		t.Parallel()

		var methods []string
		app := internal.New(internal.WithMatcher(func(method string) internal.PathMatcher {
			methods = append(methods, method)
			return internal.NewChiMatcher(method)
		}))
		app.GET("/a", func(c internal.Context) error { return c.Send() })
		app.GET("/b", func(c internal.Context) error { return c.Send() })
		app.PUT("/a", func(c internal.Context) error { return c.Send() })

		require.Equal(t, []string{http.MethodGet, http.MethodPut}, methods)
	})
}

func TestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	app := internal.New(internal.WithCustomLogger(log))
	app.GET("/panic", func(c internal.Context) error { panic("kaboom") })
	app.GET("/client", func(c internal.Context) error { return internal.ErrBadRequest("nope") })

	serve(app, httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.Contains(t, buf.String(), `"level":"ERROR"`)
	require.Contains(t, buf.String(), "kaboom")

	buf.Reset()
	serve(app, httptest.NewRequest(http.MethodGet, "/client", nil))
	require.Contains(t, buf.String(), `"level":"DEBUG"`)
	require.NotContains(t, buf.String(), `"level":"ERROR"`)
}
