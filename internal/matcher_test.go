package internal

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChiMatcher(t *testing.T) {
	t.Parallel()

	m := NewChiMatcher(http.MethodGet)
	require.NoError(t, m.Register("/users/{id}", "user"))
	require.NoError(t, m.Register("/users/me", "me"))
	require.NoError(t, m.Register("/posts/{slug:[a-z-]+}", "post"))
	require.NoError(t, m.Register("/static/*", "static"))

	t.Run("static beats param", func(t *testing.T) {
		t.Parallel()

		payload, _, ok := m.Match("/users/me")
		require.True(t, ok)
		require.Equal(t, "me", payload)
	})

	t.Run("params", func(t *testing.T) {
		t.Parallel()

		payload, params, ok := m.Match("/users/7")
		require.True(t, ok)
		require.Equal(t, "user", payload)
		require.Equal(t, Params{"id": "7"}, params)
	})

	t.Run("regexp param", func(t *testing.T) {
		t.Parallel()

		_, params, ok := m.Match("/posts/hello-world")
		require.True(t, ok)
		require.Equal(t, "hello-world", params["slug"])

		_, _, ok = m.Match("/posts/Hello_42")
		require.False(t, ok)
	})

	t.Run("wildcard", func(t *testing.T) {
		t.Parallel()

		payload, params, ok := m.Match("/static/css/app.css")
		require.True(t, ok)
		require.Equal(t, "static", payload)
		require.Equal(t, "css/app.css", params["*"])
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		_, _, ok := m.Match("/nothing")
		require.False(t, ok)
	})
}

func TestChiMatcher_RegisterErrors(t *testing.T) {
	t.Parallel()

	m := NewChiMatcher(http.MethodPost)
	require.NoError(t, m.Register("/a", 1))
	require.ErrorIs(t, m.Register("/a", 2), ErrDuplicateRoute)
	require.ErrorIs(t, m.Register("a", 3), ErrInvalidPattern)

	payload, _, ok := m.Match("/a")
	require.True(t, ok)
	require.Equal(t, 1, payload)
}
