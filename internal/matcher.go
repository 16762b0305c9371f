package internal

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Params holds path parameters extracted by a PathMatcher, keyed by name.
type Params map[string]string

// PathMatcher is the pattern matching capability the route table relies on.
// Precedence between overlapping patterns is entirely up to the
// implementation. Implementations need not be safe for concurrent use;
// the route table serializes registration against lookups.
type PathMatcher interface {
	// Register associates payload with pattern.
	Register(pattern string, payload any) error

	// Match resolves path to the payload of the matching pattern.
	Match(path string) (payload any, params Params, ok bool)
}

// MatcherFactory builds an empty PathMatcher for a single HTTP method.
type MatcherFactory func(method string) PathMatcher

// chiMatcher implements PathMatcher on top of a chi routing tree.
// One instance serves exactly one method.
type chiMatcher struct {
	mux      *chi.Mux
	method   string
	payloads map[string]any
}

// NewChiMatcher returns a PathMatcher backed by chi's radix tree.
// Patterns use chi syntax: "/users/{id}", "/files/*", "/{slug:[a-z-]+}".
func NewChiMatcher(method string) PathMatcher {
	return &chiMatcher{
		mux:      chi.NewMux(),
		method:   method,
		payloads: make(map[string]any),
	}
}

func (m *chiMatcher) Register(pattern string, payload any) (err error) {
	if _, exists := m.payloads[pattern]; exists {
		return ErrDuplicateRoute
	}

	// chi reports malformed patterns by panicking.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidPattern, r)
		}
	}()

	m.mux.Method(m.method, pattern, http.NotFoundHandler())
	m.payloads[pattern] = payload
	return nil
}

func (m *chiMatcher) Match(path string) (any, Params, bool) {
	rctx := chi.NewRouteContext()
	if !m.mux.Match(rctx, m.method, path) {
		return nil, nil, false
	}

	if len(rctx.RoutePatterns) == 0 {
		return nil, nil, false
	}
	payload, ok := m.payloads[rctx.RoutePatterns[len(rctx.RoutePatterns)-1]]
	if !ok {
		return nil, nil, false
	}

	params := make(Params, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return payload, params, true
}
