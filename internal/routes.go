package internal

import (
	"net/http"
	"slices"
	"sync"
)

// supportedMethods is the fixed set of methods routes can be registered for,
// in the order they are advertised by CORS.
var supportedMethods = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodPatch,
}

// isSupportedMethod reports whether routes can be registered for method.
func isSupportedMethod(method string) bool {
	return slices.Contains(supportedMethods, method)
}

// hasBody reports whether method may carry a request body that is ingested.
func hasBody(method string) bool {
	switch method {
	case http.MethodPut, http.MethodPost, http.MethodPatch:
		return true
	}
	return false
}

// routeEntry is a registered route.
type routeEntry struct {
	method   string
	pattern  string
	handlers []HandlerFunc

	// Per-route overrides. nil means "inherit from the app config".
	maxBodySize  *int64
	contentTypes []string
}

// RouteOption configures a route at registration time.
type RouteOption func(*routeEntry)

// MaxBodySize overrides the server body limit for a route.
// Zero rejects any non-empty body.
func MaxBodySize(n int64) RouteOption {
	return func(e *routeEntry) {
		if n < 0 {
			n = 0
		}
		e.maxBodySize = &n
	}
}

// AllowedContentTypes replaces the server's allowed request media types for a route.
func AllowedContentTypes(types ...string) RouteOption {
	return func(e *routeEntry) {
		for _, t := range types {
			if t = normalizeMediaType(t); t != "" && !slices.Contains(e.contentTypes, t) {
				e.contentTypes = append(e.contentTypes, t)
			}
		}
	}
}

// effectiveMaxBodySize merges the route override over the server default.
func (e *routeEntry) effectiveMaxBodySize(def int64) int64 {
	if e.maxBodySize != nil {
		return *e.maxBodySize
	}
	return def
}

// allowedContentTypes merges the route override over the server set.
func (e *routeEntry) allowedContentTypes(def []string) []string {
	if len(e.contentTypes) > 0 {
		return e.contentTypes
	}
	return def
}

// routeTable maps method -> PathMatcher. It is append-only and safe for
// lookups concurrent with registration.
type routeTable struct {
	newMatcher MatcherFactory
	matchers   map[string]PathMatcher
	entries    []*routeEntry
	mu         sync.RWMutex
}

func newRouteTable(factory MatcherFactory) *routeTable {
	if factory == nil {
		factory = NewChiMatcher
	}
	return &routeTable{
		newMatcher: factory,
		matchers:   make(map[string]PathMatcher, len(supportedMethods)),
	}
}

// register validates and stores a route. All validation happens here so
// that a broken handler list can never surface at request time.
func (t *routeTable) register(method, pattern string, handlers []HandlerFunc, opts ...RouteOption) error {
	if !isSupportedMethod(method) {
		return &ConfigError{Err: ErrUnsupportedMethod, Method: method, Pattern: pattern, Index: -1}
	}
	if len(handlers) == 0 {
		return &ConfigError{Err: ErrNoHandlers, Method: method, Pattern: pattern, Index: -1}
	}
	for i, h := range handlers {
		if h == nil {
			return &ConfigError{Err: ErrNilHandler, Method: method, Pattern: pattern, Index: i}
		}
	}

	entry := &routeEntry{
		method:   method,
		pattern:  pattern,
		handlers: slices.Clone(handlers),
	}
	for _, opt := range opts {
		opt(entry)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.matchers[method]
	if !ok {
		m = t.newMatcher(method)
		t.matchers[method] = m
	}
	if err := m.Register(pattern, entry); err != nil {
		return &ConfigError{Err: err, Method: method, Pattern: pattern, Index: -1}
	}
	t.entries = append(t.entries, entry)
	return nil
}

// resolve finds the route for method and path.
func (t *routeTable) resolve(method, path string) (*routeEntry, Params, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	m, ok := t.matchers[method]
	if !ok {
		return nil, nil, ErrNotFound("Not found")
	}
	payload, params, ok := m.Match(path)
	if !ok {
		return nil, nil, ErrNotFound("Not found")
	}
	entry, ok := payload.(*routeEntry)
	if !ok {
		return nil, nil, ErrNotFound("Not found")
	}
	return entry, params, nil
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Method  string
	Pattern string
}

// routes returns a snapshot of registered routes in registration order.
func (t *routeTable) routes() []RouteInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]RouteInfo, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, RouteInfo{Method: e.method, Pattern: e.pattern})
	}
	return out
}
