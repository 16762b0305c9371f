package internal

import (
	"net/http"
	"slices"
	"strings"
)

// Registrar is the interface used to declare routes.
// *App implements it; Namespace and With derive scoped registrars.
type Registrar interface {
	// GET registers handlers for GET requests.
	// Panics with a *ConfigError on invalid registration.
	GET(pattern string, handlers ...HandlerFunc)

	// PUT registers handlers for PUT requests.
	PUT(pattern string, handlers ...HandlerFunc)

	// POST registers handlers for POST requests.
	POST(pattern string, handlers ...HandlerFunc)

	// DELETE registers handlers for DELETE requests.
	DELETE(pattern string, handlers ...HandlerFunc)

	// PATCH registers handlers for PATCH requests.
	PATCH(pattern string, handlers ...HandlerFunc)

	// AddRoute registers handlers for any supported method.
	// Returns a *ConfigError instead of panicking.
	AddRoute(method, pattern string, handlers []HandlerFunc, opts ...RouteOption) error

	// Namespace returns a Registrar whose patterns are joined onto prefix.
	Namespace(prefix string) Registrar

	// With returns a Registrar whose routes carry the given overrides.
	With(opts ...RouteOption) Registrar
}

// registrar registers into a route table with a fixed prefix and overrides.
type registrar struct {
	table  *routeTable
	prefix string
	opts   []RouteOption
}

func (r *registrar) GET(pattern string, handlers ...HandlerFunc) {
	r.mustAdd(http.MethodGet, pattern, handlers)
}

func (r *registrar) PUT(pattern string, handlers ...HandlerFunc) {
	r.mustAdd(http.MethodPut, pattern, handlers)
}

func (r *registrar) POST(pattern string, handlers ...HandlerFunc) {
	r.mustAdd(http.MethodPost, pattern, handlers)
}

func (r *registrar) DELETE(pattern string, handlers ...HandlerFunc) {
	r.mustAdd(http.MethodDelete, pattern, handlers)
}

func (r *registrar) PATCH(pattern string, handlers ...HandlerFunc) {
	r.mustAdd(http.MethodPatch, pattern, handlers)
}

func (r *registrar) AddRoute(method, pattern string, handlers []HandlerFunc, opts ...RouteOption) error {
	all := append(slices.Clone(r.opts), opts...)
	return r.table.register(method, joinPattern(r.prefix, pattern), handlers, all...)
}

func (r *registrar) Namespace(prefix string) Registrar {
	return &registrar{
		table:  r.table,
		prefix: joinPattern(r.prefix, prefix),
		opts:   slices.Clone(r.opts),
	}
}

func (r *registrar) With(opts ...RouteOption) Registrar {
	return &registrar{
		table:  r.table,
		prefix: r.prefix,
		opts:   append(slices.Clone(r.opts), opts...),
	}
}

func (r *registrar) mustAdd(method, pattern string, handlers []HandlerFunc) {
	if err := r.AddRoute(method, pattern, handlers); err != nil {
		panic(err)
	}
}

// joinPattern joins a namespace prefix and a pattern with exactly one
// slash between them. "ns" and "/foo" give "/ns/foo". An empty prefix
// leaves the pattern untouched.
func joinPattern(prefix, pattern string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return pattern
	}
	prefix = "/" + prefix
	switch {
	case pattern == "" || pattern == "/":
		return prefix
	case strings.HasPrefix(pattern, "/"):
		return prefix + pattern
	default:
		return prefix + "/" + pattern
	}
}
