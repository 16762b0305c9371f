package internal

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/five/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App is an HTTP API server: a route table, a middleware stage list and
// the request dispatcher. Its Config is immutable after New; routes and
// middleware may be added at any time, including while serving.
type App struct {
	cfg            Config
	cors           corsPolicy
	body           bodyIngester
	table          *routeTable
	errorHandler   ErrorHandler
	healthConfig   *healthConfig
	logger         *slog.Logger
	matcherFactory MatcherFactory

	// middlewares is replaced wholesale on Use; dispatch reads a snapshot.
	middlewares atomic.Pointer[[]HandlerFunc]
	mu          sync.Mutex
}

// New creates a new application with the given options.
// The configuration is frozen once New returns.
//
// Example:
//
//	app := five.New(
//	    five.WithMaxBodySize(1<<20),
//	    five.WithCORSOrigin("https://example.com"),
//	)
//	app.GET("/hello", func(c five.Context) error {
//	    return c.Send(map[string]string{"hello": "world"})
//	})
func New(opts ...Option) *App {
	a := &App{
		cfg:            defaultConfig(),
		errorHandler:   defaultErrorHandler,
		logger:         logger.NewNope(), // Default: noop logger (before options)
		matcherFactory: NewChiMatcher,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.cors = newCORSPolicy(&a.cfg)
	a.body = bodyIngester{cfg: &a.cfg}
	a.table = newRouteTable(a.matcherFactory)
	a.middlewares.Store(&[]HandlerFunc{})

	if a.healthConfig != nil {
		a.registerHealthRoutes()
	}
	return a
}

// Config returns a copy of the effective configuration.
func (a *App) Config() Config {
	cfg := a.cfg
	cfg.AllowedContentTypes = slices.Clone(a.cfg.AllowedContentTypes)
	cfg.CORS.Headers = slices.Clone(a.cfg.CORS.Headers)
	cfg.CORS.Methods = slices.Clone(a.cfg.CORS.Methods)
	cfg.Parsers = make(map[string]ParseFunc, len(a.cfg.Parsers))
	for k, v := range a.cfg.Parsers {
		cfg.Parsers[k] = v
	}
	if a.cfg.CORS.Credentials != nil {
		v := *a.cfg.CORS.Credentials
		cfg.CORS.Credentials = &v
	}
	return cfg
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Use appends middleware stages. They run before the route handlers of
// every request dispatched after the call, in registration order.
// Requests already in flight keep the stage list they started with.
// Use panics with a *ConfigError if a stage is nil.
func (a *App) Use(stages ...HandlerFunc) {
	for i, s := range stages {
		if s == nil {
			panic(&ConfigError{Err: ErrNilHandler, Method: "USE", Pattern: "*", Index: i})
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	next := append(slices.Clone(*a.middlewares.Load()), stages...)
	a.middlewares.Store(&next)
}

// Routes lists the registered routes in registration order.
func (a *App) Routes() []RouteInfo {
	return a.table.routes()
}

// Run starts the HTTP server and blocks until shutdown.
// TLS is used when the configuration carries certificate material.
//
// Example:
//
//	app := five.New(five.WithTLSFiles("cert.pem", "key.pem"))
//	err := app.Run(":8443", five.Logger(slog.Default()))
func (a *App) Run(addr string, opts ...RunOption) error {
	r := newRunner(opts...)
	if addr != "" {
		r.address = addr
	}

	tlsConfig, err := a.cfg.Transport.TLSConfig()
	if err != nil {
		return err
	}
	r.tlsConfig = tlsConfig

	return r.run(a)
}

// root returns the registrar for un-prefixed routes without overrides.
func (a *App) root() *registrar {
	return &registrar{table: a.table}
}

// AddRoute registers handlers for method and pattern. It returns a
// *ConfigError for an unsupported method, an empty or nil handler list,
// or a pattern the matcher rejects.
func (a *App) AddRoute(method, pattern string, handlers []HandlerFunc, opts ...RouteOption) error {
	return a.root().AddRoute(method, pattern, handlers, opts...)
}

// GET registers handlers for GET requests. It panics with a *ConfigError
// on invalid registration.
func (a *App) GET(pattern string, handlers ...HandlerFunc) {
	a.root().GET(pattern, handlers...)
}

// PUT registers handlers for PUT requests.
func (a *App) PUT(pattern string, handlers ...HandlerFunc) {
	a.root().PUT(pattern, handlers...)
}

// POST registers handlers for POST requests.
func (a *App) POST(pattern string, handlers ...HandlerFunc) {
	a.root().POST(pattern, handlers...)
}

// DELETE registers handlers for DELETE requests.
func (a *App) DELETE(pattern string, handlers ...HandlerFunc) {
	a.root().DELETE(pattern, handlers...)
}

// PATCH registers handlers for PATCH requests.
func (a *App) PATCH(pattern string, handlers ...HandlerFunc) {
	a.root().PATCH(pattern, handlers...)
}

// Namespace returns a Registrar whose patterns are prefixed with prefix.
func (a *App) Namespace(prefix string) Registrar {
	return a.root().Namespace(prefix)
}

// With returns a Registrar whose routes carry the given overrides.
func (a *App) With(opts ...RouteOption) Registrar {
	return a.root().With(opts...)
}

// defaultErrorHandler replies with the HTTPError code and message, or a
// bare 500 for any other error.
func defaultErrorHandler(c Context, err error) error {
	if he := AsHTTPError(err); he != nil {
		return c.SendError(he.Code, he.Message)
	}
	return c.SendError(http.StatusInternalServerError)
}
