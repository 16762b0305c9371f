package five

import (
	"crypto/tls"
	"log/slog"
	"time"

	"github.com/dmitrymomot/five/internal"
	"github.com/dmitrymomot/five/pkg/logger"
)

// Type aliases - public API
type (
	// App is an HTTP API server: routes, middleware stages and dispatcher.
	App = internal.App

	// Registrar declares routes. *App implements it.
	Registrar = internal.Registrar

	// Context provides request/response access and reply helpers.
	Context = internal.Context

	// HandlerFunc is the signature for route handlers and middleware stages.
	HandlerFunc = internal.HandlerFunc

	// DeferredFunc starts asynchronous work; see Await.
	DeferredFunc = internal.DeferredFunc

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RouteOption overrides server settings for a single route.
	RouteOption = internal.RouteOption

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// CheckFunc is a readiness check.
	CheckFunc = internal.CheckFunc

	// Config is the server configuration.
	Config = internal.Config

	// CORSConfig configures the CORS headers.
	CORSConfig = internal.CORSConfig

	// TransportConfig holds TLS certificate material.
	TransportConfig = internal.TransportConfig

	// ParseFunc decodes a request body.
	ParseFunc = internal.ParseFunc

	// PathMatcher matches request paths against registered patterns.
	PathMatcher = internal.PathMatcher

	// MatcherFactory builds a PathMatcher per HTTP method.
	MatcherFactory = internal.MatcherFactory

	// Params holds path parameters.
	Params = internal.Params

	// RouteInfo describes a registered route.
	RouteInfo = internal.RouteInfo

	// ResponseWriter is the finalize-once response writer.
	ResponseWriter = internal.ResponseWriter

	// HTTPError maps a failure onto a status code and message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ConfigError reports an invalid route registration.
	ConfigError = internal.ConfigError

	// PanicError wraps a recovered handler panic.
	PanicError = internal.PanicError

	// Extractor reads a value from the first matching source.
	Extractor = internal.Extractor

	// ExtractorSource reads a value from the request.
	ExtractorSource = internal.ExtractorSource

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Errors
var (
	ErrResponseFinalized = internal.ErrResponseFinalized
	ErrInvalidStatus     = internal.ErrInvalidStatus
	ErrUnsupportedMethod = internal.ErrUnsupportedMethod
	ErrNoHandlers        = internal.ErrNoHandlers
	ErrNilHandler        = internal.ErrNilHandler
	ErrInvalidPattern    = internal.ErrInvalidPattern
	ErrDuplicateRoute    = internal.ErrDuplicateRoute
)

// Defaults
const (
	DefaultMaxBodySize  = internal.DefaultMaxBodySize
	DefaultOrigin       = internal.DefaultOrigin
	MIMEApplicationJSON = internal.MIMEApplicationJSON
)

// Constructors

// New creates a new application with the given options.
// The configuration is frozen once New returns.
//
// Example:
//
//	app := five.New(five.WithMaxBodySize(1 << 20))
//	app.GET("/hello", func(c five.Context) error {
//	    return c.Send(map[string]any{"hello": []string{"world"}})
//	})
//	err := app.Run(":8080", five.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewChiMatcher returns the default chi-backed PathMatcher.
func NewChiMatcher(method string) PathMatcher {
	return internal.NewChiMatcher(method)
}

// Await suspends the chain until the deferred work yields a result or the
// request is cancelled.
func Await(fn DeferredFunc) HandlerFunc {
	return internal.Await(fn)
}

// ParseConfig decodes a YAML configuration document.
func ParseConfig(data []byte) (Config, error) {
	return internal.ParseConfig(data)
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	return internal.LoadConfig(path)
}

// App options

// WithConfig merges a configuration document into the defaults.
func WithConfig(cfg Config) Option {
	return internal.WithConfig(cfg)
}

// WithMaxBodySize sets the request body limit in bytes.
func WithMaxBodySize(n int64) Option {
	return internal.WithMaxBodySize(n)
}

// WithCORSOrigin sets Access-Control-Allow-Origin.
func WithCORSOrigin(origin string) Option {
	return internal.WithCORSOrigin(origin)
}

// WithCORSCredentials sets Access-Control-Allow-Credentials.
func WithCORSCredentials(allow bool) Option {
	return internal.WithCORSCredentials(allow)
}

// WithCORSHeaders appends to Access-Control-Allow-Headers.
func WithCORSHeaders(headers ...string) Option {
	return internal.WithCORSHeaders(headers...)
}

// WithCORSMethods appends to Access-Control-Allow-Methods.
func WithCORSMethods(methods ...string) Option {
	return internal.WithCORSMethods(methods...)
}

// WithAllowedContentTypes appends accepted request media types.
func WithAllowedContentTypes(types ...string) Option {
	return internal.WithAllowedContentTypes(types...)
}

// WithParser registers a body parser for a media type and allows that type.
//
// Example:
//
//	five.New(five.WithParser("application/yaml", codec.YAML))
func WithParser(mediaType string, fn ParseFunc) Option {
	return internal.WithParser(mediaType, fn)
}

// WithTLS serves over TLS with an in-memory certificate.
func WithTLS(cert tls.Certificate) Option {
	return internal.WithTLS(cert)
}

// WithTLSFiles serves over TLS with a PEM certificate and key.
func WithTLSFiles(certFile, keyFile string) Option {
	return internal.WithTLSFiles(certFile, keyFile)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithMatcher replaces the path matcher implementation.
func WithMatcher(factory MatcherFactory) Option {
	return internal.WithMatcher(factory)
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional extractors.
//
// Example:
//
//	five.New(
//	    five.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Route options

// MaxBodySize overrides the server body limit for a route.
// Zero rejects any non-empty body.
//
// Example:
//
//	app.With(five.MaxBodySize(0)).POST("/ping", ping)
func MaxBodySize(n int64) RouteOption {
	return internal.MaxBodySize(n)
}

// AllowedContentTypes replaces the accepted request media types for a route.
func AllowedContentTypes(types ...string) RouteOption {
	return internal.AllowedContentTypes(types...)
}

// Health options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessTimeout bounds the whole readiness probe.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return internal.WithReadinessTimeout(d)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}
