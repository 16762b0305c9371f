package internal

import (
	"crypto/tls"
	"log/slog"

	"github.com/dmitrymomot/five/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithConfig merges a configuration document into the defaults.
// Lists are appended and scalars override, so defaults are never removed.
//
// Example:
//
//	cfg, err := five.LoadConfig("five.yaml")
//	if err != nil {
//	    return err
//	}
//	app := five.New(five.WithConfig(cfg))
func WithConfig(cfg Config) Option {
	return func(a *App) {
		a.cfg.merge(cfg)
	}
}

// WithMaxBodySize sets the request body limit in bytes.
// Negative values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(a *App) {
		if n >= 0 {
			a.cfg.MaxBodySize = n
		}
	}
}

// WithCORSOrigin sets Access-Control-Allow-Origin. Defaults to "*".
func WithCORSOrigin(origin string) Option {
	return func(a *App) {
		if origin != "" {
			a.cfg.CORS.Origin = origin
		}
	}
}

// WithCORSCredentials sets Access-Control-Allow-Credentials. Defaults to true.
func WithCORSCredentials(allow bool) Option {
	return func(a *App) {
		a.cfg.CORS.Credentials = &allow
	}
}

// WithCORSHeaders appends to Access-Control-Allow-Headers.
func WithCORSHeaders(headers ...string) Option {
	return func(a *App) {
		a.cfg.CORS.Headers = appendUnique(a.cfg.CORS.Headers, headers...)
	}
}

// WithCORSMethods appends to Access-Control-Allow-Methods.
func WithCORSMethods(methods ...string) Option {
	return func(a *App) {
		a.cfg.CORS.Methods = appendUnique(a.cfg.CORS.Methods, upper(methods)...)
	}
}

// WithAllowedContentTypes appends media types accepted for request bodies.
// "application/json" stays allowed.
func WithAllowedContentTypes(types ...string) Option {
	return func(a *App) {
		a.cfg.merge(Config{AllowedContentTypes: types})
	}
}

// WithParser registers a body parser for a media type and allows that type.
//
// Example:
//
//	five.New(
//	    five.WithParser("application/yaml", codec.YAML),
//	)
func WithParser(mediaType string, fn ParseFunc) Option {
	return func(a *App) {
		a.cfg.merge(Config{
			AllowedContentTypes: []string{mediaType},
			Parsers:             map[string]ParseFunc{mediaType: fn},
		})
	}
}

// WithTLS serves over TLS with an in-memory certificate.
func WithTLS(cert tls.Certificate) Option {
	return func(a *App) {
		a.cfg.Transport = TransportConfig{Certificate: &cert}
	}
}

// WithTLSFiles serves over TLS with a PEM certificate and key loaded at Run.
func WithTLSFiles(certFile, keyFile string) Option {
	return func(a *App) {
		a.cfg.Transport = TransportConfig{CertFile: certFile, KeyFile: keyFile}
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error or panics and the response
// is still unwritten. If it leaves the response unwritten, a 500 is sent.
//
// Example:
//
//	five.WithErrorHandler(func(c five.Context, err error) error {
//	    if errors.Is(err, sql.ErrNoRows) {
//	        return c.SendError(http.StatusNotFound)
//	    }
//	    return c.SendError(err)
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		if h != nil {
			a.errorHandler = h
		}
	}
}

// WithMatcher replaces the path matcher implementation.
// The factory is called once per HTTP method on first registration.
func WithMatcher(factory MatcherFactory) Option {
	return func(a *App) {
		if factory != nil {
			a.matcherFactory = factory
		}
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	five.WithHealthChecks(
//	    five.WithReadinessCheck("db", pingDB),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(map[string]CheckFunc),
			timeout:       defaultHealthTimeout,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id).
//
// Example:
//
//	five.New(
//	    five.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
