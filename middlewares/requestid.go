package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/five/internal"
	"github.com/dmitrymomot/five/pkg/logger"
)

// maxRequestIDLength caps IDs accepted from clients.
const maxRequestIDLength = 128

type requestIDKey struct{}

// DefaultRequestIDHeaders are checked, in order, for an incoming ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// RequestIDConfig configures the RequestID stage.
type RequestIDConfig struct {
	Generator      func() string              // defaults to uuid.NewString
	ResponseHeader string                     // defaults to X-Request-ID
	Sources        []internal.ExtractorSource // incoming ID lookup, first hit wins
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders replaces the headers searched for an incoming ID.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		sources := make([]internal.ExtractorSource, 0, len(headers))
		for _, h := range headers {
			sources = append(sources, internal.FromHeader(h))
		}
		cfg.Sources = sources
	}
}

// WithRequestIDSources replaces the incoming ID lookup with arbitrary
// sources, e.g. a query parameter for websocket upgrades.
func WithRequestIDSources(sources ...internal.ExtractorSource) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Sources = sources
	}
}

// WithRequestIDGenerator sets the function that mints new IDs.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// WithRequestIDResponseHeader sets the header the ID is echoed in.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if header != "" {
			cfg.ResponseHeader = header
		}
	}
}

// RequestID returns a stage that tags every request with an ID. An
// upstream ID is kept when it is short and printable, otherwise a new one
// is generated. The ID is stored on the request context and echoed in the
// response header.
func RequestID(opts ...RequestIDOption) internal.HandlerFunc {
	cfg := &RequestIDConfig{
		Generator:      uuid.NewString,
		ResponseHeader: "X-Request-ID",
	}
	WithRequestIDHeaders(DefaultRequestIDHeaders...)(cfg)
	for _, opt := range opts {
		opt(cfg)
	}
	incoming := internal.NewExtractor(cfg.Sources...)

	return func(c internal.Context) error {
		id, ok := incoming.Extract(c)
		if !ok || !acceptableID(id) {
			id = cfg.Generator()
		}
		c.Set(requestIDKey{}, id)
		c.SetHeader(cfg.ResponseHeader, id)
		return nil
	}
}

func acceptableID(id string) bool {
	if len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the ID assigned by RequestID, or "".
func GetRequestID(c internal.Context) string {
	id, _ := c.Get(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds request_id to log records written with a
// request context. Pass it to five.WithLogger or logger.NewContextHandler.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, _ := ctx.Value(requestIDKey{}).(string)
		if id == "" {
			return slog.Attr{}, false
		}
		return slog.String("request_id", id), true
	}
}
