package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrResponseFinalized is returned by reply helpers when the response
// has already been committed. Returning it from a handler routes it to the
// error handler, which leaves the committed response untouched.
var ErrResponseFinalized = errors.New("five: response already finalized")

// ErrInvalidStatus is returned by reply helpers given a code that cannot
// end a response: anything outside 200..999. Nothing is written.
var ErrInvalidStatus = errors.New("five: invalid status code")

// Sentinel causes wrapped by ConfigError.
var (
	ErrUnsupportedMethod = errors.New("unsupported method")
	ErrNoHandlers        = errors.New("no handlers")
	ErrNilHandler        = errors.New("handler is nil")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrDuplicateRoute    = errors.New("route already registered")
)

// ConfigError reports a route registration mistake. It is raised at
// registration time only and never reaches the network.
type ConfigError struct {
	Err     error
	Method  string
	Pattern string
	Index   int // offending handler position, -1 when not handler related
}

func (e *ConfigError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("five: %s %s: handler #%d: %v", e.Method, e.Pattern, e.Index, e.Err)
	}
	return fmt.Sprintf("five: %s %s: %v", e.Method, e.Pattern, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// HTTPError represents a request failure that maps onto a status code and
// the JSON error envelope {"message": "..."}.
type HTTPError struct {
	// Err is the cause. It is logged, never sent.
	Err error

	// Message goes into the {"message": ...} envelope.
	Message string

	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption customizes an HTTPError at construction.
type HTTPErrorOption func(*HTTPError)

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// NewHTTPError builds an HTTPError. An empty message becomes the
// standard reason phrase of code.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convenience constructors for the built-in failure kinds.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrPayloadTooLarge(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusRequestEntityTooLarge, message, opts...)
}

func ErrUnsupportedMediaType(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnsupportedMediaType, message, opts...)
}

// ErrMalformedPayload reports a body that the parser for contentType rejected.
func ErrMalformedPayload(contentType string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, "Payload is not valid "+contentType, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// IsHTTPError reports whether err wraps an HTTPError.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// AsHTTPError unwraps err to its *HTTPError, or nil.
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return nil
}

// PanicError represents a panic recovered while running a handler.
type PanicError struct {
	Value any
	Stack []byte // captured at the recovery site
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// IsPanicError reports whether err wraps a recovered panic.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// finalStatus reports whether code can terminate a response. 1xx codes
// are informational and net/http follows them with an implicit 200.
func finalStatus(code int) bool {
	return code >= 200 && code <= 999
}

// validStatus reports whether code is final and has a standard reason phrase.
func validStatus(code int) bool {
	return finalStatus(code) && http.StatusText(code) != ""
}
