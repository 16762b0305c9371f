package five

import "github.com/dmitrymomot/five/internal"

// NewHTTPError creates an HTTPError. An empty message defaults to the
// standard status text.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches the underlying cause to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// ErrBadRequest creates a 400 HTTPError.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrNotFound creates a 404 HTTPError.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrPayloadTooLarge creates a 413 HTTPError.
func ErrPayloadTooLarge(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrPayloadTooLarge(message, opts...)
}

// ErrUnsupportedMediaType creates a 415 HTTPError.
func ErrUnsupportedMediaType(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnsupportedMediaType(message, opts...)
}

// ErrMalformedPayload creates the 400 HTTPError for a body its parser rejected.
func ErrMalformedPayload(contentType string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrMalformedPayload(contentType, opts...)
}

// ErrInternal creates a 500 HTTPError.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// IsHTTPError reports whether err wraps an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts the HTTPError from err, or returns nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// IsPanicError reports whether err wraps a recovered panic.
func IsPanicError(err error) bool {
	return internal.IsPanicError(err)
}
