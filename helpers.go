package five

import "github.com/dmitrymomot/five/internal"

// ContextValue returns the value stored under key with Context.Set.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a typed path parameter.
//
// Example:
//
//	id := five.Param[int64](c, "id")
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a typed query parameter.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a typed query parameter or defaultValue.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}

// Bind decodes the request body into a new T.
func Bind[T any](c Context) (T, error) {
	return internal.Bind[T](c)
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return internal.FromHeader(name)
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return internal.FromQuery(name)
}

// FromParam reads a path parameter.
func FromParam(name string) ExtractorSource {
	return internal.FromParam(name)
}

// FromBody reads a top-level field of a parsed object body.
func FromBody(field string) ExtractorSource {
	return internal.FromBody(field)
}

// FromBearerToken reads a Bearer token from the Authorization header.
func FromBearerToken() ExtractorSource {
	return internal.FromBearerToken()
}

// FromCookie reads a request cookie.
func FromCookie(name string) ExtractorSource {
	return internal.FromCookie(name)
}
