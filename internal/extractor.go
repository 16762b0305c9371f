package internal

import (
	"fmt"
	"slices"
	"strings"
)

// ExtractorSource reads one candidate value from the request.
// It reports false when the value is absent.
type ExtractorSource = func(Context) (string, bool)

// Extractor looks a value up in several places, in priority order.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor builds an Extractor over sources. Nil sources are skipped.
//
// Example:
//
//	tenant := five.NewExtractor(
//	    five.FromHeader("X-Tenant"),
//	    five.FromQuery("tenant"),
//	    five.FromBody("tenant"),
//	)
//	id, ok := tenant.Extract(c)
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{
		sources: slices.DeleteFunc(slices.Clone(sources), func(s ExtractorSource) bool { return s == nil }),
	}
}

// Extract returns the first non-empty value any source yields.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func present(v string) (string, bool) {
	return v, v != ""
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) { return present(c.Header(name)) }
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) { return present(c.Query(name)) }
}

// FromParam reads a path parameter of the matched route.
func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) { return present(c.Param(name)) }
}

// FromCookie reads a request cookie.
func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		ck, err := c.Request().Cookie(name)
		if err != nil {
			return "", false
		}
		return present(ck.Value)
	}
}

// FromBody reads a top-level field of an object body. Non-string scalars
// are formatted with fmt.Sprint; null counts as absent.
func FromBody(field string) ExtractorSource {
	return func(c Context) (string, bool) {
		obj, ok := c.Body().(map[string]any)
		if !ok {
			return "", false
		}
		switch v := obj[field].(type) {
		case nil:
			return "", false
		case string:
			return present(v)
		default:
			return present(fmt.Sprint(v))
		}
	}
}

// FromBearerToken reads the token of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func FromBearerToken() ExtractorSource {
	return func(c Context) (string, bool) {
		scheme, token, ok := strings.Cut(c.Header("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "bearer") {
			return "", false
		}
		return present(strings.TrimSpace(token))
	}
}
