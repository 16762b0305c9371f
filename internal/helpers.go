package internal

import "strconv"

// ContextValue returns the value stored under key with Set, or the zero
// value of T when it is missing or of another type.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param returns a typed path parameter. Unparseable values yield the zero value.
func Param[T scalar](c Context, name string) T {
	v, _ := convertParam[T](c.Param(name))
	return v
}

// Query returns a typed query parameter. Unparseable values yield the zero value.
func Query[T scalar](c Context, name string) T {
	v, _ := convertParam[T](c.Query(name))
	return v
}

// QueryDefault is Query with a fallback for missing or malformed values.
func QueryDefault[T scalar](c Context, name string, defaultValue T) T {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// Bind decodes the request body into a new T.
//
// Example:
//
//	in, err := five.Bind[createUser](c)
//	if err != nil {
//	    return err // 400 or 415 via the error handler
//	}
func Bind[T any](c Context) (T, error) {
	var v T
	err := c.Bind(&v)
	return v, err
}

// scalar lists the kinds a path or query value can be converted to.
type scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// convertParam parses raw into T, reporting false when raw does not parse.
func convertParam[T scalar](raw string) (T, bool) {
	var out T
	var (
		v   any
		err error
	)
	switch any(out).(type) {
	case string:
		v = raw
	case int:
		v, err = strconv.Atoi(raw)
	case int64:
		v, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		v, err = strconv.ParseFloat(raw, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	default:
		return out, false
	}
	if err != nil {
		return out, false
	}
	out, _ = v.(T)
	return out, true
}
