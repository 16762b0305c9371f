package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"gopkg.in/yaml.v3"
)

// Media types handled by this package.
const (
	MIMEApplicationJSON = "application/json"
	MIMEApplicationYAML = "application/yaml"
	MIMEApplicationForm = "application/x-www-form-urlencoded"
	MIMETextPlain       = "text/plain"
)

// ErrUnsupportedTarget is returned when a parser cannot decode into the given value.
var ErrUnsupportedTarget = errors.New("codec: unsupported target")

// ParseFunc decodes data into v. It matches five.ParseFunc.
type ParseFunc = func(data []byte, v any) error

// JSON decodes a JSON document. Numbers decode as float64 into *any.
func JSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// YAML decodes a YAML document. Mappings decode as map[string]any into *any.
func YAML(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return nil
}

// Form decodes an URL-encoded form. Into *any or *map[string]any a key with
// a single value becomes a string and a repeated key a []string. *url.Values
// and *map[string]string are filled directly, the latter keeping the first value.
func Form(data []byte, v any) error {
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}

	switch dst := v.(type) {
	case *url.Values:
		*dst = values
	case *map[string]string:
		m := make(map[string]string, len(values))
		for k := range values {
			m[k] = values.Get(k)
		}
		*dst = m
	case *map[string]any:
		*dst = formMap(values)
	case *any:
		*dst = formMap(values)
	default:
		return fmt.Errorf("%w: form into %T", ErrUnsupportedTarget, v)
	}
	return nil
}

// Text passes the body through as a string.
func Text(data []byte, v any) error {
	switch dst := v.(type) {
	case *string:
		*dst = string(data)
	case *[]byte:
		*dst = append([]byte(nil), data...)
	case *any:
		*dst = string(data)
	default:
		return fmt.Errorf("%w: text into %T", ErrUnsupportedTarget, v)
	}
	return nil
}

// Parsers returns every parser in this package keyed by media type.
// Register them one by one with five.WithParser.
func Parsers() map[string]ParseFunc {
	return map[string]ParseFunc{
		MIMEApplicationJSON: JSON,
		MIMEApplicationYAML: YAML,
		MIMEApplicationForm: Form,
		MIMETextPlain:       Text,
	}
}

func formMap(values url.Values) map[string]any {
	m := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) == 1 {
			m[k] = vs[0]
			continue
		}
		m[k] = vs
	}
	return m
}
