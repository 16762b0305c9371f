package internal

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied by New.
const (
	DefaultMaxBodySize int64 = 512 * 1024
	DefaultOrigin            = "*"
	MIMEApplicationJSON      = "application/json"
)

// DefaultAllowHeaders are always advertised in Access-Control-Allow-Headers.
var DefaultAllowHeaders = []string{"Content-Type", "Accept", "X-Requested-With"}

// ParseFunc decodes a request body into v. v is a non-nil pointer; the
// dispatcher passes *any to obtain the generic parsed body.
type ParseFunc func(data []byte, v any) error

// Config is the server configuration. It is assembled once by New and
// never mutated afterwards. Every setter extends the defaults, none of them
// removes a default.
type Config struct {
	// Parsers maps a media type to the function that decodes it.
	Parsers map[string]ParseFunc `yaml:"-"`

	CORS      CORSConfig      `yaml:"cors"`
	Transport TransportConfig `yaml:"transport"`

	// AllowedContentTypes are media types accepted for PUT, POST and PATCH bodies.
	AllowedContentTypes []string `yaml:"allowedContentTypes"`

	// MaxBodySize is the request body limit in bytes.
	MaxBodySize int64 `yaml:"maxBodySize"`
}

// CORSConfig configures the CORS headers injected on every response.
type CORSConfig struct {
	// Credentials is a pointer so that an explicit false in a config file
	// can be told apart from an omitted field.
	Credentials *bool    `yaml:"credentials"`
	Origin      string   `yaml:"origin"`
	Headers     []string `yaml:"headers"`
	Methods     []string `yaml:"methods"`
}

// TransportConfig holds certificate material. TLS is used when both
// CertFile and KeyFile are set, or when Certificate is provided.
type TransportConfig struct {
	Certificate *tls.Certificate `yaml:"-"`
	CertFile    string           `yaml:"certFile"`
	KeyFile     string           `yaml:"keyFile"`
}

// Secure reports whether the transport carries complete certificate material.
func (t TransportConfig) Secure() bool {
	return t.Certificate != nil || (t.CertFile != "" && t.KeyFile != "")
}

// TLSConfig builds the tls.Config for a secure transport.
func (t TransportConfig) TLSConfig() (*tls.Config, error) {
	if !t.Secure() {
		return nil, nil
	}
	cert := t.Certificate
	if cert == nil {
		c, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load key pair: %w", err)
		}
		cert = &c
	}
	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{*cert},
	}, nil
}

// defaultConfig returns the configuration every App starts from.
func defaultConfig() Config {
	credentials := true
	return Config{
		MaxBodySize:         DefaultMaxBodySize,
		AllowedContentTypes: []string{MIMEApplicationJSON},
		Parsers: map[string]ParseFunc{
			MIMEApplicationJSON: json.Unmarshal,
		},
		CORS: CORSConfig{
			Origin:      DefaultOrigin,
			Credentials: &credentials,
			Headers:     slices.Clone(DefaultAllowHeaders),
		},
	}
}

// merge folds other into c. Scalars are overridden when set, lists are
// appended without duplicates.
func (c *Config) merge(other Config) {
	if other.MaxBodySize > 0 {
		c.MaxBodySize = other.MaxBodySize
	}
	if other.CORS.Origin != "" {
		c.CORS.Origin = other.CORS.Origin
	}
	if other.CORS.Credentials != nil {
		v := *other.CORS.Credentials
		c.CORS.Credentials = &v
	}
	c.CORS.Headers = appendUnique(c.CORS.Headers, other.CORS.Headers...)
	c.CORS.Methods = appendUnique(c.CORS.Methods, upper(other.CORS.Methods)...)
	for _, t := range other.AllowedContentTypes {
		if t = normalizeMediaType(t); t != "" {
			c.AllowedContentTypes = appendUnique(c.AllowedContentTypes, t)
		}
	}
	for t, fn := range other.Parsers {
		if t = normalizeMediaType(t); t != "" && fn != nil {
			c.Parsers[t] = fn
		}
	}
	if other.Transport.Secure() {
		c.Transport = other.Transport
	}
}

// credentials reports the effective Allow-Credentials value.
func (c *Config) credentials() bool {
	return c.CORS.Credentials == nil || *c.CORS.Credentials
}

// ParseConfig decodes a YAML (or JSON, which is valid YAML) configuration
// document. Unknown fields are rejected.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document decodes to the zero Config.
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MaxBodySize < 0 {
		return Config{}, fmt.Errorf("parse config: maxBodySize must not be negative")
	}
	return cfg, nil
}

// LoadConfig reads and parses a configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// normalizeMediaType strips parameters and lower-cases a content type.
// "Application/JSON; charset=utf-8" becomes "application/json".
func normalizeMediaType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		if i := strings.IndexByte(contentType, ';'); i >= 0 {
			contentType = contentType[:i]
		}
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func upper(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToUpper(v))
	}
	return out
}
