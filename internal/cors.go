package internal

import (
	"net/http"
	"strconv"
	"strings"
)

// corsPolicy holds the pre-joined CORS header values for an App.
// It is computed once in New and only read afterwards.
type corsPolicy struct {
	origin      string
	headers     string
	methods     string
	credentials string
}

// newCORSPolicy derives header values from cfg. Allowed methods are the
// supported route methods plus OPTIONS, followed by configured extras.
func newCORSPolicy(cfg *Config) corsPolicy {
	methods := appendUnique(append([]string(nil), supportedMethods...), http.MethodOptions)
	methods = appendUnique(methods, cfg.CORS.Methods...)

	return corsPolicy{
		origin:      cfg.CORS.Origin,
		headers:     strings.Join(cfg.CORS.Headers, ","),
		methods:     strings.Join(methods, ","),
		credentials: strconv.FormatBool(cfg.credentials()),
	}
}

// apply writes the CORS headers.
func (p corsPolicy) apply(h http.Header) {
	h.Set("Access-Control-Allow-Origin", p.origin)
	h.Set("Access-Control-Allow-Headers", p.headers)
	h.Set("Access-Control-Allow-Credentials", p.credentials)
	h.Set("Access-Control-Allow-Methods", p.methods)
}

// preflight applies the headers and, for OPTIONS requests, terminates the
// response with 204 No Content. It reports whether the request was handled.
func (p corsPolicy) preflight(w *ResponseWriter, r *http.Request) bool {
	p.apply(w.Header())
	if r.Method != http.MethodOptions {
		return false
	}
	_ = w.Finalize(http.StatusNoContent, nil)
	return true
}
