package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Context is the per-request handle passed to every chain element. It
// carries the matched params, the ingested body and the reply helpers, and
// is itself a context.Context bound to the request.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter

	// ResponseWriter exposes the finalize-once writer, e.g. to register
	// OnBeforeWrite hooks.
	ResponseWriter() *ResponseWriter

	// Context is the request context, including values added with Set.
	Context() context.Context

	// Param is the named path parameter of the matched route, or "".
	Param(name string) string

	// Params is a copy of all path parameters.
	Params() Params

	// Query is the first value of a query parameter, or "".
	Query(name string) string
	QueryDefault(name, defaultValue string) string
	QueryValues() url.Values

	// Body is the parsed request body: the decoded value for media types
	// with a parser, the raw bytes otherwise, nil without a body.
	Body() any

	// RawBody is the body as read from the wire.
	RawBody() []byte

	// Bind decodes the raw body into v with the parser registered for the
	// request media type.
	Bind(v any) error

	// Header reads a request header.
	Header(name string) string

	// SetHeader sets a response header. It has no effect once the
	// response is committed.
	SetHeader(name, value string)

	// Status sets the code sent if the chain ends without a reply. A code
	// outside 200..999 is refused, and a chain that ends without a reply
	// then goes to the error handler with ErrInvalidStatus.
	Status(code int)

	// Send finalizes the response with a status and body.
	//
	//	c.Send()                 // 200, empty body
	//	c.Send(body)             // 200
	//	c.Send(http.StatusCreated)
	//	c.Send(http.StatusCreated, body)
	//
	// Strings and byte slices are written as-is, other values are JSON encoded.
	Send(args ...any) error

	// SendError finalizes the response with the {"message": "..."} envelope.
	//
	//	c.SendError()                    // 500 Internal Server Error
	//	c.SendError(http.StatusForbidden)
	//	c.SendError("boom")              // 500 boom
	//	c.SendError(http.StatusConflict, "taken")
	//	c.SendError(err)                 // code and message from *HTTPError, else 500
	SendError(args ...any) error

	// JSON, String and NoContent are typed shorthands over the same
	// one-shot finalization as Send.
	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error

	// Error builds an HTTPError to return from the handler; nothing is written.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether the response is committed.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set attaches a value to the request context for later chain elements
	// and for log extractors.
	Set(key, value any)

	// Get reads a value attached with Set, or nil.
	Get(key any) any
}

type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
	parsers  map[string]ParseFunc

	params  Params
	query   url.Values
	body    any
	rawBody []byte

	// statusErr holds a refused Status code until the chain ends.
	statusErr error
}

// newContext creates the per-request context with the response wrapper.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	return &requestContext{
		request:  r,
		response: NewResponseWriter(w),
		logger:   app.logger,
		parsers:  app.cfg.Parsers,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return c.params[name]
}

func (c *requestContext) Params() Params {
	out := make(Params, len(c.params))
	for k, v := range c.params {
		out[k] = v
	}
	return out
}

func (c *requestContext) Query(name string) string {
	return c.QueryValues().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	v := c.QueryValues().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *requestContext) QueryValues() url.Values {
	if c.query == nil {
		c.query = c.request.URL.Query()
	}
	return c.query
}

func (c *requestContext) Body() any {
	return c.body
}

func (c *requestContext) RawBody() []byte {
	return c.rawBody
}

func (c *requestContext) Bind(v any) error {
	if len(c.rawBody) == 0 {
		return ErrBadRequest("Request body is empty")
	}
	mediaType := normalizeMediaType(c.request.Header.Get("Content-Type"))
	parse, ok := c.parsers[mediaType]
	if !ok {
		return ErrUnsupportedMediaType("No parser registered for " + mediaType)
	}
	if err := parse(c.rawBody, v); err != nil {
		return ErrMalformedPayload(mediaType, WithError(err))
	}
	return nil
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) Status(code int) {
	if err := c.response.SetStatus(code); err != nil {
		c.statusErr = err
	}
}

func (c *requestContext) Send(args ...any) error {
	code, body, err := sendArgs(args)
	if err != nil {
		return err
	}
	payload, err := encodeBody(body)
	if err != nil {
		return fmt.Errorf("encode response body: %w", err)
	}
	if c.response.Written() {
		return ErrResponseFinalized
	}
	c.response.Header().Set("Content-Type", MIMEApplicationJSON)
	return c.response.Finalize(code, payload)
}

func (c *requestContext) SendError(args ...any) error {
	code, message, err := sendErrorArgs(args)
	if err != nil {
		return err
	}
	return c.writeError(code, message)
}

// writeError finalizes the response with the JSON error envelope.
func (c *requestContext) writeError(code int, message string) error {
	if c.response.Written() {
		return ErrResponseFinalized
	}
	payload, err := json.Marshal(errorEnvelope{Message: message})
	if err != nil {
		return fmt.Errorf("encode error envelope: %w", err)
	}
	c.response.Header().Set("Content-Type", MIMEApplicationJSON)
	return c.response.Finalize(code, payload)
}

func (c *requestContext) JSON(code int, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode response body: %w", err)
	}
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	return c.response.Finalize(code, payload)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	return c.response.Finalize(code, []byte(s))
}

func (c *requestContext) NoContent(code int) error {
	return c.response.Finalize(code, nil)
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.log(slog.LevelDebug, msg, attrs)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.log(slog.LevelInfo, msg, attrs)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.log(slog.LevelWarn, msg, attrs)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.log(slog.LevelError, msg, attrs)
}

// log uses the current request context so extractors see values from Set.
func (c *requestContext) log(level slog.Level, msg string, attrs []any) {
	c.logger.Log(c.request.Context(), level, msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

// errorEnvelope is the wire shape of every error response.
type errorEnvelope struct {
	Message string `json:"message"`
}

var errSendArgs = errors.New("five: invalid reply arguments")

// sendArgs interprets the variadic arguments of Send.
func sendArgs(args []any) (int, any, error) {
	switch len(args) {
	case 0:
		return http.StatusOK, nil, nil
	case 1:
		if code, ok := args[0].(int); ok {
			return code, nil, checkCode(code)
		}
		return http.StatusOK, args[0], nil
	case 2:
		code, ok := args[0].(int)
		if !ok {
			return 0, nil, fmt.Errorf("%w: first of two arguments must be a status code", errSendArgs)
		}
		return code, args[1], checkCode(code)
	}
	return 0, nil, fmt.Errorf("%w: got %d arguments", errSendArgs, len(args))
}

// sendErrorArgs interprets the variadic arguments of SendError. Codes
// without a standard reason phrase fall back to 500.
func sendErrorArgs(args []any) (int, string, error) {
	code, message := http.StatusInternalServerError, ""
	switch len(args) {
	case 0:
	case 1:
		switch v := args[0].(type) {
		case int:
			code = v
		case string:
			message = v
		case error:
			if he := AsHTTPError(v); he != nil {
				code, message = he.Code, he.Message
			} else {
				message = v.Error()
			}
		default:
			return 0, "", fmt.Errorf("%w: unsupported error argument %T", errSendArgs, v)
		}
	case 2:
		c, ok := args[0].(int)
		if !ok {
			return 0, "", fmt.Errorf("%w: first of two arguments must be a status code", errSendArgs)
		}
		code = c
		switch v := args[1].(type) {
		case string:
			message = v
		case error:
			message = v.Error()
		default:
			message = fmt.Sprint(v)
		}
	default:
		return 0, "", fmt.Errorf("%w: got %d arguments", errSendArgs, len(args))
	}

	if !validStatus(code) {
		code = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(code)
	}
	return code, message, nil
}

// encodeBody renders a Send body. Strings and byte slices pass through.
func encodeBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	}
	return json.Marshal(body)
}

func checkCode(code int) error {
	if !finalStatus(code) {
		return fmt.Errorf("%w: %w %d", errSendArgs, ErrInvalidStatus, code)
	}
	return nil
}
