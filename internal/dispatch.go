package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// dispatchStage tracks how far a request got, for translating panics that
// escape the per-handler recovery.
type dispatchStage int

const (
	stageLookup dispatchStage = iota
	stageExecute
)

// ServeHTTP implements http.Handler.
//
// Every request goes through CORS, then preflight, route lookup, body
// ingestion for PUT/POST/PATCH, and finally the middleware stages followed
// by the route handlers. The response is sealed when ServeHTTP returns, so
// nothing written later (e.g. by a leaked goroutine) reaches the client.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r, a)
	stage := stageLookup

	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			a.recoverPanic(c, stage, rec)
		}
		c.response.Seal()
	}()

	if a.cors.preflight(c.response, r) {
		return
	}

	entry, params, err := a.table.resolve(r.Method, r.URL.Path)
	if err != nil {
		a.reject(c, err)
		return
	}
	c.params = params

	if wantsBody(r) {
		raw, body, err := a.body.ingest(r, entry)
		if err != nil {
			if errors.Is(err, errBodyAborted) {
				c.LogDebug("request body aborted", slog.String("path", r.URL.Path))
				return
			}
			if he := AsHTTPError(err); he != nil && he.Code == http.StatusRequestEntityTooLarge {
				// Do not let net/http drain the rest of an oversized body.
				c.response.Header().Set("Connection", "close")
			}
			a.reject(c, err)
			return
		}
		c.rawBody, c.body = raw, body
	}

	stage = stageExecute
	for _, h := range a.chain(entry) {
		if err := invoke(c, h); err != nil {
			a.handleError(c, err)
			return
		}
		if c.response.Written() || c.Err() != nil {
			return
		}
	}
	if c.statusErr != nil {
		a.handleError(c, c.statusErr)
	}
}

// chain returns the middleware snapshot followed by the route handlers.
func (a *App) chain(entry *routeEntry) []HandlerFunc {
	stages := *a.middlewares.Load()
	chain := make([]HandlerFunc, 0, len(stages)+len(entry.handlers))
	chain = append(chain, stages...)
	return append(chain, entry.handlers...)
}

// invoke runs a single handler, converting a panic into a *PanicError.
func invoke(c *requestContext, h HandlerFunc) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()
	return h(c)
}

// handleError hands a chain failure to the error handler. The response is
// never finalized twice: a committed response is left as is, and an error
// handler that writes nothing is followed by a 500.
func (a *App) handleError(c *requestContext, err error) {
	a.logError(c, err)
	if c.Written() {
		return
	}

	if herr := invokeErrorHandler(a.errorHandler, c, err); herr != nil && !errors.Is(herr, ErrResponseFinalized) {
		c.LogError("error handler failed", slog.Any("error", herr))
	}
	if !c.Written() {
		_ = c.writeError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func invokeErrorHandler(h ErrorHandler, c *requestContext, err error) (herr error) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			herr = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()
	return h(c, err)
}

// reject writes a stage-local failure (lookup or body ingestion) directly,
// bypassing the error handler.
func (a *App) reject(c *requestContext, err error) {
	he := AsHTTPError(err)
	if he == nil {
		he = ErrInternal("", WithError(err))
	}
	c.LogDebug("request rejected",
		slog.String("method", c.request.Method),
		slog.String("path", c.request.URL.Path),
		slog.Int("status", he.Code),
		slog.String("message", he.Message),
	)
	_ = c.writeError(he.Code, he.Message)
}

// recoverPanic translates a panic that escaped the handler chain: 404
// while the route was still being looked up, 500 afterwards.
func (a *App) recoverPanic(c *requestContext, stage dispatchStage, rec any) {
	c.LogError("panic recovered",
		slog.Any("panic", rec),
		slog.String("stack", string(debug.Stack())),
	)
	if c.Written() {
		return
	}
	if stage == stageLookup {
		_ = c.writeError(http.StatusNotFound, "Not found")
		return
	}
	_ = c.writeError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// logError records a chain failure at a level that matches its cause.
func (a *App) logError(c *requestContext, err error) {
	attrs := []any{
		slog.String("method", c.request.Method),
		slog.String("path", c.request.URL.Path),
	}

	var pe *PanicError
	switch {
	case errors.Is(err, ErrResponseFinalized):
		c.LogWarn("write after response finalized", attrs...)
	case errors.As(err, &pe):
		c.LogError("handler panic", append(attrs,
			slog.String("panic", fmt.Sprint(pe.Value)),
			slog.String("stack", string(pe.Stack)),
		)...)
	default:
		if he := AsHTTPError(err); he != nil && he.Code < http.StatusInternalServerError {
			c.LogDebug("handler returned client error", append(attrs, slog.Int("status", he.Code), slog.Any("error", err))...)
			return
		}
		c.LogError("handler failed", append(attrs, slog.Any("error", err))...)
	}
}
