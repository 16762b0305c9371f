// Package internal provides the core types and implementation for the five framework.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/five"
// instead, which re-exports the public API.
//
// # Core Types
//
//   - App: route table, middleware stages, request dispatcher and runtime
//   - Context: per-request access to params, query, body and reply helpers
//   - Registrar: route declaration surface (GET, POST, Namespace, With, ...)
//   - HandlerFunc: a chain element; returns nil to continue, an error to stop
//   - ErrorHandler: turns handler errors into responses
//   - PathMatcher: pattern matching capability, chi-backed by default
//   - Config: immutable server configuration, loadable from YAML
//
// # Request Pipeline
//
// App.ServeHTTP runs every request through the same fixed sequence:
//
//  1. CORS headers are applied to every response.
//  2. OPTIONS requests end here with 204 No Content.
//  3. The route is looked up by method and path. A miss is 404 "Not found".
//  4. PUT, POST and PATCH bodies are gated by content type (415), read in
//     bounded chunks (413) and parsed by the registered parser (400).
//  5. Middleware stages registered with Use run, then the route handlers.
//     The chain stops at the first handler that writes a response or
//     returns an error.
//  6. Errors and panics go to the ErrorHandler. If nothing was written
//     when the chain ends, the pending status is sent with an empty body.
//
// Each response is finalized exactly once. Reply helpers called after
// that return ErrResponseFinalized and leave the response untouched.
//
// # Handlers and Middleware
//
// Middleware and handlers share one signature. A stage that returns nil
// lets the chain continue:
//
//	app.Use(func(c internal.Context) error {
//	    if c.Header("X-Api-Key") == "" {
//	        return internal.NewHTTPError(http.StatusUnauthorized, "")
//	    }
//	    return nil
//	})
//
//	app.POST("/users", func(c internal.Context) error {
//	    in, err := internal.Bind[createUser](c)
//	    if err != nil {
//	        return err
//	    }
//	    return c.Send(http.StatusCreated, in)
//	})
//
// Asynchronous work is awaited with Await, which suspends the chain until
// the returned channel yields or the client goes away.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context. The Deadline, Done, Err, and Value
// methods delegate to the underlying request context.
//
// # Server Runtime
//
//	err := app.Run(":8080", internal.Logger(log))
//
// Run serves TLS when the configuration carries a certificate and key, and
// shuts down gracefully on SIGINT or SIGTERM.
package internal
