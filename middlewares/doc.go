// Package middlewares provides chain stages for five applications.
//
// Stages share the handler signature: they run before the route handlers,
// in the order given to App.Use, and return nil to let the chain continue.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing and debugging.
// It reuses an ID from the incoming headers or generates a UUID.
//
//	app := five.New(
//	    five.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
//	app.Use(middlewares.RequestID())
//
// RequestIDExtractor adds request_id to every log entry written with the
// request context.
//
// # Access Log
//
// AccessLog writes one entry per request with method, path, status and
// duration at the moment the response is committed:
//
//	app.Use(middlewares.RequestID(), middlewares.AccessLog())
//
// # Rate Limit
//
// RateLimit keeps a token bucket per client key (remote IP by default) and
// answers 429 Too Many Requests once the bucket is empty:
//
//	app.Use(middlewares.RateLimit(middlewares.RateLimitConfig{Rate: 10, Burst: 20}))
package middlewares
