// Package five is a minimal HTTP API server framework.
//
// It provides method and path routing, ordered middleware and handler
// chains, bounded JSON body ingestion, CORS header injection and a
// per-request Context with reply helpers. Everything outside that core
// (TLS, graceful shutdown, health probes, structured logging) is a thin
// layer over the standard library and a few well known packages.
//
// # Quick Start
//
//	app := five.New(
//	    five.WithLogger("api", middlewares.RequestIDExtractor()),
//	    five.WithCORSOrigin("https://app.example.com"),
//	)
//	app.Use(middlewares.RequestID())
//
//	app.GET("/hello", func(c five.Context) error {
//	    return c.Send(map[string]any{"hello": []string{"world"}})
//	})
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Handlers
//
// A handler either replies, returns nil to continue the chain, or returns
// an error for the ErrorHandler:
//
//	func loadUser(c five.Context) error {
//	    user, err := repo.Get(c, five.Param[int64](c, "id"))
//	    if err != nil {
//	        return five.ErrNotFound("user not found")
//	    }
//	    c.Set(userKey{}, user)
//	    return nil
//	}
//
//	app.GET("/users/{id}", loadUser, showUser)
//
// # Routing
//
// Patterns use chi syntax. Namespace prefixes a group of routes and With
// attaches per-route overrides:
//
//	api := app.Namespace("/api")
//	api.With(five.MaxBodySize(1 << 20)).POST("/uploads", upload)
//
// Registration through the method helpers panics with a *ConfigError on
// mistakes; AddRoute returns the error instead.
//
// # Bodies
//
// PUT, POST and PATCH bodies must use an allowed content type (415), fit
// in the body limit (413) and parse with the registered parser (400).
// The parsed value is available via Context.Body, the raw bytes via
// Context.RawBody, and Context.Bind decodes into a struct.
//
// # Replies
//
//	c.Send(body)                    // 200 application/json
//	c.Send(http.StatusCreated, v)
//	c.SendError(http.StatusConflict, "already exists")
//
// A response is finalized exactly once. Later replies return
// ErrResponseFinalized and change nothing.
//
// # Shutdown
//
// Run handles SIGINT/SIGTERM for graceful shutdown. Register cleanup
// functions with ShutdownHook:
//
//	app.Run(":8080", five.ShutdownHook(func(ctx context.Context) error {
//	    return pool.Close()
//	}))
package five
