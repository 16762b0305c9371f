package internal

// HandlerFunc is the signature for route handlers and middleware stages.
//
// A handler either finalizes the response (Send, SendError, JSON, ...) or
// returns nil to pass control to the next handler in the chain. Returning a
// non-nil error stops the chain and hands the error to the ErrorHandler.
//
// Example:
//
//	func loadUser(c five.Context) error {
//	    user, err := repo.GetUser(c, c.Param("id"))
//	    if err != nil {
//	        return five.ErrNotFound("user not found")
//	    }
//	    c.Set(userKey{}, user)
//	    return nil // continue with the next handler
//	}
type HandlerFunc func(c Context) error

// ErrorHandler handles errors returned from handlers.
// It is responsible for finalizing the response; if it does not, the
// dispatcher writes a 500 envelope.
type ErrorHandler func(Context, error) error

// DeferredFunc starts asynchronous work and returns a channel that yields
// exactly one result. A nil result continues the chain.
type DeferredFunc func(c Context) <-chan error

// Await adapts a DeferredFunc into a HandlerFunc. The chain is suspended
// until the result arrives or the request context is cancelled.
//
// Example:
//
//	r.GET("/report", five.Await(func(c five.Context) <-chan error {
//	    done := make(chan error, 1)
//	    go func() { done <- c.Send(buildReport(c)) }()
//	    return done
//	}))
func Await(fn DeferredFunc) HandlerFunc {
	if fn == nil {
		return nil
	}
	return func(c Context) error {
		result := fn(c)
		if result == nil {
			return nil
		}
		select {
		case err := <-result:
			return err
		case <-c.Done():
			return c.Err()
		}
	}
}
