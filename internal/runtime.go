package internal

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/five/pkg/logger"
)

const defaultAddress = ":8080"

// runner owns the lifecycle of one http.Server: startup hooks, serving
// until the context ends, draining, then shutdown hooks.
type runner struct {
	logger          *slog.Logger
	baseCtx         context.Context
	tlsConfig       *tls.Config
	address         string
	shutdownTimeout time.Duration
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
}

func newRunner(opts ...RunOption) *runner {
	r := &runner{
		logger:          logger.NewNope(),
		baseCtx:         context.Background(),
		address:         defaultAddress,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// run listens on r.address and serves h until SIGINT, SIGTERM or the
// base context ends.
func (r *runner) run(h http.Handler) error {
	ctx, stop := signal.NotifyContext(r.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for i, hook := range r.startupHooks {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("startup hook #%d: %w", i, err)
		}
	}

	ln, err := net.Listen("tcp", r.address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.address, err)
	}
	return r.serve(ctx, ln, h)
}

// serve runs the server on ln until ctx is done or serving fails, then
// shuts down gracefully. ln is closed on return.
func (r *runner) serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	if r.tlsConfig != nil {
		ln = tls.NewListener(ln, r.tlsConfig)
	}

	srv := &http.Server{
		Handler:           h,
		TLSConfig:         r.tlsConfig,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(r.logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.logger.Info("server starting",
			slog.String("address", ln.Addr().String()),
			slog.Bool("tls", r.tlsConfig != nil),
		)
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		r.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
		defer cancel()

		errs := []error{srv.Shutdown(shutdownCtx)}
		for _, hook := range r.shutdownHooks {
			if err := hook(shutdownCtx); err != nil {
				r.logger.Error("shutdown hook failed", slog.Any("error", err))
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		r.logger.Error("server stopped with errors", slog.Any("error", err))
		return err
	}
	r.logger.Info("shutdown completed")
	return nil
}
