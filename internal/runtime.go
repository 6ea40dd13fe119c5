package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const defaultAddress = ":3000"

type runtimeConfig struct {
	baseCtx         context.Context
	logger          *slog.Logger
	address         string
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
}

func newRuntimeConfig(address string, logger *slog.Logger, opts []RunOption) runtimeConfig {
	cfg := runtimeConfig{
		baseCtx:         context.Background(),
		logger:          logger,
		address:         address,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.address == "" {
		cfg.address = defaultAddress
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

func newServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}
}

// serveUntilSignal serves h until SIGINT, SIGTERM or the end of the base
// context, then drains the server and runs the shutdown hooks.
func serveUntilSignal(h http.Handler, cfg runtimeConfig) error {
	ctx, stop := signal.NotifyContext(cfg.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.address, err)
	}

	srv := newServer(h)
	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(ln)
	}()
	cfg.logger.Info("listening", slog.String("address", ln.Addr().String()))

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	return shutdown(srv, cfg)
}

func shutdown(srv *http.Server, cfg runtimeConfig) error {
	cfg.logger.Info("shutting down", slog.Duration("timeout", cfg.shutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	// in-flight requests still reach the session store
	err := srv.Shutdown(ctx)
	for i, hook := range cfg.shutdownHooks {
		if hookErr := hook(ctx); hookErr != nil {
			cfg.logger.Error("shutdown hook failed", slog.Int("hook", i), slog.Any("error", hookErr))
			err = errors.Join(err, hookErr)
		}
	}
	if err != nil {
		return err
	}

	cfg.logger.Info("shutdown complete")
	return nil
}
