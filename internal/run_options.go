package internal

import (
	"context"
	"log/slog"
	"time"
)

// RunOption configures App.Run.
type RunOption func(*runtimeConfig)

// Logger overrides the logger used for server lifecycle events.
func Logger(l *slog.Logger) RunOption {
	return func(c *runtimeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds draining the server plus every shutdown hook.
// Default: 30s.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runtimeConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// ShutdownHook registers fn to run after the server stopped accepting
// requests. Hooks run in registration order; a failing hook does not stop
// the rest.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runtimeConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// WithContext sets the base context. Cancelling it shuts the server down.
func WithContext(ctx context.Context) RunOption {
	return func(c *runtimeConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
