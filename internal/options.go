package internal

import (
	"log/slog"
)

// Option configures the application.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSteps appends pipeline steps. Steps run in the order given.
func WithSteps(steps ...Step) Option {
	return func(a *App) {
		a.steps = append(a.steps, steps...)
	}
}

// WithErrorSteps appends steps that receive pipeline failures.
func WithErrorSteps(steps ...ErrorStep) Option {
	return func(a *App) {
		a.errorSteps = append(a.errorSteps, steps...)
	}
}

// WithRoutes records the route table served by the router step.
func WithRoutes(t *RouteTable) Option {
	return func(a *App) {
		a.routes = t
	}
}

// WithTrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
func WithTrustProxy(trust bool) Option {
	return func(a *App) {
		a.trustProxy = trust
	}
}

// WithHealthChecks mounts the liveness and readiness endpoints.
//
// Example:
//
//	internal.WithHealthChecks(
//	    internal.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(map[string]CheckFunc),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.health = cfg
	}
}
