package starburst

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/middlewares"
)

// Option configures the site.
type Option func(*site)

// WithLogger sets the application logger.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(s *site) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithModels sets the data models attached to every request.
func WithModels(m Models) Option {
	return func(s *site) {
		s.models = m
	}
}

// WithIdentity sets the identity provider used by login and session hydration.
func WithIdentity(p IdentityProvider) Option {
	return func(s *site) {
		s.provider = p
	}
}

// WithSessionStore sets where sessions are persisted.
func WithSessionStore(store SessionStore) Option {
	return func(s *site) {
		s.store = store
	}
}

// WithCookieSecret sets the secret that signs cookies. It must be at least
// 32 bytes long.
func WithCookieSecret(secret string) Option {
	return func(s *site) {
		s.secret = secret
	}
}

// WithSessionMaxAge overrides the 24h session lifetime.
func WithSessionMaxAge(d time.Duration) Option {
	return func(s *site) {
		s.sessionOpts = append(s.sessionOpts, internal.WithSessionMaxAge(d))
	}
}

// WithSessionIDGenerator overrides how session ids are generated.
func WithSessionIDGenerator(fn func() string) Option {
	return func(s *site) {
		s.sessionOpts = append(s.sessionOpts, internal.WithSessionIDGenerator(fn))
	}
}

// WithHandlers replaces the default read-only handlers.
func WithHandlers(h Handlers) Option {
	return func(s *site) {
		s.handlers = &h
	}
}

// WithPublicFS sets the root served by the static fallback.
func WithPublicFS(fsys fs.FS) Option {
	return func(s *site) {
		if fsys != nil {
			s.public = fsys
		}
	}
}

// WithAssetsFS sets the built assets and their manifest.json.
func WithAssetsFS(fsys fs.FS) Option {
	return func(s *site) {
		if fsys != nil {
			s.assets = fsys
		}
	}
}

// WithContentFS sets the markdown pages used by the default handlers.
func WithContentFS(fsys fs.FS) Option {
	return func(s *site) {
		if fsys != nil {
			s.content = fsys
		}
	}
}

// WithDevelopment enables the diagnostic error page.
func WithDevelopment(dev bool) Option {
	return func(s *site) {
		s.dev = dev
	}
}

// WithTrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
func WithTrustProxy(trust bool) Option {
	return func(s *site) {
		s.trustProxy = trust
	}
}

// WithBodyLimit caps url-encoded and JSON request bodies.
func WithBodyLimit(n int64) Option {
	return func(s *site) {
		s.bodyOpts = append(s.bodyOpts, middlewares.WithBodyLimit(n))
	}
}

// WithRequestIDGenerator overrides how request ids are generated.
func WithRequestIDGenerator(gen func() string) Option {
	return func(s *site) {
		s.accessLogOpts = append(s.accessLogOpts, middlewares.WithRequestIDGenerator(gen))
	}
}

// WithFavicon replaces the embedded favicon.
func WithFavicon(icon []byte) Option {
	return func(s *site) {
		s.faviconOpts = append(s.faviconOpts, middlewares.WithFaviconIcon(icon))
	}
}

// WithHealthChecks mounts /health/live and /health/ready.
//
// Example:
//
//	starburst.WithHealthChecks(
//	    starburst.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	    starburst.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(s *site) {
		if s.health == nil {
			s.health = []HealthOption{}
		}
		s.health = append(s.health, opts...)
	}
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// ShutdownHook registers a function run during graceful shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// ShutdownTimeout sets how long graceful shutdown may take.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// RunContext sets the base context; cancelling it stops the server.
func RunContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}
