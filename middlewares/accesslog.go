package middlewares

import (
	"log/slog"
	"time"

	"github.com/adness/starburst/internal"
)

// AccessLogConfig configures the access log step.
type AccessLogConfig struct {
	Generator func() string // request ID generator
	Headers   []string      // headers to check for an existing request ID
	Level     slog.Level
}

// AccessLogOption configures AccessLogConfig.
type AccessLogOption func(*AccessLogConfig)

// WithRequestIDGenerator sets a custom ID generator function.
func WithRequestIDGenerator(gen func() string) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// WithRequestIDHeaders sets the headers to check for existing request IDs.
func WithRequestIDHeaders(headers ...string) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.Headers = headers
	}
}

// WithAccessLogLevel sets the level of access log records.
func WithAccessLogLevel(level slog.Level) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.Level = level
	}
}

// AccessLog assigns the request ID and logs one line per request once the
// pipeline has finished. It never changes the response.
func AccessLog(log *slog.Logger, opts ...AccessLogOption) internal.Step {
	cfg := &AccessLogConfig{
		Generator: newRequestID,
		Headers:   DefaultRequestIDHeaders,
		Level:     slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return internal.Step{
		Name: StepLogger,
		Run: func(c *internal.Context) (internal.Signal, error) {
			start := time.Now()
			assignRequestID(c, cfg.Headers, cfg.Generator)

			c.OnFinish(func() {
				w := c.Response()
				log.LogAttrs(c.Context(), cfg.Level, "request",
					slog.String("method", c.OriginalMethod),
					slog.String("path", c.Path()),
					slog.Int("status", w.Status()),
					slog.Int64("size", w.Size()),
					slog.Duration("duration", time.Since(start)),
				)
			})
			return internal.Continue, nil
		},
	}
}
