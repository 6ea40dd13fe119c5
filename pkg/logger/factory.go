package logger

import (
	"io"
	"log/slog"
	"os"
)

type options struct {
	writer     io.Writer
	level      slog.Level
	extractors []ContextExtractor
	sentry     *SentryConfig
}

// Option configures the logger.
type Option func(*options)

// WithWriter sets the destination of the JSON output. Default: os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithLevel sets the minimum level written to the output. Default: info.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithExtractors adds context extractors.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithSentry forwards warnings and errors to Sentry when cfg.DSN is set.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) {
		if cfg.DSN != "" {
			o.sentry = &cfg
		}
	}
}

// New creates a JSON logger.
func New(opts ...Option) *slog.Logger {
	o := &options{writer: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(o)
	}

	sinks := []slog.Handler{slog.NewJSONHandler(o.writer, &slog.HandlerOptions{Level: o.level})}
	if o.sentry != nil {
		sh, err := newSentryHandler(*o.sentry)
		if err != nil {
			slog.New(sinks[0]).Error("failed to initialize sentry", slog.String("error", err.Error()))
		} else {
			sinks = append(sinks, sh)
		}
	}

	return slog.New(newFanout(sinks, o.extractors))
}

// NewNope creates a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
