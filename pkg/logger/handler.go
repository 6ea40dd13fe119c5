package logger

import (
	"context"
	"errors"
	"log/slog"
)

// ContextExtractor pulls a request-scoped attribute, such as the request id,
// out of the context at log time.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// fanout adds extracted attributes to every record and hands it to each sink
// that accepts the level.
type fanout struct {
	sinks      []slog.Handler
	extractors []ContextExtractor
}

func newFanout(sinks []slog.Handler, extractors []ContextExtractor) *fanout {
	h := &fanout{sinks: sinks}
	for _, ex := range extractors {
		if ex != nil {
			h.extractors = append(h.extractors, ex)
		}
	}
	return h
}

func (h *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanout) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}

	var errs []error
	for _, s := range h.sinks {
		if !s.Enabled(ctx, rec.Level) {
			continue
		}
		if err := s.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (h *fanout) WithGroup(name string) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *fanout) derive(fn func(slog.Handler) slog.Handler) *fanout {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = fn(s)
	}
	return &fanout{sinks: sinks, extractors: h.extractors}
}
