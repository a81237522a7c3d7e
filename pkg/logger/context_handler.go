package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a context. The bool reports
// whether the attribute is present.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler appends the attributes found by its extractors to every
// record it handles.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

// newContextHandler wraps next. Nil extractors are dropped, and next is
// returned unchanged when none remain.
func newContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	var keep []ContextExtractor
	for _, ex := range extractors {
		if ex != nil {
			keep = append(keep, ex)
		}
	}
	if len(keep) == 0 {
		return next
	}
	return &contextHandler{Handler: next, extractors: keep}
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
