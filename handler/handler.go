package handler

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/drivecase/pkg/binder"
)

// HandlerFunc provides type-safe HTTP request handling with custom context support.
// C must implement the Context interface, R can be any request type.
//
// Example:
//
//	h := handler.HandlerFunc[handler.Context, MoveFileRequest](
//		func(ctx handler.Context, req MoveFileRequest) handler.Response {
//			file, err := gw.Reparent(ctx, req.FileID, req.DestinationFolderID, []string{req.SourceFolderID})
//			if err != nil {
//				return handler.JSONError(err)
//			}
//			return handler.JSON(map[string]any{"file": file})
//		},
//	)
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response renders itself to an http.ResponseWriter.
// Implementations should set headers, status code, and write body.
// Errors are handled by the framework (returns 500).
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind parses HTTP requests into typed values.
type Bind func(r *http.Request, v any) error

// ErrorHandler handles errors from binding or rendering.
type ErrorHandler[C Context] func(ctx C, err error)

// Decorator wraps a HandlerFunc to add cross-cutting functionality.
// Decorators are applied in order, with the first decorator in the list
// being the outermost wrapper.
//
// Example gate decorator:
//
//	func RequireDebtor[R any]() Decorator[Context, R] {
//		return func(next HandlerFunc[Context, R]) HandlerFunc[Context, R] {
//			return func(ctx Context, req R) Response {
//				if err := portal.RequireDebtor(portal.ClaimsFromContext(ctx)); err != nil {
//					return JSONError(ErrForbidden)
//				}
//				return next(ctx, req)
//			}
//		}
//	}
type Decorator[C Context, R any] func(HandlerFunc[C, R]) HandlerFunc[C, R]

// WrapOption configures the Wrap function.
type WrapOption[C Context, R any] func(*wrapConfig[C, R])

// wrapConfig holds configuration for Wrap.
type wrapConfig[C Context, R any] struct {
	binders        []Bind
	errorHandler   ErrorHandler[C]
	contextFactory func(http.ResponseWriter, *http.Request) C
	decorators     []Decorator[C, R]
}

// WithBinder sets a custom request binder.
// For backward compatibility, this converts to a single-item binders slice.
func WithBinder[C Context, R any](b Bind) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if b != nil {
			c.binders = []Bind{b}
		}
	}
}

// WithBinders sets multiple request binders that will be applied in order.
// Each binder should process only its specific struct tags.
//
// Example:
//
//	r.Get("/api/cases/{id}", handler.Wrap(h,
//		handler.WithBinders[handler.Context, GetCaseRequest](
//			binder.Path(chi.URLParam), // processes path: tags
//			binder.Query(),            // processes query: tags
//			handler.Validate(v),       // runs validate: tags last
//		),
//	))
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.binders = append(c.binders, binders...)
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithContextFactory sets a custom context factory.
func WithContextFactory[C Context, R any](f func(http.ResponseWriter, *http.Request) C) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if f != nil {
			c.contextFactory = f
		}
	}
}

// WithDecorators adds decorators to wrap the handler.
// Decorators are applied in order, with the first decorator being the outermost.
//
// Example:
//
//	r.Get("/portal/info", handler.Wrap(h,
//		handler.WithDecorators(
//			RequireDebtor[InfoRequest](),
//		),
//	))
func WithDecorators[C Context, R any](decorators ...Decorator[C, R]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// defaultErrorHandler renders the error as a JSON error body.
// Status codes are derived the same way JSONError derives them.
func defaultErrorHandler[C Context](ctx C, err error) {
	_ = JSONError(err).Render(ctx.ResponseWriter(), ctx.Request())
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc.
//
// Usage with standard context:
//
//	h := handler.HandlerFunc[handler.Context, CreateCaseRequest](...)
//	r.Post("/api/cases", handler.Wrap(h))
//
// With options:
//
//	r.Post("/api/cases", handler.Wrap(h,
//		handler.WithBinders[handler.Context, CreateCaseRequest](binder.JSON(), handler.Validate(v)),
//		handler.WithErrorHandler[handler.Context, CreateCaseRequest](errorHandler),
//	))
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	// Initialize config with defaults
	cfg := &wrapConfig[C, R]{
		errorHandler: defaultErrorHandler[C],
	}

	// Set default context factory if none provided and C can be created with NewContext
	if cfg.contextFactory == nil {
		// Try to use NewContext as default factory
		cfg.contextFactory = func(w http.ResponseWriter, r *http.Request) C {
			ctx := NewContext(w, r)
			if c, ok := any(ctx).(C); ok {
				return c
			}
			// This will panic if C is not compatible with the default Context
			panic("cannot use default context factory with custom context type - provide WithContextFactory")
		}
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	// Apply decorators in reverse order so first decorator is outermost
	finalHandler := h
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		finalHandler = cfg.decorators[i](finalHandler)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := cfg.contextFactory(w, r)

		var req R

		// Apply binders in order - skip those that are not applicable
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				// Skip binders that are not applicable to this request
				if errors.Is(err, binder.ErrBinderNotApplicable) {
					continue
				}
				cfg.errorHandler(ctx, err)
				return
			}
		}

		response := finalHandler(ctx, req)
		if response == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := response.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
