package registry

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/pkg/binder"
	"github.com/dmitrymomot/drivecase/svc/registry"
)

// Module serves the case registry API. It is mounted under /api.
type Module struct {
	cases     *registry.Service
	validator *validator.Validate
	log       *slog.Logger
}

// Option configures a Module.
type Option func(*Module)

// WithValidator shares a validator between modules.
func WithValidator(v *validator.Validate) Option {
	return func(m *Module) {
		if v != nil {
			m.validator = v
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(m *Module) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates the module. A nil service is allowed: every route then
// answers 503 because no database is configured.
func New(cases *registry.Service, opts ...Option) *Module {
	m := &Module{
		cases: cases,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.validator == nil {
		m.validator = handler.NewValidator()
	}
	return m
}

func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	if m.cases == nil {
		r.HandleFunc("/*", handler.Wrap(m.disabled))
		return r
	}

	v := m.validator
	onError := handler.NewErrorHandler[handler.Context](m.log)
	path := binder.Path(chi.URLParam)

	r.Post("/cases", handler.Wrap(m.createCase,
		handler.WithBinders[handler.Context, CreateCaseRequest](binder.JSON(), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, CreateCaseRequest](onError),
	))
	r.Get("/cases/{id}", handler.Wrap(m.getCase,
		handler.WithBinders[handler.Context, CaseRequest](path, handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, CaseRequest](onError),
	))
	r.Get("/cases/{id}/documents", handler.Wrap(m.listDocuments,
		handler.WithBinders[handler.Context, CaseRequest](path, handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, CaseRequest](onError),
	))
	r.Post("/cases/{id}/documents", handler.Wrap(m.addDocument,
		handler.WithBinders[handler.Context, AddDocumentRequest](path, binder.JSON(), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, AddDocumentRequest](onError),
	))
	r.Post("/cases/{id}/public-link/deactivate", handler.Wrap(m.deactivateLink,
		handler.WithBinders[handler.Context, CaseRequest](path, handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, CaseRequest](onError),
	))
	r.Get("/public/cases/{publicId}", handler.Wrap(m.publicCase,
		handler.WithBinders[handler.Context, PublicCaseRequest](path, handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, PublicCaseRequest](onError),
	))

	return r
}

func (m *Module) disabled(ctx handler.Context, _ struct{}) handler.Response {
	return m.fail(ctx, registry.ErrDisabled)
}

func (m *Module) fail(ctx handler.Context, err error) handler.Response {
	err = httpError(err)
	handler.LogError(m.log, ctx.Request(), err)
	return handler.JSONError(err)
}
