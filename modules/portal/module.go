package portal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/pkg/binder"
	"github.com/dmitrymomot/drivecase/svc/casetree"
	portalsvc "github.com/dmitrymomot/drivecase/svc/portal"
	"github.com/dmitrymomot/drivecase/svc/transfer"
)

// Module serves the debtor portal. It is mounted under /portal and every
// route requires a debtor token.
type Module struct {
	tokens         *portalsvc.Service
	tree           *casetree.Service
	files          *transfer.Service
	uploadMaxBytes int64
	validator      *validator.Validate
	log            *slog.Logger
}

// Option configures a Module.
type Option func(*Module)

// WithUploadMaxBytes limits the multipart body of /portal/upload.
func WithUploadMaxBytes(n int64) Option {
	return func(m *Module) { m.uploadMaxBytes = n }
}

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

func New(tokens *portalsvc.Service, tree *casetree.Service, files *transfer.Service, opts ...Option) *Module {
	m := &Module{
		tokens: tokens,
		tree:   tree,
		files:  files,
		log:    slog.New(slog.DiscardHandler),
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
	v := m.validator
	onError := handler.NewErrorHandler[handler.Context](m.log)

	r.Use(m.tokens.PortalMiddleware(portalsvc.UnauthorizedHandler(m.log)))

	r.Get("/info", handler.Wrap(m.info,
		handler.WithDecorators(portalsvc.DebtorOnly[InfoRequest](m.log)),
		handler.WithErrorHandler[handler.Context, InfoRequest](onError),
	))
	r.Get("/structure", handler.Wrap(m.structure,
		handler.WithDecorators(portalsvc.DebtorOnly[StructureRequest](m.log)),
		handler.WithErrorHandler[handler.Context, StructureRequest](onError),
	))
	r.Post("/upload", handler.Wrap(m.upload,
		handler.WithBinders[handler.Context, UploadRequest](binder.Multipart(m.uploadMaxBytes), handler.Validate(v)),
		handler.WithDecorators(portalsvc.DebtorOnly[UploadRequest](m.log)),
		handler.WithErrorHandler[handler.Context, UploadRequest](onError),
	))
	r.Get("/files", handler.Wrap(m.listFiles,
		handler.WithBinders[handler.Context, FilesRequest](binder.Query(), handler.Validate(v)),
		handler.WithDecorators(portalsvc.DebtorOnly[FilesRequest](m.log)),
		handler.WithErrorHandler[handler.Context, FilesRequest](onError),
	))

	return r
}

func (m *Module) fail(ctx handler.Context, err error) handler.Response {
	err = httpError(err)
	handler.LogError(m.log, ctx.Request(), err)
	return handler.JSONError(err)
}
