package casefolders

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/pkg/binder"
	"github.com/dmitrymomot/drivecase/svc/casetree"
	"github.com/dmitrymomot/drivecase/svc/containment"
	"github.com/dmitrymomot/drivecase/svc/portal"
	"github.com/dmitrymomot/drivecase/svc/transfer"
)

// Module serves the back-office folder and file routes.
type Module struct {
	cfg       Config
	tree      *casetree.Service
	files     *transfer.Service
	tokens    *portal.Service
	contain   *containment.Checker
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

func New(
	cfg Config,
	tree *casetree.Service,
	files *transfer.Service,
	tokens *portal.Service,
	contain *containment.Checker,
	opts ...Option,
) *Module {
	m := &Module{
		cfg:     cfg,
		tree:    tree,
		files:   files,
		tokens:  tokens,
		contain: contain,
		log:     slog.New(slog.DiscardHandler),
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

	r.Post("/create-case-folders", handler.Wrap(m.createCaseFolders,
		handler.WithBinders[handler.Context, CreateCaseFoldersRequest](binder.JSON(), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, CreateCaseFoldersRequest](onError),
	))
	r.Get("/case-structure", handler.Wrap(m.caseStructure,
		handler.WithBinders[handler.Context, CaseStructureRequest](binder.Query(), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, CaseStructureRequest](onError),
	))
	r.Post("/discard-case-folders", handler.Wrap(m.discardCaseFolders,
		handler.WithBinders[handler.Context, DiscardRequest](binder.JSON(), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, DiscardRequest](onError),
	))

	r.Post("/issue-portal-link", handler.Wrap(m.issuePortalLink,
		handler.WithBinders[handler.Context, IssuePortalLinkRequest](binder.JSON(), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, IssuePortalLinkRequest](onError),
	))
	r.Post("/issue-access-token", handler.Wrap(m.issueAccessToken,
		handler.WithBinders[handler.Context, IssueAccessTokenRequest](binder.JSON(), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, IssueAccessTokenRequest](onError),
	))

	r.Post("/upload-to-folder", handler.Wrap(m.uploadToFolder,
		handler.WithBinders[handler.Context, UploadRequest](binder.Multipart(m.cfg.UploadMaxBytes), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, UploadRequest](onError),
	))
	r.Get("/files-in-folder", handler.Wrap(m.filesInFolder,
		handler.WithBinders[handler.Context, FilesInFolderRequest](binder.Query(), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, FilesInFolderRequest](onError),
	))
	r.Post("/move-file", handler.Wrap(m.moveFile,
		handler.WithBinders[handler.Context, MoveFileRequest](binder.JSON(), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, MoveFileRequest](onError),
	))
	r.Post("/move-file-smart", handler.Wrap(m.moveFileSmart,
		handler.WithBinders[handler.Context, MoveFileSmartRequest](binder.JSON(), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, MoveFileSmartRequest](onError),
	))
	r.Post("/comment", handler.Wrap(m.comment,
		handler.WithBinders[handler.Context, CommentRequest](binder.JSON(), handler.Validate(v)),
		handler.WithErrorHandler[handler.Context, CommentRequest](onError),
	))

	// Token-gated reads shared by reviewers and debtors holding a scope.
	r.Group(func(r chi.Router) {
		r.Use(m.tokens.AccessMiddleware(portal.UnauthorizedHandler(m.log)))

		r.Get("/files/preview/{fileId}", handler.Wrap(m.preview,
			handler.WithBinders[handler.Context, PreviewRequest](binder.Path(chi.URLParam), handler.Validate(v)),
			handler.WithDecorators(portal.RoleOrScope[PreviewRequest](m.log, portal.ScopePreview)),
			handler.WithErrorHandler[handler.Context, PreviewRequest](onError),
		))
		r.Get("/files/list/{folderId}", handler.Wrap(m.listScoped,
			handler.WithBinders[handler.Context, ListScopedRequest](binder.Path(chi.URLParam), handler.Validate(v)),
			handler.WithDecorators(portal.RoleOrScope[ListScopedRequest](m.log, portal.ScopeList)),
			handler.WithErrorHandler[handler.Context, ListScopedRequest](onError),
		))
	})

	return r
}

// fail logs err and renders it. Domain errors are mapped to their HTTP
// status; anything else is an upstream failure reported as 500 with the
// provider message.
func (m *Module) fail(ctx handler.Context, err error, opts ...handler.JSONOption) handler.Response {
	err = httpError(err)
	handler.LogError(m.log, ctx.Request(), err)
	return handler.JSONError(err, opts...)
}
