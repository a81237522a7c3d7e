package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/drivecase/pkg/logger"
	"github.com/dmitrymomot/drivecase/pkg/sanitizer"
)

// Service is the case registry.
type Service struct {
	store    Store
	baseURL  string
	attempts int
	newID    func() (string, error)
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPublicIDGenerator replaces NewPublicID.
func WithPublicIDGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithClock overrides the time source for new records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates the registry over store.
func New(store Store, cfg Config, opts ...Option) *Service {
	s := &Service{
		store:    store,
		baseURL:  strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		attempts: max(cfg.CreateAttempts, 1),
		newID:    NewPublicID,
		now:      time.Now,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatedCase is the result of CreateCase.
type CreatedCase struct {
	Case     Case   `json:"case"`
	PublicID string `json:"publicId"`
	ShareURL string `json:"shareUrl"`
}

// CaseDetails is a case with its link and documents.
type CaseDetails struct {
	Case      Case        `json:"case"`
	Link      *PublicLink `json:"publicLink"`
	ShareURL  string      `json:"shareUrl,omitempty"`
	Documents []Document  `json:"documents"`
}

// PublicCase is what a share link exposes.
type PublicCase struct {
	Case      Case       `json:"case"`
	Documents []Document `json:"documents"`
}

// CreateCase stores a new open case together with its public link. A
// colliding public id is regenerated up to the configured attempts.
func (s *Service) CreateCase(ctx context.Context, debtorName string) (*CreatedCase, error) {
	now := s.now().UTC()
	c := &Case{
		ID:        uuid.New(),
		Status:    DefaultCaseStatus,
		CreatedAt: now,
	}
	if name := sanitizer.Apply(debtorName, sanitizer.RemoveControlChars, sanitizer.SingleLine); name != "" {
		c.DebtorName = &name
	}

	var lastErr error
	for range s.attempts {
		publicID, err := s.newID()
		if err != nil {
			return nil, err
		}
		link := &PublicLink{
			ID:        uuid.New(),
			CaseID:    c.ID,
			PublicID:  publicID,
			IsActive:  true,
			CreatedAt: now,
		}

		err = s.store.CreateCase(ctx, c, link)
		if err == nil {
			s.log.InfoContext(ctx, "case created",
				logger.Component("registry"),
				logger.CaseID(c.ID.String()),
			)
			return &CreatedCase{Case: *c, PublicID: publicID, ShareURL: s.ShareURL(publicID)}, nil
		}
		if !errors.Is(err, ErrDuplicatePublicID) {
			return nil, err
		}
		lastErr = err
		s.log.WarnContext(ctx, "public id collision, retrying",
			logger.Component("registry"),
			logger.CaseID(c.ID.String()),
		)
	}
	return nil, fmt.Errorf("registry: create case after %d attempts: %w", s.attempts, lastErr)
}

// ShareURL builds the public link URL of a share id.
func (s *Service) ShareURL(publicID string) string {
	if s.baseURL == "" {
		return ""
	}
	return s.baseURL + "/" + url.PathEscape(publicID)
}

// PublicCase resolves an active share id. Unknown and deactivated ids are
// both ErrNotFound.
func (s *Service) PublicCase(ctx context.Context, publicID string) (*PublicCase, error) {
	if publicID == "" {
		return nil, ErrNotFound
	}
	c, err := s.store.CaseByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	docs, err := s.store.ListDocuments(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &PublicCase{Case: *c, Documents: docs}, nil
}

// GetCase returns a case with its link and documents.
func (s *Service) GetCase(ctx context.Context, id uuid.UUID) (*CaseDetails, error) {
	c, err := s.store.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &CaseDetails{Case: *c}
	link, err := s.store.LinkByCase(ctx, id)
	switch {
	case err == nil:
		out.Link = link
		if link.IsActive {
			out.ShareURL = s.ShareURL(link.PublicID)
		}
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	if out.Documents, err = s.store.ListDocuments(ctx, id); err != nil {
		return nil, err
	}
	return out, nil
}

// DeactivateLink turns off the share link of a case. Deactivating twice is
// not an error.
func (s *Service) DeactivateLink(ctx context.Context, caseID uuid.UUID) error {
	if err := s.store.DeactivateLink(ctx, caseID); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "public link deactivated",
		logger.Component("registry"),
		logger.CaseID(caseID.String()),
	)
	return nil
}

// AddDocumentParams describes a document record.
type AddDocumentParams struct {
	DocType     string
	Status      string     // empty means DefaultDocumentStatus
	SubmittedAt *time.Time // nil until the debtor submits
}

// AddDocument records a document for a case.
func (s *Service) AddDocument(ctx context.Context, caseID uuid.UUID, p AddDocumentParams) (*Document, error) {
	docType := sanitizer.FolderName(p.DocType)
	if docType == "" {
		return nil, ErrEmptyDocType
	}

	d := &Document{
		ID:          uuid.New(),
		CaseID:      caseID,
		DocType:     docType,
		Status:      strings.TrimSpace(p.Status),
		SubmittedAt: p.SubmittedAt,
		CreatedAt:   s.now().UTC(),
	}
	if d.Status == "" {
		d.Status = DefaultDocumentStatus
	}
	if d.SubmittedAt != nil {
		at := d.SubmittedAt.UTC()
		d.SubmittedAt = &at
	}

	if err := s.store.AddDocument(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ListDocuments returns the documents of a case. An unknown case is
// ErrNotFound.
func (s *Service) ListDocuments(ctx context.Context, caseID uuid.UUID) ([]Document, error) {
	if _, err := s.store.GetCase(ctx, caseID); err != nil {
		return nil, err
	}
	return s.store.ListDocuments(ctx, caseID)
}
