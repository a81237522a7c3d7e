package registry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Defaults for new records.
const (
	DefaultCaseStatus     = "open"
	DefaultDocumentStatus = "pending"
)

var (
	ErrNotFound          = errors.New("registry: not found")
	ErrDuplicatePublicID = errors.New("registry: public id already taken")
	ErrEmptyDocType      = errors.New("registry: empty doc type")
	ErrDisabled          = errors.New("registry: postgres is not configured")
)

// Case is a tracked debtor case.
type Case struct {
	ID         uuid.UUID `json:"id"`
	DebtorName *string   `json:"debtorName"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PublicLink is the one share link of a case. Deactivation is the only way
// to revoke it.
type PublicLink struct {
	ID        uuid.UUID `json:"id"`
	CaseID    uuid.UUID `json:"caseId"`
	PublicID  string    `json:"publicId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document tracks one expected or submitted document of a case.
type Document struct {
	ID          uuid.UUID  `json:"id"`
	CaseID      uuid.UUID  `json:"caseId"`
	DocType     string     `json:"docType"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submittedAt"`
	CreatedAt   time.Time  `json:"-"`
}

// Store persists cases. Implementations must create a case and its link
// atomically.
type Store interface {
	// CreateCase inserts c and link together. A public id collision is
	// ErrDuplicatePublicID and leaves nothing behind.
	CreateCase(ctx context.Context, c *Case, link *PublicLink) error
	GetCase(ctx context.Context, id uuid.UUID) (*Case, error)
	LinkByCase(ctx context.Context, caseID uuid.UUID) (*PublicLink, error)
	// CaseByPublicID returns the case of an active link.
	CaseByPublicID(ctx context.Context, publicID string) (*Case, error)
	DeactivateLink(ctx context.Context, caseID uuid.UUID) error
	// AddDocument fails with ErrNotFound when the case does not exist.
	AddDocument(ctx context.Context, d *Document) error
	// ListDocuments returns documents in insertion order, never nil.
	ListDocuments(ctx context.Context, caseID uuid.UUID) ([]Document, error)
}
