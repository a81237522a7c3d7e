package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/drivecase/pkg/pg"
)

// publicIDConstraint is the unique constraint on case_public_links.public_id.
const publicIDConstraint = "case_public_links_public_id_key"

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	pg.TxBeginner
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps the registry in the tables created by the
// 00001_case_registry migration.
type PostgresStore struct {
	db DB
}

// NewPostgresStore wraps a pool.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	insertCaseSQL = `INSERT INTO cases (id, debtor_name, status, created_at) VALUES ($1, $2, $3, $4)`
	insertLinkSQL = `INSERT INTO case_public_links (id, case_id, public_id, is_active, created_at) VALUES ($1, $2, $3, $4, $5)`

	selectCaseSQL = `SELECT id, debtor_name, status, created_at FROM cases WHERE id = $1`
	selectLinkSQL = `SELECT id, case_id, public_id, is_active, created_at FROM case_public_links WHERE case_id = $1`

	selectCaseByPublicIDSQL = `
SELECT c.id, c.debtor_name, c.status, c.created_at
FROM case_public_links l
JOIN cases c ON c.id = l.case_id
WHERE l.public_id = $1 AND l.is_active`

	deactivateLinkSQL = `UPDATE case_public_links SET is_active = FALSE WHERE case_id = $1`

	insertDocumentSQL  = `INSERT INTO case_documents (id, case_id, doc_type, status, submitted_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	selectDocumentsSQL = `
SELECT id, case_id, doc_type, status, submitted_at, created_at
FROM case_documents
WHERE case_id = $1
ORDER BY created_at, id`
)

func (s *PostgresStore) CreateCase(ctx context.Context, c *Case, link *PublicLink) error {
	err := pg.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertCaseSQL, c.ID, c.DebtorName, c.Status, c.CreatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, insertLinkSQL, link.ID, link.CaseID, link.PublicID, link.IsActive, link.CreatedAt)
		return err
	})
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pg.IsDuplicateKeyError(err) && pgErr.ConstraintName == publicIDConstraint {
		return ErrDuplicatePublicID
	}
	return fmt.Errorf("registry: create case: %w", err)
}

func scanCase(row pgx.Row) (*Case, error) {
	var c Case
	if err := row.Scan(&c.ID, &c.DebtorName, &c.Status, &c.CreatedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("registry: scan case: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) GetCase(ctx context.Context, id uuid.UUID) (*Case, error) {
	return scanCase(s.db.QueryRow(ctx, selectCaseSQL, id))
}

func (s *PostgresStore) LinkByCase(ctx context.Context, caseID uuid.UUID) (*PublicLink, error) {
	var l PublicLink
	err := s.db.QueryRow(ctx, selectLinkSQL, caseID).Scan(&l.ID, &l.CaseID, &l.PublicID, &l.IsActive, &l.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("registry: get link: %w", err)
	}
	return &l, nil
}

func (s *PostgresStore) CaseByPublicID(ctx context.Context, publicID string) (*Case, error) {
	return scanCase(s.db.QueryRow(ctx, selectCaseByPublicIDSQL, publicID))
}

func (s *PostgresStore) DeactivateLink(ctx context.Context, caseID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, deactivateLinkSQL, caseID)
	if err != nil {
		return fmt.Errorf("registry: deactivate link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) AddDocument(ctx context.Context, d *Document) error {
	_, err := s.db.Exec(ctx, insertDocumentSQL, d.ID, d.CaseID, d.DocType, d.Status, d.SubmittedAt, d.CreatedAt)
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("registry: add document: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListDocuments(ctx context.Context, caseID uuid.UUID) ([]Document, error) {
	rows, err := s.db.Query(ctx, selectDocumentsSQL, caseID)
	if err != nil {
		return nil, fmt.Errorf("registry: list documents: %w", err)
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Document, error) {
		var d Document
		err := row.Scan(&d.ID, &d.CaseID, &d.DocType, &d.Status, &d.SubmittedAt, &d.CreatedAt)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("registry: list documents: %w", err)
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs, nil
}
