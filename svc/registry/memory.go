package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps the registry in process memory. It backs tests and runs
// without Postgres.
type MemoryStore struct {
	mu       sync.RWMutex
	cases    map[uuid.UUID]Case
	links    map[uuid.UUID]PublicLink // by case id
	byPublic map[string]uuid.UUID     // public id to case id
	docs     map[uuid.UUID][]Document
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cases:    make(map[uuid.UUID]Case),
		links:    make(map[uuid.UUID]PublicLink),
		byPublic: make(map[string]uuid.UUID),
		docs:     make(map[uuid.UUID][]Document),
	}
}

func cloneCase(c Case) *Case {
	if c.DebtorName != nil {
		name := *c.DebtorName
		c.DebtorName = &name
	}
	return &c
}

func (m *MemoryStore) CreateCase(ctx context.Context, c *Case, link *PublicLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byPublic[link.PublicID]; taken {
		return ErrDuplicatePublicID
	}
	if _, exists := m.cases[c.ID]; exists {
		return fmt.Errorf("registry: case %s already exists", c.ID)
	}

	m.cases[c.ID] = *cloneCase(*c)
	m.links[c.ID] = *link
	m.byPublic[link.PublicID] = c.ID
	return nil
}

func (m *MemoryStore) GetCase(ctx context.Context, id uuid.UUID) (*Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cases[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneCase(c), nil
}

func (m *MemoryStore) LinkByCase(ctx context.Context, caseID uuid.UUID) (*PublicLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.links[caseID]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (m *MemoryStore) CaseByPublicID(ctx context.Context, publicID string) (*Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	caseID, ok := m.byPublic[publicID]
	if !ok || !m.links[caseID].IsActive {
		return nil, ErrNotFound
	}
	return cloneCase(m.cases[caseID]), nil
}

func (m *MemoryStore) DeactivateLink(ctx context.Context, caseID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.links[caseID]
	if !ok {
		return ErrNotFound
	}
	l.IsActive = false
	m.links[caseID] = l
	return nil
}

func (m *MemoryStore) AddDocument(ctx context.Context, d *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cases[d.CaseID]; !ok {
		return ErrNotFound
	}
	m.docs[d.CaseID] = append(m.docs[d.CaseID], *d)
	return nil
}

func (m *MemoryStore) ListDocuments(ctx context.Context, caseID uuid.UUID) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := slices.Clone(m.docs[caseID])
	if out == nil {
		out = []Document{}
	}
	return out, nil
}

// DeleteCase removes a case with its link and documents, as the foreign key
// cascade does in Postgres.
func (m *MemoryStore) DeleteCase(ctx context.Context, id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.links[id]; ok {
		delete(m.byPublic, l.PublicID)
	}
	delete(m.links, id)
	delete(m.docs, id)
	delete(m.cases, id)
}
