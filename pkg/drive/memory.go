package drive

import (
	"bytes"
	"cmp"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/drivecase/pkg/sanitizer"
)

// MemoryRootID is the id of the implicit root folder of a MemoryGateway.
const MemoryRootID = "root"

// MemoryGateway is an in-process Gateway. It keeps the tree in a map guarded
// by a mutex and is safe for concurrent use. It backs tests and the
// DRIVE_BACKEND=memory mode.
type MemoryGateway struct {
	mu            sync.RWMutex
	items         map[string]*memoryItem
	seq           int
	last          time.Time
	now           func() time.Time
	defaultParent string
	fail          func(op, arg string) error
}

type memoryItem struct {
	Item
	content []byte
	grants  int
}

// MemoryOption configures a MemoryGateway.
type MemoryOption func(*MemoryGateway)

// WithMemoryDefaultParent sets the parent used when CreateFolder gets none.
func WithMemoryDefaultParent(id string) MemoryOption {
	return func(g *MemoryGateway) { g.defaultParent = id }
}

// WithMemoryClock sets the time source for created and modified times.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(g *MemoryGateway) { g.now = now }
}

// WithMemoryFailure injects errors: fail is called with the operation name
// ("CreateFolder", "GrantPublicRead"...) and its main argument before each
// call, and a non-nil result is returned instead of performing it.
func WithMemoryFailure(fail func(op, arg string) error) MemoryOption {
	return func(g *MemoryGateway) { g.fail = fail }
}

// NewMemoryGateway returns an empty tree holding only MemoryRootID.
func NewMemoryGateway(opts ...MemoryOption) *MemoryGateway {
	g := &MemoryGateway{
		items: make(map[string]*memoryItem),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	ts := g.tick()
	g.items[MemoryRootID] = &memoryItem{Item: Item{
		ID:           MemoryRootID,
		Name:         "My Drive",
		MimeType:     FolderMimeType,
		CreatedTime:  ts,
		ModifiedTime: ts,
	}}
	if g.defaultParent == "" {
		g.defaultParent = MemoryRootID
	}
	return g
}

// tick returns a strictly increasing timestamp so ordering by time is
// deterministic. Callers hold the write lock, except in the constructor.
func (g *MemoryGateway) tick() time.Time {
	ts := g.now().UTC()
	if !ts.After(g.last) {
		ts = g.last.Add(time.Microsecond)
	}
	g.last = ts
	return ts
}

func (g *MemoryGateway) check(op, arg string) error {
	if g.fail == nil {
		return nil
	}
	return g.fail(op, arg)
}

func (g *MemoryGateway) lookup(id string) (*memoryItem, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	it, ok := g.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return it, nil
}

func (g *MemoryGateway) create(name, mimeType string, parents []string, content []byte) (*Item, error) {
	for _, p := range parents {
		if _, err := g.lookup(p); err != nil {
			return nil, err
		}
	}

	g.seq++
	ts := g.tick()
	it := &memoryItem{
		Item: Item{
			ID:           fmt.Sprintf("mem%06d", g.seq),
			Name:         name,
			MimeType:     mimeType,
			Parents:      slices.Clone(parents),
			CreatedTime:  ts,
			ModifiedTime: ts,
		},
		content: content,
	}
	it.WebViewLink = viewBase + it.ID + "/view"
	if content != nil {
		sum := md5.Sum(content)
		it.Size = int64(len(content))
		it.MD5 = hex.EncodeToString(sum[:])
	}
	g.items[it.ID] = it

	out := it.Item
	return &out, nil
}

func (g *MemoryGateway) CreateFolder(ctx context.Context, name string, parentIDs ...string) (*Item, error) {
	name = sanitizer.FolderName(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := g.check("CreateFolder", name); err != nil {
		return nil, err
	}
	if len(parentIDs) == 0 {
		parentIDs = []string{g.defaultParent}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.create(name, FolderMimeType, parentIDs, nil)
}

func (g *MemoryGateway) CreateFile(ctx context.Context, name, parentID, mimeType string, content io.Reader) (*Item, error) {
	name = sanitizer.FolderName(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if parentID == "" {
		return nil, ErrMissingID
	}
	if err := g.check("CreateFile", name); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("drive: read upload: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.create(name, mimeType, []string{parentID}, data)
}

func (g *MemoryGateway) Get(ctx context.Context, id string) (*Item, error) {
	if err := g.check("Get", id); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	it, err := g.lookup(id)
	if err != nil {
		return nil, err
	}
	out := it.Item
	out.Parents = slices.Clone(it.Parents)
	return &out, nil
}

func (g *MemoryGateway) ListChildren(ctx context.Context, parentID string, opts ListOptions) ([]Item, error) {
	if parentID == "" {
		return nil, ErrMissingID
	}
	if err := g.check("ListChildren", parentID); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, err := g.lookup(parentID); err != nil {
		return nil, err
	}

	out := make([]Item, 0)
	for _, it := range g.items {
		if it.Trashed || !it.HasParent(parentID) {
			continue
		}
		if opts.MimeType != "" && it.MimeType != opts.MimeType {
			continue
		}
		cp := it.Item
		cp.Parents = slices.Clone(it.Parents)
		out = append(out, cp)
	}

	slices.SortFunc(out, func(a, b Item) int {
		switch opts.OrderBy {
		case "modifiedTime desc":
			return b.ModifiedTime.Compare(a.ModifiedTime)
		case "name":
			return cmp.Or(cmp.Compare(a.Name, b.Name), a.CreatedTime.Compare(b.CreatedTime))
		default:
			return a.CreatedTime.Compare(b.CreatedTime)
		}
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (g *MemoryGateway) Reparent(ctx context.Context, fileID, addParentID string, removeParentIDs ...string) (*Item, error) {
	if err := g.check("Reparent", fileID); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	it, err := g.lookup(fileID)
	if err != nil {
		return nil, err
	}
	if addParentID != "" {
		if _, err := g.lookup(addParentID); err != nil {
			return nil, err
		}
	}

	parents := slices.DeleteFunc(slices.Clone(it.Parents), func(p string) bool {
		return slices.Contains(removeParentIDs, p)
	})
	if addParentID != "" && !slices.Contains(parents, addParentID) {
		parents = append(parents, addParentID)
	}
	it.Parents = parents
	it.ModifiedTime = g.tick()

	out := it.Item
	out.Parents = slices.Clone(parents)
	return &out, nil
}

func (g *MemoryGateway) SetDescription(ctx context.Context, fileID, description string) (*Item, error) {
	if err := g.check("SetDescription", fileID); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	it, err := g.lookup(fileID)
	if err != nil {
		return nil, err
	}
	it.Description = description
	it.ModifiedTime = g.tick()

	out := it.Item
	out.Parents = slices.Clone(it.Parents)
	return &out, nil
}

func (g *MemoryGateway) GrantPublicRead(ctx context.Context, fileID string) error {
	if err := g.check("GrantPublicRead", fileID); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	it, err := g.lookup(fileID)
	if err != nil {
		return err
	}
	it.grants++
	return nil
}

func (g *MemoryGateway) Trash(ctx context.Context, id string) error {
	if err := g.check("Trash", id); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	it, err := g.lookup(id)
	if err != nil {
		return err
	}
	it.Trashed = true
	it.ModifiedTime = g.tick()
	return nil
}

func (g *MemoryGateway) Download(ctx context.Context, id string) (*Download, error) {
	if err := g.check("Download", id); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	it, err := g.lookup(id)
	if err != nil {
		return nil, err
	}
	if it.content == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotDownloadable, id)
	}
	return &Download{
		Body:     io.NopCloser(bytes.NewReader(it.content)),
		Name:     it.Name,
		MimeType: it.MimeType,
		Size:     it.Size,
		MD5:      it.MD5,
	}, nil
}

// PublicGrants returns how many public read permissions were added to id.
func (g *MemoryGateway) PublicGrants(id string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if it, ok := g.items[id]; ok {
		return it.grants
	}
	return 0
}

// Count returns the number of non-trashed items, excluding the root.
func (g *MemoryGateway) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for id, it := range g.items {
		if id != MemoryRootID && !it.Trashed {
			n++
		}
	}
	return n
}
