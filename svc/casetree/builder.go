package casetree

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/drivecase/pkg/async"
	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/pkg/logger"
	"github.com/dmitrymomot/drivecase/pkg/sanitizer"
)

// BuildParams describes a case tree to create.
type BuildParams struct {
	RootName       string
	DocTypes       []string
	MakePublic     bool
	ParentID       string // empty uses the gateway default parent
	CreateManifest bool
}

// createdLog records node ids as fan-out branches finish.
type createdLog struct {
	mu  sync.Mutex
	ids []string
}

func (l *createdLog) add(id string) {
	l.mu.Lock()
	l.ids = append(l.ids, id)
	l.mu.Unlock()
}

func (l *createdLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.ids)
}

// Build creates the root folder, one folder per status role under it and one
// folder per docType under every status folder. DocType folders of a status
// are created concurrently; the result keeps the input order.
//
// Nothing is rolled back. When a step fails after the root exists, the error
// is a *PartialTreeError carrying the ids created so far.
func (s *Service) Build(ctx context.Context, p BuildParams) (*Tree, error) {
	rootName := sanitizer.FolderName(p.RootName)
	if rootName == "" {
		return nil, ErrEmptyRootName
	}
	for _, dt := range p.DocTypes {
		if sanitizer.FolderName(dt) == "" {
			return nil, ErrInvalidDocType
		}
	}

	start := time.Now()
	created := &createdLog{}
	fail := func(err error) (*Tree, error) {
		ids := created.snapshot()
		s.log.WarnContext(ctx, "case tree build failed",
			logger.Component("casetree"),
			slog.Int("created", len(ids)),
			logger.Error(err),
		)
		return nil, &PartialTreeError{Created: ids, Err: err}
	}

	var parents []string
	if p.ParentID != "" {
		parents = []string{p.ParentID}
	}
	root, err := s.gw.CreateFolder(ctx, rootName, parents...)
	if err != nil {
		return nil, err
	}
	created.add(root.ID)

	tree := &Tree{
		Root:       folderOf(root),
		DocFolders: make(map[string][]Folder, len(Statuses)),
	}

	for _, status := range Statuses {
		sf, err := s.gw.CreateFolder(ctx, s.labels.For(status), root.ID)
		if err != nil {
			return fail(err)
		}
		created.add(sf.ID)
		tree.StatusFolders.set(status, folderOf(sf))

		docs, err := async.Map(ctx, p.DocTypes, func(ctx context.Context, docType string) (Folder, error) {
			it, err := s.gw.CreateFolder(ctx, docType, sf.ID)
			if err != nil {
				return Folder{}, err
			}
			created.add(it.ID)
			return folderOf(it), nil
		})
		if err != nil {
			return fail(err)
		}
		tree.DocFolders[sf.Name] = docs
	}

	if p.MakePublic {
		if _, err := async.Map(ctx, tree.IDs(), func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, s.gw.GrantPublicRead(ctx, id)
		}); err != nil {
			return fail(err)
		}
	}

	if p.CreateManifest {
		m, err := s.writeManifest(ctx, root.ID)
		if err != nil {
			return fail(err)
		}
		created.add(m.ID)
		f := folderOf(m)
		tree.Manifest = &f
	}

	s.log.InfoContext(ctx, "case tree built",
		logger.Component("casetree"),
		logger.FolderID(root.ID),
		slog.Int("doc_types", len(p.DocTypes)),
		slog.Bool("public", p.MakePublic),
		logger.Duration(time.Since(start)),
	)
	return tree, nil
}

func (s *Service) writeManifest(ctx context.Context, rootID string) (*drive.Item, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ManifestHeader); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return s.gw.CreateFile(ctx, ManifestName, rootID, "text/csv", &buf)
}

// Discard trashes the given nodes, last created first. Nodes that are
// already gone are skipped. All failures are returned joined.
func (s *Service) Discard(ctx context.Context, ids ...string) error {
	var errs []error
	for _, id := range slices.Backward(ids) {
		if id == "" {
			continue
		}
		if err := s.gw.Trash(ctx, id); err != nil && !errors.Is(err, drive.ErrNotFound) {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "case tree discarded",
		logger.Component("casetree"),
		slog.Int("nodes", len(ids)),
	)
	return nil
}
