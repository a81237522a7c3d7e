package casetree

import (
	"context"
	"errors"

	"github.com/dmitrymomot/drivecase/pkg/async"
	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/pkg/sanitizer"
)

// Structure is a case tree recovered by listing Drive. Both maps are keyed by
// folder name; a root that is empty or absent yields empty maps.
type Structure struct {
	StatusFolders map[string]Folder   `json:"statusFolders"`
	DocFolders    map[string][]Folder `json:"docFolders"`

	labels Labels
}

// ByRole returns the status folder of a role through the configured labels.
func (st *Structure) ByRole(s Status) (Folder, bool) {
	f, ok := st.StatusFolders[st.labels.For(s)]
	return f, ok
}

// DocFolder finds the docType folder under the status folder of a role. When
// several siblings share the name, the first listed wins.
func (st *Structure) DocFolder(s Status, docType string) (Folder, bool) {
	sf, ok := st.ByRole(s)
	if !ok {
		return Folder{}, false
	}
	name := sanitizer.FolderName(docType)
	for _, f := range st.DocFolders[sf.Name] {
		if f.Name == name {
			return f, true
		}
	}
	return Folder{}, false
}

// Resolve lists the children of rootID as status folders and their children
// as docType folders. Provider failures other than not-found are returned.
func (s *Service) Resolve(ctx context.Context, rootID string) (*Structure, error) {
	if rootID == "" {
		return nil, ErrMissingRootID
	}

	st := &Structure{
		StatusFolders: make(map[string]Folder),
		DocFolders:    make(map[string][]Folder),
		labels:        s.labels,
	}

	statuses, err := s.listFolders(ctx, rootID)
	if err != nil {
		if errors.Is(err, drive.ErrNotFound) {
			return st, nil
		}
		return nil, err
	}

	docs, err := async.Map(ctx, statuses, func(ctx context.Context, sf Folder) ([]Folder, error) {
		return s.listFolders(ctx, sf.ID)
	})
	if err != nil {
		return nil, err
	}

	for i, sf := range statuses {
		if _, dup := st.StatusFolders[sf.Name]; dup {
			continue
		}
		st.StatusFolders[sf.Name] = sf
		st.DocFolders[sf.Name] = docs[i]
	}
	return st, nil
}

func (s *Service) listFolders(ctx context.Context, parentID string) ([]Folder, error) {
	items, err := s.gw.ListChildren(ctx, parentID, drive.ListOptions{MimeType: drive.FolderMimeType})
	if err != nil {
		return nil, err
	}
	out := make([]Folder, 0, len(items))
	for i := range items {
		out = append(out, folderOf(&items[i]))
	}
	return out, nil
}
