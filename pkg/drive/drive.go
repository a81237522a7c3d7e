package drive

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// FolderMimeType is the MIME type Drive uses for folders.
const FolderMimeType = "application/vnd.google-apps.folder"

// DefaultListLimit caps ListChildren when ListOptions.Limit is zero.
// Entries beyond the cap are dropped.
const DefaultListLimit = 1000

var (
	ErrNotFound      = errors.New("drive: file not found")
	ErrEmptyName     = errors.New("drive: name is empty after sanitization")
	ErrMissingID     = errors.New("drive: file id is required")
	ErrNoCredentials = errors.New("drive: no credentials configured")

	// ErrNotDownloadable is returned for folders, which have no content.
	ErrNotDownloadable = errors.New("drive: file has no downloadable content")
)

// Item is the subset of Drive file metadata the service works with.
type Item struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MimeType     string    `json:"mimeType,omitempty"`
	Parents      []string  `json:"parents,omitempty"`
	WebViewLink  string    `json:"webViewLink,omitempty"`
	Description  string    `json:"description,omitempty"`
	Size         int64     `json:"size,omitempty"`
	MD5          string    `json:"md5Checksum,omitempty"`
	CreatedTime  time.Time `json:"createdTime,omitzero"`
	ModifiedTime time.Time `json:"modifiedTime,omitzero"`
	Trashed      bool      `json:"-"`
}

// IsFolder reports whether the item is a folder.
func (i Item) IsFolder() bool {
	return i.MimeType == FolderMimeType
}

// IsNative reports whether the item is a Google Docs editor file, which has
// no binary content of its own and must be exported.
func (i Item) IsNative() bool {
	return strings.HasPrefix(i.MimeType, "application/vnd.google-apps.") && !i.IsFolder()
}

// HasParent reports whether id is one of the item's parents.
func (i Item) HasParent(id string) bool {
	for _, p := range i.Parents {
		if p == id {
			return true
		}
	}
	return false
}

// ListOptions narrows ListChildren.
type ListOptions struct {
	MimeType string // only children of this type; empty means any
	OrderBy  string // Drive orderBy expression, e.g. "modifiedTime desc"
	Limit    int    // maximum number of entries, DefaultListLimit when zero
}

// Download is an open content stream with the metadata needed to serve it.
// Callers must close Body.
type Download struct {
	Body     io.ReadCloser
	Name     string
	MimeType string
	Size     int64 // -1 when unknown
	MD5      string
}

// Gateway maps one method to one storage provider call. Nothing retries.
type Gateway interface {
	// CreateFolder creates a folder under parentIDs, or under the configured
	// default parent when none are given. The name is sanitized first.
	CreateFolder(ctx context.Context, name string, parentIDs ...string) (*Item, error)
	// CreateFile uploads content as a new file in parentID.
	CreateFile(ctx context.Context, name, parentID, mimeType string, content io.Reader) (*Item, error)
	// Get returns metadata or ErrNotFound.
	Get(ctx context.Context, id string) (*Item, error)
	// ListChildren returns non-trashed children of parentID.
	ListChildren(ctx context.Context, parentID string, opts ListOptions) ([]Item, error)
	// Reparent adds addParentID and removes removeParentIDs in a single update.
	Reparent(ctx context.Context, fileID, addParentID string, removeParentIDs ...string) (*Item, error)
	// SetDescription replaces the file description.
	SetDescription(ctx context.Context, fileID, description string) (*Item, error)
	// GrantPublicRead adds an "anyone with the link can view" permission.
	// Repeated calls add repeated permissions.
	GrantPublicRead(ctx context.Context, fileID string) error
	// Trash moves a file or folder to the trash.
	Trash(ctx context.Context, id string) error
	// Download opens the file content.
	Download(ctx context.Context, id string) (*Download, error)
}
