package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/pkg/file"
	"github.com/dmitrymomot/drivecase/pkg/logger"
	"github.com/dmitrymomot/drivecase/pkg/sanitizer"
)

// DefaultListLimit caps List when no limit is configured.
const DefaultListLimit = 50

var (
	ErrMissingFolderID = errors.New("transfer: folder id is required")
	ErrMissingFileID   = errors.New("transfer: file id is required")
	ErrEmptyMessage    = errors.New("transfer: comment message is empty")
	ErrTooLarge        = errors.New("transfer: file exceeds the preview size limit")
)

// FileView is a file record decorated with its derived browser links.
type FileView struct {
	drive.Item
	drive.Links
}

// UploadedFile is the result of Upload.
type UploadedFile struct {
	FileView
	IsPublic bool `json:"isPublic"`
}

func viewOf(it drive.Item) FileView {
	return FileView{Item: it, Links: drive.LinksFor(it.ID, it.WebViewLink)}
}

// Service moves bytes and metadata between HTTP handlers and the gateway.
type Service struct {
	gw        drive.Gateway
	now       func() time.Time
	listLimit int
	maxFile   int64
	log       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for stored names and comments.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithListLimit caps the number of entries List returns. Non-positive values
// keep DefaultListLimit.
func WithListLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.listLimit = n
		}
	}
}

// WithMaxFileBytes limits the size of a single uploaded part. Non-positive
// values disable the check.
func WithMaxFileBytes(n int64) Option {
	return func(s *Service) { s.maxFile = n }
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a transfer service over gw.
func New(gw drive.Gateway, opts ...Option) *Service {
	s := &Service{
		gw:        gw,
		now:       time.Now,
		listLimit: DefaultListLimit,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StoredName builds the name an upload is stored under:
// [prefix_]<unix millis>_<sanitized original name>.
func StoredName(prefix, original string, at time.Time) string {
	name := fmt.Sprintf("%d_%s", at.UnixMilli(), sanitizer.SanitizeFilename(original))
	if p := sanitizer.FolderName(prefix); p != "" {
		name = p + "_" + name
	}
	return name
}

// UploadParams describes one uploaded file.
type UploadParams struct {
	FolderID   string
	NamePrefix string
	MakePublic bool
	Filename   string // original client-side name
	MimeType   string
	Content    io.Reader
}

// Upload stores the content in the folder and, when asked, grants public read
// on the new file. A failed grant is returned as an error; the file stays.
func (s *Service) Upload(ctx context.Context, p UploadParams) (*UploadedFile, error) {
	if p.FolderID == "" {
		return nil, ErrMissingFolderID
	}

	name := StoredName(p.NamePrefix, p.Filename, s.now())
	item, err := s.gw.CreateFile(ctx, name, p.FolderID, p.MimeType, p.Content)
	if err != nil {
		return nil, err
	}

	if p.MakePublic {
		if err := s.gw.GrantPublicRead(ctx, item.ID); err != nil {
			return nil, fmt.Errorf("grant public read on %s: %w", item.ID, err)
		}
	}

	s.log.InfoContext(ctx, "file uploaded",
		logger.Component("transfer"),
		logger.FileID(item.ID),
		logger.FolderID(p.FolderID),
		slog.Int64("size", item.Size),
		slog.Bool("public", p.MakePublic),
	)
	return &UploadedFile{FileView: viewOf(*item), IsPublic: p.MakePublic}, nil
}

// List returns the most recently modified non-trashed children of a folder.
func (s *Service) List(ctx context.Context, folderID string) ([]FileView, error) {
	if folderID == "" {
		return nil, ErrMissingFolderID
	}

	items, err := s.gw.ListChildren(ctx, folderID, drive.ListOptions{
		OrderBy: "modifiedTime desc",
		Limit:   s.listLimit,
	})
	if err != nil {
		return nil, err
	}

	files := make([]FileView, 0, len(items))
	for _, it := range items {
		files = append(files, viewOf(it))
	}
	return files, nil
}

// Move reparents a file from an explicit source folder to the destination.
func (s *Service) Move(ctx context.Context, fileID, sourceID, destinationID string) (*FileView, error) {
	if fileID == "" {
		return nil, ErrMissingFileID
	}
	if sourceID == "" || destinationID == "" {
		return nil, ErrMissingFolderID
	}

	item, err := s.gw.Reparent(ctx, fileID, destinationID, sourceID)
	if err != nil {
		return nil, err
	}
	v := viewOf(*item)
	return &v, nil
}

// MoveSmart reads the current parents of the file and replaces all of them
// with the destination.
func (s *Service) MoveSmart(ctx context.Context, fileID, destinationID string) (*FileView, error) {
	if fileID == "" {
		return nil, ErrMissingFileID
	}
	if destinationID == "" {
		return nil, ErrMissingFolderID
	}

	current, err := s.gw.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}
	remove := slices.DeleteFunc(slices.Clone(current.Parents), func(p string) bool {
		return p == destinationID
	})

	item, err := s.gw.Reparent(ctx, fileID, destinationID, remove...)
	if err != nil {
		return nil, err
	}
	v := viewOf(*item)
	return &v, nil
}

// Comment appends "[<RFC 3339 UTC time>] <message>" as a new line of the
// file description.
func (s *Service) Comment(ctx context.Context, fileID, message string) (*FileView, error) {
	if fileID == "" {
		return nil, ErrMissingFileID
	}
	message = sanitizer.Apply(message, sanitizer.RemoveControlChars, sanitizer.SingleLine, sanitizer.Trim)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	current, err := s.gw.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}

	line := fmt.Sprintf("[%s] %s", s.now().UTC().Format(time.RFC3339), message)
	desc := strings.TrimRight(current.Description, "\n")
	if desc != "" {
		desc += "\n"
	}

	item, err := s.gw.SetDescription(ctx, fileID, desc+line)
	if err != nil {
		return nil, err
	}
	v := viewOf(*item)
	return &v, nil
}

// Preview opens the file content for streaming. Files whose reported size
// exceeds maxBytes fail with ErrTooLarge before any byte is read; an unknown
// size (-1) or a non-positive maxBytes skips the check. The caller closes
// the body.
func (s *Service) Preview(ctx context.Context, fileID string, maxBytes int64) (*drive.Download, error) {
	if fileID == "" {
		return nil, ErrMissingFileID
	}

	d, err := s.gw.Download(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && d.Size > maxBytes {
		_ = d.Body.Close()
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, d.Size, maxBytes)
	}
	return d, nil
}

// UploadFile uploads a multipart file. The original name and content type
// come from the part; the content type is sniffed when the client sent a
// generic one. Parts over the per-file limit fail with file.ErrFileTooLarge.
func (s *Service) UploadFile(ctx context.Context, fh *multipart.FileHeader, p UploadParams) (*UploadedFile, error) {
	if err := file.ValidateSize(fh, s.maxFile); err != nil {
		return nil, err
	}
	mimeType, err := file.MIMEType(fh)
	if err != nil {
		return nil, err
	}
	body, err := file.Open(fh)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	p.Filename = fh.Filename
	p.MimeType = mimeType
	p.Content = body
	return s.Upload(ctx, p)
}
