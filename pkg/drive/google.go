package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/dmitrymomot/drivecase/pkg/sanitizer"
)

// itemFields is the partial response requested for every file resource.
const itemFields = "id,name,mimeType,parents,webViewLink,description,size,md5Checksum,createdTime,modifiedTime,trashed"

// exportMimeType is used to preview Google Docs editor files.
const exportMimeType = "application/pdf"

// GoogleGateway implements Gateway over the Drive v3 API. All calls set
// supportsAllDrives so shared drives behave like My Drive. The underlying
// *drive.Service is safe for concurrent use.
type GoogleGateway struct {
	svc           *driveapi.Service
	defaultParent string
	listLimit     int
}

// NewGoogleGateway builds the Drive client from service account credentials
// in cfg, or from Application Default Credentials when neither the JSON nor
// the file is set.
func NewGoogleGateway(ctx context.Context, cfg Config) (*GoogleGateway, error) {
	creds, err := credentials(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc, err := driveapi.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("drive: create service: %w", err)
	}

	return NewGoogleGatewayFromService(svc, cfg), nil
}

// NewGoogleGatewayFromService wraps an existing Drive client.
func NewGoogleGatewayFromService(svc *driveapi.Service, cfg Config) *GoogleGateway {
	limit := cfg.ListLimit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return &GoogleGateway{
		svc:           svc,
		defaultParent: cfg.DefaultParentID,
		listLimit:     limit,
	}
}

func credentials(ctx context.Context, cfg Config) (*google.Credentials, error) {
	data := []byte(cfg.CredentialsJSON)
	if len(data) == 0 && cfg.CredentialsFile != "" {
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, errors.Join(ErrNoCredentials, err)
		}
		data = b
	}

	if len(data) == 0 {
		creds, err := google.FindDefaultCredentials(ctx, driveapi.DriveScope)
		if err != nil {
			return nil, errors.Join(ErrNoCredentials, err)
		}
		return creds, nil
	}

	creds, err := google.CredentialsFromJSON(ctx, data, driveapi.DriveScope)
	if err != nil {
		return nil, errors.Join(ErrNoCredentials, err)
	}
	return creds, nil
}

func (g *GoogleGateway) CreateFolder(ctx context.Context, name string, parentIDs ...string) (*Item, error) {
	name = sanitizer.FolderName(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(parentIDs) == 0 && g.defaultParent != "" {
		parentIDs = []string{g.defaultParent}
	}

	f, err := g.svc.Files.Create(&driveapi.File{
		Name:     name,
		MimeType: FolderMimeType,
		Parents:  parentIDs,
	}).
		SupportsAllDrives(true).
		Fields(itemFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapError("create folder", name, err)
	}
	return toItem(f), nil
}

func (g *GoogleGateway) CreateFile(ctx context.Context, name, parentID, mimeType string, content io.Reader) (*Item, error) {
	name = sanitizer.FolderName(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if parentID == "" {
		return nil, ErrMissingID
	}

	var mediaOpts []googleapi.MediaOption
	if mimeType != "" {
		mediaOpts = append(mediaOpts, googleapi.ContentType(mimeType))
	}

	f, err := g.svc.Files.Create(&driveapi.File{
		Name:     name,
		MimeType: mimeType,
		Parents:  []string{parentID},
	}).
		Media(content, mediaOpts...).
		SupportsAllDrives(true).
		Fields(itemFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapError("create file", name, err)
	}
	return toItem(f), nil
}

func (g *GoogleGateway) Get(ctx context.Context, id string) (*Item, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	f, err := g.svc.Files.Get(id).
		SupportsAllDrives(true).
		Fields(itemFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapError("get", id, err)
	}
	return toItem(f), nil
}

func (g *GoogleGateway) ListChildren(ctx context.Context, parentID string, opts ListOptions) ([]Item, error) {
	if parentID == "" {
		return nil, ErrMissingID
	}

	limit := opts.Limit
	if limit <= 0 || limit > g.listLimit {
		limit = g.listLimit
	}

	q := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(parentID))
	if opts.MimeType != "" {
		q += fmt.Sprintf(" and mimeType = '%s'", escapeQuery(opts.MimeType))
	}

	call := g.svc.Files.List().
		Q(q).
		PageSize(int64(min(limit, 1000))).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Fields(googleapi.Field("nextPageToken,files(" + itemFields + ")"))
	if opts.OrderBy != "" {
		call = call.OrderBy(opts.OrderBy)
	}

	items := make([]Item, 0)
	pageToken := ""
	for len(items) < limit {
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		res, err := call.Context(ctx).Do()
		if err != nil {
			return nil, wrapError("list children", parentID, err)
		}
		for _, f := range res.Files {
			if len(items) == limit {
				break
			}
			items = append(items, *toItem(f))
		}
		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}
	return items, nil
}

func (g *GoogleGateway) Reparent(ctx context.Context, fileID, addParentID string, removeParentIDs ...string) (*Item, error) {
	if fileID == "" {
		return nil, ErrMissingID
	}

	call := g.svc.Files.Update(fileID, &driveapi.File{}).
		SupportsAllDrives(true).
		Fields(itemFields)
	if addParentID != "" {
		call = call.AddParents(addParentID)
	}
	if len(removeParentIDs) > 0 {
		call = call.RemoveParents(strings.Join(removeParentIDs, ","))
	}

	f, err := call.Context(ctx).Do()
	if err != nil {
		return nil, wrapError("reparent", fileID, err)
	}
	return toItem(f), nil
}

func (g *GoogleGateway) SetDescription(ctx context.Context, fileID, description string) (*Item, error) {
	if fileID == "" {
		return nil, ErrMissingID
	}

	f, err := g.svc.Files.Update(fileID, &driveapi.File{
		Description:     description,
		ForceSendFields: []string{"Description"},
	}).
		SupportsAllDrives(true).
		Fields(itemFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapError("set description", fileID, err)
	}
	return toItem(f), nil
}

func (g *GoogleGateway) GrantPublicRead(ctx context.Context, fileID string) error {
	if fileID == "" {
		return ErrMissingID
	}

	_, err := g.svc.Permissions.Create(fileID, &driveapi.Permission{
		Type: "anyone",
		Role: "reader",
	}).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return wrapError("grant public read", fileID, err)
	}
	return nil
}

func (g *GoogleGateway) Trash(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	_, err := g.svc.Files.Update(id, &driveapi.File{Trashed: true}).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return wrapError("trash", id, err)
	}
	return nil
}

// Download streams binary content. Google Docs editor files are exported
// as PDF; their size is unknown up front.
func (g *GoogleGateway) Download(ctx context.Context, id string) (*Download, error) {
	meta, err := g.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if meta.IsFolder() {
		return nil, fmt.Errorf("%w: %s", ErrNotDownloadable, id)
	}

	var resp *http.Response
	if meta.IsNative() {
		resp, err = g.svc.Files.Export(id, exportMimeType).Context(ctx).Download()
		if err != nil {
			return nil, wrapError("export", id, err)
		}
		return &Download{
			Body:     resp.Body,
			Name:     meta.Name + ".pdf",
			MimeType: exportMimeType,
			Size:     -1,
		}, nil
	}

	resp, err = g.svc.Files.Get(id).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, wrapError("download", id, err)
	}

	size := meta.Size
	if size == 0 && resp.ContentLength > 0 {
		size = resp.ContentLength
	}
	return &Download{
		Body:     resp.Body,
		Name:     meta.Name,
		MimeType: meta.MimeType,
		Size:     size,
		MD5:      meta.MD5,
	}, nil
}

func toItem(f *driveapi.File) *Item {
	return &Item{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Parents:      f.Parents,
		WebViewLink:  f.WebViewLink,
		Description:  f.Description,
		Size:         f.Size,
		MD5:          f.Md5Checksum,
		CreatedTime:  parseTime(f.CreatedTime),
		ModifiedTime: parseTime(f.ModifiedTime),
		Trashed:      f.Trashed,
	}
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// escapeQuery escapes a value for a single-quoted Drive query literal.
func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// wrapError maps provider 404s to ErrNotFound and keeps the provider message
// otherwise.
func wrapError(op, ref string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return fmt.Errorf("drive: %s %s: %w", op, ref, err)
}
