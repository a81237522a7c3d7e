package casefolders

import (
	"errors"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/svc/portal"
	"github.com/dmitrymomot/drivecase/svc/transfer"
)

// previewCacheControl keeps previews out of shared caches.
const previewCacheControl = "private, max-age=60"

type PreviewRequest struct {
	FileID string `path:"fileId" validate:"required"`
}

func (m *Module) preview(ctx handler.Context, req PreviewRequest) handler.Response {
	claims, _ := portal.ClaimsFromContext(ctx)
	if err := m.checkContained(ctx, req.FileID, claims); err != nil {
		return m.fail(ctx, err)
	}

	d, err := m.files.Preview(ctx, req.FileID, m.cfg.PreviewMaxBytes)
	if err != nil {
		return m.fail(ctx, previewError(err))
	}

	opts := []handler.StreamOption{
		handler.WithContentType(d.MimeType),
		handler.WithInlineFilename(d.Name),
		handler.WithHeader("Cache-Control", previewCacheControl),
		handler.WithContentLength(d.Size),
	}
	if d.MD5 != "" {
		opts = append(opts, handler.WithHeader("ETag", `"`+d.MD5+`"`))
	}
	return handler.Stream(d.Body, opts...)
}

// previewError reports upstream download failures as 502. Client-facing
// errors keep their own status.
func previewError(err error) error {
	mapped := transfer.HTTPError(err)
	var herr handler.HTTPError
	if errors.As(mapped, &herr) {
		return mapped
	}
	return errors.Join(handler.ErrBadGateway.WithMessage("failed to download file"), err)
}

type ListScopedRequest struct {
	FolderID string `path:"folderId" validate:"required"`
}

func (m *Module) listScoped(ctx handler.Context, req ListScopedRequest) handler.Response {
	claims, _ := portal.ClaimsFromContext(ctx)
	if claims == nil || claims.RootID != req.FolderID {
		if err := m.checkContained(ctx, req.FolderID, claims); err != nil {
			return m.fail(ctx, err)
		}
	}

	files, err := m.files.List(ctx, req.FolderID)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(FilesResponse{Files: files})
}

// checkContained restricts tokens bound to a case root to files under it.
// Tokens without a root are unrestricted.
func (m *Module) checkContained(ctx handler.Context, id string, claims *portal.Claims) error {
	if claims == nil {
		return portal.ErrNoClaims
	}
	ok, err := m.contain.IsUnder(ctx, id, claims.RootID)
	if err != nil {
		if errors.Is(err, drive.ErrNotFound) {
			return err
		}
		return errors.Join(handler.ErrBadGateway.WithMessage("failed to check file location"), err)
	}
	if !ok {
		return errNotContained
	}
	return nil
}
