package casefolders

import (
	"mime/multipart"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/svc/transfer"
)

// FileResponse wraps a single file record.
type FileResponse[F any] struct {
	File F `json:"file"`
}

// FilesResponse wraps a file listing.
type FilesResponse struct {
	Files []transfer.FileView `json:"files"`
}

type UploadRequest struct {
	FolderID   string                `form:"folderId" validate:"required"`
	NamePrefix string                `form:"namePrefix" validate:"max=100"`
	MakePublic bool                  `form:"makePublic"`
	File       *multipart.FileHeader `file:"file" validate:"required"`
}

func (m *Module) uploadToFolder(ctx handler.Context, req UploadRequest) handler.Response {
	uploaded, err := m.files.UploadFile(ctx, req.File, transfer.UploadParams{
		FolderID:   req.FolderID,
		NamePrefix: req.NamePrefix,
		MakePublic: req.MakePublic,
	})
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(FileResponse[*transfer.UploadedFile]{File: uploaded})
}

type FilesInFolderRequest struct {
	FolderID string `query:"folderId" validate:"required"`
}

func (m *Module) filesInFolder(ctx handler.Context, req FilesInFolderRequest) handler.Response {
	files, err := m.files.List(ctx, req.FolderID)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(FilesResponse{Files: files})
}

type MoveFileRequest struct {
	FileID              string `json:"fileId" validate:"required"`
	SourceFolderID      string `json:"sourceFolderId" validate:"required"`
	DestinationFolderID string `json:"destinationFolderId" validate:"required"`
}

func (m *Module) moveFile(ctx handler.Context, req MoveFileRequest) handler.Response {
	f, err := m.files.Move(ctx, req.FileID, req.SourceFolderID, req.DestinationFolderID)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(FileResponse[*transfer.FileView]{File: f})
}

type MoveFileSmartRequest struct {
	FileID              string `json:"fileId" validate:"required"`
	DestinationFolderID string `json:"destinationFolderId" validate:"required"`
}

func (m *Module) moveFileSmart(ctx handler.Context, req MoveFileSmartRequest) handler.Response {
	f, err := m.files.MoveSmart(ctx, req.FileID, req.DestinationFolderID)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(FileResponse[*transfer.FileView]{File: f})
}

type CommentRequest struct {
	FileID  string `json:"fileId" validate:"required"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (m *Module) comment(ctx handler.Context, req CommentRequest) handler.Response {
	f, err := m.files.Comment(ctx, req.FileID, req.Message)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(FileResponse[*transfer.FileView]{File: f})
}
