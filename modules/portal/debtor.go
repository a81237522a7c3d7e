package portal

import (
	"errors"
	"mime/multipart"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/pkg/logger"
	"github.com/dmitrymomot/drivecase/svc/casetree"
	portalsvc "github.com/dmitrymomot/drivecase/svc/portal"
	"github.com/dmitrymomot/drivecase/svc/transfer"
)

type InfoRequest struct{}

type InfoResponse struct {
	DebtorName string   `json:"debtorName"`
	DocTypes   []string `json:"docTypes"`
	RootID     string   `json:"rootId"`
	Exp        int64    `json:"exp"`
}

func (m *Module) info(ctx handler.Context, _ InfoRequest) handler.Response {
	claims, _ := portalsvc.ClaimsFromContext(ctx)
	docTypes := claims.DocTypes
	if docTypes == nil {
		docTypes = []string{}
	}
	return handler.Body(InfoResponse{
		DebtorName: claims.DebtorName,
		DocTypes:   docTypes,
		RootID:     claims.RootID,
		Exp:        claims.ExpiresAt,
	})
}

type StructureRequest struct{}

// StructureResponse maps each docType of the token to its pending folder id.
type StructureResponse struct {
	Pending map[string]string `json:"pending"`
}

func (m *Module) structure(ctx handler.Context, _ StructureRequest) handler.Response {
	claims, _ := portalsvc.ClaimsFromContext(ctx)
	st, err := m.tree.Resolve(ctx, claims.RootID)
	if err != nil {
		return m.fail(ctx, err)
	}

	pending := make(map[string]string, len(claims.DocTypes))
	for _, dt := range claims.DocTypes {
		if f, ok := st.DocFolder(casetree.StatusPending, dt); ok {
			pending[dt] = f.ID
		}
	}
	return handler.Body(StructureResponse{Pending: pending})
}

// pendingFolder finds the pending folder of docType in the token's case.
func (m *Module) pendingFolder(ctx handler.Context, claims *portalsvc.Claims, docType string) (casetree.Folder, error) {
	if !claims.AllowsDocType(docType) {
		return casetree.Folder{}, errDocTypeNotAllowed
	}
	st, err := m.tree.Resolve(ctx, claims.RootID)
	if err != nil {
		return casetree.Folder{}, err
	}
	f, ok := st.DocFolder(casetree.StatusPending, docType)
	if !ok {
		return casetree.Folder{}, errNoDocFolder
	}
	return f, nil
}

type UploadRequest struct {
	DocType string                `form:"docType" validate:"required"`
	File    *multipart.FileHeader `file:"file" validate:"required"`
}

func (m *Module) upload(ctx handler.Context, req UploadRequest) handler.Response {
	claims, _ := portalsvc.ClaimsFromContext(ctx)
	folder, err := m.pendingFolder(ctx, claims, req.DocType)
	if err != nil {
		return m.fail(ctx, err)
	}

	uploaded, err := m.files.UploadFile(ctx, req.File, transfer.UploadParams{
		FolderID:   folder.ID,
		NamePrefix: req.DocType,
	})
	if err != nil {
		return m.fail(ctx, err)
	}

	m.log.InfoContext(ctx, "debtor upload",
		logger.Component("portal"),
		logger.FolderID(claims.RootID),
		logger.FileID(uploaded.ID),
		logger.DocType(req.DocType),
	)
	return handler.Body(FileResponse[*transfer.UploadedFile]{File: uploaded})
}

type FilesRequest struct {
	DocType string `query:"docType" validate:"required"`
}

func (m *Module) listFiles(ctx handler.Context, req FilesRequest) handler.Response {
	claims, _ := portalsvc.ClaimsFromContext(ctx)
	folder, err := m.pendingFolder(ctx, claims, req.DocType)
	if err != nil {
		if errors.Is(err, errNoDocFolder) {
			return handler.Body(FilesResponse{Files: []transfer.FileView{}})
		}
		return m.fail(ctx, err)
	}

	files, err := m.files.List(ctx, folder.ID)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(FilesResponse{Files: files})
}

// FileResponse wraps a single file record.
type FileResponse[F any] struct {
	File F `json:"file"`
}

// FilesResponse wraps a file listing.
type FilesResponse struct {
	Files []transfer.FileView `json:"files"`
}
