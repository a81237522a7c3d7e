package registry

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/svc/registry"
)

type CreateCaseRequest struct {
	DebtorName string `json:"debtorName" validate:"max=200"`
}

func (m *Module) createCase(ctx handler.Context, req CreateCaseRequest) handler.Response {
	created, err := m.cases.CreateCase(ctx, req.DebtorName)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(created, handler.WithJSONStatus(http.StatusCreated))
}

type CaseRequest struct {
	ID string `path:"id" validate:"required,uuid"`
}

func (m *Module) getCase(ctx handler.Context, req CaseRequest) handler.Response {
	details, err := m.cases.GetCase(ctx, uuid.MustParse(req.ID))
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(details)
}

type DocumentsResponse struct {
	Documents []registry.Document `json:"documents"`
}

func (m *Module) listDocuments(ctx handler.Context, req CaseRequest) handler.Response {
	docs, err := m.cases.ListDocuments(ctx, uuid.MustParse(req.ID))
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(DocumentsResponse{Documents: docs})
}

type AddDocumentRequest struct {
	ID          string     `path:"id" json:"-" validate:"required,uuid"`
	DocType     string     `json:"docType" validate:"required,foldername"`
	Status      string     `json:"status" validate:"max=50"`
	SubmittedAt *time.Time `json:"submittedAt"`
}

func (m *Module) addDocument(ctx handler.Context, req AddDocumentRequest) handler.Response {
	doc, err := m.cases.AddDocument(ctx, uuid.MustParse(req.ID), registry.AddDocumentParams{
		DocType:     req.DocType,
		Status:      req.Status,
		SubmittedAt: req.SubmittedAt,
	})
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(doc, handler.WithJSONStatus(http.StatusCreated))
}

func (m *Module) deactivateLink(ctx handler.Context, req CaseRequest) handler.Response {
	if err := m.cases.DeactivateLink(ctx, uuid.MustParse(req.ID)); err != nil {
		return m.fail(ctx, err)
	}
	return handler.Empty()
}

type PublicCaseRequest struct {
	PublicID string `path:"publicId" validate:"required,max=64"`
}

func (m *Module) publicCase(ctx handler.Context, req PublicCaseRequest) handler.Response {
	pc, err := m.cases.PublicCase(ctx, req.PublicID)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(pc)
}
