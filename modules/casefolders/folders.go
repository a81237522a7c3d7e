package casefolders

import (
	"errors"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/svc/casetree"
)

type CreateCaseFoldersRequest struct {
	RootName       string   `json:"rootName" validate:"required,foldername"`
	DocTypes       []string `json:"docTypes" validate:"omitempty,max=50,dive,foldername"`
	MakePublic     bool     `json:"makePublic"`
	ParentID       string   `json:"parentId"`
	CreateManifest bool     `json:"createManifest"`
}

func (m *Module) createCaseFolders(ctx handler.Context, req CreateCaseFoldersRequest) handler.Response {
	tree, err := m.tree.Build(ctx, casetree.BuildParams{
		RootName:       req.RootName,
		DocTypes:       req.DocTypes,
		MakePublic:     req.MakePublic,
		ParentID:       req.ParentID,
		CreateManifest: req.CreateManifest,
	})
	if err != nil {
		var partial *casetree.PartialTreeError
		if errors.As(err, &partial) {
			return m.fail(ctx, buildError(err), handler.WithJSONMeta(map[string]any{"createdIds": partial.Created}))
		}
		return m.fail(ctx, buildError(err))
	}
	return handler.Body(tree)
}

// buildError reports a missing parent or folder during a build as a provider
// failure (500) rather than a 404.
func buildError(err error) error {
	if errors.Is(err, drive.ErrNotFound) {
		return handler.ErrInternalServerError.WithMessage(err.Error())
	}
	return err
}

type CaseStructureRequest struct {
	RootID string `query:"rootId" validate:"required"`
}

func (m *Module) caseStructure(ctx handler.Context, req CaseStructureRequest) handler.Response {
	st, err := m.tree.Resolve(ctx, req.RootID)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(st)
}

// DiscardRequest lists ids to trash, typically the createdIds meta of a
// failed create-case-folders call.
type DiscardRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type DiscardResponse struct {
	Discarded int `json:"discarded"`
}

func (m *Module) discardCaseFolders(ctx handler.Context, req DiscardRequest) handler.Response {
	if err := m.tree.Discard(ctx, req.IDs...); err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(DiscardResponse{Discarded: len(req.IDs)})
}
