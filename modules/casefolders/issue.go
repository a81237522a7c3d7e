package casefolders

import (
	"time"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/svc/portal"
)

type IssuePortalLinkRequest struct {
	RootID     string   `json:"rootId" validate:"required"`
	DebtorName string   `json:"debtorName" validate:"max=200"`
	DocTypes   []string `json:"docTypes" validate:"omitempty,max=50,dive,foldername"`
	TTLSeconds int64    `json:"ttlSeconds" validate:"gte=0"`
}

func (m *Module) issuePortalLink(ctx handler.Context, req IssuePortalLinkRequest) handler.Response {
	issued, err := m.tokens.IssuePortal(ctx, portal.PortalParams{
		RootID:     req.RootID,
		DebtorName: req.DebtorName,
		DocTypes:   req.DocTypes,
		TTL:        time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(issued)
}

type IssueAccessTokenRequest struct {
	Role       string   `json:"role" validate:"required,oneof=debtor reviewer"`
	RootID     string   `json:"rootId" validate:"required_if=Role debtor"`
	DebtorName string   `json:"debtorName" validate:"max=200"`
	DocTypes   []string `json:"docTypes" validate:"omitempty,max=50,dive,foldername"`
	Scope      []string `json:"scope" validate:"omitempty,dive,oneof=preview list"`
	TTLSeconds int64    `json:"ttlSeconds" validate:"gte=0"`
}

func (m *Module) issueAccessToken(ctx handler.Context, req IssueAccessTokenRequest) handler.Response {
	issued, err := m.tokens.IssueAccess(ctx, portal.AccessParams{
		Role:       portal.Role(req.Role),
		RootID:     req.RootID,
		DebtorName: req.DebtorName,
		DocTypes:   req.DocTypes,
		Scope:      req.Scope,
		TTL:        time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.Body(issued)
}
