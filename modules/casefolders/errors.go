package casefolders

import (
	"errors"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/pkg/scopes"
	"github.com/dmitrymomot/drivecase/svc/casetree"
	"github.com/dmitrymomot/drivecase/svc/portal"
	"github.com/dmitrymomot/drivecase/svc/transfer"
)

var errNotContained = errors.New("casefolders: file is outside the case the token is bound to")

func httpError(err error) error {
	switch {
	case errors.Is(err, errNotContained):
		return handler.ErrForbidden.WithMessage("file is outside the permitted case")
	case errors.Is(err, casetree.ErrEmptyRootName),
		errors.Is(err, casetree.ErrInvalidDocType),
		errors.Is(err, casetree.ErrMissingRootID),
		errors.Is(err, portal.ErrMissingRootID), errors.Is(err, portal.ErrInvalidRole),
		errors.Is(err, scopes.ErrInvalidScope), errors.Is(err, scopes.ErrScopeNotAllowed):
		return handler.ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, portal.ErrForbidden), errors.Is(err, portal.ErrUnauthorized), errors.Is(err, portal.ErrNoClaims):
		return portal.HTTPError(err)
	}
	return transfer.HTTPError(err)
}
