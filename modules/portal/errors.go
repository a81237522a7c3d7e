package portal

import (
	"errors"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/svc/casetree"
	portalsvc "github.com/dmitrymomot/drivecase/svc/portal"
	"github.com/dmitrymomot/drivecase/svc/transfer"
)

var (
	errDocTypeNotAllowed = errors.New("portal: document type is not in the token")
	errNoDocFolder       = errors.New("portal: no pending folder for the document type")
)

func httpError(err error) error {
	switch {
	case errors.Is(err, errDocTypeNotAllowed):
		return handler.ErrForbidden.WithMessage("document type is not allowed by this link")
	case errors.Is(err, errNoDocFolder):
		return handler.ErrNotFound.WithMessage("no folder for this document type")
	case errors.Is(err, casetree.ErrMissingRootID):
		return handler.ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, portalsvc.ErrForbidden), errors.Is(err, portalsvc.ErrUnauthorized), errors.Is(err, portalsvc.ErrNoClaims):
		return portalsvc.HTTPError(err)
	}
	return transfer.HTTPError(err)
}
