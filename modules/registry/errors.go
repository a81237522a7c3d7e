package registry

import (
	"errors"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/svc/registry"
)

func httpError(err error) error {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return handler.ErrNotFound.WithMessage("case not found")
	case errors.Is(err, registry.ErrEmptyDocType):
		return handler.ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, registry.ErrDisabled):
		return handler.ErrServiceUnavailable.WithMessage("case registry is not configured")
	}
	return err
}
