package transfer

import (
	"errors"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/pkg/file"
)

// HTTPError maps transfer and gateway errors to handler.HTTPError values.
// Anything unrecognised is an upstream failure and passes through unchanged,
// so its message reaches the client with a 500.
func HTTPError(err error) error {
	switch {
	case errors.Is(err, drive.ErrNotFound):
		return handler.ErrNotFound.WithMessage("file or folder not found")
	case errors.Is(err, ErrTooLarge), errors.Is(err, file.ErrFileTooLarge):
		return handler.ErrRequestEntityTooLarge.WithMessage(err.Error())
	case errors.Is(err, drive.ErrNotDownloadable):
		return handler.ErrBadRequest.WithMessage("folders cannot be previewed")
	case errors.Is(err, ErrMissingFolderID), errors.Is(err, ErrMissingFileID),
		errors.Is(err, ErrEmptyMessage), errors.Is(err, drive.ErrMissingID),
		errors.Is(err, drive.ErrEmptyName), errors.Is(err, file.ErrNilFileHeader):
		return handler.ErrBadRequest.WithMessage(err.Error())
	}
	return err
}
