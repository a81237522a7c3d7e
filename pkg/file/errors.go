package file

import "errors"

var (
	ErrNilFileHeader          = errors.New("file: file header is nil")
	ErrFileTooLarge           = errors.New("file: size exceeds the allowed maximum")
	ErrFailedToOpenFile       = errors.New("file: failed to open upload")
	ErrFailedToDetectMIMEType = errors.New("file: failed to detect MIME type")
)
