package file

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// genericMIMETypes are declared types that say nothing about the content.
var genericMIMETypes = []string{"", "application/octet-stream", "binary/octet-stream"}

// DeclaredMIMEType returns the media type the client sent for the part,
// without parameters. Empty when missing or malformed.
func DeclaredMIMEType(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	mt, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// DetectMIMEType sniffs the content of the part with mimetype. Parameters
// such as charset are dropped.
func DetectMIMEType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	m, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToDetectMIMEType, err)
	}
	mt, _, _ := strings.Cut(m.String(), ";")
	return mt, nil
}

// MIMEType trusts a specific declared type and sniffs the content otherwise.
func MIMEType(fh *multipart.FileHeader) (string, error) {
	if declared := DeclaredMIMEType(fh); !slices.Contains(genericMIMETypes, declared) {
		return declared, nil
	}
	return DetectMIMEType(fh)
}

// ValidateSize fails with ErrFileTooLarge when the part exceeds maxBytes.
// A non-positive maxBytes disables the check.
func ValidateSize(fh *multipart.FileHeader, maxBytes int64) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, fh.Size, maxBytes)
	}
	return nil
}

// Open opens the part for reading. The caller closes the result.
func Open(fh *multipart.FileHeader) (io.ReadCloser, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return f, nil
}
