package binder

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrymomot/drivecase/pkg/sanitizer"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
// Larger parts are spooled to temporary files by the standard library.
const DefaultMaxMemory = 10 << 20 // 10 MB

// Form creates a unified binder for both form data and file uploads.
// It handles application/x-www-form-urlencoded and multipart/form-data content types.
// The request body size is not limited; use Multipart for upload routes.
//
// Supported struct tags:
//   - `form:"name"` - binds to form field "name"
//   - `form:"-"`    - skips the field
//   - `file:"name"` - binds to uploaded file "name"
//   - `file:"-"`    - skips the field
//
// Supported types for form fields:
//   - Basic types: string, int, int64, uint, uint64, float32, float64, bool
//   - Slices of basic types for multi-value fields
//   - Pointers for optional fields
//
// Supported types for file fields:
//   - *multipart.FileHeader - single file
//   - []*multipart.FileHeader - multiple files
//
// Example:
//
//	type UploadRequest struct {
//		FolderID   string                `form:"folderId" validate:"required"`
//		NamePrefix string                `form:"namePrefix"`
//		MakePublic bool                  `form:"makePublic"`
//		File       *multipart.FileHeader `file:"file" validate:"required"`
//	}
//
//	r.Post("/upload-to-folder", handler.Wrap(s.upload,
//		handler.WithBinders[handler.Context, UploadRequest](binder.Form(), handler.Validate(v)),
//	))
func Form() func(r *http.Request, v any) error {
	return Multipart(0)
}

// Multipart is Form with a ceiling on the total request body size.
// Bodies over maxBytes fail with ErrRequestTooLarge. A non-positive maxBytes
// disables the ceiling.
func Multipart(maxBytes int64) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			if isEmptyBody(r) {
				return ErrBinderNotApplicable
			}
			return fmt.Errorf("%w: missing content-type header, expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
		}

		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
		}

		mediaType := baseMediaType(contentType)

		var values map[string][]string
		var files map[string][]*multipart.FileHeader

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return formError(err)
			}
			values = r.PostForm

		case "multipart/form-data":
			// Validate multipart content type and boundary
			_, params, err := mime.ParseMediaType(contentType)
			if err != nil {
				return fmt.Errorf("%w: malformed content type with boundary", ErrInvalidForm)
			}

			boundary, ok := params["boundary"]
			if !ok || boundary == "" {
				return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
			}

			if !validateBoundary(boundary) {
				return fmt.Errorf("%w: invalid boundary parameter", ErrInvalidForm)
			}

			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return formError(err)
			}

			if r.MultipartForm != nil {
				values = r.MultipartForm.Value
				files = r.MultipartForm.File
			} else {
				values = make(map[string][]string)
			}

		default:
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
		}

		// Multipart temp files are cleaned up by net/http once the handler returns
		return bindFormAndFiles(v, values, files, ErrInvalidForm)
	}
}

// formError maps parse failures to binder errors, keeping size violations distinct.
func formError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit %d bytes", ErrRequestTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: %v", ErrInvalidForm, err)
}

// validateBoundary checks a multipart boundary against RFC 2046: 1 to 70
// characters from the bchars set, not ending with a space.
func validateBoundary(boundary string) bool {
	if len(boundary) == 0 || len(boundary) > 70 || strings.HasSuffix(boundary, " ") {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}

// bindFormAndFiles binds both form values and files to a struct.
func bindFormAndFiles(v any, values map[string][]string, files map[string][]*multipart.FileHeader, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		formTag := fieldType.Tag.Get("form")
		fileTag := fieldType.Tag.Get("file")

		// Skip if both tags are missing
		if formTag == "" && fileTag == "" {
			continue
		}

		// Handle form tag
		if formTag != "" {
			if formTag == "-" {
				continue // Skip explicitly ignored fields
			}

			// Extract parameter name from tag
			paramName := formTag
			if idx := strings.Index(formTag, ","); idx != -1 {
				paramName = formTag[:idx]
			}

			// Skip empty parameter names
			if paramName == "" {
				continue
			}

			if fieldValues, exists := values[paramName]; exists && len(fieldValues) > 0 {
				if err := setFieldValue(field, fieldType.Type, fieldValues); err != nil {
					return fmt.Errorf("%w: field %s: %v", bindErr, fieldType.Name, err)
				}
			}
		}

		// Handle file tag
		if fileTag != "" && fileTag != "-" && files != nil {
			if fileHeaders, exists := files[fileTag]; exists && len(fileHeaders) > 0 {
				if err := setFileField(field, fieldType.Type, fileHeaders); err != nil {
					return fmt.Errorf("%w: field %s: %v", bindErr, fieldType.Name, err)
				}
			}
		}
	}

	return nil
}

// setFileField sets file values to struct fields.
func setFileField(field reflect.Value, fieldType reflect.Type, fileHeaders []*multipart.FileHeader) error {
	// Strip path components and unsafe characters from client supplied names
	for _, fh := range fileHeaders {
		fh.Filename = sanitizer.SanitizeFilename(fh.Filename)
	}

	if fieldType.Kind() == reflect.Slice {
		elemType := fieldType.Elem()
		if elemType != reflect.TypeOf((*multipart.FileHeader)(nil)) {
			return fmt.Errorf("unsupported slice element type for file field: %v", elemType)
		}

		slice := reflect.MakeSlice(fieldType, len(fileHeaders), len(fileHeaders))
		for i, fh := range fileHeaders {
			slice.Index(i).Set(reflect.ValueOf(fh))
		}
		field.Set(slice)
		return nil
	}

	if fieldType == reflect.TypeOf((*multipart.FileHeader)(nil)) {
		if len(fileHeaders) > 0 {
			field.Set(reflect.ValueOf(fileHeaders[0]))
		}
		return nil
	}

	return fmt.Errorf("unsupported type for file field: %v (expected *multipart.FileHeader or []*multipart.FileHeader)", fieldType)
}
