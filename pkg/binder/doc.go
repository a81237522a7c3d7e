// Package binder binds HTTP request data to typed request structs.
//
// Each binder reads exactly one source, selected by struct tag:
//
//   - JSON(): request bodies with Content-Type application/json
//   - Form() / Multipart(max): urlencoded and multipart/form-data bodies, `form:` and `file:` tags
//   - Query(): URL query parameters, `query:` tags
//   - Path(extractor): router path parameters, `path:` tags
//
// Binders are combined through handler.WithBinders and applied in order. Body
// binders return ErrBinderNotApplicable when the request has no body, so a
// missing body surfaces as a validation error instead of a parse error:
//
//	type UploadRequest struct {
//	    FolderID string                `form:"folderId" validate:"required"`
//	    File     *multipart.FileHeader `file:"file" validate:"required"`
//	}
//
// Bound strings are cleaned of control characters and surrounding whitespace.
// Uploaded file names are reduced to a safe base name.
//
// # Errors
//
//   - ErrUnsupportedMediaType, ErrMissingContentType: wrong or absent Content-Type
//   - ErrFailedToParseJSON, ErrInvalidForm, ErrFailedToParseQuery, ErrInvalidPath: malformed input
//   - ErrRequestTooLarge: body over the configured ceiling
//
// IsBindError groups the malformed input errors so callers can map them to 400.
package binder
