package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrInvalidForm          = errors.New("failed to parse form data")
	ErrFailedToParseQuery   = errors.New("failed to parse query parameters")
	ErrInvalidPath          = errors.New("failed to parse path parameters")
	ErrMissingContentType   = errors.New("missing content type")
	ErrRequestTooLarge      = errors.New("request body too large")

	// ErrBinderNotApplicable is returned by a binder that has nothing to bind
	// for the request, e.g. a body binder on a request without a body.
	// The handler skips such binders instead of failing the request.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)

var bindErrors = []error{
	ErrUnsupportedMediaType,
	ErrFailedToParseJSON,
	ErrInvalidForm,
	ErrFailedToParseQuery,
	ErrInvalidPath,
	ErrMissingContentType,
}

// IsBindError reports whether err was produced by one of the binders because
// the request itself was malformed.
func IsBindError(err error) bool {
	for _, target := range bindErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
