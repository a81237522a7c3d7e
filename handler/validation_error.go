package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/drivecase/pkg/binder"
	"github.com/dmitrymomot/drivecase/pkg/sanitizer"
)

// ValidationError represents field validation errors.
// It's based on url.Values to leverage built-in string slice handling.
type ValidationError url.Values

// Error implements the error interface.
// Returns a human-readable error message summarizing validation failures.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "Validation failed"
	}

	var parts []string
	for field, messages := range e {
		if len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}

	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// NewValidationError creates a new validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add adds an error message for a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first error message for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has checks if a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// tagNames lists the binding tags consulted for a field's public name, in order.
var tagNames = []string{"json", "form", "file", "query", "path"}

// NewValidator returns a validator that reports fields by the name clients
// send them under rather than by their Go field names.
//
// It also registers the "foldername" rule: the string (or every string in a
// slice, with "dive") must keep at least one character after
// sanitizer.FolderName.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range tagNames {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name == "-" {
				continue
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
	_ = v.RegisterValidation("foldername", func(fl validator.FieldLevel) bool {
		return sanitizer.FolderName(fl.Field().String()) != ""
	})
	return v
}

// Validate returns a Bind step that runs struct validation on the already bound
// request. Place it after the data binders. Targets other than structs are
// skipped.
//
// Example:
//
//	v := handler.NewValidator()
//	r.Post("/comment", handler.Wrap(h,
//		handler.WithBinders[handler.Context, CommentRequest](binder.JSON(), handler.Validate(v)),
//	))
func Validate(v *validator.Validate) Bind {
	if v == nil {
		v = NewValidator()
	}

	return func(r *http.Request, target any) error {
		err := v.StructCtx(r.Context(), target)
		if err == nil {
			return nil
		}

		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return binder.ErrBinderNotApplicable
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}

		verr := NewValidationError()
		for _, fe := range fieldErrs {
			verr.Add(fieldPath(fe), fieldMessage(fe))
		}
		return verr
	}
}

// fieldPath strips the root struct name from the error namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without", "required_with":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url", "http_url":
		return "must be a valid URL"
	case "foldername":
		return "must contain characters allowed in a folder name"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
