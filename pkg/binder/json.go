package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20 // 1 MB

// JSON creates a JSON binder function.
//
// Decoding is strict: unknown fields and trailing data are rejected. String
// fields are cleaned of control characters and surrounding whitespace after
// decoding. A request without a body and without a Content-Type is not an
// error; the binder reports ErrBinderNotApplicable and leaves required-field
// checks to validation.
//
// Example:
//
//	r.Post("/move-file", handler.Wrap(s.moveFile,
//		handler.WithBinders[handler.Context, MoveFileRequest](binder.JSON(), handler.Validate(v)),
//	))
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		// Check for context timeout
		select {
		case <-r.Context().Done():
			return fmt.Errorf("%w: context timeout", ErrFailedToParseJSON)
		default:
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			if isEmptyBody(r) {
				return ErrBinderNotApplicable
			}
			return fmt.Errorf("%w: missing content-type header, expected application/json", ErrMissingContentType)
		}

		if mediaType := baseMediaType(contentType); mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
		}

		// Read the entire body with size limit
		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return fmt.Errorf("%w: max %d bytes", ErrRequestTooLarge, DefaultMaxJSONSize)
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return ErrBinderNotApplicable
		}

		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.DisallowUnknownFields() // Always use strict mode

		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		// Ensure entire body was consumed
		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}

		sanitizeJSONStruct(v)
		return nil
	}
}

// sanitizeJSONStruct recursively sanitizes all string fields in a struct.
func sanitizeJSONStruct(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	sanitizeReflectValue(rv.Elem())
}

// sanitizeReflectValue recursively sanitizes reflect.Value.
// Map values are not addressable and are left as decoded.
func sanitizeReflectValue(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(sanitizeStringValue(rv.String()))
		}

	case reflect.Struct:
		for i := range rv.NumField() {
			if field := rv.Field(i); field.CanSet() {
				sanitizeReflectValue(field)
			}
		}

	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			sanitizeReflectValue(rv.Index(i))
		}

	case reflect.Ptr:
		if !rv.IsNil() {
			sanitizeReflectValue(rv.Elem())
		}
	}
}
