package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// optionalString returns an empty Attr for empty values so callers can pass
// identifiers straight from request data.
func optionalString(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	return optionalString("request_id", id)
}

// CaseID records the case root folder identifier under the key "case_id".
func CaseID(id string) slog.Attr {
	return optionalString("case_id", id)
}

// FolderID records a Drive folder identifier under the key "folder_id".
func FolderID(id string) slog.Attr {
	return optionalString("folder_id", id)
}

// FileID records a Drive file identifier under the key "file_id".
func FileID(id string) slog.Attr {
	return optionalString("file_id", id)
}

// DocType records a portal document type under the key "doc_type".
func DocType(docType string) slog.Attr {
	return optionalString("doc_type", docType)
}

// Role records a token role under the key "role".
func Role(role string) slog.Attr {
	return optionalString("role", role)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Operation records the upstream operation name under the key "operation".
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}
