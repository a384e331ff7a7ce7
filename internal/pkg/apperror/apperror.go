package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the stable error category surfaced to the API boundary.
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindAuth       Kind = "AUTH_ERROR"
	KindForbidden  Kind = "FORBIDDEN"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindStorage    Kind = "STORAGE_ERROR"
)

// FieldViolation carries a single field-level validation failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the only error type services return. Kind drives the HTTP
// status at the boundary; Err (if set) is the underlying cause and is
// logged, never rendered.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldViolation
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// ValidationFields builds a validation error from field violations,
// joining them into a readable message.
func ValidationFields(fields []FieldViolation) *Error {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return &Error{
		Kind:    KindValidation,
		Message: strings.Join(parts, "; "),
		Fields:  fields,
	}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// KindOf extracts the kind from any error chain. Unclassified errors
// are treated as storage failures so nothing leaks as a panic or a
// bare 500 without a category.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
