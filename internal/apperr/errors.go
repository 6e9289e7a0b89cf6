// Package apperr classifies service-layer failures so the HTTP boundary can map
// them to status codes without inspecting raw error text.
package apperr

import (
	"errors"
	"fmt"
)

// Kinds. Services wrap one of these at the failure site; callers classify with
// errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrTransient          = errors.New("service unavailable")
)

// Error carries a kind plus a caller-safe message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

// New wraps kind with a stable, caller-safe message.
func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with fmt-style formatting.
func Newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Message extracts the caller-safe message from err, or falls back to the kind
// text when err was not built through this package.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	for _, kind := range []error{ErrValidation, ErrConflict, ErrNotFound, ErrInvalidCredentials, ErrForbidden, ErrTransient} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "internal server error"
}
