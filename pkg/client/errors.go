package client

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies an API failure so callers can branch without inspecting
// HTTP status codes.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindUnauthorized    Kind = "unauthorized"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindInvalidState    Kind = "invalid_state"
	KindValidation      Kind = "validation"
	KindNetwork         Kind = "network"
	KindInternal        Kind = "internal"
)

// Error is the single error type returned by the client.
type Error struct {
	Kind    Kind
	Message string

	// ConflictingSeatIDs is populated for KindConflict on reserve, naming
	// the seats that were taken by another user.
	ConflictingSeatIDs []uuid.UUID

	cause error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// AsError unwraps err into a client Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), cause: err}
}
