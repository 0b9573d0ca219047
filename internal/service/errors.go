package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service either wraps one of these
// or is an unexpected failure from a collaborator.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrTooManyAttempts = errors.New("too many attempts")
)

// Error carries a client-facing message and optional payload on top of a kind.
type Error struct {
	Kind    error
	Message string
	Data    any
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrInvalidCredentials = &Error{Kind: ErrUnauthenticated, Message: "Invalid email or password"}
	ErrEmailTaken         = &Error{Kind: ErrValidation, Message: "User already exists with this email"}
)
