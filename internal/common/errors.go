// Package common defines shared constants, sentinel errors and small helpers
// used across the server and client layers of the task manager. Callers
// should use errors.Is to match the error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorForbidden          = errors.New("forbidden")

	// Input errors, rejected before reaching the services.
	ErrorValidation = errors.New("validation error")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Task-specific errors. They wrap the generic kinds so the transport
	// can map them with errors.Is while keeping a precise message.
	ErrTaskNotFound   = wrapKind(ErrorNotFound, "task not found")
	ErrTaskForbidden  = wrapKind(ErrorForbidden, "access to this task is forbidden")
	ErrEmailTaken     = wrapKind(ErrorAlreadyExists, "email already exists")
	ErrSessionMissing = errors.New("not signed in")
)

// kindError is an error with its own message that still matches its kind.
type kindError struct {
	kind error
	msg  string
}

func wrapKind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
