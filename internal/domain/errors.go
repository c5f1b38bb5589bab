package domain

import "errors"

// Error kinds. Match them with errors.Is; the transport layer maps each kind
// to a response status.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// Error carries a caller-facing message alongside its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error { return NewError(ErrValidation, message) }

func Conflict(message string) *Error { return NewError(ErrConflict, message) }

func Unauthenticated(message string) *Error { return NewError(ErrUnauthenticated, message) }

func Forbidden(message string) *Error { return NewError(ErrForbidden, message) }

func NotFound(message string) *Error { return NewError(ErrNotFound, message) }
