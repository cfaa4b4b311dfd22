// Package apperr classifies request failures and maps them to HTTP statuses.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the class of a request failure.
type Kind int

const (
	Internal Kind = iota
	Unauthorized
	Validation
	InvalidOperation
	Duplicate
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Validation:
		return "validation"
	case InvalidOperation:
		return "invalid_operation"
	case Duplicate:
		return "duplicate"
	case NotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for k.
func (k Kind) Status() int {
	switch k {
	case Unauthorized:
		return http.StatusUnauthorized
	case Validation, InvalidOperation, Duplicate:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is safe to show to the caller; Err
// is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies err under kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Unauthorizedf(message string) *Error { return New(Unauthorized, message) }
func Validationf(message string) *Error   { return New(Validation, message) }
func NotFoundf(message string) *Error     { return New(NotFound, message) }

// KindOf reports the kind of err, or Internal when err is unclassified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}
