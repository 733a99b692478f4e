package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a service error so the HTTP layer can pick a status code
// without string matching.
type Kind int

const (
	// KindStore is an unexpected storage or infrastructure failure.
	KindStore Kind = iota
	// KindValidation is a request the caller can fix.
	KindValidation
	// KindNotFound means the record does not exist.
	KindNotFound
	// KindUnauthorized means the caller may not act on the record.
	KindUnauthorized
)

// Error carries a kind alongside a caller-safe message. The wrapped error, if
// any, is for logs only and never reaches a response body.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, defaulting to KindStore for errors that did
// not come from this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

// Validation builds a caller-fixable error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Validationf builds a caller-fixable error with a formatted message.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a missing-record error for the named resource.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Unauthorized builds an ownership or authentication error.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Store wraps an unexpected storage failure.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Message: "storage failure", Err: err}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsUnauthorized reports whether err is an ownership error.
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}
