package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain errors so transports can map them to status codes.
type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION_ERROR"
	KindConflict          ErrorKind = "CONFLICT"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindStorage           ErrorKind = "STORAGE_ERROR"
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the error type returned across the service boundary.
type Error struct {
	Kind      ErrorKind
	Message   string
	Retryable bool
	Details   []FieldError
	Err       error
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

// Is matches on kind. A target with a message must match the message too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Sentinels for errors.Is checks.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrStorage           = &Error{Kind: KindStorage}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized}
)

func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewFieldValidationError reports invalid input with per-field details.
func NewFieldValidationError(message string, details []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NewConflictError(message string, retryable bool) *Error {
	return &Error{Kind: KindConflict, Message: message, Retryable: retryable}
}

func NewNotFoundError(entity string, id any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", entity, id)}
}

func NewInvalidTransitionError(from, to POStatus) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot change purchase order status from %s to %s", from, to),
	}
}

func NewStorageError(op string, err error) *Error {
	return &Error{Kind: KindStorage, Message: op + " failed", Err: err}
}

func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// KindOf returns the kind of err, or KindStorage for errors of unknown origin.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStorage
}

// IsRetryable reports whether the whole operation may be retried as is.
func IsRetryable(err error) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Retryable
	}
	return false
}
