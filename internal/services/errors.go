package services

import (
	"context"
	"errors"
	"fmt"

	"kasir/internal/repositories"
)

// ErrorKind is the machine-readable classification handlers map to HTTP
// statuses. Clients see the kind and a safe message, never internal
// error text.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindStorage    ErrorKind = "storage"
	KindTimeout    ErrorKind = "timeout"
)

// ServiceError is the error type returned by all services.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// NewValidationError reports malformed or missing input. No side effect
// has taken place.
func NewValidationError(msg string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: msg}
}

// NewNotFoundError reports an absent referenced entity.
func NewNotFoundError(msg string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: msg}
}

// NewConflictError reports a uniqueness collision, e.g. a duplicate
// registration email.
func NewConflictError(msg string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: msg}
}

// NewStorageError wraps an infrastructure failure. The operation was
// aborted with no partial commit.
func NewStorageError(err error) *ServiceError {
	return &ServiceError{Kind: KindStorage, Message: "storage failure", Err: err}
}

// NewTimeoutError wraps a deadline expiry.
func NewTimeoutError(err error) *ServiceError {
	return &ServiceError{Kind: KindTimeout, Message: "operation timed out", Err: err}
}

// KindOf extracts the kind from err, defaulting to storage for anything
// unclassified.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStorage
}

// PublicMessage returns the client-safe message for err.
func PublicMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return "internal error"
}

// classify maps lower-layer errors to service kinds. Repository
// not-found and context deadlines keep their meaning; everything else is
// a storage failure.
func classify(err error, notFoundMsg string) *ServiceError {
	var se *ServiceError
	switch {
	case errors.As(err, &se):
		return se
	case errors.Is(err, repositories.ErrNotFound):
		return NewNotFoundError(notFoundMsg)
	case errors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError(err)
	default:
		return NewStorageError(err)
	}
}
