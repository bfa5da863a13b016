package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStateConflict indicates that an operation is not permitted in the
// entity's current state (e.g. posting a journal that is not a draft).
var ErrStateConflict = errors.New("operation not permitted in current state")

// ErrReferentialIntegrity indicates that an operation would break a reference
// between entities (e.g. deactivating an account that journal lines still use).
var ErrReferentialIntegrity = errors.New("referential integrity violation")

// ErrConcurrency indicates that a concurrent writer won a race (e.g. a
// duplicate journal number). Callers may retry the operation.
var ErrConcurrency = errors.New("concurrent modification detected")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-like status code and a
// message suitable for logging.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError constructs an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
