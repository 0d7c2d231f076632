package domain

import (
	"errors"
	"fmt"
)

// ValidationError indicates a precondition that failed before any storage
// call was made (for example a cabin name that matched no rows).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError indicates an identity-scoped read, update or delete that
// did not resolve to exactly one row.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError indicates a concurrent modification detected at the
// storage layer, such as a uniqueness violation during find-or-create.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError creates a new ConflictError.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// StorageError wraps an underlying storage fault. Error returns only the
// user-safe message; the raw cause stays reachable through Unwrap so the
// call site that created it can log full detail.
type StorageError struct {
	Message string
	cause   error
}

func (e *StorageError) Error() string { return e.Message }

// Unwrap returns the underlying storage fault.
func (e *StorageError) Unwrap() error { return e.cause }

// NewStorageError creates a StorageError with a user-safe message
// wrapping the raw storage fault.
func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{Message: message, cause: cause}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
