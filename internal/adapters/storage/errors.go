package storage

import (
	"errors"
	"fmt"
)

// Common storage error types
var (
	ErrInvalidKey         = errors.New("invalid storage key")
	ErrInvalidData        = errors.New("invalid data")
	ErrStorageUnavailable = errors.New("storage service unavailable")
	ErrThrottled          = errors.New("request throttled")
	ErrTimeout            = errors.New("operation timeout")
)

// StorageError represents a storage operation error with additional context
type StorageError struct {
	Op        string // Operation that failed (e.g., "PutMessage", "ListRsvps")
	Key       string // Item key involved in the operation
	Err       error  // Underlying error
	Retryable bool   // Whether the operation can be retried
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s operation failed for key '%s': %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s operation failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error indicates a retryable condition
func (e *StorageError) IsRetryable() bool {
	return e.Retryable
}

// NewStorageError creates a new StorageError
func NewStorageError(op, key string, err error, retryable bool) *StorageError {
	return &StorageError{
		Op:        op,
		Key:       key,
		Err:       err,
		Retryable: retryable,
	}
}

// IsRetryable returns true if the error indicates a retryable condition
func IsRetryable(err error) bool {
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return storageErr.IsRetryable()
	}

	return errors.Is(err, ErrStorageUnavailable) ||
		errors.Is(err, ErrThrottled) ||
		errors.Is(err, ErrTimeout)
}
