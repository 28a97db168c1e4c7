package store

import (
	"errors"
	"fmt"

	"github.com/phrazzld/coursegen-api/internal/domain"
)

// Common store errors used across all store implementations.
var (
	// ErrCourseNotFound is returned when no plan is stored for a topic.
	// It wraps domain.ErrCourseNotFound so callers outside the store layer
	// can match on the domain error alone.
	ErrCourseNotFound = fmt.Errorf("%w: no plan stored for topic", domain.ErrCourseNotFound)

	// ErrStalePlan is returned by Save when a plan with a newer generation is
	// already stored for the same topic. The stored plan is left unchanged.
	ErrStalePlan = errors.New("stale plan")

	// ErrInvalidEntity is returned when a plan fails validation before
	// being stored.
	ErrInvalidEntity = errors.New("invalid entity")
)

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Operation string // The operation that failed (e.g., "save", "get")
	Topic     string // The topic the operation was keyed on
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s plan %q failed: %s: %v", e.Operation, e.Topic, e.Message, e.Err)
	}
	return fmt.Sprintf("%s plan %q failed: %s", e.Operation, e.Topic, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given operation, topic, message, and wrapped error.
func NewStoreError(operation, topic, message string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		Topic:     topic,
		Message:   message,
		Err:       err,
	}
}
