package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyArchived = errors.New("already archived")
	ErrNotArchived     = errors.New("not archived")

	// ErrConsistency marks a disagreement between the volume_items join table
	// and a work's compiled_parent_id column.
	ErrConsistency = errors.New("parent link inconsistency")
)

// ValidationError rejects bad input before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
