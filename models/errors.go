// ABOUTME: Typed error taxonomy for document operations
// ABOUTME: Distinguishes validation, lookup, storage and structural failures
package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrStorage           = errors.New("storage failure")
	ErrStructureConflict = errors.New("structure constraint violated")
)

// ValidationError rejects an operation before any state changes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a missing entity. Callers treat it as a silent abort
// when the entity may have been removed concurrently.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError wraps a persistence failure. The operation is not retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// StructureError rejects a structural mutation that would violate a tree
// constraint, such as deleting a non-empty chapter. Nothing is partially
// deleted.
type StructureError struct {
	Message string
}

func (e *StructureError) Error() string { return e.Message }

func (e *StructureError) Is(target error) bool { return target == ErrStructureConflict }
