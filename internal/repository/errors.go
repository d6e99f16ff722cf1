package repository

import (
	"errors"
	"fmt"
)

// Common repository errors.
var (
	// ErrCardNotFound is returned when no card with the requested ID exists.
	ErrCardNotFound = errors.New("card not found")

	// ErrCorruptCollection is returned alongside an empty collection when the
	// stored payload cannot be decoded.
	ErrCorruptCollection = errors.New("stored card collection is corrupt")
)

// Error adds the failing operation to an underlying storage or codec error.
type Error struct {
	Operation string // e.g. "load", "save", "next_id"
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("card repository %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(operation string, err error) *Error {
	return &Error{Operation: operation, Err: err}
}
