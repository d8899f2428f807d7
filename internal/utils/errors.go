// Package utils carries the small ambient helpers shared across the
// store's internal packages: error wrapping and buffer reuse. Grounded
// on scigolib-hdf5's internal/utils package.
package utils

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (often wrapped) by the store's internal
// packages. Callers compare against these with errors.Is.
var (
	ErrOutOfMemory    = errors.New("hashdag: out of pool memory")
	ErrInvalidPointer = errors.New("hashdag: invalid pointer")
	ErrLevelMismatch  = errors.New("hashdag: level mismatch")
	ErrCorruptData    = errors.New("hashdag: corrupt sparse grid data")
)

// StoreError annotates a sentinel error with the operation that raised
// it, mirroring scigolib-hdf5's H5Error.
type StoreError struct {
	Context string
	Cause   error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Context, e.Cause) }

func (e *StoreError) Unwrap() error { return e.Cause }

// WrapError attaches context to cause, returning nil if cause is nil.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &StoreError{Context: context, Cause: cause}
}
