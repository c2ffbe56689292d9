// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestNotFound is wrapped by NotFoundError.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrWriteFailed is wrapped by WriteError.
	ErrWriteFailed = errors.New("manifest write failed")
	// ErrInvalidVersion is wrapped by InvalidVersionError.
	ErrInvalidVersion = errors.New("invalid version")
)

type (
	// NotFoundError is returned when no file named Name exists anywhere
	// beneath Root.
	NotFoundError struct {
		Name string
		Root string
	}

	// WriteError is returned when the patched manifest cannot be read back
	// or written in place.
	WriteError struct {
		Path string
		Err  error
	}

	// InvalidVersionError is returned for a version that is empty after
	// trimming.
	InvalidVersionError struct {
		Value Version
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found inside the archive", e.Name)
}

// Unwrap returns ErrManifestNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrManifestNotFound }

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to update %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrWriteFailed and the underlying cause.
func (e *WriteError) Unwrap() []error { return []error{ErrWriteFailed, e.Err} }

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: must be non-empty", string(e.Value))
}

// Unwrap returns ErrInvalidVersion for errors.Is() compatibility.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }
