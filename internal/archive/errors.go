// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat is wrapped by UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported archive format")
	// ErrCapabilityMissing is wrapped by CapabilityMissingError.
	ErrCapabilityMissing = errors.New("extraction capability missing")
	// ErrExtractionFailed is wrapped by ExtractionError.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrPackagingFailed is wrapped by PackagingError.
	ErrPackagingFailed = errors.New("packaging failed")
	// ErrRenameFailed is wrapped by RenameError.
	ErrRenameFailed = errors.New("rename failed")
)

type (
	// UnsupportedFormatError is returned for an input whose extension is not
	// one of SupportedExtensions.
	UnsupportedFormatError struct {
		Path string
	}

	// CapabilityMissingError is returned when the container family is known
	// but no extractor for it is available in this build.
	CapabilityMissingError struct {
		Kind Kind
	}

	// ExtractionError is returned when an archive is malformed, corrupt or
	// contains an entry that cannot be written beneath the destination.
	ExtractionError struct {
		Path string
		Err  error
	}

	// PackagingError is returned when the output container cannot be written.
	PackagingError struct {
		Path string
		Err  error
	}

	// RenameError is returned when the packaged container cannot be moved to
	// its declared name.
	RenameError struct {
		From string
		To   string
		Err  error
	}
)

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported archive format %q: expected one of %s",
		e.Path, strings.Join(SupportedExtensions(), ", "))
}

// Unwrap returns ErrUnsupportedFormat for errors.Is() compatibility.
func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// Error implements the error interface.
func (e *CapabilityMissingError) Error() string {
	name := strings.ToUpper(e.Kind.String())
	return fmt.Sprintf("%s support not available: this build of scsup was compiled without the %s extractor",
		name, e.Kind)
}

// Unwrap returns ErrCapabilityMissing for errors.Is() compatibility.
func (e *CapabilityMissingError) Unwrap() error { return ErrCapabilityMissing }

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrExtractionFailed and the underlying cause.
func (e *ExtractionError) Unwrap() []error { return []error{ErrExtractionFailed, e.Err} }

// Error implements the error interface.
func (e *PackagingError) Error() string {
	return fmt.Sprintf("failed to package %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrPackagingFailed and the underlying cause.
func (e *PackagingError) Unwrap() []error { return []error{ErrPackagingFailed, e.Err} }

// Error implements the error interface.
func (e *RenameError) Error() string {
	return fmt.Sprintf("failed to rename %s to %s: %v", e.From, e.To, e.Err)
}

// Unwrap exposes both ErrRenameFailed and the underlying cause.
func (e *RenameError) Unwrap() []error { return []error{ErrRenameFailed, e.Err} }
