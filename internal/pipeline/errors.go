// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"

	"github.com/scstools/scsup/internal/archive"
	"github.com/scstools/scsup/internal/manifest"
	"github.com/scstools/scsup/pkg/types"
)

const (
	// KindUnexpectedFailure is anything not classified below.
	KindUnexpectedFailure Kind = iota
	// KindCapabilityMissing means optional extraction support is absent.
	KindCapabilityMissing
	// KindUnsupportedFormat means the input extension is not recognized.
	KindUnsupportedFormat
	// KindExtractionFailed means the input archive is malformed or corrupt.
	KindExtractionFailed
	// KindManifestNotFound means the archive holds no manifest.
	KindManifestNotFound
	// KindWriteFailed means the patched manifest could not be written.
	KindWriteFailed
	// KindPackagingFailed means the output archive could not be written.
	KindPackagingFailed
	// KindRenameFailed means the output archive could not be moved into place.
	KindRenameFailed
	// KindInvalidRequest means the input path or version is empty.
	KindInvalidRequest
)

// ErrUnexpectedFailure marks failures outside the classified kinds, such as a
// scratch directory that cannot be created or a panic inside a step.
var ErrUnexpectedFailure = errors.New("unexpected failure")

type (
	// Kind classifies why a run failed.
	Kind int

	// Error is the failure carried by a Failed result. Its message is the
	// underlying error's message, unchanged.
	Error struct {
		Kind Kind
		// State is the step that was running when the failure happened.
		State State
		Err   error
	}
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindCapabilityMissing:
		return "CapabilityMissing"
	case KindUnsupportedFormat:
		return "UnsupportedFormat"
	case KindExtractionFailed:
		return "ExtractionFailed"
	case KindManifestNotFound:
		return "ManifestNotFound"
	case KindWriteFailed:
		return "WriteFailed"
	case KindPackagingFailed:
		return "PackagingFailed"
	case KindRenameFailed:
		return "RenameFailed"
	case KindInvalidRequest:
		return "InvalidRequest"
	default:
		return "UnexpectedFailure"
	}
}

// Classify maps err onto the failure taxonomy.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, archive.ErrCapabilityMissing):
		return KindCapabilityMissing
	case errors.Is(err, archive.ErrUnsupportedFormat):
		return KindUnsupportedFormat
	case errors.Is(err, archive.ErrExtractionFailed):
		return KindExtractionFailed
	case errors.Is(err, manifest.ErrManifestNotFound):
		return KindManifestNotFound
	case errors.Is(err, manifest.ErrWriteFailed):
		return KindWriteFailed
	case errors.Is(err, archive.ErrPackagingFailed):
		return KindPackagingFailed
	case errors.Is(err, archive.ErrRenameFailed):
		return KindRenameFailed
	case errors.Is(err, manifest.ErrInvalidVersion), errors.Is(err, types.ErrInvalidFilesystemPath):
		return KindInvalidRequest
	default:
		return KindUnexpectedFailure
	}
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Err }
