// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/scstools/scsup/internal/pipeline"
	"github.com/scstools/scsup/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps a pipeline failure onto the process exit status.
func exitCodeFor(kind pipeline.Kind) types.ExitCode {
	switch kind {
	case pipeline.KindUnsupportedFormat, pipeline.KindCapabilityMissing:
		return types.ExitUnsupportedInput
	case pipeline.KindExtractionFailed, pipeline.KindManifestNotFound:
		return types.ExitBadArchive
	case pipeline.KindWriteFailed, pipeline.KindPackagingFailed, pipeline.KindRenameFailed:
		return types.ExitOutputFailed
	case pipeline.KindInvalidRequest:
		return types.ExitUsage
	default:
		return types.ExitFailure
	}
}
