// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/scstools/scsup/internal/issue"
	"github.com/scstools/scsup/internal/pipeline"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer: a pre-styled message and a catalog page. Always create via
// newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// pipelineFailure turns a failed pipeline result into the error a command
// returns: a ServiceError with the matching catalog page, inside an
// ExitError with the matching status.
func pipelineFailure(pe *pipeline.Error) error {
	styled := ErrorStyle.Render("Error: ") + pe.Error() + "\n"
	return &ExitError{
		Code: exitCodeFor(pe.Kind),
		Err:  newServiceError(pe, issueFor(pe.Kind), styled),
	}
}

// issueFor returns the catalog page explaining a pipeline failure.
func issueFor(kind pipeline.Kind) issue.Id {
	switch kind {
	case pipeline.KindCapabilityMissing:
		return issue.CapabilityMissingId
	case pipeline.KindUnsupportedFormat:
		return issue.UnsupportedFormatId
	case pipeline.KindExtractionFailed:
		return issue.ExtractionFailedId
	case pipeline.KindManifestNotFound:
		return issue.ManifestNotFoundId
	case pipeline.KindWriteFailed:
		return issue.WriteFailedId
	case pipeline.KindPackagingFailed:
		return issue.PackagingFailedId
	case pipeline.KindRenameFailed:
		return issue.RenameFailedId
	case pipeline.KindInvalidRequest:
		return issue.InvalidVersionId
	default:
		return issue.UnexpectedFailureId
	}
}

// renderServiceError prints the styled message, then the catalog page
// rendered with the glamour style at stylePath.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, stylePath string) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(stylePath)
		if renderErr != nil {
			log.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}
