// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into guidance a user can act on.
//
// ActionableError pairs an error with the operation that failed, the file
// involved and suggestions. The catalog in issue.go holds a Markdown page per
// known failure, rendered for the terminal with glamour.
package issue
