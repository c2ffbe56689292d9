// SPDX-License-Identifier: MPL-2.0

// Package pipeline sequences one mod update: create a scratch directory,
// extract the input archive into it, locate the manifest, patch the version
// and repackage the tree next to the input.
//
// A run is strictly linear and reports each step to a progress callback
// before performing it. It always ends in StateSucceeded (carrying the output
// path) or StateFailed (carrying the error), and the scratch directory is
// removed on every path out of a run that created one.
//
// A Pipeline holds no per-run state and may be reused, but it does not guard
// against overlapping runs on the same input; callers start one run at a time
// per user action.
package pipeline
