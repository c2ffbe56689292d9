// SPDX-License-Identifier: MPL-2.0

package pipeline

const (
	// StateIdle is the state before a run starts.
	StateIdle State = iota
	// StateCreatingScratch allocates the scratch directory.
	StateCreatingScratch
	// StateExtracting unpacks the input archive into the scratch directory.
	StateExtracting
	// StateLocatingManifest searches the scratch directory for the manifest.
	StateLocatingManifest
	// StatePatching rewrites the manifest's version field.
	StatePatching
	// StatePackaging writes the output archive.
	StatePackaging
	// StateCleaningUp removes the scratch directory.
	StateCleaningUp
	// StateSucceeded is terminal; the run produced an output archive.
	StateSucceeded
	// StateFailed is terminal; the run was aborted.
	StateFailed
)

// State is a step of a pipeline run.
type State int

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCreatingScratch:
		return "creating-scratch"
	case StateExtracting:
		return "extracting"
	case StateLocatingManifest:
		return "locating-manifest"
	case StatePatching:
		return "patching"
	case StatePackaging:
		return "packaging"
	case StateCleaningUp:
		return "cleaning-up"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether s ends a run.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}
