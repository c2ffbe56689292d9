// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"

	"github.com/scstools/scsup/internal/archive"
	"github.com/scstools/scsup/internal/manifest"
	"github.com/scstools/scsup/pkg/types"
)

// Inspection describes an archive without changing it.
type Inspection struct {
	Kind archive.Kind
	// ManifestPath is the manifest's path relative to the archive root.
	ManifestPath string
	// Version is the current value of the version field; HasVersion is false
	// when the manifest has no such field.
	Version    manifest.Version
	HasVersion bool
}

// Inspect extracts input into a scratch directory, reads the manifest's
// version field and removes the scratch directory again. Failures, including
// panics inside a stage, are returned as *Error.
func (p *Pipeline) Inspect(ctx context.Context, input types.FilesystemPath) (_ Inspection, err error) {
	r := &run{p: p, logger: p.logger.With("inspect", input.String())}
	defer r.cleanup()
	defer func() {
		if err != nil {
			err = &Error{Kind: Classify(err), State: r.state, Err: err}
		}
	}()
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: panic during %s: %v", ErrUnexpectedFailure, r.state, v)
		}
	}()

	var out Inspection
	if err = input.Validate(); err != nil {
		return out, err
	}

	r.state = StateCreatingScratch
	if err = r.createScratch(); err != nil {
		return out, err
	}

	r.state = StateExtracting
	if out.Kind, err = p.reader.Extract(ctx, input.String(), r.scratch); err != nil {
		return out, err
	}

	r.state = StateLocatingManifest
	path, err := manifest.Locate(p.fs, r.scratch, p.opts.ManifestName)
	if err != nil {
		return out, err
	}
	out.ManifestPath = r.relative(path)

	if out.Version, out.HasVersion, err = manifest.ReadVersion(p.fs, path, p.opts.VersionKey); err != nil {
		return out, err
	}
	return out, nil
}
