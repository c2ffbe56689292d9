// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// builtinExtractors holds the extractors compiled into this build. Optional
// back-ends add themselves from build-tagged files.
var builtinExtractors = map[Kind]Extractor{
	KindZip: extractZip,
}

type (
	// Extractor writes every entry of the archive at src beneath destDir.
	Extractor func(ctx context.Context, fsys afero.Fs, src, destDir string) error

	// Extractors maps a container family to the extractor that reads it.
	// A family without an entry is a missing capability.
	Extractors map[Kind]Extractor

	// Reader extracts input archives using a fixed set of extractors.
	Reader struct {
		fs         afero.Fs
		extractors Extractors
	}
)

// DefaultExtractors returns a copy of the extractors compiled into this build.
func DefaultExtractors() Extractors {
	out := make(Extractors, len(builtinExtractors))
	for kind, fn := range builtinExtractors {
		out[kind] = fn
	}
	return out
}

// Has reports whether an extractor is registered for kind.
func (e Extractors) Has(kind Kind) bool {
	return e[kind] != nil
}

// NewReader creates a Reader over fsys. A nil extractors map means
// DefaultExtractors.
func NewReader(fsys afero.Fs, extractors Extractors) *Reader {
	if extractors == nil {
		extractors = DefaultExtractors()
	}
	return &Reader{fs: fsys, extractors: extractors}
}

// Extract detects the container family of src and extracts it into destDir,
// which must already exist. It returns the detected kind.
func (r *Reader) Extract(ctx context.Context, src, destDir string) (Kind, error) {
	kind := DetectKind(src)
	if kind == KindUnsupported {
		return kind, &UnsupportedFormatError{Path: src}
	}

	extract := r.extractors[kind]
	if extract == nil {
		return kind, &CapabilityMissingError{Kind: kind}
	}

	if err := extract(ctx, r.fs, src, destDir); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return kind, err
		}
		return kind, &ExtractionError{Path: src, Err: err}
	}
	return kind, nil
}

// entryPath resolves an archive entry name beneath destDir and rejects names
// that would escape it.
func entryPath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid path in archive: %s", name)
	}
	return target, nil
}

// writeEntry copies r into a new file at path, creating parent directories.
func writeEntry(fsys afero.Fs, path string, mode fs.FileMode, r io.Reader) (err error) {
	if err = fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entryPerm(mode))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	//nolint:gosec // G110: archives are user-supplied mods; size is bounded by the input
	_, err = io.Copy(f, r)
	return err
}

// entryPerm keeps the stored permission bits but always leaves the owner
// able to read and write the extracted file, since the manifest is patched
// in place.
func entryPerm(mode fs.FileMode) fs.FileMode {
	return mode.Perm() | 0o600
}
