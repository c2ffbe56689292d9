// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/spf13/afero"
)

// PackOptions tunes the output container.
type PackOptions struct {
	// CompressionLevel is a flate level: -2 (Huffman only), -1 (default) or 0-9.
	CompressionLevel int
}

// DefaultPackOptions returns the options used when none are configured.
func DefaultPackOptions() PackOptions {
	return PackOptions{CompressionLevel: flate.DefaultCompression}
}

// Pack compresses the full contents of srcDir into a zip and moves it to
// target, replacing any file already there. The zip is first written under a
// temporary ".zip" name in target's directory; on failure that file is
// removed and nothing at target changes.
func Pack(ctx context.Context, fsys afero.Fs, srcDir, target string, opts PackOptions) (err error) {
	tmp, err := afero.TempFile(fsys, filepath.Dir(target), "."+filepath.Base(target)+"-*"+ExtZip)
	if err != nil {
		return &PackagingError{Path: target, Err: err}
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpPath) // Best-effort cleanup of the partial container
		}
	}()

	if writeErr := writeZip(ctx, fsys, srcDir, tmp, opts.CompressionLevel); writeErr != nil {
		_ = tmp.Close()
		return &PackagingError{Path: target, Err: writeErr}
	}
	if closeErr := tmp.Close(); closeErr != nil {
		return &PackagingError{Path: target, Err: closeErr}
	}

	if renameErr := fsys.Rename(tmpPath, target); renameErr != nil {
		return &RenameError{From: tmpPath, To: target, Err: renameErr}
	}
	return nil
}
