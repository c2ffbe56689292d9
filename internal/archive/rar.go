// SPDX-License-Identifier: MPL-2.0

//go:build !norar

package archive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nwaples/rardecode/v2"
	"github.com/spf13/afero"
)

func init() {
	builtinExtractors[KindRar] = extractRar
}

func extractRar(ctx context.Context, fsys afero.Fs, src, destDir string) (err error) {
	f, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	rr, err := rardecode.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to open RAR file: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		header, nextErr := rr.Next()
		if errors.Is(nextErr, io.EOF) {
			return nil
		}
		if nextErr != nil {
			return fmt.Errorf("failed to read RAR entry: %w", nextErr)
		}

		target, pathErr := entryPath(destDir, header.Name)
		if pathErr != nil {
			return pathErr
		}

		if header.IsDir {
			if mkdirErr := fsys.MkdirAll(target, 0o755); mkdirErr != nil {
				return fmt.Errorf("failed to create directory %s: %w", header.Name, mkdirErr)
			}
			continue
		}

		if writeErr := writeEntry(fsys, target, header.Mode(), rr); writeErr != nil {
			return fmt.Errorf("failed to extract %s: %w", header.Name, writeErr)
		}
	}
}
