// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

func extractZip(ctx context.Context, fsys afero.Fs, src, destDir string) (err error) {
	f, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("failed to open ZIP file: %w", err)
	}

	for _, file := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, pathErr := entryPath(destDir, file.Name)
		if pathErr != nil {
			return pathErr
		}

		if file.FileInfo().IsDir() {
			if mkdirErr := fsys.MkdirAll(target, 0o755); mkdirErr != nil {
				return fmt.Errorf("failed to create directory %s: %w", file.Name, mkdirErr)
			}
			continue
		}

		if extractErr := extractZipFile(fsys, file, target); extractErr != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, extractErr)
		}
	}

	return nil
}

func extractZipFile(fsys afero.Fs, file *zip.File, target string) (err error) {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return writeEntry(fsys, target, file.Mode(), rc)
}

// writeZip writes the contents of srcDir to w as a deflate zip. Entry names
// are relative to srcDir, directories get their own entries (so empty ones
// survive the round trip) and the walk is lexical, which keeps the output
// order stable across runs.
func writeZip(ctx context.Context, fsys afero.Fs, srcDir string, w io.Writer, level int) (err error) {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return afero.Walk(fsys, srcDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(srcDir, path)
		if relErr != nil {
			return fmt.Errorf("failed to get relative path: %w", relErr)
		}
		if relPath == "." {
			return nil
		}

		header, headerErr := zip.FileInfoHeader(info)
		if headerErr != nil {
			return fmt.Errorf("failed to create file header: %w", headerErr)
		}
		header.Name = filepath.ToSlash(relPath)

		if info.IsDir() {
			header.Name += "/"
			header.Method = zip.Store
			if _, createErr := zw.CreateHeader(header); createErr != nil {
				return fmt.Errorf("failed to create directory entry: %w", createErr)
			}
			return nil
		}

		// Symlinks and device files have no place in a mod archive.
		if !info.Mode().IsRegular() {
			return nil
		}

		header.Method = zip.Deflate
		entry, createErr := zw.CreateHeader(header)
		if createErr != nil {
			return fmt.Errorf("failed to create ZIP entry: %w", createErr)
		}
		return copyInto(fsys, path, entry)
	})
}

func copyInto(fsys afero.Fs, path string, w io.Writer) (err error) {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write file data: %w", err)
	}
	return nil
}
