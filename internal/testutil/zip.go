// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

// ZipEntry is one member of a zip fixture. Names ending in "/" are
// directory entries and ignore Body.
type ZipEntry struct {
	Name string
	Body string
}

// BuildZip returns the bytes of a zip holding entries in the given order.
func BuildZip(t testing.TB, entries ...ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		if strings.HasSuffix(e.Name, "/") {
			if _, err := zw.Create(e.Name); err != nil {
				t.Fatalf("failed to add directory %s: %v", e.Name, err)
			}
			continue
		}
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("failed to add entry %s: %v", e.Name, err)
		}
		if _, err := io.WriteString(w, e.Body); err != nil {
			t.Fatalf("failed to write entry %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish zip: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes a zip fixture to path on fsys, creating parent directories.
func WriteZip(t testing.TB, fsys afero.Fs, path string, entries ...ZipEntry) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fsys, path, BuildZip(t, entries...), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadZip returns every entry of the zip at path on fsys, keyed by entry
// name. Directory entries map to "".
func ReadZip(t testing.TB, fsys afero.Fs, path string) map[string]string {
	t.Helper()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("%s is not a valid zip: %v", path, err)
	}

	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			out[f.Name] = ""
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open entry %s: %v", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("failed to read entry %s: %v", f.Name, err)
		}
		out[f.Name] = string(body)
	}
	return out
}
