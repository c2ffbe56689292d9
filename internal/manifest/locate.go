// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultName is the manifest file name used by SCS mods.
const DefaultName = "manifest.sii"

// Locate returns the path of the first file beneath root whose name equals
// name, ignoring case.
//
// The walk is top-down: the files of a directory are checked before any of
// its subdirectories is entered, and siblings are visited in name order. A
// well-formed mod has exactly one manifest; when there are several, the first
// one reached this way wins. Subdirectories that cannot be read are skipped.
func Locate(fsys afero.Fs, root, name string) (string, error) {
	entries, err := afero.ReadDir(fsys, root)
	if err != nil {
		return "", err
	}

	if found := locateIn(fsys, root, entries, name); found != "" {
		return found, nil
	}
	return "", &NotFoundError{Name: name, Root: root}
}

func locateIn(fsys afero.Fs, dir string, entries []os.FileInfo, name string) string {
	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
			continue
		}
		if strings.EqualFold(entry.Name(), name) {
			return filepath.Join(dir, entry.Name())
		}
	}

	for _, sub := range subdirs {
		children, err := afero.ReadDir(fsys, sub)
		if err != nil {
			continue
		}
		if found := locateIn(fsys, sub, children, name); found != "" {
			return found
		}
	}
	return ""
}
