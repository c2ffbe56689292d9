// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spf13/afero"
)

// DefaultKey is the manifest field holding the mod version.
const DefaultKey = "mod_version"

var defaultField = fieldPattern(DefaultKey)

// fieldPattern matches `key: "value"` anywhere in the text. Group 1 is the
// key with its separator and opening quote, group 2 the value, group 3 the
// closing quote. Whitespace around the colon may span lines.
func fieldPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(key) + `\s*:\s*")([^"]*)(")`)
}

func patternFor(key string) *regexp.Regexp {
	if key == DefaultKey {
		return defaultField
	}
	return fieldPattern(key)
}

// PatchText sets the quoted value of key in text to v and reports whether an
// existing field was rewritten.
//
// Every occurrence of the field is rewritten, keeping the key's original
// casing and the whitespace around the colon. When there is none, trailing
// whitespace is trimmed and `key: "v"` is appended on its own line, followed
// by a single newline.
func PatchText(text, key string, v Version) (string, bool) {
	re := patternFor(key)
	if re.MatchString(text) {
		replacement := "${1}" + strings.ReplaceAll(string(v), "$", "$$") + "${3}"
		return re.ReplaceAllString(text, replacement), true
	}
	return strings.TrimRightFunc(text, unicode.IsSpace) + "\n" + key + `: "` + string(v) + "\"\n", false
}

// ReadText reads the file at path as UTF-8 text, dropping any byte sequence
// that does not decode.
func ReadText(fsys afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

// Patch rewrites the version field of the manifest at path in place and
// reports whether an existing field was rewritten (false means appended).
// The only failures are I/O failures, returned as *WriteError.
func Patch(fsys afero.Fs, path, key string, v Version) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return false, &WriteError{Path: path, Err: err}
	}

	text, err := ReadText(fsys, path)
	if err != nil {
		return false, &WriteError{Path: path, Err: err}
	}

	patched, replaced := PatchText(text, key, v)
	if err := afero.WriteFile(fsys, path, []byte(patched), info.Mode().Perm()); err != nil {
		return false, &WriteError{Path: path, Err: err}
	}
	return replaced, nil
}

// ReadVersion returns the value of the first key field in the manifest at
// path. The boolean is false when the manifest has no such field.
func ReadVersion(fsys afero.Fs, path, key string) (Version, bool, error) {
	text, err := ReadText(fsys, path)
	if err != nil {
		return "", false, err
	}
	match := patternFor(key).FindStringSubmatch(text)
	if match == nil {
		return "", false, nil
	}
	return Version(match[2]), true, nil
}
