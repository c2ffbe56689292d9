// SPDX-License-Identifier: MPL-2.0

// Package manifest finds the mod manifest inside an extracted archive and
// rewrites its version field.
//
// The manifest is plain text. Only one field is understood: a key (by default
// "mod_version", matched case-insensitively), a colon and a double-quoted
// value. Everything else in the file is carried through untouched, with one
// exception: byte sequences that are not valid UTF-8 are dropped on read.
package manifest
