// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"path/filepath"
	"strings"
)

const (
	// KindUnsupported is any extension the tool does not read.
	KindUnsupported Kind = iota
	// KindZip covers ".scs" and ".zip".
	KindZip
	// KindRar covers ".rar".
	KindRar
)

const (
	// ExtSCS is the native SCS mod extension (a zip under another name).
	ExtSCS = ".scs"
	// ExtZip is the plain zip extension, and the native extension of packaged output.
	ExtZip = ".zip"
	// ExtRar is the RAR extension.
	ExtRar = ".rar"
)

// Kind identifies the container family of an archive.
type Kind int

// String returns the lower-case name of the container family.
func (k Kind) String() string {
	switch k {
	case KindZip:
		return "zip"
	case KindRar:
		return "rar"
	default:
		return "unsupported"
	}
}

// DetectKind returns the container family implied by the extension of path.
// The comparison is case-insensitive.
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtSCS, ExtZip:
		return KindZip
	case ExtRar:
		return KindRar
	default:
		return KindUnsupported
	}
}

// SupportedExtensions lists the recognized input extensions in display order.
func SupportedExtensions() []string {
	return []string{ExtSCS, ExtZip, ExtRar}
}
