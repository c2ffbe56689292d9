// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"regexp"
	"strings"
)

// conventionalVersion is the shape SCS mods usually use: 5.16, 5.16.3, 5.16.*
var conventionalVersion = regexp.MustCompile(`^\d+\.\d+(\.\d+)?(\.\*)?$`)

// Version is the opaque version token written into the manifest. It is never
// parsed into components.
type Version string

// ParseVersion trims surrounding whitespace from raw.
func ParseVersion(raw string) Version {
	return Version(strings.TrimSpace(raw))
}

// String returns the version text.
func (v Version) String() string { return string(v) }

// Validate rejects an empty version. Any other text is accepted.
func (v Version) Validate() error {
	if v == "" {
		return &InvalidVersionError{Value: v}
	}
	return nil
}

// IsConventional reports whether v has the usual major.minor[.patch][.*]
// shape. Callers use it to warn, not to reject.
func (v Version) IsConventional() bool {
	return conventionalVersion.MatchString(string(v))
}

// Suffix returns the file name suffix for v: "_v" followed by the version
// with dots replaced by underscores ("5.16.3" -> "_v5_16_3").
func (v Version) Suffix() string {
	return "_v" + strings.ReplaceAll(string(v), ".", "_")
}
