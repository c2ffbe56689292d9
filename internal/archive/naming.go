// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"path/filepath"
	"strings"

	"github.com/scstools/scsup/pkg/types"
)

// OutputPath derives where the repackaged archive of input goes: the input's
// directory, the input's stem plus suffix, and ext.
//
// When the lower-cased stem already ends with suffix the stem is reused as
// is, so a second run with the same version does not stack suffixes. Only
// the stem is lower-cased: a suffix with upper-case letters never matches and
// is appended again. A stem carrying a different version keeps it and gains
// the new one.
func OutputPath(input types.FilesystemPath, suffix, ext string) types.FilesystemPath {
	stem := input.Stem()
	if !strings.HasSuffix(strings.ToLower(stem), suffix) {
		stem += suffix
	}
	return types.FilesystemPath(filepath.Join(input.Dir().String(), stem+ext))
}
