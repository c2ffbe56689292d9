// SPDX-License-Identifier: MPL-2.0

//go:build norar

package archive

import "testing"

func TestDefaultExtractors_WithoutRar(t *testing.T) {
	t.Parallel()

	ex := DefaultExtractors()
	if ex.Has(KindRar) {
		t.Fatal("DefaultExtractors() should not include RAR when built with the norar tag")
	}
	if !ex.Has(KindZip) {
		t.Fatal("DefaultExtractors() should always include the zip extractor")
	}
}
