// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestFieldValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		isValid func() (bool, []error)
		wantErr error
	}{
		{"scs extension", OutputExtension(".scs").IsValid, nil},
		{"zip extension", OutputExtension(".zip").IsValid, nil},
		{"bare extension", OutputExtension("scs").IsValid, ErrInvalidOutputExtension},
		{"dot only", OutputExtension(".").IsValid, ErrInvalidOutputExtension},
		{"extension with slash", OutputExtension("./scs").IsValid, ErrInvalidOutputExtension},
		{"manifest", ManifestName("manifest.sii").IsValid, nil},
		{"blank manifest", ManifestName("  ").IsValid, ErrInvalidManifestName},
		{"manifest with dir", ManifestName(`def\manifest.sii`).IsValid, ErrInvalidManifestName},
		{"key", VersionKey("mod_version").IsValid, nil},
		{"key with space", VersionKey("mod version").IsValid, ErrInvalidVersionKey},
		{"key with digit first", VersionKey("1version").IsValid, ErrInvalidVersionKey},
		{"empty prefix", ScratchPrefix("").IsValid, nil},
		{"prefix", ScratchPrefix("scs_updater_").IsValid, nil},
		{"prefix with slash", ScratchPrefix("a/b").IsValid, ErrInvalidScratchPrefix},
		{"huffman only", CompressionLevel(-2).IsValid, nil},
		{"store", CompressionLevel(0).IsValid, nil},
		{"best", CompressionLevel(9).IsValid, nil},
		{"too low", CompressionLevel(-3).IsValid, ErrInvalidCompressionLevel},
		{"too high", CompressionLevel(10).IsValid, ErrInvalidCompressionLevel},
		{"dark", ColorScheme("dark").IsValid, nil},
		{"neon", ColorScheme("neon").IsValid, ErrInvalidColorScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.isValid()
			if tt.wantErr == nil {
				if !valid || len(errs) != 0 {
					t.Errorf("IsValid() = %v, %v; want valid", valid, errs)
				}
				return
			}
			if valid || len(errs) != 1 {
				t.Fatalf("IsValid() = %v, %v; want one error", valid, errs)
			}
			if !errors.Is(errs[0], tt.wantErr) {
				t.Errorf("error %v should wrap %v", errs[0], tt.wantErr)
			}
		})
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CompressionLevel = 11
	cfg.UI.ColorScheme = "neon"

	valid, errs := cfg.IsValid()
	if valid || len(errs) != 1 {
		t.Fatalf("IsValid() = %v, %v", valid, errs)
	}

	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("error should be *InvalidConfigError, got %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 2 {
		t.Errorf("got %d field errors, want 2", len(cfgErr.FieldErrors))
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("error should wrap ErrInvalidConfig")
	}

	var uiErr *InvalidUIConfigError
	if !errors.As(cfgErr.FieldErrors[1], &uiErr) || !errors.Is(uiErr.FieldErrors[0], ErrInvalidColorScheme) {
		t.Errorf("second field error = %v, want a UI color scheme error", cfgErr.FieldErrors[1])
	}
}
