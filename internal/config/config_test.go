// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/scstools/scsup/internal/issue"
	"github.com/scstools/scsup/internal/testutil"
	"github.com/scstools/scsup/pkg/types"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.OutputExtension != ".scs" {
		t.Errorf("OutputExtension = %q, want .scs", cfg.OutputExtension)
	}
	if cfg.ManifestName != "manifest.sii" {
		t.Errorf("ManifestName = %q, want manifest.sii", cfg.ManifestName)
	}
	if cfg.VersionKey != "mod_version" {
		t.Errorf("VersionKey = %q, want mod_version", cfg.VersionKey)
	}
	if cfg.ScratchPrefix != "scs_updater_" {
		t.Errorf("ScratchPrefix = %q, want scs_updater_", cfg.ScratchPrefix)
	}
	if cfg.CompressionLevel != DefaultCompressionLevel {
		t.Errorf("CompressionLevel = %d, want %d", cfg.CompressionLevel, DefaultCompressionLevel)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto || cfg.UI.Verbose || cfg.UI.AssumeYes {
		t.Errorf("UI = %+v, want auto scheme and both flags off", cfg.UI)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("DefaultConfig() is invalid: %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux-only")
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath() returned error: %v", err)
	}
	if want := filepath.Join(xdg, AppName, "config.cue"); path != want {
		t.Errorf("ConfigFilePath() = %s, want %s", path, want)
	}
}

func TestConfigDir_Override(t *testing.T) {
	SetConfigDirOverride("/dir/override")
	t.Cleanup(Reset)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/dir/override" {
		t.Errorf("ConfigDir() = %s, want /dir/override", dir)
	}

	Reset()
	if configDirOverride != "" {
		t.Error("configDirOverride should be empty after Reset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	loaded, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if loaded.Source != "" {
		t.Errorf("Source = %q, want empty without a config file", loaded.Source)
	}
	if *loaded.Config != *DefaultConfig() {
		t.Errorf("Config = %+v, want defaults", loaded.Config)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
output_extension: ".zip"
compression_level: 9
ui: {
	verbose: true
}
`)

	loaded, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if loaded.Source != path {
		t.Errorf("Source = %q, want %q", loaded.Source, path)
	}
	cfg := loaded.Config
	if cfg.OutputExtension != ".zip" || cfg.CompressionLevel != 9 || !cfg.UI.Verbose {
		t.Errorf("Config = %+v", cfg)
	}
	if cfg.ManifestName != "manifest.sii" || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("unset fields should keep defaults, got %+v", cfg)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `version_key: "package_version"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: types.FilesystemPath(path)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VersionKey != "package_version" {
		t.Errorf("VersionKey = %q, want package_version", cfg.VersionKey)
	}
}

func TestLoad_WorkingDirectoryFallback(t *testing.T) {
	wd := t.TempDir()
	path := writeConfig(t, wd, `manifest_name: "Manifest.sii"`)
	defer testutil.MustChdir(t, wd)()

	// An empty config dir falls through to ./config.cue.
	loaded, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if loaded.Config.ManifestName != "Manifest.sii" {
		t.Errorf("ManifestName = %q, want Manifest.sii", loaded.Config.ManifestName)
	}
	if filepath.Base(loaded.Source) != filepath.Base(path) {
		t.Errorf("Source = %q, want %s", loaded.Source, filepath.Base(path))
	}

	// The config dir wins over the working directory.
	dir := t.TempDir()
	writeConfig(t, dir, `manifest_name: "other.sii"`)
	loaded, err = LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if loaded.Config.ManifestName != "other.sii" {
		t.Errorf("ManifestName = %q, want other.sii", loaded.Config.ManifestName)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.cue")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: types.FilesystemPath(missing)})
	if err == nil {
		t.Fatal("Load() should fail for a missing explicit file")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error should be *issue.ActionableError, got %T", err)
	}
	if ae.Issue != issue.ConfigLoadFailedId || !ae.HasSuggestions() {
		t.Errorf("ActionableError = %+v", ae)
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("error = %v", err)
	}
}

func TestLoad_CompressionLevelBounds(t *testing.T) {
	for _, level := range []CompressionLevel{MinCompressionLevel, DefaultCompressionLevel, 0, MaxCompressionLevel} {
		dir := t.TempDir()
		writeConfig(t, dir, fmt.Sprintf("compression_level: %d", int(level)))

		cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
		if err != nil {
			t.Fatalf("Load() with compression_level %d error = %v", level, err)
		}
		if cfg.CompressionLevel != level {
			t.Errorf("CompressionLevel = %d, want %d", cfg.CompressionLevel, level)
		}
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{"level out of range", `compression_level: 12`, "compression_level"},
		{"level below huffman only", `compression_level: -3`, "compression_level"},
		{"extension without dot", `output_extension: "scs"`, "output_extension"},
		{"manifest with directory", `manifest_name: "def/manifest.sii"`, "manifest_name"},
		{"unknown color scheme", `ui: color_scheme: "neon"`, "color_scheme"},
		{"unknown field", `container_engine: "docker"`, "container_engine"},
		{"wrong type", `ui: verbose: "yes"`, "verbose"},
		{"syntax error", `output_extension: ".scs`, "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantIn)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `compression_level: 1`)
	t.Setenv("SCSUP_COMPRESSION_LEVEL", "7")
	t.Setenv("SCSUP_UI_ASSUME_YES", "true")
	t.Setenv("SCSUP_SCRATCH_PREFIX", "tmp_")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CompressionLevel != 7 {
		t.Errorf("CompressionLevel = %d, want 7 from the environment", cfg.CompressionLevel)
	}
	if !cfg.UI.AssumeYes {
		t.Error("AssumeYes should be true from the environment")
	}
	if cfg.ScratchPrefix != "tmp_" {
		t.Errorf("ScratchPrefix = %q, want tmp_", cfg.ScratchPrefix)
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	defer testutil.MustSetenv(t, "SCSUP_COMPRESSION_LEVEL", "42")()

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if !errors.Is(err, ErrInvalidCompressionLevel) {
		t.Fatalf("Load() error = %v, want ErrInvalidCompressionLevel", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should also wrap ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputExtension = ".zip"
	cfg.CompressionLevel = 0
	cfg.UI.ColorScheme = ColorSchemeLight
	cfg.UI.AssumeYes = true

	dir := t.TempDir()
	writeConfig(t, dir, GenerateCUE(cfg))

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("generated CUE does not load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, created, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if !created || path != filepath.Join(dir, "config.cue") {
		t.Errorf("CreateDefaultConfig() = %q, %v", path, created)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `manifest_name: "manifest.sii"`) {
		t.Errorf("default config missing manifest_name:\n%s", data)
	}

	if err := os.WriteFile(path, []byte(`ui: verbose: true`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, created, err = CreateDefaultConfig()
	if err != nil || created {
		t.Errorf("second CreateDefaultConfig() = created %v, err %v; want existing file kept", created, err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != `ui: verbose: true` {
		t.Error("existing config was overwritten")
	}
}
