// SPDX-License-Identifier: MPL-2.0

//go:build !norar

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/scstools/scsup/internal/archive"
	"github.com/scstools/scsup/internal/testutil"
)

func writeRarFixture(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "mod.rar"))
	if err != nil {
		t.Fatal(err)
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_Rar(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writeRarFixture(t, fsys, "/mods/mod.rar")

	p := newTestPipeline(t, fsys, nil)
	res := p.Run(context.Background(), Request{InputPath: "/mods/mod.rar", Version: "1.2.3"}, nil)
	if !res.Succeeded() {
		t.Fatalf("Run() failed: %v", res.Err)
	}
	if res.OutputPath != "/mods/mod_v1_2_3.scs" {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, "/mods/mod_v1_2_3.scs")
	}
	if res.ManifestPath != "mod/manifest.sii" {
		t.Errorf("ManifestPath = %q, want %q", res.ManifestPath, "mod/manifest.sii")
	}

	entries := testutil.ReadZip(t, fsys, res.OutputPath.String())
	if got := entries["mod/manifest.sii"]; !strings.Contains(got, `mod_version: "1.2.3"`) {
		t.Errorf("manifest not patched, got:\n%s", got)
	}
	if entries["mod/def/vehicle.sii"] != "truck\n" {
		t.Errorf("mod/def/vehicle.sii = %q, want %q", entries["mod/def/vehicle.sii"], "truck\n")
	}
	if _, ok := entries["mod/empty/"]; !ok {
		t.Error("empty directory missing from output")
	}
	if exists, _ := afero.Exists(fsys, "/mods/mod.rar"); !exists {
		t.Error("input archive is gone")
	}
	assertNoScratch(t, fsys)
}

func TestInspect_Rar(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writeRarFixture(t, fsys, "/mods/mod.rar")
	p := newTestPipeline(t, fsys, nil)

	got, err := p.Inspect(context.Background(), "/mods/mod.rar")
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if got.Kind != archive.KindRar || got.ManifestPath != "mod/manifest.sii" || got.Version != "1.0" {
		t.Errorf("Inspect() = %+v", got)
	}
	assertNoScratch(t, fsys)
}
