// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/scstools/scsup/internal/config"
	"github.com/scstools/scsup/internal/testutil"
	"github.com/scstools/scsup/pkg/types"
)

const testManifest = `SiiNunit
{
mod_package : .base_mod
{
	package_version: "1.0"
	mod_version: "1.0"
}
}
`

type (
	// staticProvider serves a fixed configuration without touching disk.
	staticProvider struct {
		cfg *config.Config
		err error
	}

	testApp struct {
		*App
		fs     afero.Fs
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	}
)

func (p staticProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.cfg, nil
}

// newTestApp builds an App on an in-memory filesystem holding a zip mod at
// /mods/base_mod.zip. The app is non-interactive unless mutate says otherwise.
func newTestApp(t *testing.T, mutate func(*Dependencies)) *testApp {
	t.Helper()

	fsys := afero.NewMemMapFs()
	testutil.WriteZip(t, fsys, "/mods/base_mod.zip",
		testutil.ZipEntry{Name: "mod/"},
		testutil.ZipEntry{Name: "mod/manifest.sii", Body: testManifest},
		testutil.ZipEntry{Name: "mod/def/vehicle.sii", Body: "truck"},
	)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	deps := Dependencies{
		Config:      staticProvider{cfg: config.DefaultConfig()},
		Fs:          fsys,
		Interactive: func() bool { return false },
		Confirm: func(context.Context, string, string) (bool, error) {
			t.Error("unexpected confirmation prompt")
			return false, nil
		},
		Stdout: stdout,
		Stderr: stderr,
	}
	if mutate != nil {
		mutate(&deps)
	}
	return &testApp{App: NewApp(deps), fs: fsys, stdout: stdout, stderr: stderr}
}

// execute runs the command tree with args.
func (a *testApp) execute(args ...string) error {
	rootCmd := NewRootCommand(a.App)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

// exitCode returns the status Run would report for err.
func exitCode(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

func TestNewApp_Defaults(t *testing.T) {
	t.Parallel()

	app := NewApp(Dependencies{})
	if app.Config == nil || app.Fs == nil || app.Confirm == nil || app.Interactive == nil {
		t.Fatal("NewApp() left a dependency nil")
	}
	if app.stdout == nil || app.stderr == nil {
		t.Fatal("NewApp() left an output stream nil")
	}
	if _, ok := app.Fs.(*afero.OsFs); !ok {
		t.Errorf("NewApp().Fs = %T, want *afero.OsFs", app.Fs)
	}
}

func TestLoadConfig_FallsBackToDefaults(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, func(d *Dependencies) {
		d.Config = staticProvider{err: errors.New("broken config")}
	})

	cfg := app.loadConfig(context.Background())
	if cfg == nil {
		t.Fatal("loadConfig() = nil")
	}
	if cfg.OutputExtension != config.DefaultConfig().OutputExtension {
		t.Errorf("OutputExtension = %q, want default", cfg.OutputExtension)
	}
	if !bytes.Contains(app.stderr.Bytes(), []byte("broken config")) {
		t.Errorf("stderr = %q, want the load error as a warning", app.stderr.String())
	}
}

func TestLoadConfig_VerboseFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.UI.Verbose = true
	app := newTestApp(t, func(d *Dependencies) {
		d.Config = staticProvider{cfg: cfg}
	})

	app.loadConfig(context.Background())
	if !app.flags.verbose {
		t.Error("ui.verbose did not enable verbose mode")
	}
}

func TestIssueStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scheme config.ColorScheme
		want   string
	}{
		{"auto without terminal", config.ColorSchemeAuto, "notty"},
		{"dark", config.ColorSchemeDark, "dark"},
		{"light", config.ColorSchemeLight, "light"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.UI.ColorScheme = tt.scheme
			app := newTestApp(t, func(d *Dependencies) {
				d.Config = staticProvider{cfg: cfg}
			})
			app.loadConfig(context.Background())

			if got := app.issueStyle(); got != tt.want {
				t.Errorf("issueStyle() = %q, want %q", got, tt.want)
			}
		})
	}
}
