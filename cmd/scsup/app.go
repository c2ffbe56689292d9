// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/scstools/scsup/internal/archive"
	"github.com/scstools/scsup/internal/config"
	"github.com/scstools/scsup/internal/pipeline"
	"github.com/scstools/scsup/pkg/types"
)

type (
	// Confirmer asks the user a yes/no question.
	Confirmer func(ctx context.Context, title, description string) (bool, error)

	// App wires CLI services and shared dependencies. All command handlers
	// receive an App and reach configuration, the filesystem and the
	// terminal through it.
	App struct {
		Config      config.Provider
		Fs          afero.Fs
		Extractors  archive.Extractors
		Confirm     Confirmer
		Interactive func() bool
		stdout      io.Writer
		stderr      io.Writer

		// flags holds the persistent flags of the root command.
		flags rootFlags
		// cfg is the configuration loaded by the running command, if any.
		cfg *config.Config
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config      config.Provider
		Fs          afero.Fs
		Extractors  archive.Extractors
		Confirm     Confirmer
		Interactive func() bool
		Stdout      io.Writer
		Stderr      io.Writer
	}

	rootFlags struct {
		verbose bool
		cfgFile string
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:      deps.Config,
		Fs:          deps.Fs,
		Extractors:  deps.Extractors,
		Confirm:     deps.Confirm,
		Interactive: deps.Interactive,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Fs == nil {
		app.Fs = afero.NewOsFs()
	}
	if app.Confirm == nil {
		app.Confirm = huhConfirm
	}
	if app.Interactive == nil {
		app.Interactive = stdinIsTerminal
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// loadConfig loads configuration honoring --config. A broken config file is
// reported as a warning and the defaults are used, so that a typo in the
// config never blocks an update.
func (a *App) loadConfig(ctx context.Context) *config.Config {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.flags.cfgFile)})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
		cfg = config.DefaultConfig()
	}
	if !a.flags.verbose {
		a.flags.verbose = cfg.UI.Verbose
	}
	a.cfg = cfg
	return cfg
}

// newLogger returns the component logger, at debug level in verbose mode.
func (a *App) newLogger(prefix string) *log.Logger {
	level := log.WarnLevel
	if a.flags.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: prefix,
		Level:  level,
	})
}

// newPipeline builds a pipeline from the loaded configuration.
func (a *App) newPipeline(cfg *config.Config) *pipeline.Pipeline {
	return pipeline.New(pipeline.Options{
		Fs:               a.Fs,
		Extractors:       a.Extractors,
		Logger:           a.newLogger("pipeline"),
		OutputExtension:  cfg.OutputExtension.String(),
		ManifestName:     cfg.ManifestName.String(),
		VersionKey:       cfg.VersionKey.String(),
		ScratchPrefix:    cfg.ScratchPrefix.String(),
		CompressionLevel: cfg.CompressionLevel.Int(),
	})
}

// issueStyle picks the glamour style for catalog pages: the configured
// scheme, or "dark" on a terminal and "notty" otherwise.
func (a *App) issueStyle() string {
	if a.cfg != nil {
		switch a.cfg.UI.ColorScheme {
		case config.ColorSchemeDark, config.ColorSchemeLight:
			return a.cfg.UI.ColorScheme.String()
		}
	}
	if f, ok := a.stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}

// stdinIsTerminal returns true if stdin is connected to a terminal.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// huhConfirm asks on the terminal. An aborted prompt counts as "no".
func huhConfirm(ctx context.Context, title, description string) (bool, error) {
	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Continue").
			Negative("Cancel").
			Value(&confirmed),
	))
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}
