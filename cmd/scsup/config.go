// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/scstools/scsup/internal/config"
	"github.com/scstools/scsup/internal/issue"
	"github.com/scstools/scsup/pkg/types"
)

const (
	formatText = "text"
	formatCUE  = "cue"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

// newConfigCommand creates the `scsup config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage scsup configuration",
		Long: `Manage scsup configuration.

Configuration is stored in:
  - Linux: ~/.config/scsup/config.cue
  - macOS: ~/Library/Application Support/scsup/config.cue
  - Windows: %APPDATA%\scsup\config.cue

Every key can be overridden with an SCSUP_ environment variable, for
example SCSUP_COMPRESSION_LEVEL=9 or SCSUP_UI_ASSUME_YES=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, format)
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, cue, json, yaml or toml")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, format string) error {
	loaded, err := config.LoadWithSource(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(app.flags.cfgFile)})
	if err != nil {
		styled := ErrorStyle.Render("Error: ") + formatErrorForDisplay(err, app.flags.verbose) + "\n"
		return &ExitError{Code: types.ExitFailure, Err: newServiceError(err, issue.ConfigLoadFailedId, styled)}
	}
	cfg := loaded.Config

	switch format {
	case formatText:
		writeConfigText(app.stdout, loaded)
		return nil
	case formatCUE:
		_, err = io.WriteString(app.stdout, config.GenerateCUE(cfg))
	case formatJSON:
		enc := json.NewEncoder(app.stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(cfg)
	case formatYAML:
		enc := yaml.NewEncoder(app.stdout)
		enc.SetIndent(2)
		if err = enc.Encode(cfg); err == nil {
			err = enc.Close()
		}
	case formatTOML:
		err = toml.NewEncoder(app.stdout).Encode(cfg)
	default:
		return &ExitError{
			Code: types.ExitUsage,
			Err:  fmt.Errorf("unknown format %q (valid: text, cue, json, yaml, toml)", format),
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

func writeConfigText(w io.Writer, loaded config.Loaded) {
	cfg := loaded.Config
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if loaded.Source != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), loaded.Source)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("output_extension"), valueStyle.Render(cfg.OutputExtension.String()))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("manifest_name"), valueStyle.Render(cfg.ManifestName.String()))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("version_key"), valueStyle.Render(cfg.VersionKey.String()))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("scratch_prefix"), valueStyle.Render(cfg.ScratchPrefix.String()))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("compression_level"), valueStyle.Render(fmt.Sprint(cfg.CompressionLevel.Int())))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render("color_scheme"), valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render("verbose"), valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
	fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render("assume_yes"), valueStyle.Render(fmt.Sprint(cfg.UI.AssumeYes)))
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("Config file already exists:"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Created config file:"), path)
	return nil
}

func showConfigPath(app *App) error {
	path := app.flags.cfgFile
	if path == "" {
		var err error
		if path, err = config.ConfigFilePath(); err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	fmt.Fprintln(app.stdout, path)
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(app.stderr, SubtitleStyle.Render("(file does not exist yet; run 'scsup config init')"))
	}
	return nil
}
