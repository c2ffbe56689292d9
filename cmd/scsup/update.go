// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scstools/scsup/internal/issue"
	"github.com/scstools/scsup/internal/manifest"
	"github.com/scstools/scsup/internal/pipeline"
	"github.com/scstools/scsup/pkg/types"
)

func newUpdateCommand(app *App) *cobra.Command {
	var assumeYes bool

	updateCmd := &cobra.Command{
		Use:   "update <archive> <version>",
		Short: "Set the mod version and repackage the archive",
		Long: `Set the mod version and repackage the archive.

The archive is extracted to a temporary directory, the mod_version field of
its manifest.sii is set (or added when missing), and the tree is packed as
<name>_v<version>.scs next to the archive. Dots in the version become
underscores in the file name. The original archive is never modified unless
the new name is its own name.

Versions that do not look like 1.2 or 1.2.3 ask for confirmation on a
terminal and only warn otherwise.`,
		Example: `  scsup update base_mod.zip 1.2.3
  scsup update "My Mod.scs" 2.0-beta --yes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context(), app, args[0], args[1], assumeYes)
		},
	}

	updateCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask before using an unusual version format")
	return updateCmd
}

func runUpdate(ctx context.Context, app *App, input, rawVersion string, assumeYes bool) error {
	cfg := app.loadConfig(ctx)

	version := manifest.ParseVersion(rawVersion)
	if err := version.Validate(); err != nil {
		return &ExitError{
			Code: types.ExitUsage,
			Err:  newServiceError(err, issue.InvalidVersionId, ErrorStyle.Render("Error: ")+"Please enter a version number.\n"),
		}
	}

	if err := checkInput(app, input); err != nil {
		return err
	}

	if !version.IsConventional() {
		proceed, err := confirmVersion(ctx, app, version, assumeYes || cfg.UI.AssumeYes)
		if err != nil {
			return err
		}
		if !proceed {
			fmt.Fprintln(app.stderr, WarningStyle.Render("Update cancelled."))
			return &ExitError{Code: types.ExitFailure}
		}
	}

	req := pipeline.Request{InputPath: types.FilesystemPath(input), Version: version.String()}
	var result *pipeline.Result
	for ev := range app.newPipeline(cfg).Start(ctx, req) {
		if ev.Result != nil {
			result = ev.Result
			continue
		}
		fmt.Fprintln(app.stderr, VerboseStyle.Render(ev.Message))
	}
	if result == nil {
		return errors.New("pipeline ended without a result")
	}

	if !result.Succeeded() {
		return pipelineFailure(result.Err)
	}

	if result.Appended {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Note: ")+
			fmt.Sprintf("%s had no %s field; it was added.", result.ManifestPath, cfg.VersionKey))
	}
	fmt.Fprintln(app.stdout, SuccessStyle.Render("Mod updated: ")+CmdStyle.Render(result.OutputPath.String()))
	return nil
}

// checkInput reports a missing or non-file input before any work starts.
func checkInput(app *App, input string) error {
	info, err := app.Fs.Stat(input)
	if err == nil && info.IsDir() {
		err = fmt.Errorf("%s is a directory", input)
	}
	if err == nil {
		return nil
	}

	styled := ErrorStyle.Render("Error: ") + fmt.Sprintf("Archive not found: %s\n", input)
	return &ExitError{
		Code: types.ExitUsage,
		Err:  newServiceError(issue.WrapWithContext(err, "open archive", input), issue.InputNotFoundId, styled),
	}
}

// confirmVersion decides whether to go on with an unusual version string.
// Without a terminal, or with --yes, it warns and proceeds.
func confirmVersion(ctx context.Context, app *App, v manifest.Version, assumeYes bool) (bool, error) {
	warning := fmt.Sprintf("Version %q looks unusual (expected something like 1.0 or 1.2.3).", v)
	if assumeYes || !app.Interactive() {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+warning+" Continuing anyway.")
		return true, nil
	}

	ok, err := app.Confirm(ctx, "Unusual version format", warning+" Continue anyway?")
	if err != nil {
		return false, fmt.Errorf("failed to ask for confirmation: %w", err)
	}
	return ok, nil
}
