// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scstools/scsup/internal/pipeline"
	"github.com/scstools/scsup/pkg/types"
)

func newInspectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <archive>",
		Short: "Show the manifest and current version of a mod archive",
		Long: `Show the manifest and current version of a mod archive.

The archive is extracted to a temporary directory that is removed again;
nothing next to the archive is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), app, args[0])
		},
	}
}

func runInspect(ctx context.Context, app *App, input string) error {
	cfg := app.loadConfig(ctx)
	if err := checkInput(app, input); err != nil {
		return err
	}

	info, err := app.newPipeline(cfg).Inspect(ctx, types.FilesystemPath(input))
	if err != nil {
		if pe, ok := pipeline.AsError(err); ok {
			return pipelineFailure(pe)
		}
		return err
	}

	version := SubtitleStyle.Render("(not set)")
	if info.HasVersion {
		version = SuccessStyle.Render(info.Version.String())
	}

	w := app.stdout
	fmt.Fprintf(w, "%s %s\n", CmdStyle.Render("Archive: "), input)
	fmt.Fprintf(w, "%s %s\n", CmdStyle.Render("Format:  "), info.Kind)
	fmt.Fprintf(w, "%s %s\n", CmdStyle.Render("Manifest:"), info.ManifestPath)
	fmt.Fprintf(w, "%s %s\n", CmdStyle.Render("Version: "), version)
	if info.HasVersion && !info.Version.IsConventional() {
		fmt.Fprintln(w, WarningStyle.Render("The current version does not look like 1.2 or 1.2.3."))
	}
	return nil
}
