package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usl-labs/usl/internal/installer"
	"github.com/usl-labs/usl/internal/project"
	"github.com/usl-labs/usl/internal/registry"
)

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add SCRIPT...",
		Short: "Add script packages to the Unity project",
		Long: `Copy script packages and everything they depend on into the project's
Assets directory, and add the Unity packages they need to
Packages/manifest.json. The plan is shown for confirmation first; any
failure restores the project to its previous state.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			layout, err := a.requireProject(cmd)
			if err != nil {
				return err
			}
			return a.install(cmd, layout, cat, args)
		},
	}
}

// install runs a full dependency-resolved install of roots and reports the
// outcome.
func (a *app) install(cmd *cobra.Command, layout project.Layout, cat *registry.Catalog, roots []string) error {
	in := installer.New(installer.Options{
		FS:           a.fs,
		Log:          a.log,
		Out:          cmd.OutOrStdout(),
		TargetDir:    layout.Assets,
		ManifestPath: layout.Manifest,
		AssumeYes:    a.settings.AssumeYes,
		Confirm:      a.prompter(cmd).Confirm,
	})

	result, err := in.Install(cmd.Context(), roots, cat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case result.NothingToDo:
		fmt.Fprintln(out, mutedStyle.Render("Nothing to install."))
	case result.Cancelled:
		fmt.Fprintln(out, mutedStyle.Render("Installation cancelled."))
	default:
		fmt.Fprintln(out, successStyle.Render("✓ Installation complete!"))
		fmt.Fprintf(out, "  %d file(s) copied, %d skipped, %d Unity package(s) added\n",
			len(result.Copied), len(result.Skipped), len(result.AddedIDs))
	}
	return nil
}
