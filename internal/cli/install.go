package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usl-labs/usl/internal/descriptor"
	"github.com/usl-labs/usl/internal/installer"
	"github.com/usl-labs/usl/internal/manifest"
)

func newInstallCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "install PACKAGE_ID",
		Short: "Add a Unity package to the project manifest",
		Long: `Add a Unity package by its ID (e.g., com.unity.inputsystem) to
Packages/manifest.json with version "*". Unity resolves "*" to the latest
compatible version.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			// Reject a malformed ID before looking at the filesystem.
			if err := descriptor.CheckPackageID(id); err != nil {
				return err
			}
			if _, err := a.catalog(); err != nil {
				return err
			}
			layout, err := a.requireProject(cmd)
			if err != nil {
				return err
			}

			in := installer.New(installer.Options{
				FS:           a.fs,
				Log:          a.log,
				ManifestPath: layout.Manifest,
			})
			added, err := in.AddPackageID(id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !added {
				fmt.Fprintf(out, "Package '%s' is already in %s.\n", id, manifest.FileName)
				return nil
			}
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Added '%s' to the project's package manifest.", id)))
			fmt.Fprintln(out, mutedStyle.Render("Note: '*' was used for version. Unity will resolve to the latest compatible version."))
			return nil
		},
	}
}
