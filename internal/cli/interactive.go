package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// runInteractive lets the user pick packages from a numbered list and
// installs them.
func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	cat, err := a.catalog()
	if err != nil {
		return err
	}
	if a.settings.AssumeYes {
		return usageError(fmt.Errorf("interactive mode cannot be used with --yes: specify scripts to add or remove --yes"))
	}
	layout, err := a.requireProject(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	a.log.Debug().Msg("no command specified, entering interactive mode")

	if cat.Len() == 0 {
		fmt.Fprintln(out, "No local scripts available to install.")
		return nil
	}

	names := cat.Names()
	fmt.Fprintln(out, titleStyle.Render("Available scripts:"))
	picked, err := a.prompter(cmd).SelectMany(names)
	if err != nil {
		return err
	}
	if picked == nil {
		fmt.Fprintln(out, mutedStyle.Render("Operation cancelled."))
		return nil
	}

	roots := make([]string, len(picked))
	for i, idx := range picked {
		roots[i] = names[idx]
	}
	return a.install(cmd, layout, cat, roots)
}
