package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// listEntry represents a library package for display.
type listEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func newListCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available script packages",
		Long:  `List the script packages in the local script library.`,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, asJSON bool) error {
	cat, err := a.catalog()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if asJSON {
		entries := make([]listEntry, 0, cat.Len())
		for _, p := range cat.Packages() {
			entries = append(entries, listEntry{Name: p.Name, Path: p.Path})
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, titleStyle.Render("Available script packages:"))
	if cat.Len() == 0 {
		fmt.Fprintln(out, mutedStyle.Render("  (No scripts found)"))
		return nil
	}
	for _, name := range cat.Names() {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	return nil
}
