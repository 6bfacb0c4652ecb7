package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usl-labs/usl/internal/branding"
	"github.com/usl-labs/usl/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long: fmt.Sprintf(`Read and write usl configuration stored at ~/%s/config.yaml.

Known keys: library_dir, log_level, assets_dir, manifest_file, assume_yes,
init_git. Each can also be set through the environment as %s.`,
			branding.HomeDir(), branding.EnvVar("<KEY>")),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !config.IsKnownKey(key) {
				return usageError(fmt.Errorf("unknown config key %q", key))
			}
			if err := config.Set(a.fs, a.v, key, value); err != nil {
				return fmt.Errorf("setting config key %q: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.v.GetString(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.v.ConfigFileUsed())
			return nil
		},
	})
	return cmd
}
