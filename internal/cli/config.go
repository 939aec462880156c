package cli

import (
	"github.com/spf13/cobra"
)

// configCommand creates the config command, which prints the effective
// configuration so it can be saved and edited.
func (c *CLI) configCommand() *cobra.Command {
	var (
		path   string
		asYAML bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration.

Without --config the built-in defaults are printed; with it, the file is loaded
over the defaults and validated first. The output is a complete config file:

  emerge config > emerge.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			if asYAML {
				return cfg.WriteYAML(cmd.OutOrStdout())
			}
			return cfg.WriteTOML(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "config file to load (.toml, .yaml)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of TOML")

	return cmd
}
