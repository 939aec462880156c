package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/emerge/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The CLI logger is attached to the command context before any subcommand
// runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Emerge lays out graphs with a force-directed simulation",
		Long:         `Emerge is a CLI tool that lets graph layouts emerge from physics: edges act as springs, nodes repel each other, and the simulation runs until the drawing settles.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Get()
			c.Logger.Debug("Build", "version", info.Version, "commit", info.Commit)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.buildersCommand())
	root.AddCommand(c.completionCommand())

	return root
}
