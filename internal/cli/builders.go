package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/emerge/pkg/builder"
)

// buildersCommand creates the builders command, which lists the topologies
// selectable with --graph.
func (c *CLI) buildersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "builders",
		Short: "List the available graph builders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), buildersTable(builder.All()))
			return err
		},
	}
}

func buildersTable(builders []builder.Builder) string {
	rows := make([][]string, len(builders))
	for i, b := range builders {
		rows[i] = []string{b.Name, b.Description}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(colorCyan)
	descStyle := lipgloss.NewStyle().Foreground(colorWhite)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Builder", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return nameStyle.Padding(0, 1)
			default:
				return descStyle.Padding(0, 1)
			}
		})

	return t.Render()
}
