package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpadapter "habitgrid/internal/adapters/mcp"
	"habitgrid/internal/adapters/tui/views"
	"habitgrid/internal/application/commands"
)

var plain bool

var renderCmd = &cobra.Command{
	Use:   "render <note>",
	Short: "Print the heatmap for a note",
	Long: `Print the heatmap for a note using terminal colors.

Example:
  habitgrid-cli render "Journal/2026/2026.02.09 - 2026.02.15.md"
  habitgrid-cli render --plain Journal/2026/February.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		raw, err := rawConfig(ctx, args[0])
		if err != nil {
			return err
		}

		hm, err := commands.NewHeatmapCommand(stack.Repo, stack.Scanner, args[0], raw).Execute(ctx)
		if err != nil {
			return err
		}

		if plain {
			fmt.Print(mcpadapter.FormatHeatmap(hm))
			return nil
		}
		fmt.Println(views.RenderDocument(hm))
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&plain, "plain", false, "print a text table without colors")
	rootCmd.AddCommand(renderCmd)
}
