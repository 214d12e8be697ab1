package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpadapter "habitgrid/internal/adapters/mcp"
	"habitgrid/internal/application/commands"
)

var parseCmd = &cobra.Command{
	Use:   "parse <note>",
	Short: "Show the habit values parsed from one note",
	Long: `Show every date heading of a note with the habit values found under it.

Example:
  habitgrid-cli parse "Journal/2026/2026.02.09 - 2026.02.15.md"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := commands.NewParseCommand(stack.Repo, stack.Cache, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(report.Sections) == 0 {
			fmt.Println("No date headings found.")
			return nil
		}
		fmt.Print(mcpadapter.FormatParse(report))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
