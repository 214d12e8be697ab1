package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"habitgrid/internal/application/commands"
)

var scanCmd = &cobra.Command{
	Use:   "scan <note>",
	Short: "List the aggregated habit values for a note's range",
	Long: `Scan the notes covered by a note's range and print every resolved value,
one line per habit and date, followed by the notes that were read.

Example:
  habitgrid-cli scan "Journal/2026/2026.02.09 - 2026.02.15.md"`,
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

		res := hm.Result
		fmt.Printf("%s %s..%s (%d days)\n", hm.Range.Type, hm.Range.Start, hm.Range.End, len(res.Dates))
		for _, habit := range hm.Habits {
			for _, date := range res.Dates {
				if v, ok := res.Value(habit, date); ok {
					fmt.Printf("%s\t%s\t%s\n", date, habit, v)
				}
			}
		}

		fmt.Printf("\n%d notes\n", len(res.Files))
		for _, f := range res.Files {
			fmt.Printf("  %s\n", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
