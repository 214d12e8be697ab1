package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"habitgrid/internal/application/commands"
)

var validateCmd = &cobra.Command{
	Use:   "validate <note>",
	Short: "Check a note's heatmap config without scanning",
	Long: `Normalize the heatmap config and resolve its range against the note title.
Every problem is printed; the exit status is 1 when there is any.

Example:
  habitgrid-cli validate Journal/2026/February.md
  habitgrid-cli validate --config heatmap.toml Journal/2026/February.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		raw, err := rawConfig(ctx, args[0])
		if err != nil {
			return err
		}

		report, err := commands.NewValidateCommand(stack.Repo, args[0], raw).Execute(ctx)
		if err != nil {
			return err
		}

		if !report.OK() {
			return fmt.Errorf("%d problem(s) in %s:\n%s", len(report.Problems), report.Note.Path, "  "+strings.Join(report.Problems, "\n  "))
		}

		rng := report.Range
		color.Green("ok: %s %s..%s (%d days)", rng.Type, rng.Start, rng.End, len(rng.Dates))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
