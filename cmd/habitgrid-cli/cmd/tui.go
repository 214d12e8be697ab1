package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"habitgrid/internal/adapters/editor"
	"habitgrid/internal/adapters/obsidian"
	"habitgrid/internal/adapters/tui"
)

var (
	logFile string
	noWatch bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui <note>",
	Short: "Browse a note's heatmap interactively",
	Long: `Open the heatmap full screen. Enter jumps to the note behind a cell in
$EDITOR, o opens the note in Obsidian, y copies the value.

Example:
  habitgrid-cli tui "Journal/2026/2026.02.09 - 2026.02.15.md"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		deps := tui.Deps{
			Vault:    stack.Repo,
			Cache:    stack.Cache,
			Scanner:  stack.Scanner,
			Editor:   editor.NewOpener(),
			Obsidian: obsidian.NewOpener(stack.Repo.VaultPath()),
		}
		if !noWatch {
			events, err := stack.Watch(ctx)
			if err != nil {
				return err
			}
			deps.Events = events
		}

		return tui.Run(ctx, deps, args[0], configFile, logFile)
	},
}

func init() {
	tuiCmd.Flags().StringVar(&logFile, "log", "", "write debug logs to this file")
	tuiCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not rescan when notes change")
	rootCmd.AddCommand(tuiCmd)
}
