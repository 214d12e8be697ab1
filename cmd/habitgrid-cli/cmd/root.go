package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"habitgrid/internal/bootstrap"
	"habitgrid/internal/config"
	"habitgrid/internal/ctxlog"
	"habitgrid/internal/domain"
)

var (
	vaultPath    string
	settingsFile string
	configFile   string
	verbose      bool

	stack *bootstrap.Stack
)

var rootCmd = &cobra.Command{
	Use:   "habitgrid-cli",
	Short: "Habit heatmaps from journal notes",
	Long: `habitgrid-cli reads habit-<name>::<value> entries and "- [x] habit-<name>"
checklist items under dated headings (## YYYY.MM.DD) in a journal vault and
lays them out as a calendar heatmap.

The range and colors come from the note's habit-heatmap block, or from a
file passed with --config.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		logger := ctxlog.New(os.Stderr, verbose)
		ctx := ctxlog.WithLogger(cmd.Context(), logger)
		cmd.SetContext(ctx)

		settings, err := config.Load(settingsFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("vault") {
			settings.Vault = vaultPath
		}

		stack, err = bootstrap.Build(ctx, settings)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if stack == nil {
			return nil
		}
		return stack.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		printError(err)
		if stack != nil {
			_ = stack.Close()
		}
		os.Exit(1)
	}
}

// printError writes every problem carried by err on its own line
func printError(err error) {
	red := color.New(color.FgRed)
	for _, msg := range domain.Messages(err) {
		_, _ = red.Fprintln(os.Stderr, msg)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultPath, "vault", "v", config.VaultPath(), "path to the vault")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (default habitgrid.yaml in the config dir)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "heatmap config file (.yaml, .json or .toml) instead of the note's block")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log debug output to stderr")
}

// rawConfig loads the heatmap config for note
func rawConfig(ctx context.Context, note string) (map[string]any, error) {
	raw, err := config.ForNote(ctx, stack.Repo, note, configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load heatmap config: %w", err)
	}
	return raw, nil
}
