package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"habitgrid/internal/ctxlog"
)

// Run shows the heatmap of notePath full screen until the user quits.
// Logs go to logPath when set and are dropped otherwise, so they never
// draw over the grid.
func Run(ctx context.Context, deps Deps, notePath, configFile, logPath string) error {
	logger := ctxlog.New(io.Discard, false)
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "habitgrid")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = ctxlog.New(f, true)
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	app := NewApp(ctx, deps, notePath, configFile)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
