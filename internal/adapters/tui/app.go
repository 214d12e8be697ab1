package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"habitgrid/internal/adapters/tui/views"
	"habitgrid/internal/adapters/watch"
	"habitgrid/internal/application"
	"habitgrid/internal/application/commands"
	"habitgrid/internal/config"
	"habitgrid/internal/ctxlog"
	"habitgrid/internal/ports"
)

// Vault is a document source that can map notes onto the filesystem
type Vault interface {
	ports.DocumentSource
	AbsPath(rel string) string
}

// Deps are the collaborators the app drives
type Deps struct {
	Vault    Vault
	Cache    ports.ParseCache
	Scanner  *application.Scanner
	Editor   ports.EditorOpener
	Obsidian ports.ObsidianOpener
	// Events, when set, invalidates the cache and triggers a rescan
	Events <-chan watch.Event
	// Now defaults to time.Now
	Now func() time.Time
}

// App is the main TUI application model
type App struct {
	ctx  context.Context
	deps Deps

	notePath   string
	configFile string

	grid *views.GridModel
}

// NewApp creates a new TUI application showing the heatmap of notePath.
// configFile, when set, replaces the note's own config block.
func NewApp(ctx context.Context, deps Deps, notePath, configFile string) *App {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &App{
		ctx:        ctx,
		deps:       deps,
		notePath:   notePath,
		configFile: configFile,
		grid:       views.NewGridModel(),
	}
}

type (
	heatmapLoadedMsg  struct{ hm *commands.Heatmap }
	scanFailedMsg     struct{ err error }
	vaultChangedMsg   struct{ ev watch.Event }
	targetMsg         struct{ target commands.Target }
	editorFinishedMsg struct{ err error }
	obsidianMsg       struct{ err error }
)

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.scan(), a.waitForEvent())
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case heatmapLoadedMsg:
		a.grid.SetHeatmap(msg.hm)
		return a, nil

	case scanFailedMsg:
		a.grid.SetError(msg.err)
		return a, nil

	case vaultChangedMsg:
		ctxlog.FromContext(a.ctx).Debug("note changed", "op", msg.ev.Op, "path", msg.ev.Path)
		watch.Apply(a.deps.Cache, msg.ev)
		return a, tea.Batch(a.scan(), a.waitForEvent())

	case views.RescanMsg:
		a.grid.SetMessage("Rescanning...", false)
		return a, a.scan()

	case views.OpenCellMsg:
		return a, a.locate(msg.Date, msg.Habit)

	case targetMsg:
		return a, a.openEditor(msg.target)

	case editorFinishedMsg:
		if msg.err != nil {
			a.grid.SetError(fmt.Errorf("editor: %w", msg.err))
			return a, nil
		}
		return a, a.scan()

	case views.OpenNoteMsg:
		return a, a.openObsidian()

	case obsidianMsg:
		if msg.err != nil {
			a.grid.SetError(msg.err)
		} else {
			a.grid.SetMessage("Opened in Obsidian", false)
		}
		return a, nil
	}

	_, cmd := a.grid.Update(msg)
	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	return a.grid.View()
}

// scan re-reads the config and rebuilds the heatmap. The parse cache keeps
// unchanged notes from being parsed again.
func (a *App) scan() tea.Cmd {
	return func() tea.Msg {
		raw, err := config.ForNote(a.ctx, a.deps.Vault, a.notePath, a.configFile)
		if err != nil {
			return scanFailedMsg{err: err}
		}
		hm, err := commands.NewHeatmapCommand(a.deps.Vault, a.deps.Scanner, a.notePath, raw).
			WithClock(a.deps.Now).
			Execute(a.ctx)
		if err != nil {
			return scanFailedMsg{err: err}
		}
		return heatmapLoadedMsg{hm: hm}
	}
}

func (a *App) waitForEvent() tea.Cmd {
	if a.deps.Events == nil {
		return nil
	}
	events := a.deps.Events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return vaultChangedMsg{ev: ev}
	}
}

func (a *App) locate(date, habit string) tea.Cmd {
	hm := a.grid.Heatmap()
	if hm == nil {
		return nil
	}
	return func() tea.Msg {
		target, err := commands.Locate(a.ctx, a.deps.Cache, hm, date, habit)
		if err != nil {
			return scanFailedMsg{err: err}
		}
		return targetMsg{target: target}
	}
}

func (a *App) openEditor(target commands.Target) tea.Cmd {
	if a.deps.Editor == nil {
		return nil
	}

	cmd, err := a.deps.Editor.Command(a.deps.Vault.AbsPath(target.Path), target.Line)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (a *App) openObsidian() tea.Cmd {
	hm := a.grid.Heatmap()
	if a.deps.Obsidian == nil || hm == nil {
		return nil
	}
	return func() tea.Msg {
		return obsidianMsg{err: a.deps.Obsidian.OpenNote(hm.Note.Path)}
	}
}
