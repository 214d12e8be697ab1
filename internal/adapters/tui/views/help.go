package views

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"habitgrid/internal/adapters/tui/styles"
)

// GridKeyMap defines key bindings for the heatmap view
type GridKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	NextRow  key.Binding
	PrevRow  key.Binding
	Open     key.Binding
	Obsidian key.Binding
	Copy     key.Binding
	Rescan   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var GridKeys = GridKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "prev day"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next day"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev week"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next week"),
	),
	NextRow: key.NewBinding(
		key.WithKeys("tab", "J"),
		key.WithHelp("tab", "next habit"),
	),
	PrevRow: key.NewBinding(
		key.WithKeys("shift+tab", "K"),
		key.WithHelp("shift+tab", "prev habit"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open in editor"),
	),
	Obsidian: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in Obsidian"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy value"),
	),
	Rescan: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rescan"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap
func (k GridKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Copy, k.Rescan, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k GridKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextRow, k.PrevRow},
		{k.Open, k.Obsidian, k.Copy, k.Rescan},
		{k.Help, k.Quit},
	}
}

// NewHelp returns a help model styled like the rest of the UI
func NewHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpDesc
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.HelpDesc
	return h
}
