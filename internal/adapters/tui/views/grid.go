package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"habitgrid/internal/adapters/tui/styles"
	"habitgrid/internal/application/commands"
)

// Messages the grid sends to the app
type (
	// OpenCellMsg asks to open the note behind a cell in the editor
	OpenCellMsg struct {
		Habit string
		Date  string
	}
	// OpenNoteMsg asks to open the heatmap's own note in Obsidian
	OpenNoteMsg struct{}
	// RescanMsg asks for a fresh scan
	RescanMsg struct{}
)

// GridModel is the model for the heatmap view. The cursor only ever rests
// on in-range cells.
type GridModel struct {
	ViewState

	hm     *commands.Heatmap
	cursor Position
	help   help.Model

	copy func(string) error
}

// NewGridModel creates an empty grid; SetHeatmap fills it
func NewGridModel() *GridModel {
	return &GridModel{
		cursor: NoCursor,
		help:   NewHelp(),
		copy:   clipboard.WriteAll,
	}
}

// Init initializes the grid view
func (m *GridModel) Init() tea.Cmd {
	return nil
}

// Heatmap returns the heatmap on screen
func (m *GridModel) Heatmap() *commands.Heatmap {
	return m.hm
}

// Cursor returns the selected position
func (m *GridModel) Cursor() Position {
	return m.cursor
}

// SetHeatmap replaces the grid. The cursor stays on the same habit and date
// when both still exist, otherwise it lands on today or the first day.
func (m *GridModel) SetHeatmap(hm *commands.Heatmap) {
	prevHabit, prevDate := "", ""
	if c, ok := m.selected(); ok {
		prevHabit, prevDate = m.hm.Rows[m.cursor.Habit].Habit, c.Date
	}

	m.hm = hm
	m.cursor = NoCursor
	if hm == nil || len(hm.Rows) == 0 {
		return
	}

	habit := 0
	for i, row := range hm.Rows {
		if row.Habit == prevHabit {
			habit = i
			break
		}
	}

	first, found := Position{}, false
	row := hm.Rows[habit]
	for i, c := range row.Cells {
		if !c.InRange {
			continue
		}
		pos := Position{Habit: habit, Week: i / 7, Day: i % 7}
		if c.Date == prevDate || (prevDate == "" && c.Date == hm.Today) {
			m.cursor = pos
			return
		}
		if !found {
			first, found = pos, true
		}
	}
	if found {
		m.cursor = first
	}
}

// Update handles messages for the grid view
func (m *GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, GridKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, GridKeys.Up):
			m.move(0, -1)
		case key.Matches(msg, GridKeys.Down):
			m.move(0, 1)
		case key.Matches(msg, GridKeys.Left):
			m.move(-1, 0)
		case key.Matches(msg, GridKeys.Right):
			m.move(1, 0)

		case key.Matches(msg, GridKeys.NextRow):
			m.moveHabit(1)
		case key.Matches(msg, GridKeys.PrevRow):
			m.moveHabit(-1)

		case key.Matches(msg, GridKeys.Open):
			if c, ok := m.selected(); ok {
				habit := m.hm.Rows[m.cursor.Habit].Habit
				return m, func() tea.Msg {
					return OpenCellMsg{Habit: habit, Date: c.Date}
				}
			}

		case key.Matches(msg, GridKeys.Obsidian):
			if m.hm != nil {
				return m, func() tea.Msg { return OpenNoteMsg{} }
			}

		case key.Matches(msg, GridKeys.Copy):
			m.copyValue()

		case key.Matches(msg, GridKeys.Rescan):
			return m, func() tea.Msg { return RescanMsg{} }

		case key.Matches(msg, GridKeys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

// move steps the cursor until it reaches an in-range cell, staying put
// when there is none in that direction.
func (m *GridModel) move(dWeek, dDay int) {
	if _, ok := m.selected(); !ok {
		return
	}
	row := m.hm.Rows[m.cursor.Habit]
	pos := m.cursor
	for {
		pos.Week += dWeek
		pos.Day += dDay
		c, ok := row.At(pos.Day, pos.Week)
		if !ok {
			return
		}
		if c.InRange {
			m.cursor = pos
			return
		}
	}
}

// moveHabit wraps around the habit rows. All rows share one layout, so the
// week and day carry over.
func (m *GridModel) moveHabit(delta int) {
	if _, ok := m.selected(); !ok {
		return
	}
	n := len(m.hm.Rows)
	m.cursor.Habit = ((m.cursor.Habit+delta)%n + n) % n
}

func (m *GridModel) copyValue() {
	c, ok := m.selected()
	if !ok {
		return
	}
	if c.Value == nil {
		m.SetMessage("Nothing to copy", true)
		return
	}
	if err := m.copy(c.Appearance.Tooltip); err != nil {
		m.SetError(err)
		return
	}
	m.SetMessage(fmt.Sprintf("Copied %s", c.Appearance.Tooltip), false)
}

func (m *GridModel) selected() (commands.Cell, bool) {
	if m.hm == nil || m.cursor.Habit < 0 || m.cursor.Habit >= len(m.hm.Rows) {
		return commands.Cell{}, false
	}
	return m.hm.Rows[m.cursor.Habit].At(m.cursor.Day, m.cursor.Week)
}

// View renders the grid view
func (m *GridModel) View() string {
	var b strings.Builder

	if m.hm == nil {
		b.WriteString(styles.MutedText.Render("Scanning..."))
		if m.Message != "" {
			b.WriteString("\n\n")
			b.WriteString(RenderMessage(m.Message, m.MessageErr))
		}
		b.WriteString("\n\n")
		b.WriteString(m.help.View(GridKeys))
		return styles.App.Render(b.String())
	}

	b.WriteString(styles.Title.Render(m.hm.Config.Display.Title))
	b.WriteByte('\n')
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s  %s %s..%s",
		m.hm.Note.Path, m.hm.Range.Type, m.hm.Range.Start, m.hm.Range.End)))
	b.WriteString("\n\n")
	b.WriteString(RenderGrid(m.hm, m.cursor))

	if m.hm.Config.Display.ShowLegend {
		b.WriteByte('\n')
		b.WriteString(RenderLegend(m.hm.Legend))
		b.WriteByte('\n')
	}

	if c, ok := m.selected(); ok {
		b.WriteByte('\n')
		b.WriteString(styles.StatusKey.Render("cell"))
		b.WriteString(styles.StatusBar.Render(Describe(m.hm.Rows[m.cursor.Habit].Habit, c)))
		b.WriteByte('\n')
	}

	if m.Message != "" {
		b.WriteByte('\n')
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.help.View(GridKeys))

	return styles.App.Render(b.String())
}
