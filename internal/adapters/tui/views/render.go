package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"habitgrid/internal/adapters/tui/styles"
	"habitgrid/internal/application/commands"
	"habitgrid/internal/domain"
)

// Position addresses one cell: a habit row, a week column and a weekday
// offset from the configured week start.
type Position struct {
	Habit int
	Week  int
	Day   int
}

// NoCursor renders a grid without a highlighted cell
var NoCursor = Position{Habit: -1}

const cellText = "  "

// RenderGrid draws every habit as a weekday-by-week block of colored cells.
// Cells outside the range stay empty.
func RenderGrid(hm *commands.Heatmap, cursor Position) string {
	if hm == nil {
		return ""
	}
	if len(hm.Rows) == 0 {
		return styles.MutedText.Render("No habits found.")
	}

	gap := strings.Repeat(" ", clampGap(hm.Config.Display.Gap))
	blocks := make([]string, 0, len(hm.Rows))
	for h, row := range hm.Rows {
		var b strings.Builder
		b.WriteString(styles.HabitName.Render(row.Habit))
		b.WriteByte('\n')
		for d := 0; d < 7; d++ {
			day := time.Weekday((int(hm.Config.Display.WeekStart) + d) % 7)
			b.WriteString(styles.DayLabel.Render(day.String()[:3]))
			for w := 0; w < row.Weeks(); w++ {
				c, _ := row.At(d, w)
				b.WriteString(gap)
				b.WriteString(renderCell(c, cursor == Position{Habit: h, Week: w, Day: d}))
			}
			b.WriteByte('\n')
		}
		blocks = append(blocks, b.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderCell(c commands.Cell, selected bool) string {
	text := cellText
	if selected {
		text = "<>"
	}
	if !c.InRange {
		return text
	}
	style := styles.Swatch(c.Appearance.Color)
	if selected {
		style = style.Inherit(styles.Cursor)
	}
	return style.Render(text)
}

// clampGap keeps the configured pixel gap readable in a terminal
func clampGap(gap int) int {
	switch {
	case gap <= 0:
		return 0
	case gap > 2:
		return 2
	default:
		return 1
	}
}

// RenderLegend draws one swatch per legend entry
func RenderLegend(entries []commands.LegendEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = styles.Swatch(e.Color).Render(cellText) + " " + styles.HelpDesc.Render(e.Label)
	}
	return strings.Join(parts, "  ")
}

// Describe summarizes a cell for the status line
func Describe(habit string, c commands.Cell) string {
	if !c.InRange {
		return fmt.Sprintf("%s  %s  out of range", habit, c.Date)
	}
	if c.Appearance.Kind == domain.AppearanceNumeric || c.Appearance.Kind == domain.AppearanceBoolean {
		return fmt.Sprintf("%s  %s  %s", habit, c.Date, c.Appearance.Tooltip)
	}
	return fmt.Sprintf("%s  %s  (%s)", habit, c.Date, c.Appearance.Tooltip)
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderDocument renders a complete heatmap with title and optional legend,
// the way the render command prints it.
func RenderDocument(hm *commands.Heatmap) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(hm.Config.Display.Title))
	b.WriteByte('\n')
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s %s..%s", hm.Range.Type, hm.Range.Start, hm.Range.End)))
	b.WriteString("\n\n")
	b.WriteString(RenderGrid(hm, NoCursor))
	if hm.Config.Display.ShowLegend {
		b.WriteString("\n")
		b.WriteString(RenderLegend(hm.Legend))
		b.WriteByte('\n')
	}
	return b.String()
}
