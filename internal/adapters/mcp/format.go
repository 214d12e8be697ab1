package mcp

import (
	"fmt"
	"strings"
	"time"

	"habitgrid/internal/application/commands"
	"habitgrid/internal/domain"
)

const cellWidth = 5

// FormatHeatmap renders one block per habit: a row per grid week, a column
// per weekday. Cells outside the range are left empty.
func FormatHeatmap(hm *commands.Heatmap) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s %s..%s)\n", hm.Config.Display.Title, hm.Range.Type, hm.Range.Start, hm.Range.End)

	if len(hm.Rows) == 0 {
		sb.WriteString("No habits found.\n")
		return sb.String()
	}

	header := weekdayHeader(hm.Config.Display.WeekStart)
	for _, row := range hm.Rows {
		fmt.Fprintf(&sb, "\n%s\n%s\n", row.Habit, header)
		for w := 0; w < row.Weeks(); w++ {
			first, _ := row.At(0, w)
			fmt.Fprintf(&sb, "  %s", first.Date)
			for d := 0; d < 7; d++ {
				c, _ := row.At(d, w)
				fmt.Fprintf(&sb, "%*s", cellWidth, Glyph(c))
			}
			sb.WriteByte('\n')
		}
	}

	if hm.Config.Display.ShowLegend {
		sb.WriteString("\nlegend:")
		for _, e := range hm.Legend {
			fmt.Fprintf(&sb, " [%s %s]", e.Label, e.Color)
		}
		sb.WriteString("\n✓ true  ✗ false  · no data  _ blank\n")
	}
	return sb.String()
}

// Glyph is the short text shown for a cell
func Glyph(c commands.Cell) string {
	if !c.InRange {
		return ""
	}
	switch c.Appearance.Kind {
	case domain.AppearanceNumeric:
		return c.Appearance.Tooltip
	case domain.AppearanceBoolean:
		if c.Value != nil && c.Value.Flag {
			return "✓"
		}
		return "✗"
	case domain.AppearanceBlank:
		return "_"
	default:
		return "·"
	}
}

func weekdayHeader(weekStart time.Weekday) string {
	var sb strings.Builder
	sb.WriteString("  week of   ")
	for i := 0; i < 7; i++ {
		day := time.Weekday((int(weekStart) + i) % 7)
		fmt.Fprintf(&sb, "%*s", cellWidth, day.String()[:3])
	}
	return sb.String()
}

// FormatParse lists each date heading with its resolved habits
func FormatParse(report *commands.ParseReport) string {
	var sb strings.Builder
	for _, s := range report.Sections {
		lines := make([]string, len(s.Lines))
		for i, l := range s.Lines {
			lines[i] = fmt.Sprint(l)
		}
		fmt.Fprintf(&sb, "%s (line %s)\n", s.Date, strings.Join(lines, ", "))
		if len(s.Entries) == 0 {
			sb.WriteString("  (no habits)\n")
		}
		for _, e := range s.Entries {
			fmt.Fprintf(&sb, "  %s = %s (%s)\n", e.Habit, e.Value, e.Value.Kind)
		}
	}
	return sb.String()
}
