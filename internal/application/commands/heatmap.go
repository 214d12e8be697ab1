package commands

import (
	"context"
	"time"

	"habitgrid/internal/application"
	"habitgrid/internal/domain"
	"habitgrid/internal/ports"
)

// Cell is one day of a habit row
type Cell struct {
	Date       string
	InRange    bool
	Value      *domain.Value
	Appearance domain.Appearance
}

// Row holds one habit's cells in grid order, starting on the week start
type Row struct {
	Habit string
	Cells []Cell
}

// Weeks returns the number of grid columns
func (r Row) Weeks() int {
	return len(r.Cells) / 7
}

// At returns the cell for a weekday row and week column
func (r Row) At(weekday, week int) (Cell, bool) {
	i := week*7 + weekday
	if weekday < 0 || weekday > 6 || week < 0 || i >= len(r.Cells) {
		return Cell{}, false
	}
	return r.Cells[i], true
}

// LegendEntry is one swatch of the legend
type LegendEntry struct {
	Label string
	Color string
}

// Heatmap is everything a renderer needs for one note
type Heatmap struct {
	Note      ports.Document
	Config    *domain.Config
	Range     *domain.RangeResolution
	Result    *domain.ScanResult
	Habits    []string
	Rows      []Row
	Legend    []LegendEntry
	GridStart string
	GridEnd   string
	Today     string
}

// Row returns the row for habit
func (h *Heatmap) Row(habit string) (Row, bool) {
	for _, r := range h.Rows {
		if r.Habit == habit {
			return r, true
		}
	}
	return Row{}, false
}

// HeatmapCommand builds a Heatmap for a note
type HeatmapCommand struct {
	source   ports.DocumentSource
	scanner  *application.Scanner
	now      func() time.Time
	NotePath string
	Raw      map[string]any
}

// NewHeatmapCommand creates a new HeatmapCommand. raw is the decoded config
// block; nil means every default.
func NewHeatmapCommand(source ports.DocumentSource, scanner *application.Scanner, notePath string, raw map[string]any) *HeatmapCommand {
	return &HeatmapCommand{
		source:   source,
		scanner:  scanner,
		now:      time.Now,
		NotePath: notePath,
		Raw:      raw,
	}
}

// WithClock replaces the clock used to decide which days are in the future
func (c *HeatmapCommand) WithClock(now func() time.Time) *HeatmapCommand {
	c.now = now
	return c
}

// Validate checks if the heatmap request is valid
func (c *HeatmapCommand) Validate() error {
	return application.ValidateNotePath("notePath", c.NotePath)
}

// Execute normalizes the config, resolves the range against the note title,
// scans and classifies every cell. Config and range problems stop before
// any document is read.
func (c *HeatmapCommand) Execute(ctx context.Context) (*Heatmap, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	doc, err := resolveNote(c.source, c.NotePath)
	if err != nil {
		return nil, err
	}

	cfg, err := domain.NormalizeConfig(c.Raw)
	if err != nil {
		return nil, err
	}
	rng, err := domain.ResolveRange(cfg, doc.Title)
	if err != nil {
		return nil, err
	}

	result, err := c.scanner.Scan(ctx, doc, *rng)
	if err != nil {
		return nil, err
	}

	return BuildHeatmap(doc, cfg, rng, result, domain.FormatISODate(c.now())), nil
}

// BuildHeatmap lays a scan result out on the calendar grid
func BuildHeatmap(doc ports.Document, cfg *domain.Config, rng *domain.RangeResolution, result *domain.ScanResult, today string) *Heatmap {
	gridStart, gridEnd := domain.GridBounds(*rng, cfg.Display.WeekStart)
	days := domain.EnumerateDates(gridStart, gridEnd)

	habits := result.HabitsFound
	if cfg.Habits.Mode == domain.HabitsList {
		habits = cfg.Habits.List
	}

	rows := make([]Row, len(habits))
	for i, habit := range habits {
		cells := make([]Cell, len(days))
		for j, date := range days {
			cell := Cell{Date: date, InRange: rng.Contains(date)}
			if cell.InRange {
				if v, ok := result.Value(habit, date); ok {
					cell.Value = &v
				}
				cell.Appearance = domain.ResolveAppearance(cfg, date, cell.Value, today)
			}
			cells[j] = cell
		}
		rows[i] = Row{Habit: habit, Cells: cells}
	}

	return &Heatmap{
		Note:      doc,
		Config:    cfg,
		Range:     rng,
		Result:    result,
		Habits:    habits,
		Rows:      rows,
		Legend:    Legend(cfg),
		GridStart: domain.FormatISODate(gridStart),
		GridEnd:   domain.FormatISODate(gridEnd),
		Today:     today,
	}
}

// Legend lists the threshold ladder followed by the non-numeric swatches
func Legend(cfg *domain.Config) []LegendEntry {
	entries := make([]LegendEntry, 0, len(cfg.Colors.Numeric)+4)
	for _, t := range cfg.Colors.Numeric {
		entries = append(entries, LegendEntry{Label: t.Label(), Color: t.Color})
	}
	return append(entries,
		LegendEntry{Label: "true", Color: cfg.Colors.BooleanTrue},
		LegendEntry{Label: "false", Color: cfg.Colors.BooleanFalse},
		LegendEntry{Label: domain.TooltipNoData, Color: cfg.Colors.NoData},
		LegendEntry{Label: "blank", Color: cfg.Colors.BlankFuture},
	)
}

// resolveNote maps a lookup failure onto NoteError
func resolveNote(source ports.DocumentSource, notePath string) (ports.Document, error) {
	doc, err := source.Document(notePath)
	if err != nil {
		return ports.Document{}, &application.NoteError{Path: notePath, Reason: err}
	}
	return doc, nil
}
