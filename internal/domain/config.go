package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// RangeType selects the calendar span of a heatmap
type RangeType string

const (
	RangeWeek  RangeType = "week"
	RangeMonth RangeType = "month"
	RangeYear  RangeType = "year"
)

// HabitMode selects which habits are rendered
type HabitMode string

const (
	HabitsAuto HabitMode = "auto"
	HabitsList HabitMode = "list"
)

// ThresholdKind is the comparator of a numeric color threshold
type ThresholdKind string

const (
	ThresholdLE ThresholdKind = "le"
	ThresholdGT ThresholdKind = "gt"
)

// Display bounds; values outside them fall back to the defaults
const (
	DefaultCellSize = 14
	MinCellSize     = 6
	MaxCellSize     = 30
	DefaultGap      = 3
	MinGap          = 0
	MaxGap          = 8
)

// RangeSpec is the normalized range section. Year and Month keep whatever
// number was configured; the range resolver validates them.
type RangeSpec struct {
	Type      RangeType
	Year      *float64
	Month     *float64
	FromTitle bool
}

// HabitSelection is the normalized habits section
type HabitSelection struct {
	Mode HabitMode
	List []string
}

// Threshold maps numeric values to a color
type Threshold struct {
	Kind  ThresholdKind
	Bound float64
	Color string
}

// Matches reports whether v satisfies the threshold comparator
func (t Threshold) Matches(v float64) bool {
	if t.Kind == ThresholdGT {
		return v > t.Bound
	}
	return v <= t.Bound
}

// Label describes the threshold for legends, e.g. "≤ 10"
func (t Threshold) Label() string {
	if t.Kind == ThresholdGT {
		return "> " + FormatAmount(t.Bound)
	}
	return "≤ " + FormatAmount(t.Bound)
}

// ColorPolicy is the normalized colors section
type ColorPolicy struct {
	NoData       string
	BlankFuture  string
	BooleanTrue  string
	BooleanFalse string
	Numeric      []Threshold
}

// DisplayOptions is the normalized display section
type DisplayOptions struct {
	Title      string
	ShowLegend bool
	CellSize   int
	Gap        int
	WeekStart  time.Weekday
}

// Config is a fully defaulted heatmap configuration
type Config struct {
	Range   RangeSpec
	Habits  HabitSelection
	Colors  ColorPolicy
	Display DisplayOptions
}

// Built-in palette
const (
	DefaultNoDataColor       = "#ebedf0"
	DefaultBlankFutureColor  = "#f6f8fa"
	DefaultBooleanTrueColor  = "#40c463"
	DefaultBooleanFalseColor = "#f85149"
	DefaultTitle             = "Habits"
)

// DefaultThresholds is the numeric ladder used when none is configured
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Kind: ThresholdLE, Bound: 0, Color: "#ebedf0"},
		{Kind: ThresholdLE, Bound: 10, Color: "#9be9a8"},
		{Kind: ThresholdLE, Bound: 25, Color: "#40c463"},
		{Kind: ThresholdLE, Bound: 50, Color: "#30a14e"},
		{Kind: ThresholdGT, Bound: 50, Color: "#216e39"},
	}
}

// DefaultConfig returns the config an empty block normalizes to
func DefaultConfig() Config {
	return Config{
		Range:  RangeSpec{Type: RangeWeek, FromTitle: true},
		Habits: HabitSelection{Mode: HabitsAuto},
		Colors: ColorPolicy{
			NoData:       DefaultNoDataColor,
			BlankFuture:  DefaultBlankFutureColor,
			BooleanTrue:  DefaultBooleanTrueColor,
			BooleanFalse: DefaultBooleanFalseColor,
			Numeric:      DefaultThresholds(),
		},
		Display: DisplayOptions{
			Title:      DefaultTitle,
			ShowLegend: true,
			CellSize:   DefaultCellSize,
			Gap:        DefaultGap,
			WeekStart:  time.Monday,
		},
	}
}

// NormalizeConfig validates a decoded config block and fills defaults.
// Either a complete Config or a *ConfigError with every problem is returned.
func NormalizeConfig(raw map[string]any) (*Config, error) {
	cfg := DefaultConfig()
	var problems []*ValidationError
	report := func(field, format string, args ...any) {
		problems = append(problems, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// range
	rng := section(raw, "range")
	if v, ok := rng["type"]; ok {
		t := RangeType(strings.ToLower(strings.TrimSpace(cast.ToString(v))))
		switch t {
		case RangeWeek, RangeMonth, RangeYear:
			cfg.Range.Type = t
		default:
			report("range.type", "must be one of week, month, year (got %v)", v)
		}
		cfg.Range.FromTitle = false
	}
	if v, ok := rng["fromTitle"]; ok {
		b, isBool := v.(bool)
		cfg.Range.FromTitle = isBool && b
	}
	if n, ok := number(rng["year"]); ok {
		cfg.Range.Year = &n
	}
	if n, ok := number(rng["month"]); ok {
		cfg.Range.Month = &n
	}

	// habits
	habits := section(raw, "habits")
	if v, ok := habits["mode"]; ok {
		m := HabitMode(strings.ToLower(strings.TrimSpace(cast.ToString(v))))
		switch m {
		case HabitsAuto, HabitsList:
			cfg.Habits.Mode = m
		default:
			report("habits.mode", "must be auto or list (got %v)", v)
		}
	}
	if cfg.Habits.Mode == HabitsList {
		list := habitList(habits["list"])
		if len(list) == 0 {
			report("habits.list", "must name at least one habit when mode is list")
		}
		var invalid []string
		for _, name := range list {
			if !IsValidHabitName(name) {
				invalid = append(invalid, name)
			}
		}
		if len(invalid) > 0 {
			report("habits.list", "invalid habit names (use a-z, 0-9, _): %s", strings.Join(invalid, ", "))
		}
		cfg.Habits.List = list
	}

	// colors
	colors := section(raw, "colors")
	cfg.Colors.NoData = stringOr(colors["noData"], cfg.Colors.NoData)
	cfg.Colors.BlankFuture = stringOr(colors["blankFuture"], cfg.Colors.BlankFuture)
	cfg.Colors.BooleanTrue = stringOr(colors["booleanTrue"], cfg.Colors.BooleanTrue)
	cfg.Colors.BooleanFalse = stringOr(colors["booleanFalse"], cfg.Colors.BooleanFalse)
	if v, ok := colors["numeric"]; ok {
		thresholds := thresholdList(v)
		if len(thresholds) == 0 {
			report("colors.numeric", "no valid thresholds (each needs a color and exactly one of le or gt); using defaults")
			thresholds = DefaultThresholds()
		}
		cfg.Colors.Numeric = thresholds
	}

	// display
	display := section(raw, "display")
	cfg.Display.Title = stringOr(display["title"], cfg.Display.Title)
	if b, ok := display["showLegend"].(bool); ok {
		cfg.Display.ShowLegend = b
	}
	cfg.Display.CellSize = boundedInt(display["cellSize"], MinCellSize, MaxCellSize, DefaultCellSize)
	cfg.Display.Gap = boundedInt(display["gap"], MinGap, MaxGap, DefaultGap)
	if s, ok := display["weekStart"].(string); ok && s == "Sunday" {
		cfg.Display.WeekStart = time.Sunday
	}

	if len(problems) > 0 {
		return nil, &ConfigError{Problems: problems}
	}
	return &cfg, nil
}

// section returns raw[key] as a string-keyed map, or an empty map
func section(raw map[string]any, key string) map[string]any {
	v, ok := raw[key]
	if !ok || v == nil {
		return map[string]any{}
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return map[string]any{}
	}
	return m
}

// number accepts only numeric kinds; strings and booleans are not numbers
func number(v any) (float64, bool) {
	switch v.(type) {
	case nil, string, bool:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringOr(v any, fallback string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

func boundedInt(v any, lo, hi, fallback int) int {
	f, ok := number(v)
	if !ok {
		return fallback
	}
	r := int(math.Round(f))
	if r < lo || r > hi {
		return fallback
	}
	return r
}

// habitList trims, drops empties and deduplicates while keeping order
func habitList(v any) []string {
	items, err := toSlice(v)
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		name := strings.TrimSpace(cast.ToString(item))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// thresholdList keeps well-formed entries in their configured order
func thresholdList(v any) []Threshold {
	items, err := toSlice(v)
	if err != nil {
		return nil
	}
	var out []Threshold
	for _, item := range items {
		entry, err := cast.ToStringMapE(item)
		if err != nil {
			continue
		}
		color, ok := entry["color"].(string)
		if !ok || strings.TrimSpace(color) == "" {
			continue
		}
		// exactly one bound must be a number; null or text counts as absent
		le, hasLE := number(entry["le"])
		gt, hasGT := number(entry["gt"])
		if hasLE == hasGT {
			continue
		}
		kind, bound := ThresholdLE, le
		if hasGT {
			kind, bound = ThresholdGT, gt
		}
		out = append(out, Threshold{Kind: kind, Bound: bound, Color: strings.TrimSpace(color)})
	}
	return out
}

func toSlice(v any) ([]any, error) {
	if ss, ok := v.([]string); ok {
		out := make([]any, len(ss))
		for i, s := range ss {
			out[i] = s
		}
		return out, nil
	}
	return cast.ToSliceE(v)
}
