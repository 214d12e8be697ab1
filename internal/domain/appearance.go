package domain

// AppearanceKind classifies a heatmap cell
type AppearanceKind int

const (
	AppearanceNoData AppearanceKind = iota
	AppearanceBlank
	AppearanceBoolean
	AppearanceNumeric
)

// String returns the string representation of the AppearanceKind
func (k AppearanceKind) String() string {
	switch k {
	case AppearanceNoData:
		return "no-data"
	case AppearanceBlank:
		return "blank"
	case AppearanceBoolean:
		return "boolean"
	case AppearanceNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// Appearance is the visual classification of one cell
type Appearance struct {
	Kind    AppearanceKind
	Color   string
	Tooltip string
}

// Tooltips for cells without a value
const (
	TooltipBlank  = "blank (today/future missing)"
	TooltipNoData = "no data"
)

// ResolveAppearance maps a date and its optional value to a color.
// today is an ISO date; ISO strings compare in calendar order.
func ResolveAppearance(cfg *Config, date string, value *Value, today string) Appearance {
	if value == nil {
		if date >= today {
			return Appearance{Kind: AppearanceBlank, Color: cfg.Colors.BlankFuture, Tooltip: TooltipBlank}
		}
		return Appearance{Kind: AppearanceNoData, Color: cfg.Colors.NoData, Tooltip: TooltipNoData}
	}

	if value.Kind == ValueBoolean {
		color := cfg.Colors.BooleanFalse
		if value.Flag {
			color = cfg.Colors.BooleanTrue
		}
		return Appearance{Kind: AppearanceBoolean, Color: color, Tooltip: value.String()}
	}

	return Appearance{
		Kind:    AppearanceNumeric,
		Color:   ThresholdColor(cfg.Colors.Numeric, value.Amount),
		Tooltip: value.String(),
	}
}

// ThresholdColor walks the ladder in order and returns the first matching
// color, or the last threshold's color when none match.
func ThresholdColor(thresholds []Threshold, v float64) string {
	for _, t := range thresholds {
		if t.Matches(v) {
			return t.Color
		}
	}
	if len(thresholds) == 0 {
		return ""
	}
	return thresholds[len(thresholds)-1].Color
}
