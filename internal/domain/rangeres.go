package domain

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

// Year bounds accepted by month and year ranges
const (
	MinRangeYear = 1970
	MaxRangeYear = 9999
)

// weekTitlePattern matches note titles such as "2026.02.09 - 2026.02.15"
var weekTitlePattern = regexp.MustCompile(`^(\d{4}\.\d{2}\.\d{2}) - (\d{4}\.\d{2}\.\d{2})$`)

// RangeResolution is a concrete inclusive span of dates
type RangeResolution struct {
	Type  RangeType `json:"type"`
	Start string    `json:"start"`
	End   string    `json:"end"`
	Dates []string  `json:"dates"`
}

// Contains reports whether date lies in the range
func (r RangeResolution) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

// ResolveRange computes the concrete span for cfg given the title of the
// current note. Failures are returned as a *RangeError.
func ResolveRange(cfg *Config, title string) (*RangeResolution, error) {
	switch cfg.Range.Type {
	case RangeWeek:
		return resolveWeek(cfg.Range, title)
	case RangeMonth:
		return resolveMonth(cfg.Range)
	case RangeYear:
		return resolveYear(cfg.Range)
	default:
		return nil, &RangeError{
			Type:     cfg.Range.Type,
			Problems: []*ValidationError{{Field: "range.type", Message: fmt.Sprintf("unsupported range type %q", cfg.Range.Type)}},
		}
	}
}

func resolveWeek(spec RangeSpec, title string) (*RangeResolution, error) {
	fail := func(problems ...*ValidationError) (*RangeResolution, error) {
		return nil, &RangeError{Type: RangeWeek, Problems: problems}
	}

	if !spec.FromTitle {
		return fail(&ValidationError{Field: "range.fromTitle", Message: "week ranges require fromTitle: true"})
	}

	m := weekTitlePattern.FindStringSubmatch(title)
	if m == nil {
		return fail(&ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("note title must look like YYYY.MM.dd - YYYY.MM.dd (got %q)", title),
		})
	}

	var problems []*ValidationError
	startISO, okStart := NormalizeDottedDate(m[1])
	if !okStart {
		problems = append(problems, &ValidationError{Field: "title", Message: fmt.Sprintf("invalid start date %s", m[1])})
	}
	endISO, okEnd := NormalizeDottedDate(m[2])
	if !okEnd {
		problems = append(problems, &ValidationError{Field: "title", Message: fmt.Sprintf("invalid end date %s", m[2])})
	}
	if len(problems) > 0 {
		return fail(problems...)
	}

	start, _ := ParseISODate(startISO)
	end, _ := ParseISODate(endISO)
	if n := DayCountInclusive(start, end); n != 7 {
		return fail(&ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("week range must span exactly 7 days (got %d)", n),
		})
	}

	return newResolution(RangeWeek, start, end), nil
}

func resolveMonth(spec RangeSpec) (*RangeResolution, error) {
	var problems []*ValidationError
	year, okYear := integerIn(spec.Year, MinRangeYear, MaxRangeYear)
	if !okYear {
		problems = append(problems, yearProblem())
	}
	month, okMonth := integerIn(spec.Month, 1, 12)
	if !okMonth {
		problems = append(problems, &ValidationError{Field: "range.month", Message: "must be an integer between 1 and 12"})
	}
	if len(problems) > 0 {
		return nil, &RangeError{Type: RangeMonth, Problems: problems}
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// day 0 of the next month is the last day of this one
	end := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return newResolution(RangeMonth, start, end), nil
}

func resolveYear(spec RangeSpec) (*RangeResolution, error) {
	year, ok := integerIn(spec.Year, MinRangeYear, MaxRangeYear)
	if !ok {
		return nil, &RangeError{Type: RangeYear, Problems: []*ValidationError{yearProblem()}}
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return newResolution(RangeYear, start, end), nil
}

func newResolution(t RangeType, start, end time.Time) *RangeResolution {
	return &RangeResolution{
		Type:  t,
		Start: FormatISODate(start),
		End:   FormatISODate(end),
		Dates: EnumerateDates(start, end),
	}
}

func yearProblem() *ValidationError {
	return &ValidationError{
		Field:   "range.year",
		Message: fmt.Sprintf("must be an integer between %d and %d", MinRangeYear, MaxRangeYear),
	}
}

func integerIn(v *float64, lo, hi int) (int, bool) {
	if v == nil || *v != math.Trunc(*v) {
		return 0, false
	}
	if *v < float64(lo) || *v > float64(hi) {
		return 0, false
	}
	return int(*v), true
}
