package domain

import (
	"regexp"
	"strconv"
)

// habitNamePattern is the only accepted shape for habit names
var habitNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// IsValidHabitName reports whether name is lower-snake-case
func IsValidHabitName(name string) bool {
	return habitNamePattern.MatchString(name)
}

// ValueKind distinguishes the two habit value shapes
type ValueKind int

const (
	ValueNumeric ValueKind = iota
	ValueBoolean
)

// String returns the string representation of the ValueKind
func (k ValueKind) String() string {
	switch k {
	case ValueNumeric:
		return "numeric"
	case ValueBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is the resolved value of one habit on one date.
// Amount is meaningful for numeric values, Flag for boolean ones.
type Value struct {
	Kind   ValueKind `json:"kind"`
	Amount float64   `json:"amount,omitempty"`
	Flag   bool      `json:"flag,omitempty"`
}

// Numeric builds a numeric Value
func Numeric(amount float64) Value {
	return Value{Kind: ValueNumeric, Amount: amount}
}

// Boolean builds a boolean Value
func Boolean(flag bool) Value {
	return Value{Kind: ValueBoolean, Flag: flag}
}

// String renders the value the way tooltips show it
func (v Value) String() string {
	if v.Kind == ValueBoolean {
		return strconv.FormatBool(v.Flag)
	}
	return FormatAmount(v.Amount)
}

// FormatAmount formats a number with the shortest exact representation
func FormatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParsedFile is the parse result for one document
type ParsedFile struct {
	Path string `json:"path"`
	// Values maps date -> habit -> resolved value
	Values map[string]map[string]Value `json:"values"`
	// HeadingLines maps date -> 1-based heading line numbers in document order
	HeadingLines map[string][]int `json:"headingLines"`
}

// HabitsOn returns the habits with a resolved value on date
func (p *ParsedFile) HabitsOn(date string) []string {
	return sortedKeys(p.Values[date])
}

// Dates returns every date that has a heading or a value, ascending
func (p *ParsedFile) Dates() []string {
	seen := make(map[string]struct{}, len(p.HeadingLines))
	for d := range p.HeadingLines {
		seen[d] = struct{}{}
	}
	for d := range p.Values {
		seen[d] = struct{}{}
	}
	return sortedKeys(seen)
}

// ScanCandidate is one navigable (document, heading line) for a date
type ScanCandidate struct {
	Path   string   `json:"path"`
	Line   int      `json:"line"`
	Habits []string `json:"habits"`
}

// HasHabit reports whether the candidate carries data for habit
func (c ScanCandidate) HasHabit(habit string) bool {
	for _, h := range c.Habits {
		if h == habit {
			return true
		}
	}
	return false
}

// ScanResult is the aggregated dataset for one scan
type ScanResult struct {
	Dates            []string                    `json:"dates"`
	ValuesByHabit    map[string]map[string]Value `json:"valuesByHabit"`
	HabitsFound      []string                    `json:"habitsFound"`
	CandidatesByDate map[string][]ScanCandidate  `json:"candidatesByDate"`
	Files            []string                    `json:"files"`
}

// Value returns the aggregated value of habit on date
func (r *ScanResult) Value(habit, date string) (Value, bool) {
	v, ok := r.ValuesByHabit[habit][date]
	return v, ok
}
