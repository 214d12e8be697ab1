package domain

import (
	"regexp"
	"strings"
	"time"
)

// ISOLayout is the canonical date format used throughout the data model
const ISOLayout = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseISODate parses a strict YYYY-MM-DD string.
// Calendar-invalid dates (e.g. 2024-02-30) are rejected by formatting the
// parsed value back and requiring an exact match with the input.
func ParseISODate(s string) (time.Time, bool) {
	if !isoDatePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(ISOLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	if t.Format(ISOLayout) != s {
		return time.Time{}, false
	}
	return t, true
}

// IsISODate reports whether s is a valid YYYY-MM-DD date
func IsISODate(s string) bool {
	_, ok := ParseISODate(s)
	return ok
}

// FormatISODate formats t as YYYY-MM-DD
func FormatISODate(t time.Time) string {
	return t.Format(ISOLayout)
}

// NormalizeDottedDate converts a YYYY.MM.dd token into an ISO date.
func NormalizeDottedDate(s string) (string, bool) {
	iso := strings.ReplaceAll(s, ".", "-")
	if !IsISODate(iso) {
		return "", false
	}
	return iso, true
}

// Midnight returns the UTC midnight of the calendar day of t.
// All day arithmetic happens on UTC midnights so daylight-saving shifts
// never change a day count.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days after t
func AddDays(t time.Time, n int) time.Time {
	m := Midnight(t)
	return time.Date(m.Year(), m.Month(), m.Day()+n, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns end minus start in whole days
func DaysBetween(start, end time.Time) int {
	return int(Midnight(end).Sub(Midnight(start)).Hours() / 24)
}

// DayCountInclusive counts the days from start to end, both ends included.
// It is zero or negative when end precedes start.
func DayCountInclusive(start, end time.Time) int {
	return DaysBetween(start, end) + 1
}

// WeekdayIndex returns the 0-based column of t in a week starting on weekStart
func WeekdayIndex(t time.Time, weekStart time.Weekday) int {
	return (int(t.Weekday()) - int(weekStart) + 7) % 7
}

// EnumerateDates lists every ISO date from start to end inclusive
func EnumerateDates(start, end time.Time) []string {
	n := DayCountInclusive(start, end)
	if n <= 0 {
		return nil
	}
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, FormatISODate(AddDays(start, i)))
	}
	return dates
}

// GridBounds expands a range to whole weeks so the grid starts on weekStart
// and ends on the day before it.
func GridBounds(r RangeResolution, weekStart time.Weekday) (time.Time, time.Time) {
	start, _ := ParseISODate(r.Start)
	end, _ := ParseISODate(r.End)

	gridStart := AddDays(start, -WeekdayIndex(start, weekStart))
	gridEnd := AddDays(end, 6-WeekdayIndex(end, weekStart))
	return gridStart, gridEnd
}
