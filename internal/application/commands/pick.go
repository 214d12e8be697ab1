package commands

import (
	"context"

	"habitgrid/internal/domain"
	"habitgrid/internal/ports"
)

// PickCandidate chooses where a click on (date, habit) should land: the
// first candidate carrying the habit, else the first candidate of the day.
func PickCandidate(result *domain.ScanResult, date, habit string) (domain.ScanCandidate, bool) {
	if result == nil {
		return domain.ScanCandidate{}, false
	}
	cands := result.CandidatesByDate[date]
	for _, c := range cands {
		if c.HasHabit(habit) {
			return c, true
		}
	}
	if len(cands) > 0 {
		return cands[0], true
	}
	return domain.ScanCandidate{}, false
}

// Target is a note position to jump to
type Target struct {
	Path string
	Line int
}

// Locate resolves a clicked cell to a note position. Without a candidate it
// falls back to the heading nearest to date in the heatmap's own note, and
// to the top of that note when it has no date headings.
func Locate(ctx context.Context, cache ports.ParseCache, hm *Heatmap, date, habit string) (Target, error) {
	if c, ok := PickCandidate(hm.Result, date, habit); ok {
		return Target{Path: c.Path, Line: c.Line}, nil
	}

	parsed, err := cache.Get(ctx, hm.Note)
	if err != nil {
		return Target{}, err
	}
	line, _ := domain.NearestHeading(parsed, date)
	return Target{Path: hm.Note.Path, Line: line}, nil
}
