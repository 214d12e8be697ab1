package domain

// NearestHeading returns the first heading line for date in parsed. When the
// document has no heading for that exact date, the heading whose date is
// closest in days is used instead, preferring the earlier date on ties.
func NearestHeading(parsed *ParsedFile, date string) (int, bool) {
	if parsed == nil || len(parsed.HeadingLines) == 0 {
		return 0, false
	}
	if lines := parsed.HeadingLines[date]; len(lines) > 0 {
		return lines[0], true
	}

	target, ok := ParseISODate(date)
	if !ok {
		return 0, false
	}

	bestLine, bestDist := 0, -1
	for _, d := range sortedKeys(parsed.HeadingLines) {
		lines := parsed.HeadingLines[d]
		t, ok := ParseISODate(d)
		if !ok || len(lines) == 0 {
			continue
		}
		dist := DaysBetween(target, t)
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			bestLine, bestDist = lines[0], dist
		}
	}
	return bestLine, bestDist >= 0
}
