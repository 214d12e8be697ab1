package domain

// bucket merges one habit/date across documents
type bucket struct {
	numericSum float64
	hasNumeric bool
	boolTrue   bool
	boolFalse  bool
}

// aggregateRules mirror the in-document priority: numeric, then true, then false.
var aggregateRules = []func(b bucket) (Value, bool){
	func(b bucket) (Value, bool) { return Numeric(b.numericSum), b.hasNumeric },
	func(b bucket) (Value, bool) { return Boolean(true), b.boolTrue },
	func(b bucket) (Value, bool) { return Boolean(false), b.boolFalse },
}

// Aggregator folds per-document parses into one ScanResult. The fold is
// commutative per bucket, so document order only affects candidate order.
type Aggregator struct {
	rng        RangeResolution
	inRange    map[string]struct{}
	buckets    map[string]map[string]*bucket
	habits     map[string]struct{}
	candidates map[string][]ScanCandidate
	files      []string
}

// NewAggregator creates an aggregator bound to a resolved range
func NewAggregator(rng RangeResolution) *Aggregator {
	inRange := make(map[string]struct{}, len(rng.Dates))
	for _, d := range rng.Dates {
		inRange[d] = struct{}{}
	}
	return &Aggregator{
		rng:        rng,
		inRange:    inRange,
		buckets:    make(map[string]map[string]*bucket),
		habits:     make(map[string]struct{}),
		candidates: make(map[string][]ScanCandidate),
	}
}

// Add folds one document's parse into the aggregate
func (a *Aggregator) Add(parsed *ParsedFile) {
	a.files = append(a.files, parsed.Path)

	for _, date := range sortedKeys(parsed.HeadingLines) {
		lines := parsed.HeadingLines[date]
		if _, ok := a.inRange[date]; !ok || len(lines) == 0 {
			continue
		}
		a.candidates[date] = append(a.candidates[date], ScanCandidate{
			Path:   parsed.Path,
			Line:   lines[0],
			Habits: parsed.HabitsOn(date),
		})
	}

	for date, byHabit := range parsed.Values {
		_, dateInRange := a.inRange[date]
		for habit, v := range byHabit {
			a.habits[habit] = struct{}{}
			if !dateInRange {
				continue
			}
			b := a.bucket(habit, date)
			if v.Kind == ValueNumeric {
				b.numericSum += v.Amount
				b.hasNumeric = true
			} else if v.Flag {
				b.boolTrue = true
			} else {
				b.boolFalse = true
			}
		}
	}
}

func (a *Aggregator) bucket(habit, date string) *bucket {
	byDate, ok := a.buckets[habit]
	if !ok {
		byDate = make(map[string]*bucket)
		a.buckets[habit] = byDate
	}
	b, ok := byDate[date]
	if !ok {
		b = &bucket{}
		byDate[date] = b
	}
	return b
}

// Result finalizes every bucket into a ScanResult
func (a *Aggregator) Result() *ScanResult {
	values := make(map[string]map[string]Value, len(a.buckets))
	for habit, byDate := range a.buckets {
		for date, b := range byDate {
			v, ok := b.resolve()
			if !ok {
				continue
			}
			if values[habit] == nil {
				values[habit] = make(map[string]Value)
			}
			values[habit][date] = v
		}
	}

	return &ScanResult{
		Dates:            a.rng.Dates,
		ValuesByHabit:    values,
		HabitsFound:      sortedKeys(a.habits),
		CandidatesByDate: a.candidates,
		Files:            a.files,
	}
}

func (b *bucket) resolve() (Value, bool) {
	for _, rule := range aggregateRules {
		if v, ok := rule(*b); ok {
			return v, true
		}
	}
	return Value{}, false
}
