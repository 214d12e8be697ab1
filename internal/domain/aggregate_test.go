package domain

import (
	"reflect"
	"testing"
)

func weekRange() RangeResolution {
	return RangeResolution{
		Type:  RangeWeek,
		Start: "2026-02-09",
		End:   "2026-02-15",
		Dates: []string{"2026-02-09", "2026-02-10", "2026-02-11", "2026-02-12", "2026-02-13", "2026-02-14", "2026-02-15"},
	}
}

func TestAggregator_MergesAcrossDocuments(t *testing.T) {
	a := ParseDocument("a.md", "## 2026.02.10\nhabit-read::3\nhabit-walk::no\n## 2026.03.01\nhabit-swim::1\n")
	b := ParseDocument("b.md", "## 2026.02.10\nhabit-read::4\n- [x] habit-walk\n## 2026.02.12\nhabit-mood::no\n")

	agg := NewAggregator(weekRange())
	agg.Add(a)
	agg.Add(b)
	res := agg.Result()

	if v, _ := res.Value("read", "2026-02-10"); v != Numeric(7) {
		t.Errorf("read = %+v, want 7", v)
	}
	if v, _ := res.Value("walk", "2026-02-10"); v != Boolean(true) {
		t.Errorf("walk = %+v, want true", v)
	}
	if v, _ := res.Value("mood", "2026-02-12"); v != Boolean(false) {
		t.Errorf("mood = %+v, want false", v)
	}
	if _, ok := res.Value("swim", "2026-03-01"); ok {
		t.Error("out-of-range dates must not be aggregated")
	}
	if !reflect.DeepEqual(res.HabitsFound, []string{"mood", "read", "swim", "walk"}) {
		t.Errorf("habits found = %v", res.HabitsFound)
	}
	if !reflect.DeepEqual(res.Files, []string{"a.md", "b.md"}) {
		t.Errorf("files = %v", res.Files)
	}

	cands := res.CandidatesByDate["2026-02-10"]
	if len(cands) != 2 || cands[0].Path != "a.md" || cands[1].Path != "b.md" {
		t.Fatalf("candidates = %+v", cands)
	}
	if cands[0].Line != 1 || !reflect.DeepEqual(cands[0].Habits, []string{"read", "walk"}) {
		t.Errorf("first candidate = %+v", cands[0])
	}
	if _, ok := res.CandidatesByDate["2026-03-01"]; ok {
		t.Error("out-of-range headings must not become candidates")
	}
}

func TestAggregator_NumericBeatsBooleanAcrossDocuments(t *testing.T) {
	a := ParseDocument("a.md", "## 2026.02.10\nhabit-run::yes\n")
	b := ParseDocument("b.md", "## 2026.02.10\nhabit-run::2\n")

	agg := NewAggregator(weekRange())
	agg.Add(a)
	agg.Add(b)

	if v, _ := agg.Result().Value("run", "2026-02-10"); v != Numeric(2) {
		t.Errorf("run = %+v, want numeric 2", v)
	}
}

func TestAggregator_OrderIndependent(t *testing.T) {
	docs := []*ParsedFile{
		ParseDocument("a.md", "## 2026.02.10\nhabit-read::1.5\nhabit-walk::no\n"),
		ParseDocument("b.md", "## 2026.02.10\nhabit-read::2\n- [x] habit-walk\n"),
		ParseDocument("c.md", "## 2026.02.10\nhabit-read::-0.5\n## 2026.02.11\nhabit-walk::no\n"),
	}

	forward := NewAggregator(weekRange())
	for _, d := range docs {
		forward.Add(d)
	}
	backward := NewAggregator(weekRange())
	for i := len(docs) - 1; i >= 0; i-- {
		backward.Add(docs[i])
	}

	f, b := forward.Result(), backward.Result()
	if !reflect.DeepEqual(f.ValuesByHabit, b.ValuesByHabit) {
		t.Errorf("fold depends on order: %v vs %v", f.ValuesByHabit, b.ValuesByHabit)
	}
	if v, _ := f.Value("read", "2026-02-10"); v != Numeric(3) {
		t.Errorf("read = %+v, want 3", v)
	}
}
