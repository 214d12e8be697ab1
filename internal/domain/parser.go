package domain

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// "## 2026.02.10" with up to three leading spaces and nothing after the date
	headingPattern = regexp.MustCompile(`^ {0,3}#{1,6}[ \t]+(\d{4}\.\d{2}\.\d{2})[ \t]*$`)

	// habit-<name>::<value>, anywhere on the line
	inlinePattern = regexp.MustCompile(`habit-([a-z0-9_]+)::(\S+)`)

	// "- [ ] ..." / "- [x] ..." from the start of the line
	checklistPattern = regexp.MustCompile(`^\s*-\s+\[([ xX])\]\s+(.*)$`)

	// value-less habit-<name> mention inside a checklist item
	mentionPattern = regexp.MustCompile(`habit-([a-z0-9_]+)(::)?`)
)

// accumulator is the running state of one (date, habit) pair while a
// single document is scanned. It never leaves ParseDocument.
type accumulator struct {
	numericSum     float64
	hasNumeric     bool
	inlineTrue     bool
	inlineFalse    bool
	checklistTrue  bool
	checklistFalse bool
}

// resolveRule returns a value and true when it decides the outcome
type resolveRule func(a accumulator) (Value, bool)

// documentRules are evaluated top to bottom; the first match wins.
var documentRules = []resolveRule{
	func(a accumulator) (Value, bool) { return Numeric(a.numericSum), a.hasNumeric },
	func(a accumulator) (Value, bool) { return Boolean(true), a.inlineTrue },
	func(a accumulator) (Value, bool) { return Boolean(true), a.checklistTrue },
	func(a accumulator) (Value, bool) { return Boolean(false), a.checklistFalse },
	func(a accumulator) (Value, bool) { return Boolean(false), a.inlineFalse },
}

func (a accumulator) resolve() (Value, bool) {
	for _, rule := range documentRules {
		if v, ok := rule(a); ok {
			return v, true
		}
	}
	return Value{}, false
}

// ParseDocument extracts dated habit values from one document's text.
// Lines before the first date heading are ignored. Malformed tokens are
// skipped silently.
func ParseDocument(path, content string) *ParsedFile {
	acc := make(map[string]map[string]*accumulator)
	headings := make(map[string][]int)

	bucket := func(date, habit string) *accumulator {
		byHabit, ok := acc[date]
		if !ok {
			byHabit = make(map[string]*accumulator)
			acc[date] = byHabit
		}
		a, ok := byHabit[habit]
		if !ok {
			a = &accumulator{}
			byHabit[habit] = a
		}
		return a
	}

	activeDate := ""
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	for i, line := range lines {
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			// An invalid date still closes the previous section.
			iso, ok := NormalizeDottedDate(m[1])
			if !ok {
				activeDate = ""
				continue
			}
			activeDate = iso
			headings[iso] = append(headings[iso], i+1)
			continue
		}

		if activeDate == "" {
			continue
		}

		for _, m := range inlinePattern.FindAllStringSubmatch(line, -1) {
			name, raw := m[1], strings.ToLower(m[2])
			switch raw {
			case "true", "yes":
				bucket(activeDate, name).inlineTrue = true
			case "false", "no":
				bucket(activeDate, name).inlineFalse = true
			default:
				n, ok := parseFinite(raw)
				if !ok {
					continue
				}
				a := bucket(activeDate, name)
				a.numericSum += n
				a.hasNumeric = true
			}
		}

		if m := checklistPattern.FindStringSubmatch(line); m != nil {
			checked := m[1] != " "
			for _, name := range checklistMentions(m[2]) {
				a := bucket(activeDate, name)
				if checked {
					a.checklistTrue = true
				} else {
					a.checklistFalse = true
				}
			}
		}
	}

	values := make(map[string]map[string]Value, len(acc))
	for date, byHabit := range acc {
		for habit, a := range byHabit {
			v, ok := a.resolve()
			if !ok {
				continue
			}
			if values[date] == nil {
				values[date] = make(map[string]Value)
			}
			values[date][habit] = v
		}
	}

	return &ParsedFile{
		Path:         path,
		Values:       values,
		HeadingLines: headings,
	}
}

// checklistMentions returns the value-less habit names in text
func checklistMentions(text string) []string {
	var names []string
	for _, loc := range mentionPattern.FindAllStringSubmatchIndex(text, -1) {
		// habit-x::v is an inline token, not a mention
		if loc[4] >= 0 {
			continue
		}
		// reject partial names such as habit-runFast
		if end := loc[1]; end < len(text) && isWordByte(text[end]) {
			continue
		}
		names = append(names, text[loc[2]:loc[3]])
	}
	return names
}

func isWordByte(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
