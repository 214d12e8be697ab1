package commands

import (
	"context"

	"habitgrid/internal/application"
	"habitgrid/internal/domain"
	"habitgrid/internal/ports"
)

// HabitEntry is one resolved habit value
type HabitEntry struct {
	Habit string
	Value domain.Value
}

// DateSection summarizes one date of a parsed note
type DateSection struct {
	Date    string
	Lines   []int
	Entries []HabitEntry
}

// ParseReport is the inspection view of one note
type ParseReport struct {
	Note     ports.Document
	Parsed   *domain.ParsedFile
	Sections []DateSection
}

// ParseCommand parses one note through the cache
type ParseCommand struct {
	source   ports.DocumentSource
	cache    ports.ParseCache
	NotePath string
}

// NewParseCommand creates a new ParseCommand
func NewParseCommand(source ports.DocumentSource, cache ports.ParseCache, notePath string) *ParseCommand {
	return &ParseCommand{
		source:   source,
		cache:    cache,
		NotePath: notePath,
	}
}

// Validate checks if the parse request is valid
func (c *ParseCommand) Validate() error {
	return application.ValidateNotePath("notePath", c.NotePath)
}

// Execute returns the note's dates in order, each with its habits sorted
func (c *ParseCommand) Execute(ctx context.Context) (*ParseReport, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	doc, err := resolveNote(c.source, c.NotePath)
	if err != nil {
		return nil, err
	}

	parsed, err := c.cache.Get(ctx, doc)
	if err != nil {
		return nil, err
	}

	dates := parsed.Dates()
	sections := make([]DateSection, len(dates))
	for i, date := range dates {
		habits := parsed.HabitsOn(date)
		entries := make([]HabitEntry, len(habits))
		for j, h := range habits {
			entries[j] = HabitEntry{Habit: h, Value: parsed.Values[date][h]}
		}
		sections[i] = DateSection{Date: date, Lines: parsed.HeadingLines[date], Entries: entries}
	}

	return &ParseReport{Note: doc, Parsed: parsed, Sections: sections}, nil
}
