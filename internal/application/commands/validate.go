package commands

import (
	"context"

	"habitgrid/internal/application"
	"habitgrid/internal/domain"
	"habitgrid/internal/ports"
)

// ValidateReport is the outcome of checking a config against a note
type ValidateReport struct {
	Note     ports.Document
	Config   *domain.Config
	Range    *domain.RangeResolution
	Problems []string
}

// OK reports whether no problem was found
func (r *ValidateReport) OK() bool {
	return len(r.Problems) == 0
}

// ValidateCommand normalizes a config and resolves its range without scanning
type ValidateCommand struct {
	source   ports.DocumentSource
	NotePath string
	Raw      map[string]any
}

// NewValidateCommand creates a new ValidateCommand
func NewValidateCommand(source ports.DocumentSource, notePath string, raw map[string]any) *ValidateCommand {
	return &ValidateCommand{
		source:   source,
		NotePath: notePath,
		Raw:      raw,
	}
}

// Validate checks if the validation request is valid
func (c *ValidateCommand) Validate() error {
	return application.ValidateNotePath("notePath", c.NotePath)
}

// Execute reports config and range problems. The returned error is reserved
// for requests that cannot be checked at all, such as a missing note.
func (c *ValidateCommand) Execute(_ context.Context) (*ValidateReport, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	doc, err := resolveNote(c.source, c.NotePath)
	if err != nil {
		return nil, err
	}

	report := &ValidateReport{Note: doc}

	cfg, err := domain.NormalizeConfig(c.Raw)
	if err != nil {
		report.Problems = domain.Messages(err)
		return report, nil
	}
	report.Config = cfg

	rng, err := domain.ResolveRange(cfg, doc.Title)
	if err != nil {
		report.Problems = domain.Messages(err)
		return report, nil
	}
	report.Range = rng

	return report, nil
}
