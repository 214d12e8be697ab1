package application

import (
	"fmt"
	"path"
	"strings"

	"habitgrid/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "notePath" -> "note path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"notePath": "note path",
		"date":     "date",
		"habit":    "habit",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateNotePath checks that p names a markdown note
func ValidateNotePath(fieldName, p string) error {
	if err := ValidateRequired(fieldName, p); err != nil {
		return err
	}
	if !strings.EqualFold(path.Ext(p), ".md") {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected a .md note, got: %s", p),
		}
	}
	return nil
}

// ValidateISODate checks that value is a real YYYY-MM-DD date
func ValidateISODate(fieldName, value string) error {
	if !domain.IsISODate(value) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected YYYY-MM-DD, got: %s", value),
		}
	}
	return nil
}

// ValidateHabitName checks that value is a lower-snake-case habit name
func ValidateHabitName(fieldName, value string) error {
	if !domain.IsValidHabitName(value) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected [a-z0-9_]+, got: %s", value),
		}
	}
	return nil
}
