package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the two validation stages that run before a scan
var (
	ErrInvalidConfig = errors.New("invalid heatmap config")
	ErrInvalidRange  = errors.New("invalid range")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigError collects every normalization problem of one config
type ConfigError struct {
	Problems []*ValidationError
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, joinProblems(e.Problems))
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// RangeError collects the problems found while resolving one range type
type RangeError struct {
	Type     RangeType
	Problems []*ValidationError
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s (%s): %s", ErrInvalidRange, e.Type, joinProblems(e.Problems))
}

func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// Messages returns one human-readable line per problem
func Messages(err error) []string {
	var problems []*ValidationError

	var cfgErr *ConfigError
	var rngErr *RangeError
	switch {
	case errors.As(err, &cfgErr):
		problems = cfgErr.Problems
	case errors.As(err, &rngErr):
		problems = rngErr.Problems
	default:
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}

	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.Error()
	}
	return out
}

func joinProblems(problems []*ValidationError) string {
	parts := make([]string, len(problems))
	for i, p := range problems {
		parts[i] = p.Error()
	}
	return strings.Join(parts, "; ")
}
