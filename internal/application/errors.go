package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidNote = errors.New("invalid note")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NoteError represents a note that could not be resolved in the vault
type NoteError struct {
	Path   string
	Reason error
}

func (e *NoteError) Error() string {
	return fmt.Sprintf("cannot open note %s: %v", e.Path, e.Reason)
}

func (e *NoteError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NoteError) Unwrap() error {
	return e.Reason
}
