package ports

import "context"

// Document identifies one note in the vault
type Document struct {
	Path  string // Vault-relative path with forward slashes (identity)
	Title string // File name without the .md extension
}

// DocumentSource provides read access to journal notes
type DocumentSource interface {
	// Document resolves a single note by vault-relative path
	Document(path string) (Document, error)

	// Documents lists notes in dir; recursive includes every subdirectory
	Documents(ctx context.Context, dir string, recursive bool) ([]Document, error)

	// Read returns the full text of a note
	Read(ctx context.Context, doc Document) (string, error)

	// ModTime returns a change-detection token for a note
	ModTime(doc Document) (int64, error)
}
