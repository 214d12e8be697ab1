package ports

import (
	"context"

	"habitgrid/internal/domain"
)

// ParseCache memoizes per-document parses keyed by modification time.
// Implementations must replace entries atomically: a concurrent Get sees
// either the old entry or the new one, never a partial write.
type ParseCache interface {
	// Get returns the parse for doc, re-reading and re-parsing when the
	// stored modification token no longer matches
	Get(ctx context.Context, doc Document) (*domain.ParsedFile, error)

	// Invalidate drops the entry for path; absent paths are ignored
	Invalidate(path string)

	// Clear drops every entry
	Clear()
}
