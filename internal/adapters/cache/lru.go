package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"habitgrid/internal/ctxlog"
	"habitgrid/internal/domain"
	"habitgrid/internal/ports"
)

// DefaultLRUSize bounds the LRU cache when no size is configured
const DefaultLRUSize = 512

// LRU is a size-bounded parse cache that evicts the least recently used
// document once full.
type LRU struct {
	source  ports.DocumentSource
	entries *lru.Cache[string, entry]
}

// Ensure LRU implements ParseCache
var _ ports.ParseCache = (*LRU)(nil)

// NewLRU creates a cache holding at most size documents
func NewLRU(source ports.DocumentSource, size int) (*LRU, error) {
	if size <= 0 {
		size = DefaultLRUSize
	}
	entries, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &LRU{source: source, entries: entries}, nil
}

// Get returns the cached parse while the modification token matches
func (c *LRU) Get(ctx context.Context, doc ports.Document) (*domain.ParsedFile, error) {
	token, err := c.source.ModTime(doc)
	if err != nil {
		return nil, err
	}

	if e, ok := c.entries.Get(doc.Path); ok && e.token == token {
		return e.parsed, nil
	}

	ctxlog.FromContext(ctx).Debug("lru cache miss", "path", doc.Path)

	parsed, err := load(ctx, c.source, doc)
	if err != nil {
		return nil, err
	}
	c.entries.Add(doc.Path, entry{token: token, parsed: parsed})
	return parsed, nil
}

// Invalidate removes the entry for path
func (c *LRU) Invalidate(path string) {
	c.entries.Remove(path)
}

// Clear removes every entry
func (c *LRU) Clear() {
	c.entries.Purge()
}

// Len returns the number of cached documents
func (c *LRU) Len() int {
	return c.entries.Len()
}
