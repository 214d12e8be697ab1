// Package cache holds ports.ParseCache strategies backed by process memory.
package cache

import (
	"context"
	"sync"

	"habitgrid/internal/ctxlog"
	"habitgrid/internal/domain"
	"habitgrid/internal/ports"
)

// entry pairs a modification token with the parse it produced
type entry struct {
	token  int64
	parsed *domain.ParsedFile
}

// Memory is an unbounded parse cache. Entries live until invalidated.
type Memory struct {
	source ports.DocumentSource

	mu      sync.RWMutex
	entries map[string]entry
}

// Ensure Memory implements ParseCache
var _ ports.ParseCache = (*Memory)(nil)

// NewMemory creates an empty cache reading through source
func NewMemory(source ports.DocumentSource) *Memory {
	return &Memory{
		source:  source,
		entries: make(map[string]entry),
	}
}

// Get returns the cached parse while the document's modification time is
// unchanged; otherwise it re-reads, re-parses and replaces the entry.
func (m *Memory) Get(ctx context.Context, doc ports.Document) (*domain.ParsedFile, error) {
	token, err := m.source.ModTime(doc)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	e, ok := m.entries[doc.Path]
	m.mu.RUnlock()
	if ok && e.token == token {
		return e.parsed, nil
	}

	ctxlog.FromContext(ctx).Debug("parse cache miss", "path", doc.Path, "stale", ok)

	parsed, err := load(ctx, m.source, doc)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[doc.Path] = entry{token: token, parsed: parsed}
	m.mu.Unlock()

	return parsed, nil
}

// Invalidate removes the entry for path
func (m *Memory) Invalidate(path string) {
	m.mu.Lock()
	delete(m.entries, path)
	m.mu.Unlock()
}

// Clear removes every entry
func (m *Memory) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
}

// Len returns the number of cached documents
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// load reads and parses one document
func load(ctx context.Context, source ports.DocumentSource, doc ports.Document) (*domain.ParsedFile, error) {
	content, err := source.Read(ctx, doc)
	if err != nil {
		return nil, err
	}
	return domain.ParseDocument(doc.Path, content), nil
}
