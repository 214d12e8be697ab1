// Package sqlite implements ports.ParseCache on an in-memory SQLite
// database. Parses are stored as JSON rows keyed by document path.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"habitgrid/internal/ctxlog"
	"habitgrid/internal/domain"
	"habitgrid/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Cache implements ports.ParseCache using SQLite
type Cache struct {
	db     *sql.DB
	source ports.DocumentSource
	logger *slog.Logger

	// decoded parses by path, valid for the token they were built from
	mu   sync.Mutex
	memo map[string]memoEntry
}

type memoEntry struct {
	token  int64
	parsed *domain.ParsedFile
}

// Ensure Cache implements ParseCache
var _ ports.ParseCache = (*Cache)(nil)

// Open creates the database and schema. The database lives only as long
// as the returned Cache.
func Open(ctx context.Context, source ports.DocumentSource) (*Cache, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, `
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS entries (
			path TEXT PRIMARY KEY,
			token INTEGER NOT NULL,
			payload TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Cache{
		db:     db,
		source: source,
		logger: ctxlog.FromContext(ctx),
		memo:   make(map[string]memoEntry),
	}, nil
}

// Close closes the database connection
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get returns the stored parse while the modification token matches. A
// row is decoded once per token; later hits return the same ParsedFile.
func (c *Cache) Get(ctx context.Context, doc ports.Document) (*domain.ParsedFile, error) {
	token, err := c.source.ModTime(doc)
	if err != nil {
		return nil, err
	}

	if parsed, ok := c.remembered(doc.Path, token); ok {
		return parsed, nil
	}

	var stored int64
	var payload string
	err = c.db.QueryRowContext(ctx,
		`SELECT token, payload FROM entries WHERE path = ?`, doc.Path).Scan(&stored, &payload)
	switch {
	case err == nil && stored == token:
		var parsed domain.ParsedFile
		if err := json.Unmarshal([]byte(payload), &parsed); err == nil {
			c.remember(doc.Path, token, &parsed)
			return &parsed, nil
		}
		// Undecodable rows are treated as misses
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("failed to query entry: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("sqlite cache miss", "path", doc.Path)

	content, err := c.source.Read(ctx, doc)
	if err != nil {
		return nil, err
	}
	parsed := domain.ParseDocument(doc.Path, content)

	if err := c.store(ctx, doc.Path, token, parsed); err != nil {
		return nil, err
	}
	c.remember(doc.Path, token, parsed)
	return parsed, nil
}

func (c *Cache) remembered(path string, token int64) (*domain.ParsedFile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.memo[path]
	if !ok || e.token != token {
		return nil, false
	}
	return e.parsed, true
}

func (c *Cache) remember(path string, token int64, parsed *domain.ParsedFile) {
	c.mu.Lock()
	c.memo[path] = memoEntry{token: token, parsed: parsed}
	c.mu.Unlock()
}

func (c *Cache) forget(path string) {
	c.mu.Lock()
	if path == "" {
		c.memo = make(map[string]memoEntry)
	} else {
		delete(c.memo, path)
	}
	c.mu.Unlock()
}

// store replaces the row for path inside a transaction
func (c *Cache) store(ctx context.Context, path string, token int64, parsed *domain.ParsedFile) error {
	payload, err := json.Marshal(parsed)
	if err != nil {
		return fmt.Errorf("failed to encode parse: %w", err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO entries (path, token, payload)
		VALUES (?, ?, ?)
	`, path, token, string(payload)); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to store entry: %w", err)
	}
	return tx.Commit()
}

// Invalidate removes the row for path
func (c *Cache) Invalidate(path string) {
	c.forget(path)
	if _, err := c.db.Exec(`DELETE FROM entries WHERE path = ?`, path); err != nil {
		c.logger.Warn("failed to invalidate entry", "path", path, "error", err)
	}
}

// Clear removes every row
func (c *Cache) Clear() {
	c.forget("")
	if _, err := c.db.Exec(`DELETE FROM entries`); err != nil {
		c.logger.Warn("failed to clear cache", "error", err)
	}
}

// Len returns the number of stored documents
func (c *Cache) Len() int {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0
	}
	return n
}
