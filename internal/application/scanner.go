package application

import (
	"context"
	"path"

	"golang.org/x/sync/errgroup"

	"habitgrid/internal/ctxlog"
	"habitgrid/internal/domain"
	"habitgrid/internal/ports"
)

// DefaultFetchLimit bounds concurrent cache lookups during one scan
const DefaultFetchLimit = 8

// Scanner aggregates habit values across the documents selected by a range
type Scanner struct {
	source ports.DocumentSource
	cache  ports.ParseCache
	ignore IgnorePolicy
	limit  int
}

// ScannerOption configures a Scanner
type ScannerOption func(*Scanner)

// WithIgnorePolicy replaces the default templates exclusion
func WithIgnorePolicy(p IgnorePolicy) ScannerOption {
	return func(s *Scanner) { s.ignore = p }
}

// WithFetchLimit sets how many documents are fetched concurrently
func WithFetchLimit(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.limit = n
		}
	}
}

// NewScanner creates a Scanner reading through cache
func NewScanner(source ports.DocumentSource, cache ports.ParseCache, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		source: source,
		cache:  cache,
		ignore: NewIgnorePolicy(nil),
		limit:  DefaultFetchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan builds the dataset for rng around current. Unreadable documents
// are logged and skipped; only context cancellation returns an error.
func (s *Scanner) Scan(ctx context.Context, current ports.Document, rng domain.RangeResolution) (*domain.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs := s.candidates(ctx, current, rng.Type)

	parsed := make([]*domain.ParsedFile, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := s.cache.Get(gctx, doc)
			if err != nil {
				ctxlog.FromContext(ctx).Warn("skipping unreadable note", "path", doc.Path, "error", err)
				return nil
			}
			parsed[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Fold in listing order so candidates keep document-iteration order
	agg := domain.NewAggregator(rng)
	for _, p := range parsed {
		if p != nil {
			agg.Add(p)
		}
	}
	return agg.Result(), nil
}

// candidates selects the documents a range type covers
func (s *Scanner) candidates(ctx context.Context, current ports.Document, t domain.RangeType) []ports.Document {
	var docs []ports.Document
	switch t {
	case domain.RangeWeek:
		docs = []ports.Document{current}
	case domain.RangeMonth, domain.RangeYear:
		dir := path.Dir(current.Path)
		listed, err := s.source.Documents(ctx, dir, t == domain.RangeYear)
		if err != nil {
			ctxlog.FromContext(ctx).Warn("failed to list notes", "dir", dir, "error", err)
			return nil
		}
		docs = listed
	}
	return s.ignore.Filter(docs)
}
