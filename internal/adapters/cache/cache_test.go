package cache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitgrid/internal/domain"
	"habitgrid/internal/ports"
)

// fakeSource is an in-memory DocumentSource that counts reads
type fakeSource struct {
	mu      sync.Mutex
	content map[string]string
	mtime   map[string]int64
	reads   map[string]int
	failing map[string]bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		content: make(map[string]string),
		mtime:   make(map[string]int64),
		reads:   make(map[string]int),
		failing: make(map[string]bool),
	}
}

func (f *fakeSource) put(path, content string, mtime int64) ports.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content[path] = content
	f.mtime[path] = mtime
	return ports.Document{Path: path, Title: path}
}

func (f *fakeSource) readCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads[path]
}

func (f *fakeSource) Document(path string) (ports.Document, error) {
	return ports.Document{Path: path, Title: path}, nil
}

func (f *fakeSource) Documents(context.Context, string, bool) ([]ports.Document, error) {
	return nil, nil
}

func (f *fakeSource) Read(_ context.Context, doc ports.Document) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing[doc.Path] {
		return "", errors.New("unreadable")
	}
	f.reads[doc.Path]++
	return f.content[doc.Path], nil
}

func (f *fakeSource) ModTime(doc ports.Document) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mtime[doc.Path], nil
}

type strategy struct {
	name string
	make func(t *testing.T, src ports.DocumentSource) ports.ParseCache
}

func strategies() []strategy {
	return []strategy{
		{"memory", func(_ *testing.T, src ports.DocumentSource) ports.ParseCache { return NewMemory(src) }},
		{"lru", func(t *testing.T, src ports.DocumentSource) ports.ParseCache {
			c, err := NewLRU(src, 4)
			require.NoError(t, err)
			return c
		}},
	}
}

func TestCache_ReturnsSameObjectWhileUnchanged(t *testing.T) {
	for _, s := range strategies() {
		t.Run(s.name, func(t *testing.T) {
			src := newFakeSource()
			doc := src.put("a.md", "## 2026.02.10\nhabit-read::3\n", 100)
			c := s.make(t, src)
			ctx := context.Background()

			first, err := c.Get(ctx, doc)
			require.NoError(t, err)
			second, err := c.Get(ctx, doc)
			require.NoError(t, err)

			assert.Same(t, first, second)
			assert.Equal(t, 1, src.readCount("a.md"))
			assert.Equal(t, domain.Numeric(3), first.Values["2026-02-10"]["read"])
		})
	}
}

func TestCache_ReparsesOnNewModTime(t *testing.T) {
	for _, s := range strategies() {
		t.Run(s.name, func(t *testing.T) {
			src := newFakeSource()
			doc := src.put("a.md", "## 2026.02.10\nhabit-read::3\n", 100)
			c := s.make(t, src)
			ctx := context.Background()

			first, err := c.Get(ctx, doc)
			require.NoError(t, err)

			src.put("a.md", "## 2026.02.10\nhabit-read::5\n", 200)
			second, err := c.Get(ctx, doc)
			require.NoError(t, err)

			assert.NotSame(t, first, second)
			assert.Equal(t, domain.Numeric(3), first.Values["2026-02-10"]["read"], "old entry must not be mutated")
			assert.Equal(t, domain.Numeric(5), second.Values["2026-02-10"]["read"])
			assert.Equal(t, 2, src.readCount("a.md"))
		})
	}
}

func TestCache_InvalidateForcesReread(t *testing.T) {
	for _, s := range strategies() {
		t.Run(s.name, func(t *testing.T) {
			src := newFakeSource()
			doc := src.put("a.md", "## 2026.02.10\nhabit-read::3\n", 100)
			c := s.make(t, src)
			ctx := context.Background()

			first, err := c.Get(ctx, doc)
			require.NoError(t, err)

			c.Invalidate("a.md")
			c.Invalidate("never-cached.md")

			second, err := c.Get(ctx, doc)
			require.NoError(t, err)
			assert.NotSame(t, first, second)
			assert.Equal(t, first.Values, second.Values)
			assert.Equal(t, 2, src.readCount("a.md"))
		})
	}
}

func TestCache_Clear(t *testing.T) {
	for _, s := range strategies() {
		t.Run(s.name, func(t *testing.T) {
			src := newFakeSource()
			a := src.put("a.md", "", 1)
			b := src.put("b.md", "", 1)
			c := s.make(t, src)
			ctx := context.Background()

			_, _ = c.Get(ctx, a)
			_, _ = c.Get(ctx, b)
			c.Clear()
			_, _ = c.Get(ctx, a)

			assert.Equal(t, 2, src.readCount("a.md"))
			assert.Equal(t, 1, src.readCount("b.md"))
		})
	}
}

func TestCache_ReadFailureLeavesEntryUnset(t *testing.T) {
	for _, s := range strategies() {
		t.Run(s.name, func(t *testing.T) {
			src := newFakeSource()
			doc := src.put("a.md", "## 2026.02.10\nhabit-read::1\n", 1)
			src.failing["a.md"] = true
			c := s.make(t, src)
			ctx := context.Background()

			_, err := c.Get(ctx, doc)
			require.Error(t, err)

			src.failing["a.md"] = false
			parsed, err := c.Get(ctx, doc)
			require.NoError(t, err)
			assert.Equal(t, domain.Numeric(1), parsed.Values["2026-02-10"]["read"])
		})
	}
}

func TestMemory_ConcurrentGetAndInvalidate(t *testing.T) {
	src := newFakeSource()
	doc := src.put("a.md", "## 2026.02.10\nhabit-read::2\n", 1)
	c := NewMemory(src)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			parsed, err := c.Get(ctx, doc)
			if assert.NoError(t, err) {
				assert.Equal(t, domain.Numeric(2), parsed.Values["2026-02-10"]["read"])
			}
		}()
		go func() {
			defer wg.Done()
			c.Invalidate("a.md")
		}()
	}
	wg.Wait()
}

func TestLRU_EvictsOldest(t *testing.T) {
	src := newFakeSource()
	c, err := NewLRU(src, 2)
	require.NoError(t, err)
	ctx := context.Background()

	a := src.put("a.md", "", 1)
	b := src.put("b.md", "", 1)
	d := src.put("d.md", "", 1)

	_, _ = c.Get(ctx, a)
	_, _ = c.Get(ctx, b)
	_, _ = c.Get(ctx, d)
	assert.Equal(t, 2, c.Len())

	_, _ = c.Get(ctx, a)
	assert.Equal(t, 2, src.readCount("a.md"), "a.md should have been evicted")
	assert.Equal(t, 1, src.readCount("d.md"))
}
