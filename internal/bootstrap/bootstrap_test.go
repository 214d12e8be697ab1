package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitgrid/internal/config"
	"habitgrid/internal/domain"
)

func vault(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"2026.02.09 - 2026.02.15.md": "## 2026.02.10\nhabit-read::3\n",
		"Archive/old.md":             "## 2026.02.11\nhabit-read::4\n",
		"Templates/weekly.md":        "## 2026.02.12\nhabit-read::100\n",
	}
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return dir
}

func yearRange(t *testing.T) domain.RangeResolution {
	t.Helper()
	cfg, err := domain.NormalizeConfig(map[string]any{"range": map[string]any{"type": "year", "year": 2026}})
	require.NoError(t, err)
	rng, err := domain.ResolveRange(cfg, "")
	require.NoError(t, err)
	return *rng
}

func TestBuild_CacheStrategies(t *testing.T) {
	for _, strategy := range []string{config.CacheMemory, config.CacheLRU, config.CacheSQLite} {
		t.Run(strategy, func(t *testing.T) {
			ctx := context.Background()
			stack, err := Build(ctx, &config.Settings{
				Vault:     vault(t),
				Ignore:    []string{"templates"},
				Cache:     strategy,
				CacheSize: 8,
			})
			require.NoError(t, err)
			defer stack.Close()

			doc, err := stack.Repo.Document("2026.02.09 - 2026.02.15.md")
			require.NoError(t, err)

			res, err := stack.Scanner.Scan(ctx, doc, yearRange(t))
			require.NoError(t, err)

			assert.Equal(t, []string{"2026.02.09 - 2026.02.15.md", "Archive/old.md"}, res.Files)
			_, ok := res.Value("read", "2026-02-12")
			assert.False(t, ok, "templates must be ignored")
		})
	}
}

func TestBuild_IgnoreNothing(t *testing.T) {
	ctx := context.Background()
	stack, err := Build(ctx, &config.Settings{Vault: vault(t), Ignore: []string{}, Cache: config.CacheMemory})
	require.NoError(t, err)

	doc, err := stack.Repo.Document("2026.02.09 - 2026.02.15.md")
	require.NoError(t, err)
	res, err := stack.Scanner.Scan(ctx, doc, yearRange(t))
	require.NoError(t, err)

	assert.Len(t, res.Files, 3)
	assert.NoError(t, stack.Close())
}

func TestBuild_MissingVault(t *testing.T) {
	_, err := Build(context.Background(), &config.Settings{
		Vault: filepath.Join(t.TempDir(), "nope"),
		Cache: config.CacheMemory,
	})
	assert.Error(t, err)
}
