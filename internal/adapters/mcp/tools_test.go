package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitgrid/internal/adapters/cache"
	"habitgrid/internal/adapters/filesystem"
	"habitgrid/internal/application"
)

const weekNote = "Journal/2026.02.09 - 2026.02.15.md"

func testDeps(t *testing.T) Deps {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		weekNote:         "## 2026.02.10\nhabit-workout::20\nhabit-workout::15\n## 2026.02.11\n- [x] habit-workout\n",
		"Journal/odd.md": "```habit-heatmap\nhabits:\n  mode: list\n  list: [Workout]\n```\n",
	}
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}

	repo := filesystem.NewRepository(root)
	c := cache.NewMemory(repo)
	return Deps{
		Source:  repo,
		Cache:   c,
		Scanner: application.NewScanner(repo, c),
		Now: func() time.Time {
			return time.Date(2026, 2, 12, 9, 0, 0, 0, time.UTC)
		},
	}
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func TestHeatmapTool(t *testing.T) {
	d := testDeps(t)

	out, isErr := call(t, heatmapHandler(d), map[string]any{"note": weekNote})
	require.False(t, isErr, out)

	assert.Contains(t, out, "Habits (week 2026-02-09..2026-02-15)")
	assert.Contains(t, out, "workout")
	assert.Contains(t, out, "  week of     Mon  Tue  Wed  Thu  Fri  Sat  Sun")
	assert.Contains(t, out, "  2026-02-09    ·   35    ✓    _    _    _    _")
	assert.Contains(t, out, "legend:")
}

func TestHeatmapTool_InlineConfigAndErrors(t *testing.T) {
	d := testDeps(t)

	out, isErr := call(t, heatmapHandler(d), map[string]any{
		"note":   weekNote,
		"config": `{"display": {"showLegend": false, "title": "Gym"}}`,
	})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Gym (week")
	assert.NotContains(t, out, "legend:")

	out, isErr = call(t, heatmapHandler(d), map[string]any{"note": "Journal/odd.md"})
	assert.True(t, isErr)
	assert.Contains(t, out, "Workout")

	out, isErr = call(t, heatmapHandler(d), map[string]any{"note": "Journal/missing.md"})
	assert.True(t, isErr)
	assert.Contains(t, out, "missing.md")

	_, isErr = call(t, heatmapHandler(d), map[string]any{"note": weekNote, "config": "range: ["})
	assert.True(t, isErr)
}

func TestParseNoteTool(t *testing.T) {
	d := testDeps(t)

	out, isErr := call(t, parseNoteHandler(d), map[string]any{"note": weekNote})
	require.False(t, isErr, out)
	assert.Equal(t, "2026-02-10 (line 1)\n  workout = 35 (numeric)\n2026-02-11 (line 4)\n  workout = true (boolean)\n", out)

	out, isErr = call(t, parseNoteHandler(d), map[string]any{"note": "Journal/odd.md"})
	require.False(t, isErr, out)
	assert.Equal(t, "No date headings found.", out)
}

func TestValidateConfigTool(t *testing.T) {
	d := testDeps(t)

	out, isErr := call(t, validateConfigHandler(d), map[string]any{"note": weekNote})
	require.False(t, isErr, out)
	assert.Equal(t, "ok: week 2026-02-09..2026-02-15 (7 days)", out)

	out, isErr = call(t, validateConfigHandler(d), map[string]any{
		"note":   weekNote,
		"config": "range:\n  type: month\n  year: 1900\n  month: 13\n",
	})
	require.False(t, isErr, out)
	assert.Contains(t, out, "year")
	assert.Contains(t, out, "month")
}

func TestLocateTool(t *testing.T) {
	d := testDeps(t)

	out, isErr := call(t, locateHandler(d), map[string]any{"note": weekNote, "date": "2026-02-11", "habit": "workout"})
	require.False(t, isErr, out)
	assert.Equal(t, weekNote+":4", out)

	_, isErr = call(t, locateHandler(d), map[string]any{"note": weekNote, "date": "11/02/2026"})
	assert.True(t, isErr)
}
