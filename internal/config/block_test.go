package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"habitgrid/internal/adapters/filesystem"
	"habitgrid/internal/domain"
)

func TestExtractBlock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantOK  bool
	}{
		{
			name:    "first block wins",
			content: "# Week\n```habit-heatmap\nrange:\n  type: month\n```\n```habit-heatmap\nother: 1\n```\n",
			want:    "range:\n  type: month",
			wantOK:  true,
		},
		{
			name:    "other languages ignored",
			content: "```yaml\na: 1\n```\n",
			wantOK:  false,
		},
		{
			name:    "indented fence and CRLF",
			content: "  ```habit-heatmap\r\nhabits:\r\n  mode: auto\r\n  ```\r\n",
			want:    "habits:\n  mode: auto",
			wantOK:  true,
		},
		{
			name:    "unterminated",
			content: "```habit-heatmap\ndisplay:\n  gap: 2",
			want:    "display:\n  gap: 2",
			wantOK:  true,
		},
		{
			name:    "empty block",
			content: "```habit-heatmap\n```",
			want:    "",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBlock(tt.content)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractBlock() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDecodeBlock_NormalizesToConfig(t *testing.T) {
	raw, err := DecodeBlock(`
range:
  type: month
  year: 2026
  month: 2
habits:
  mode: list
  list: [workout, read]
colors:
  numeric:
    - le: 5
      color: "#111111"
    - gt: 5
      color: "#222222"
`)
	if err != nil {
		t.Fatalf("DecodeBlock() error = %v", err)
	}

	cfg, err := domain.NormalizeConfig(raw)
	if err != nil {
		t.Fatalf("NormalizeConfig() error = %v", err)
	}
	if cfg.Range.Type != domain.RangeMonth || *cfg.Range.Year != 2026 || *cfg.Range.Month != 2 {
		t.Errorf("range = %+v", cfg.Range)
	}
	if len(cfg.Habits.List) != 2 || len(cfg.Colors.Numeric) != 2 {
		t.Errorf("habits = %v, thresholds = %v", cfg.Habits.List, cfg.Colors.Numeric)
	}
}

func TestDecodeBlock_JSONAndErrors(t *testing.T) {
	raw, err := DecodeBlock(`{"range": {"type": "year", "year": 2025}}`)
	if err != nil {
		t.Fatalf("DecodeBlock(json) error = %v", err)
	}
	if _, ok := raw["range"]; !ok {
		t.Errorf("raw = %v", raw)
	}

	raw, err = DecodeBlock("  \n")
	if err != nil || raw != nil {
		t.Errorf("blank block = %v, %v", raw, err)
	}

	if _, err := DecodeBlock("range: [unclosed"); err == nil {
		t.Error("expected decode error")
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tomlPath := write("heatmap.toml", "[range]\ntype = \"year\"\nyear = 2024\n\n[display]\nweekStart = \"Sunday\"\n")
	raw, err := DecodeFile(tomlPath)
	if err != nil {
		t.Fatalf("DecodeFile(toml) error = %v", err)
	}
	cfg, err := domain.NormalizeConfig(raw)
	if err != nil {
		t.Fatalf("NormalizeConfig() error = %v", err)
	}
	rng, err := domain.ResolveRange(cfg, "anything")
	if err != nil {
		t.Fatalf("ResolveRange() error = %v", err)
	}
	if len(rng.Dates) != 366 {
		t.Errorf("2024 should have 366 days, got %d", len(rng.Dates))
	}

	jsonPath := write("heatmap.json", `{"habits": {"mode": "list", "list": ["Workout"]}}`)
	raw, err = DecodeFile(jsonPath)
	if err != nil {
		t.Fatalf("DecodeFile(json) error = %v", err)
	}
	if _, err := domain.NormalizeConfig(raw); err == nil {
		t.Error("expected invalid habit name to be rejected")
	}

	if _, err := DecodeFile(write("bad.toml", "range = [")); err == nil {
		t.Error("expected toml decode error")
	}
	if _, err := DecodeFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected read error")
	}
}

func TestResolve(t *testing.T) {
	note := "```habit-heatmap\nrange:\n  type: year\n  year: 2026\n```\n"

	raw, err := Resolve("", note)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if raw == nil {
		t.Fatal("expected block from note")
	}

	raw, err = Resolve("", "no block here")
	if err != nil || raw != nil {
		t.Errorf("Resolve(no block) = %v, %v", raw, err)
	}

	file := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(file, []byte("display:\n  gap: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	raw, err = Resolve(file, note)
	if err != nil {
		t.Fatalf("Resolve(file) error = %v", err)
	}
	if _, ok := raw["range"]; ok {
		t.Error("explicit file must win over the note block")
	}
}

func TestForNote(t *testing.T) {
	root := t.TempDir()
	note := "```habit-heatmap\nrange:\n  type: year\n  year: 2026\n```\n## 2026.02.10\n"
	if err := os.WriteFile(filepath.Join(root, "w.md"), []byte(note), 0644); err != nil {
		t.Fatal(err)
	}
	repo := filesystem.NewRepository(root)

	raw, err := ForNote(context.Background(), repo, "w.md", "")
	if err != nil {
		t.Fatalf("ForNote() error = %v", err)
	}
	cfg, err := domain.NormalizeConfig(raw)
	if err != nil || cfg.Range.Type != domain.RangeYear {
		t.Errorf("config = %+v, %v", cfg, err)
	}

	if _, err := ForNote(context.Background(), repo, "missing.md", ""); err == nil {
		t.Error("expected error for a missing note")
	}
}
