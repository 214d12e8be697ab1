package config

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"habitgrid/internal/ports"
)

// BlockLanguage is the info string of fenced heatmap config blocks
const BlockLanguage = "habit-heatmap"

// ExtractBlock returns the body of the first ```habit-heatmap fence in a
// note. An unterminated fence runs to the end of the note.
func ExtractBlock(content string) (string, bool) {
	var body []string
	inside := false

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if !inside {
			if fence, ok := strings.CutPrefix(trimmed, "```"); ok && strings.TrimSpace(fence) == BlockLanguage {
				inside = true
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			return strings.Join(body, "\n"), true
		}
		body = append(body, line)
	}

	if inside {
		return strings.Join(body, "\n"), true
	}
	return "", false
}

// DecodeBlock decodes YAML (and therefore JSON) text into a plain map.
// Blank text decodes to nil, which normalizes to every default.
func DecodeBlock(text string) (map[string]any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode config block: %w", err)
	}
	return raw, nil
}

// DecodeFile reads a config file, choosing the decoder by extension:
// .toml uses TOML, anything else is read as YAML or JSON.
func DecodeFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var raw map[string]any
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
		return raw, nil
	}

	raw, err := DecodeBlock(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return raw, nil
}

// Resolve picks the heatmap config for a note: an explicit file wins,
// otherwise the note's first fenced block, otherwise nil.
func Resolve(file, noteContent string) (map[string]any, error) {
	if file != "" {
		return DecodeFile(file)
	}
	if body, ok := ExtractBlock(noteContent); ok {
		return DecodeBlock(body)
	}
	return nil, nil
}

// ForNote loads the heatmap config for a note through source: file when
// given, else the note's own fenced block.
func ForNote(ctx context.Context, source ports.DocumentSource, notePath, file string) (map[string]any, error) {
	if file != "" {
		return DecodeFile(file)
	}
	doc, err := source.Document(notePath)
	if err != nil {
		return nil, err
	}
	content, err := source.Read(ctx, doc)
	if err != nil {
		return nil, err
	}
	return Resolve("", content)
}
