package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"habitgrid/internal/ports"
)

func TestIgnorePolicy_Ignored(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		path     string
		want     bool
	}{
		{"default templates", nil, "Journal/Templates/week.md", true},
		{"case insensitive", nil, "TEMPLATES/week.md", true},
		{"nested segment", nil, "a/templates/b/c.md", true},
		{"file name never matches", nil, "Journal/templates.md", false},
		{"partial segment", nil, "Journal/my-templates/week.md", false},
		{"vault root", nil, "week.md", false},
		{"custom list", []string{"Archive", " "}, "Journal/archive/old.md", true},
		{"custom list drops default", []string{"archive"}, "Templates/week.md", false},
		{"empty list ignores nothing", []string{}, "Templates/week.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewIgnorePolicy(tt.segments)
			assert.Equal(t, tt.want, p.Ignored(ports.Document{Path: tt.path}))
		})
	}
}

func TestIgnorePolicy_FilterKeepsOrder(t *testing.T) {
	docs := []ports.Document{
		{Path: "b.md"},
		{Path: "templates/x.md"},
		{Path: "a.md"},
	}
	kept := NewIgnorePolicy(nil).Filter(docs)
	assert.Equal(t, []ports.Document{{Path: "b.md"}, {Path: "a.md"}}, kept)
	assert.Len(t, docs, 3, "input must not be modified")
}
