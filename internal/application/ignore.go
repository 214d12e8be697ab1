package application

import (
	"path"
	"strings"

	"habitgrid/internal/ports"
)

// DefaultIgnoredSegments are skipped when no ignore list is configured
var DefaultIgnoredSegments = []string{"templates"}

// IgnorePolicy excludes documents that live under a directory whose name
// matches one of the configured segments, compared case-insensitively.
// The file name itself is never matched.
type IgnorePolicy struct {
	segments []string
}

// NewIgnorePolicy builds a policy from directory names. A nil slice falls
// back to DefaultIgnoredSegments; an empty non-nil slice ignores nothing.
func NewIgnorePolicy(segments []string) IgnorePolicy {
	if segments == nil {
		segments = DefaultIgnoredSegments
	}
	cleaned := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return IgnorePolicy{segments: cleaned}
}

// Ignored reports whether doc sits under an ignored directory
func (p IgnorePolicy) Ignored(doc ports.Document) bool {
	dir := path.Dir(doc.Path)
	if dir == "." || dir == "/" {
		return false
	}
	for _, seg := range strings.Split(dir, "/") {
		for _, ignored := range p.segments {
			if strings.EqualFold(seg, ignored) {
				return true
			}
		}
	}
	return false
}

// Filter returns the documents the policy keeps, preserving order
func (p IgnorePolicy) Filter(docs []ports.Document) []ports.Document {
	kept := make([]ports.Document, 0, len(docs))
	for _, d := range docs {
		if !p.Ignored(d) {
			kept = append(kept, d)
		}
	}
	return kept
}
