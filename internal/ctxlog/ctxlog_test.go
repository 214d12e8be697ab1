package ctxlog

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFromContext_Fallback(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected a fallback logger")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, true))

	FromContext(ctx).Debug("cache miss", "path", "a.md")

	if !strings.Contains(buf.String(), "path=a.md") {
		t.Errorf("expected debug record, got %q", buf.String())
	}
}

func TestNew_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Info("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}
}
