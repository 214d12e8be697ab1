package editor

import (
	"reflect"
	"testing"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		line   int
		want   []string
	}{
		{"no line", "vim", 0, []string{"w.md"}},
		{"vim", "vim", 12, []string{"+12", "w.md"}},
		{"absolute nvim", "/usr/bin/nvim", 3, []string{"+3", "w.md"}},
		{"vscode", "code", 7, []string{"--goto", "w.md:7"}},
		{"sublime", "subl", 7, []string{"w.md:7"}},
		{"unknown editor", "ed", 2, []string{"+2", "w.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Args(tt.editor, "w.md", tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommand(t *testing.T) {
	o := &Opener{lookup: func() string { return "code -w" }}

	cmd, err := o.Command("/vault/w.md", 4)
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	want := []string{"code", "-w", "--goto", "/vault/w.md:4"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("Args = %v, want %v", cmd.Args, want)
	}

	o = &Opener{lookup: func() string { return "" }}
	if _, err := o.Command("/vault/w.md", 1); err == nil {
		t.Error("expected error when no editor is available")
	}
}
