package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"habitgrid/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	// lookup finds the editor command; replaced in tests
	lookup func() string
}

// Ensure Opener implements EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookup: findEditor}
}

// OpenFile opens a file in the user's preferred editor at line
func (o *Opener) OpenFile(path string, line int) error {
	cmd, err := o.Command(path, line)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string, line int) (*exec.Cmd, error) {
	fields := strings.Fields(o.lookup())
	if len(fields) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	args := append(fields[1:], Args(fields[0], path, line)...)
	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// Args returns the arguments that open path at line for editor. Editors
// that do not understand a line jump just get the path.
func Args(editor, path string, line int) []string {
	if line <= 0 {
		return []string{path}
	}
	n := strconv.Itoa(line)
	switch strings.TrimSuffix(filepath.Base(editor), ".exe") {
	case "code", "codium", "cursor":
		return []string{"--goto", path + ":" + n}
	case "subl", "zed":
		return []string{path + ":" + n}
	default:
		// vi family, nano, emacs, micro and helix all take +LINE
		return []string{"+" + n, path}
	}
}

// findEditor returns the editor to use
func findEditor() string {
	// Check $EDITOR first
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// Check $VISUAL
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano", "code"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
