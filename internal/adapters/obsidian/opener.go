package obsidian

import (
	"fmt"
	"net/url"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"habitgrid/internal/ports"
)

// Opener implements ports.ObsidianOpener
type Opener struct {
	vaultPath string
	vaultName string
}

// Ensure Opener implements ObsidianOpener
var _ ports.ObsidianOpener = (*Opener)(nil)

// NewOpener creates a new Obsidian opener for the given vault path
func NewOpener(vaultPath string) *Opener {
	return &Opener{
		vaultPath: filepath.Clean(vaultPath),
		vaultName: filepath.Base(vaultPath),
	}
}

// OpenNote opens a note in Obsidian using the obsidian:// URI scheme
func (o *Opener) OpenNote(notePath string) error {
	uri, err := o.BuildURI(notePath)
	if err != nil {
		return err
	}
	return o.openURI(uri)
}

// BuildURI constructs the obsidian:// URI for a note. notePath is either
// vault-relative or an absolute path inside the vault.
func (o *Opener) BuildURI(notePath string) (string, error) {
	rel := notePath
	if filepath.IsAbs(notePath) {
		r, err := filepath.Rel(o.vaultPath, notePath)
		if err != nil {
			return "", fmt.Errorf("failed to get relative path: %w", err)
		}
		rel = r
	}

	// Obsidian expects forward slashes in paths
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("file is outside the vault: %s", notePath)
	}

	uri := fmt.Sprintf("obsidian://open?vault=%s&file=%s",
		escape(o.vaultName),
		escape(rel),
	)

	return uri, nil
}

// escape query-escapes s with spaces as %20, the form Obsidian links use
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (o *Opener) openURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
