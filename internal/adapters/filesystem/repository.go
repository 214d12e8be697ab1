package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"

	"habitgrid/internal/ports"
)

// Repository implements ports.DocumentSource over a vault directory
type Repository struct {
	vaultPath string
}

// Ensure Repository implements DocumentSource
var _ ports.DocumentSource = (*Repository)(nil)

// NewRepository creates a new filesystem repository
func NewRepository(vaultPath string) *Repository {
	// Expand ~ to home directory
	if expanded, err := homedir.Expand(vaultPath); err == nil {
		vaultPath = expanded
	}
	return &Repository{vaultPath: filepath.Clean(vaultPath)}
}

// VaultPath returns the absolute root of the vault
func (r *Repository) VaultPath() string {
	return r.vaultPath
}

// Document resolves a note by vault-relative path. Absolute paths inside
// the vault are accepted as well.
func (r *Repository) Document(p string) (ports.Document, error) {
	rel, err := r.relative(p)
	if err != nil {
		return ports.Document{}, err
	}
	if !isNote(rel) {
		return ports.Document{}, fmt.Errorf("not a markdown note: %s", p)
	}

	info, err := os.Stat(r.absolute(rel))
	if err != nil {
		return ports.Document{}, fmt.Errorf("failed to stat note: %w", err)
	}
	if info.IsDir() {
		return ports.Document{}, fmt.Errorf("not a markdown note: %s", p)
	}

	return newDocument(rel), nil
}

// Documents lists the notes in dir, sorted by path. Hidden directories
// are skipped.
func (r *Repository) Documents(ctx context.Context, dir string, recursive bool) ([]ports.Document, error) {
	rel, err := r.relative(dir)
	if err != nil {
		return nil, err
	}
	root := r.absolute(rel)

	var docs []ports.Document
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			return nil // Skip unreadable entries
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if p == root {
				return nil
			}
			if !recursive || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !isNote(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(r.vaultPath, p)
		if err != nil {
			return nil
		}
		docs = append(docs, newDocument(filepath.ToSlash(relPath)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes in %q: %w", dir, err)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})

	return docs, nil
}

// Read returns the text content of a note
func (r *Repository) Read(_ context.Context, doc ports.Document) (string, error) {
	content, err := os.ReadFile(r.absolute(doc.Path))
	if err != nil {
		return "", fmt.Errorf("failed to read note: %w", err)
	}
	return string(content), nil
}

// ModTime returns the note's modification time in Unix nanoseconds
func (r *Repository) ModTime(doc ports.Document) (int64, error) {
	info, err := os.Stat(r.absolute(doc.Path))
	if err != nil {
		return 0, fmt.Errorf("failed to stat note: %w", err)
	}
	return info.ModTime().UnixNano(), nil
}

// AbsPath returns the filesystem path of a vault-relative path
func (r *Repository) AbsPath(rel string) string {
	return r.absolute(rel)
}

// RelPath converts a filesystem path into a vault-relative one
func (r *Repository) RelPath(abs string) (string, error) {
	return r.relative(abs)
}

// relative normalizes p to a clean, slash-separated vault-relative path
func (r *Repository) relative(p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(r.vaultPath, p)
		if err != nil {
			return "", fmt.Errorf("failed to get relative path: %w", err)
		}
		p = rel
	}

	rel := path.Clean(filepath.ToSlash(p))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path is outside the vault: %s", p)
	}
	return rel, nil
}

func (r *Repository) absolute(rel string) string {
	return filepath.Join(r.vaultPath, filepath.FromSlash(rel))
}

func newDocument(rel string) ports.Document {
	return ports.Document{
		Path:  rel,
		Title: strings.TrimSuffix(path.Base(rel), path.Ext(rel)),
	}
}

func isNote(name string) bool {
	return strings.EqualFold(path.Ext(name), ".md")
}
