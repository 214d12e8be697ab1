// Package bootstrap assembles the adapters every entry point shares.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"habitgrid/internal/adapters/cache"
	"habitgrid/internal/adapters/filesystem"
	"habitgrid/internal/adapters/sqlite"
	"habitgrid/internal/adapters/watch"
	"habitgrid/internal/application"
	"habitgrid/internal/config"
	"habitgrid/internal/ctxlog"
	"habitgrid/internal/ports"
)

// Stack is a vault with its parse cache and scanner
type Stack struct {
	Settings *config.Settings
	Repo     *filesystem.Repository
	Cache    ports.ParseCache
	Scanner  *application.Scanner

	closers []func() error
}

// Build opens the vault named by s and the cache strategy it selects
func Build(ctx context.Context, s *config.Settings) (*Stack, error) {
	repo := filesystem.NewRepository(s.Vault)
	info, err := os.Stat(repo.VaultPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault is not a directory: %s", repo.VaultPath())
	}

	stack := &Stack{Settings: s, Repo: repo}

	switch s.Cache {
	case config.CacheLRU:
		lru, err := cache.NewLRU(repo, s.CacheSize)
		if err != nil {
			return nil, err
		}
		stack.Cache = lru
	case config.CacheSQLite:
		db, err := sqlite.Open(ctx, repo)
		if err != nil {
			return nil, err
		}
		stack.Cache = db
		stack.closers = append(stack.closers, db.Close)
	default:
		stack.Cache = cache.NewMemory(repo)
	}

	stack.Scanner = application.NewScanner(repo, stack.Cache,
		application.WithIgnorePolicy(application.NewIgnorePolicy(s.Ignore)))

	ctxlog.FromContext(ctx).Debug("vault opened",
		"vault", repo.VaultPath(), "cache", s.Cache, "settings", s.File)
	return stack, nil
}

// Watch streams note changes under the vault until ctx ends
func (s *Stack) Watch(ctx context.Context) (<-chan watch.Event, error) {
	return watch.NewWatcher(s.Repo.VaultPath()).Watch(ctx)
}

// Close releases the cache
func (s *Stack) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	s.closers = nil
	return errors.Join(errs...)
}
