// Package config loads host settings and decodes heatmap config blocks.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultVaultPath = "~/Documents/journal"
	DefaultCache     = CacheMemory
	DefaultCacheSize = 512

	envPrefix    = "HABITGRID"
	settingsName = "habitgrid"
)

// Cache strategies accepted by the cache setting
const (
	CacheMemory = "memory"
	CacheLRU    = "lru"
	CacheSQLite = "sqlite"
)

// Settings are the host-level options shared by every entry point
type Settings struct {
	Vault     string
	Ignore    []string
	Cache     string
	CacheSize int
	// File is the settings file that was read, empty when none was found
	File string
}

// Load reads settings from the environment and an optional habitgrid.yaml.
// An explicit file that cannot be read is an error; a missing default one
// is not.
func Load(file string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("vault", DefaultVaultPath)
	v.SetDefault("ignore", []string{"templates"})
	v.SetDefault("cache", DefaultCache)
	v.SetDefault("cache_size", DefaultCacheSize)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(settingsName) // .yaml is implicit
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	vault, err := homedir.Expand(v.GetString("vault"))
	if err != nil {
		return nil, fmt.Errorf("failed to expand vault path: %w", err)
	}

	s := &Settings{
		Vault:     vault,
		Ignore:    splitList(v.GetStringSlice("ignore")),
		Cache:     strings.ToLower(strings.TrimSpace(v.GetString("cache"))),
		CacheSize: v.GetInt("cache_size"),
		File:      v.ConfigFileUsed(),
	}

	switch s.Cache {
	case CacheMemory, CacheLRU, CacheSQLite:
	default:
		return nil, fmt.Errorf("unknown cache %q (expected %s, %s or %s)", s.Cache, CacheMemory, CacheLRU, CacheSQLite)
	}
	if s.CacheSize <= 0 {
		s.CacheSize = DefaultCacheSize
	}

	return s, nil
}

// VaultPath returns the vault path from the HABITGRID_VAULT env var,
// falling back to DefaultVaultPath.
func VaultPath() string {
	if env := os.Getenv(envPrefix + "_VAULT"); env != "" {
		return env
	}
	return DefaultVaultPath
}

// searchPaths lists the directories searched for habitgrid.yaml
func searchPaths() []string {
	var dirs []string
	if override := os.Getenv(envPrefix + "_CONFIG_PATH"); override != "" {
		dirs = append(dirs, override)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, settingsName))
	} else if home, err := homedir.Dir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", settingsName))
	}
	return append(dirs, ".")
}

// splitList accepts both YAML lists and comma-separated env values
func splitList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
