// Package config loads user configuration for the organizer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Duplicate policies accepted in duplicate_policy.
const (
	DuplicateSkip      = "skip"
	DuplicateOverwrite = "overwrite"
)

type Config struct {
	SourceFolder      string `koanf:"source_folder"`
	DestinationFolder string `koanf:"destination_folder"`
	SanitizeFilenames *bool  `koanf:"sanitize_filenames"` // strip illegal filename characters (default: true)
	DuplicatePolicy   string `koanf:"duplicate_policy"`   // "skip" or "overwrite" (default: "skip")
	Notifications     *bool  `koanf:"notifications"`      // desktop notification when a run ends (default: true)
	History           *bool  `koanf:"history"`            // record finished runs in the local database (default: true)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.SourceFolder = expandPath(cfg.SourceFolder)
	cfg.DestinationFolder = expandPath(cfg.DestinationFolder)

	if cfg.DuplicatePolicy == "" {
		cfg.DuplicatePolicy = DuplicateSkip
	}
	if cfg.DuplicatePolicy != DuplicateSkip && cfg.DuplicatePolicy != DuplicateOverwrite {
		return nil, fmt.Errorf("invalid duplicate_policy %q (expected %q or %q)",
			cfg.DuplicatePolicy, DuplicateSkip, DuplicateOverwrite)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/shelf/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "shelf", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Sanitize returns the sanitize_filenames toggle with its default applied.
func (c *Config) Sanitize() bool {
	return c.SanitizeFilenames == nil || *c.SanitizeFilenames
}

// NotificationsEnabled returns the notifications toggle with its default applied.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// HistoryEnabled returns the history toggle with its default applied.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}
