// Package config provides configuration management functionality for the vsweep application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the application configuration.
type Config struct {
	// BasePath is where vsweep keeps its own state.
	BasePath string `yaml:"base_path"`
	// HistoryFile records summaries of past cleanup runs.
	HistoryFile string `yaml:"history_file"`
	// Editors lists the variants targeted when the caller names none.
	Editors []string `yaml:"editors"`
	// PluginHome is the well-known home of the plugin's local environment.
	PluginHome string `yaml:"plugin_home"`
	// Preserve lists basenames or glob patterns that are never removed.
	Preserve []string `yaml:"preserve"`
	// StoreKeyPatterns are SQL LIKE patterns matched against state database keys.
	StoreKeyPatterns []string `yaml:"store_key_patterns"`
	// ProtectedPaths extends the safety guard's deny list.
	ProtectedPaths []string `yaml:"protected_paths"`
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.BasePath == "" {
		return ErrBasePathEmpty
	}

	if len(c.Editors) == 0 {
		return ErrEditorsEmpty
	}
	for _, editor := range c.Editors {
		if strings.TrimSpace(editor) == "" {
			return fmt.Errorf("%w: blank editor entry", ErrEditorsEmpty)
		}
	}

	// Preservation patterns must compile as globs.
	for _, pattern := range c.Preserve {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidPreservePattern, pattern)
		}
	}

	for _, pattern := range c.StoreKeyPatterns {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("%w: blank pattern entry", ErrStoreKeyPatternEmpty)
		}
	}

	return nil
}

// expandTildes expands ~ prefixes in all path-valued fields.
func (c *Config) expandTildes() error {
	var err error
	if c.BasePath, err = expandTilde(c.BasePath); err != nil {
		return err
	}
	if c.HistoryFile, err = expandTilde(c.HistoryFile); err != nil {
		return err
	}
	if c.PluginHome, err = expandTilde(c.PluginHome); err != nil {
		return err
	}
	for i, p := range c.ProtectedPaths {
		if c.ProtectedPaths[i], err = expandTilde(p); err != nil {
			return err
		}
	}
	return nil
}

// expandTilde expands a leading ~ to the user's home directory.
func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
