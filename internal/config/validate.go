// If you are AI: This file validates configuration values and returns descriptive errors.

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"flvedit/internal/core/remove"
)

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Editor.Validate(); err != nil {
		return fmt.Errorf("editor config: %w", err)
	}
	seen := make(map[string]bool, len(c.Documents))
	for i, d := range c.Documents {
		if d.Path == "" {
			return fmt.Errorf("documents[%d]: path is required", i)
		}
		name := d.DisplayName()
		if seen[name] {
			return fmt.Errorf("documents[%d]: duplicate name %q", i, name)
		}
		seen[name] = true
	}
	return nil
}

// Validate checks server configuration values.
func (s *ServerConfig) Validate() error {
	if s.HTTPPort <= 0 || s.HTTPPort > 65535 {
		return fmt.Errorf("http_port must be between 1 and 65535, got %d", s.HTTPPort)
	}
	return nil
}

// Validate checks editor configuration values.
func (e *EditorConfig) Validate() error {
	if _, err := remove.ParseMode(e.Strategy); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	if e.MMapThreshold <= 0 {
		return fmt.Errorf("mmap_threshold must be positive, got %d", e.MMapThreshold)
	}
	if strings.ContainsAny(e.TempSuffix, `/\`) {
		return fmt.Errorf("temp_suffix must not contain path separators, got %q", e.TempSuffix)
	}
	return nil
}

// DisplayName returns the configured name, or the file's base name.
func (d DocumentConfig) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return filepath.Base(d.Path)
}
