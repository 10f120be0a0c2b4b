// If you are AI: This file defines the configuration structure for flvedit.
// It uses strict YAML decoding and explicit defaults.

package config

import (
	"bytes"
	"fmt"
	"os"

	"flvedit/internal/core/protocol/flv"
	"flvedit/internal/core/remove"

	"gopkg.in/yaml.v3"
)

// Config holds the complete configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Editor    EditorConfig     `yaml:"editor"`
	Decode    DecodeConfig     `yaml:"decode"`
	Documents []DocumentConfig `yaml:"documents,omitempty"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	HTTPPort int `yaml:"http_port"` // Port for health, API and events
}

// EditorConfig controls how tag deletions hit the disk.
type EditorConfig struct {
	Strategy      string `yaml:"strategy"`       // "auto", "stream" or "mmap"
	MMapThreshold int64  `yaml:"mmap_threshold"` // Auto mode switches to mmap at this size
	TempSuffix    string `yaml:"temp_suffix"`    // Suffix of the stream rewrite temp file
}

// DecodeConfig tunes the decoder.
type DecodeConfig struct {
	LenientBackLinks bool `yaml:"lenient_back_links"` // Keep tags with a wrong PreviousTagSize
}

// DocumentConfig names a file opened at startup by the serve command.
type DocumentConfig struct {
	Name string `yaml:"name,omitempty"` // Defaults to the file's base name
	Path string `yaml:"path"`
}

// Load reads configuration from a YAML file.
// Returns an error if the file cannot be read or decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8090
	}
	if c.Editor.Strategy == "" {
		c.Editor.Strategy = string(remove.ModeAuto)
	}
	if c.Editor.MMapThreshold == 0 {
		c.Editor.MMapThreshold = remove.DefaultThreshold
	}
	if c.Editor.TempSuffix == "" {
		c.Editor.TempSuffix = remove.DefaultTempSuffix
	}
}

// Selector returns the deletion strategy selector described by the editor settings.
// Call Validate first; an invalid strategy falls back to auto.
func (e EditorConfig) Selector() remove.Selector {
	mode, err := remove.ParseMode(e.Strategy)
	if err != nil {
		mode = remove.ModeAuto
	}
	return remove.Selector{
		Mode:       mode,
		Threshold:  e.MMapThreshold,
		TempSuffix: e.TempSuffix,
	}
}

// Options returns the decoder options.
func (d DecodeConfig) Options() flv.DecodeOptions {
	return flv.DecodeOptions{LenientBackLinks: d.LenientBackLinks}
}
