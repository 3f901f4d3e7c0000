// Package config loads tagmerge project settings from tagmerge.yml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tagmerge/internal/plan"
)

// FileNames are the config file names looked up in a directory, in order.
var FileNames = []string{"tagmerge.yml", "tagmerge.yaml"}

// Config holds project-level settings. Command-line flags override them.
type Config struct {
	Keys          []string `yaml:"keys,omitempty"`
	Policy        string   `yaml:"policy,omitempty"`
	NormalizeKeys bool     `yaml:"normalize_keys,omitempty"`
	Indent        *int     `yaml:"indent,omitempty"` // spaces per level; 0 is compact
	LogLevel      string   `yaml:"log_level,omitempty"`
}

// Load reads tagmerge.yml or tagmerge.yaml from dir. Returns a zero-value
// config (not an error) if neither exists.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}
	return &Config{}, nil
}

// LoadFile reads and validates a config file. Unknown fields are rejected
// so typos surface instead of being ignored.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	for i, k := range c.Keys {
		if k == "" {
			return fmt.Errorf("keys[%d] is empty", i)
		}
	}
	if _, err := plan.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if c.Indent != nil && (*c.Indent < 0 || *c.Indent > 8) {
		return fmt.Errorf("indent must be between 0 and 8, got %d", *c.Indent)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// IndentString returns the output indentation, defaulting to two spaces.
func (c *Config) IndentString() string {
	if c.Indent == nil {
		return "  "
	}
	return strings.Repeat(" ", *c.Indent)
}

// SlogLevel returns the configured log level, defaulting to info.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
}
