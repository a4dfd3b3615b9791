// Package config provides configuration loading and management for the
// belanno tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete belanno configuration.
type Config struct {
	Parse     ParseConfig     `yaml:"parse"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Watch     WatchConfig     `yaml:"watch"`
	Batch     BatchConfig     `yaml:"batch"`
}

// ParseConfig controls parser strictness.
type ParseConfig struct {
	// StrictSections rejects unrecognized sections instead of ignoring them.
	StrictSections bool `yaml:"strict_sections"`
	// StrictKeys rejects unrecognized keys instead of warning.
	StrictKeys bool `yaml:"strict_keys"`
	// FieldsPerRow fixes the expected Values field count (0 = infer).
	FieldsPerRow int `yaml:"fields_per_row"`
}

// DiscoveryConfig controls how annotation files are located.
type DiscoveryConfig struct {
	// Patterns are glob patterns for annotation files.
	Patterns []string `yaml:"patterns"`
}

// WatchConfig controls directory watching.
type WatchConfig struct {
	// Dirs are the directories to watch.
	Dirs []string `yaml:"dirs"`
	// DebounceDelay is how long to wait for more changes before revalidating.
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// BatchConfig controls batch ingestion.
type BatchConfig struct {
	// Workers is the parse worker pool size.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Parse: ParseConfig{
			StrictSections: false,
			StrictKeys:     false,
			FieldsPerRow:   0,
		},
		Discovery: DiscoveryConfig{
			Patterns: []string{"**/*.belanno"},
		},
		Watch: WatchConfig{
			Dirs:          []string{"."},
			DebounceDelay: 500 * time.Millisecond,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Parse.FieldsPerRow < 0 {
		return fmt.Errorf("parse.fields_per_row must not be negative")
	}
	if c.Parse.FieldsPerRow == 1 {
		return fmt.Errorf("parse.fields_per_row must be at least 2 (term plus identifier)")
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative")
	}
	if c.Watch.DebounceDelay < 0 {
		return fmt.Errorf("watch.debounce_delay must not be negative")
	}
	if len(c.Discovery.Patterns) == 0 {
		return fmt.Errorf("discovery.patterns must not be empty")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence
// for non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Parse.StrictSections {
		c.Parse.StrictSections = true
	}
	if other.Parse.StrictKeys {
		c.Parse.StrictKeys = true
	}
	if other.Parse.FieldsPerRow != 0 {
		c.Parse.FieldsPerRow = other.Parse.FieldsPerRow
	}

	if len(other.Discovery.Patterns) > 0 {
		c.Discovery.Patterns = other.Discovery.Patterns
	}

	if len(other.Watch.Dirs) > 0 {
		c.Watch.Dirs = other.Watch.Dirs
	}
	if other.Watch.DebounceDelay != 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}

	if other.Batch.Workers != 0 {
		c.Batch.Workers = other.Batch.Workers
	}
}
