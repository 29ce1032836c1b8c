// Package config holds the settings of the hklread command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatTable = "table" // the report printed by hkl.PrintTable
	FormatHKL   = "hkl"   // an HKL reflection table, as written by hkl.Write
	FormatJSON  = "json"
)

// Config holds the hklread settings. Command-line flags override them.
type Config struct {
	Strict   bool   `yaml:"strict"`    // abort on the first malformed data line
	Summary  bool   `yaml:"summary"`   // print summary statistics after the reflections
	Shells   int    `yaml:"shells"`    // number of resolution shells to print, 0 disables
	Format   string `yaml:"format"`    // table, hkl or json
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Format:   FormatTable,
		LogLevel: "info",
	}
}

// Load reads the YAML configuration in path on top of the defaults. An empty path
// returns the defaults. Unknown keys are an error. Environment overrides
// (HKLREAD_FORMAT, HKLREAD_LOG_LEVEL) are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HKLREAD_FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv("HKLREAD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(c.Format)
	switch c.Format {
	case FormatTable, FormatHKL, FormatJSON:
	default:
		return fmt.Errorf("invalid format %q (table, hkl or json)", c.Format)
	}
	if c.Shells < 0 {
		return fmt.Errorf("invalid number of shells %d", c.Shells)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}
