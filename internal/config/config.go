// Package config provides unified configuration loading for humoral.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/kbretey/humoral/internal/antibody"
)

// Config contains all humoral configuration settings.
type Config struct {
	// Store contains settings for run persistence.
	Store StoreConfig `json:"store" yaml:"store"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Params is the immunological parameter bundle shared by every
	// antibody in a run.
	Params antibody.Params `json:"params" yaml:"params"`
}

// StoreConfig configures run persistence.
type StoreConfig struct {
	// Path is the SQLite database file for runs and snapshots.
	Path string `json:"path" yaml:"path" env:"HUMORAL_DB_PATH"`
}

// LoggingConfig configures humoral's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables per-day trace logging to trace.jsonl.
	// "trace" additionally logs every antibody's state each day.
	Level string `json:"level" yaml:"level" env:"HUMORAL_LOG_LEVEL"`

	// TraceDir is the directory for trace.jsonl output.
	TraceDir string `json:"trace_dir" yaml:"trace_dir" env:"HUMORAL_TRACE_DIR"`
}

// Default returns a Config with the reference calibration and local
// file paths.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path: ".humoral/runs.db",
		},
		Logging: LoggingConfig{
			Level:    "info",
			TraceDir: ".humoral",
		},
		Params: antibody.DefaultParams(),
	}
}

// Load builds the effective configuration: defaults, overlaid by the
// YAML file at path if path is non-empty, overlaid by environment
// variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file, on top
// of defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is valid. Parameter bundle
// violations are caught here, once, at load time.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store path is required")
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	return nil
}
