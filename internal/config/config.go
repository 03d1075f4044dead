package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name written by `homekeep init`.
const FileName = "homekeep.yaml"

// Config represents the top-level homekeep.yaml configuration.
type Config struct {
	Household  HouseholdConfig  `yaml:"household"`
	Premium    bool             `yaml:"premium"`
	Logging    LoggingConfig    `yaml:"logging"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Export     ExportConfig     `yaml:"export"`
}

// HouseholdConfig holds defaults applied to every new household.
type HouseholdConfig struct {
	DefaultName     string  `yaml:"default_name,omitempty"`
	Currency        string  `yaml:"currency"`
	NearBudgetRatio float64 `yaml:"near_budget_ratio"`
}

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// TranscriptConfig controls the session activity log.
type TranscriptConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ExportConfig controls the premium CSV report.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads a homekeep.yaml file from disk. Missing keys keep their
// defaults. The result is not validated; call Validate once flag and
// environment overrides have been applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Household: HouseholdConfig{
			Currency:        "PKR",
			NearBudgetRatio: 0.8,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Transcript: TranscriptConfig{
			Path: "logs/session-log.csv",
		},
		Export: ExportConfig{
			Dir: "exports",
		},
	}
}

// Validate checks values that cannot be repaired with a default.
func (c *Config) Validate() error {
	if c.Household.NearBudgetRatio <= 0 {
		return fmt.Errorf("invalid near_budget_ratio %v: must be positive", c.Household.NearBudgetRatio)
	}
	if c.Household.Currency == "" {
		return fmt.Errorf("currency must not be empty")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be console or json", c.Logging.Format)
	}
	if c.Transcript.Enabled && c.Transcript.Path == "" {
		return fmt.Errorf("transcript enabled but no path set")
	}
	return nil
}

// NearBudgetRatio returns the warning ratio as a decimal.
func (c *Config) NearBudgetRatio() decimal.Decimal {
	return decimal.NewFromFloat(c.Household.NearBudgetRatio)
}
