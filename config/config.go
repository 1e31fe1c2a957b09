// Package config loads gobbletick run configuration from YAML (with a
// JSON fallback).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/gobbletick/gobble"
)

// Config is the complete run configuration.
type Config struct {
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Data     DataConfig     `json:"data" yaml:"data"`
	Output   OutputConfig   `json:"output" yaml:"output"`
}

// StrategyConfig holds the three engine parameters.
type StrategyConfig struct {
	Bank         float64 `json:"bank" yaml:"bank"`
	GobbleAmount float64 `json:"gobble_amount" yaml:"gobble_amount"`
	ExitRate     float64 `json:"exit_rate" yaml:"exit_rate"`
}

// DataConfig identifies the candle dataset to simulate over. Either
// Count or both From and To (RFC3339) must be set.
type DataConfig struct {
	Symbol     string `json:"symbol" yaml:"symbol"`
	Resolution string `json:"resolution" yaml:"resolution"`
	Count      int    `json:"count,omitempty" yaml:"count,omitempty"`
	From       string `json:"from,omitempty" yaml:"from,omitempty"`
	To         string `json:"to,omitempty" yaml:"to,omitempty"`
	CacheDir   string `json:"cache_dir" yaml:"cache_dir"`
}

// OutputConfig controls where results land. Label adds one directory
// level under Dir so related runs group together; it is plain
// configuration, nothing mutates it at run time.
type OutputConfig struct {
	Dir    string `json:"dir" yaml:"dir"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
	CSV    bool   `json:"csv" yaml:"csv"`
	Chart  bool   `json:"chart" yaml:"chart"`
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ResolvedDir returns the effective output directory.
func (o OutputConfig) ResolvedDir() string {
	if o.Label == "" {
		return o.Dir
	}
	return filepath.Join(o.Dir, o.Label)
}

// Params converts the strategy section to engine parameters.
func (c *Config) Params() gobble.Params {
	return gobble.Params{
		InitialBank:  c.Strategy.Bank,
		GobbleAmount: c.Strategy.GobbleAmount,
		ExitRate:     c.Strategy.ExitRate,
	}
}

// FromTime parses the range start; zero when unset.
func (d DataConfig) FromTime() (time.Time, error) {
	return parseTime(d.From)
}

// ToTime parses the range end; zero when unset.
func (d DataConfig) ToTime() (time.Time, error) {
	return parseTime(d.To)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration, choosing the format by extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Strategy.Bank < 0 {
		return fmt.Errorf("strategy.bank must be non-negative")
	}
	if c.Strategy.GobbleAmount <= 0 {
		return fmt.Errorf("strategy.gobble_amount must be positive")
	}
	if c.Data.Symbol == "" {
		return fmt.Errorf("data.symbol is required")
	}
	if c.Data.Resolution == "" {
		return fmt.Errorf("data.resolution is required")
	}
	if c.Data.Count <= 0 && (c.Data.From == "" || c.Data.To == "") {
		return fmt.Errorf("data needs count or both from and to")
	}
	if _, err := c.Data.FromTime(); err != nil {
		return fmt.Errorf("data.from: %w", err)
	}
	if _, err := c.Data.ToTime(); err != nil {
		return fmt.Errorf("data.to: %w", err)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Output.DBPath == "" {
		return fmt.Errorf("output.db_path is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults, mirroring the
// classic 52-weeks-of-SLAB example.
func Default() *Config {
	return &Config{
		Strategy: StrategyConfig{
			Bank:         50000,
			GobbleAmount: 1000,
			ExitRate:     0.03,
		},
		Data: DataConfig{
			Symbol:     "SLAB",
			Resolution: "W",
			Count:      52,
			CacheDir:   "./candle_data",
		},
		Output: OutputConfig{
			Dir:    "./data",
			CSV:    true,
			Chart:  true,
			DBPath: "./gobbletick.sqlite",
		},
	}
}
