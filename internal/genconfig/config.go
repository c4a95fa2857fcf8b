// Package genconfig loads the generator's YAML run configuration, mirroring the teacher's
// Scenario YAML loading in pkg/simulator/scenario.go: a plain struct with yaml tags, unmarshalled
// once at startup, validated before generation begins (§6.2, §7 ConfigError).
package genconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dieselfleet/simgen/internal/constants"
	"github.com/dieselfleet/simgen/internal/simerrors"
)

// Config is the generator's top-level run configuration (§6.2).
type Config struct {
	Trucks         int    `yaml:"trucks"`
	Days           int    `yaml:"days"`
	MasterSeed     int64  `yaml:"master_seed"`
	OutputDir      string `yaml:"output_dir"`
	MaxConcurrency int    `yaml:"max_concurrency,omitempty"`
	SplitSeed      int64  `yaml:"split_seed,omitempty"`
}

// Default returns the generator's default configuration (§6.1-6.2): the full 200-truck,
// 183-day fleet with a fixed master seed.
func Default() Config {
	return Config{
		Trucks:         constants.TotalTrucks,
		Days:           constants.SimulationDays,
		MasterSeed:     20240115,
		OutputDir:      "./output",
		MaxConcurrency: 8,
		SplitSeed:      987654321,
	}
}

// Load reads and validates a YAML config file, falling back to Default() for any field the
// file omits (zero value).
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, simerrors.NewIOError("read config", err)
	}

	loaded := Config{}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Config{}, simerrors.NewConfigError("yaml", fmt.Sprintf("parse error: %v", err))
	}

	if loaded.Trucks > 0 {
		cfg.Trucks = loaded.Trucks
	}
	if loaded.Days > 0 {
		cfg.Days = loaded.Days
	}
	if loaded.MasterSeed != 0 {
		cfg.MasterSeed = loaded.MasterSeed
	}
	if loaded.OutputDir != "" {
		cfg.OutputDir = loaded.OutputDir
	}
	if loaded.MaxConcurrency > 0 {
		cfg.MaxConcurrency = loaded.MaxConcurrency
	}
	if loaded.SplitSeed != 0 {
		cfg.SplitSeed = loaded.SplitSeed
	}

	return cfg, cfg.Validate()
}

// Validate enforces the generator's configuration invariants (§7 ConfigError).
func (c Config) Validate() error {
	if c.Trucks <= 0 {
		return simerrors.NewConfigError("trucks", "must be positive")
	}
	if c.Days <= 0 {
		return simerrors.NewConfigError("days", "must be positive")
	}
	if c.OutputDir == "" {
		return simerrors.NewConfigError("output_dir", "must not be empty")
	}
	if c.MaxConcurrency <= 0 {
		return simerrors.NewConfigError("max_concurrency", "must be positive")
	}
	return nil
}
