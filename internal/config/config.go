// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the bench configuration of the ledmatrix command.
//
package config

import (
	"math"
	"os"
	"time"

	"github.com/db47h/ledmatrix"
	"github.com/db47h/ledmatrix/hwtest"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MinStepsPerCycle is the smallest number of simulation steps per cycle for
// which inputs and outputs of the matrix settle within half a cycle.
//
const MinStepsPerCycle = hwtest.MinStepsPerCycle

// Config is the bench configuration.
type Config struct {
	Seed           int           `yaml:"seed"`
	DebounceCycles int           `yaml:"debounce_cycles"`
	ResetCycles    int           `yaml:"reset_cycles"`
	ClockPeriod    string        `yaml:"clock_period"` // Go duration, e.g. "10us"
	StepsPerCycle  uint          `yaml:"steps_per_cycle"`
	Workers        int           `yaml:"workers"`
	Logging        LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// Default returns the configuration of the tapeout test bench.
func Default() *Config {
	return &Config{
		Seed:           ledmatrix.DefaultSeed,
		DebounceCycles: ledmatrix.DefaultDebounceCycles,
		ResetCycles:    ledmatrix.DefaultResetCycles,
		ClockPeriod:    hwtest.DefaultClockPeriod.String(),
		StepsPerCycle:  hwtest.DefaultStepsPerCycle,
		Workers:        1,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML configuration file. Missing settings keep their default
// value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	return Parse(data)
}

// Parse parses a YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Seed < 0 || c.Seed > math.MaxUint16 {
		return errors.Errorf("seed %#x out of range", c.Seed)
	}
	if err := c.Matrix().Validate(); err != nil {
		return err
	}
	if c.StepsPerCycle < MinStepsPerCycle {
		return errors.Errorf("steps_per_cycle must be at least %d, got %d", MinStepsPerCycle, c.StepsPerCycle)
	}
	if _, err := c.Period(); err != nil {
		return err
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("invalid log level %q", c.Logging.Level)
	}
	return nil
}

// Period returns the parsed clock period.
func (c *Config) Period() (time.Duration, error) {
	d, err := time.ParseDuration(c.ClockPeriod)
	if err != nil {
		return 0, errors.Wrap(err, "invalid clock_period")
	}
	if d <= 0 {
		return 0, errors.Errorf("clock_period must be positive, got %v", d)
	}
	return d, nil
}

// Matrix returns the design parameters.
func (c *Config) Matrix() ledmatrix.Config {
	return ledmatrix.Config{
		Seed:           uint16(c.Seed),
		DebounceCycles: c.DebounceCycles,
		ResetCycles:    c.ResetCycles,
	}
}

// BenchOptions returns the bench options matching the configuration. The
// configuration must have been validated.
func (c *Config) BenchOptions() []hwtest.BenchOption {
	d, _ := c.Period()
	return []hwtest.BenchOption{
		hwtest.WithStepsPerCycle(c.StepsPerCycle),
		hwtest.WithWorkers(c.Workers),
		hwtest.WithClockPeriod(d),
	}
}
