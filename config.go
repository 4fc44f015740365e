// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ledmatrix

import (
	"github.com/pkg/errors"
)

// Matrix geometry.
//
const (
	Rows    = 3
	Columns = 3
	Buttons = Rows * Columns
)

// Default design parameters.
//
const (
	DefaultSeed           = 0xBEEF
	DefaultDebounceCycles = 16
	DefaultResetCycles    = 10
)

// Config holds the design parameters of the LED matrix.
//
type Config struct {
	// Seed is the value loaded into the LFSR on reset.
	Seed uint16
	// DebounceCycles is the number of clock cycles a button must be seen
	// pressed before a press event fires.
	DebounceCycles int
	// ResetCycles is the number of cycles reset is held by Startup.
	ResetCycles int
}

// DefaultConfig returns the configuration of the taped out design.
//
func DefaultConfig() Config {
	return Config{
		Seed:           DefaultSeed,
		DebounceCycles: DefaultDebounceCycles,
		ResetCycles:    DefaultResetCycles,
	}
}

// Validate checks that cfg is usable.
//
func (cfg Config) Validate() error {
	if cfg.DebounceCycles < 1 {
		return errors.Errorf("invalid debounce cycle count %d", cfg.DebounceCycles)
	}
	if cfg.ResetCycles < 1 {
		return errors.Errorf("invalid reset cycle count %d", cfg.ResetCycles)
	}
	return nil
}

// HoldCycles returns the number of cycles the first row must be held high
// after reset for the first press to fire. Button (0, 0) is sampled on the
// first edge after reset, then every third edge, so this is DebounceCycles
// rounded up to the next sample of column 0.
//
func (cfg Config) HoldCycles() int {
	n := cfg.DebounceCycles
	for (n-1)%Columns != 0 {
		n++
	}
	return n
}

// PressCycles returns the number of cycles Press must pulse a button for a
// debounced press to fire, whatever the active column when it starts.
//
func (cfg Config) PressCycles() int {
	return Columns*((cfg.DebounceCycles+Columns-2)/Columns) + Columns
}
