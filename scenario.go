// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ledmatrix

import (
	"context"
	"math/bits"

	"github.com/db47h/ledmatrix/lfsr"
	"github.com/pkg/errors"
)

// ErrMismatch is returned, wrapped, when the device outputs differ from the
// predicted values.
//
var ErrMismatch = errors.New("output mismatch")

// Bench is the interface to the device under test used by the scenarios.
// hwtest.Bench implements it.
//
type Bench interface {
	Set(name string, v int64) error
	Get(name string) (int64, error)
	ClockCycles(ctx context.Context, n int) error
}

// A Check is a single display check.
//
type Check struct {
	Cycle  int    // cycles since reset was released
	Column int    // active column
	Want   uint16 // expected display
	Got    uint16
}

// Report describes a Startup run.
//
type Report struct {
	Seed       uint16
	HoldCycles int    // cycles the first row was held
	Pattern    uint16 // predicted LED pattern
	Checks     []Check
}

// DisplayValue returns the 9 bits display vector: uio_out[0]<<8 | uo_out.
//
func DisplayValue(b Bench) (uint16, error) {
	lo, err := b.Get(PinUOOut)
	if err != nil {
		return 0, err
	}
	hi, err := b.Get(PinUIOOut)
	if err != nil {
		return 0, err
	}
	return uint16(hi&1)<<8 | uint16(lo&0xFF), nil
}

// ActiveColumn returns the column currently driven on uio_out[1..3].
//
func ActiveColumn(b Bench) (int, error) {
	v, err := b.Get(PinUIOOut)
	if err != nil {
		return 0, err
	}
	col := uint(v>>1) & (1<<Columns - 1)
	if bits.OnesCount(col) != 1 {
		return 0, errors.Errorf("column scan %03b is not one-hot", col)
	}
	return bits.TrailingZeros(col), nil
}

// State returns the game state driven on uio_out[4..5].
//
func State(b Bench) (GameState, error) {
	v, err := b.Get(PinUIOOut)
	if err != nil {
		return 0, err
	}
	return GameState(v >> 4 & 3), nil
}

// Reset applies the reset sequence of the tapeout test: ena high, all inputs
// low and rst_n low for cfg.ResetCycles cycles, then releases rst_n.
//
func Reset(ctx context.Context, b Bench, cfg Config) error {
	for _, s := range []struct {
		pin string
		v   int64
	}{
		{PinEna, 1}, {PinUIIn, 0}, {PinUIOIn, 0}, {PinRstN, 0},
	} {
		if err := b.Set(s.pin, s.v); err != nil {
			return err
		}
	}
	if err := b.ClockCycles(ctx, cfg.ResetCycles); err != nil {
		return err
	}
	return b.Set(PinRstN, 1)
}

// Startup resets the device, holds all buttons of the first row until the
// debouncers fire, then checks the display for a full column scan against the
// pattern predicted from the LFSR seed.
//
// A display mismatch is reported as an error wrapping ErrMismatch. The
// returned report is valid up to the failing check.
//
func Startup(ctx context.Context, b Bench, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hold := cfg.HoldCycles()
	r := &Report{
		Seed:       cfg.Seed,
		HoldCycles: hold,
		Pattern:    lfsr.Advance(cfg.Seed, uint32(hold)) & PatternMask,
	}
	if err := Reset(ctx, b, cfg); err != nil {
		return r, err
	}
	if err := b.Set(PinUIIn, 1); err != nil {
		return r, err
	}
	if err := b.ClockCycles(ctx, hold); err != nil {
		return r, err
	}
	if err := b.Set(PinUIIn, 0); err != nil {
		return r, err
	}

	for k := 0; k < Columns; k++ {
		if k > 0 {
			if err := b.ClockCycles(ctx, 1); err != nil {
				return r, err
			}
		}
		col := (hold + k) % Columns
		got, err := DisplayValue(b)
		if err != nil {
			return r, err
		}
		chk := Check{Cycle: hold + k, Column: col, Want: r.Pattern & ColumnMask(col), Got: got}
		r.Checks = append(r.Checks, chk)
		if chk.Got != chk.Want {
			return r, errors.Wrapf(ErrMismatch, "cycle %d, column %d: display = %#03x, expected %#03x",
				chk.Cycle, chk.Column, chk.Got, chk.Want)
		}
	}
	return r, nil
}

// Press simulates a real push on button (r, c): all buttons are released for
// a full scan, then row r is raised for the given number of cycles, only while
// column c is driven, then the buttons are released for another full scan.
// Use Config.PressCycles for a press that is long enough to be debounced.
//
func Press(ctx context.Context, b Bench, r, c, cycles int) error {
	if r < 0 || r >= Rows || c < 0 || c >= Columns {
		return errors.Errorf("invalid button (%d, %d)", r, c)
	}
	if err := release(ctx, b); err != nil {
		return err
	}
	for i := 0; i < cycles; i++ {
		col, err := ActiveColumn(b)
		if err != nil {
			return err
		}
		var v int64
		if col == c {
			v = 1 << uint(r)
		}
		if err = b.Set(PinUIIn, v); err != nil {
			return err
		}
		if err = b.ClockCycles(ctx, 1); err != nil {
			return err
		}
	}
	return release(ctx, b)
}

func release(ctx context.Context, b Bench) error {
	if err := b.Set(PinUIIn, 0); err != nil {
		return err
	}
	return b.ClockCycles(ctx, Columns)
}

// ReadMatrix samples the display for a full column scan and returns the LED
// register value. It fails if a LED outside the active column is lit.
//
func ReadMatrix(ctx context.Context, b Bench) (uint16, error) {
	var leds uint16
	for k := 0; k < Columns; k++ {
		if k > 0 {
			if err := b.ClockCycles(ctx, 1); err != nil {
				return 0, err
			}
		}
		col, err := ActiveColumn(b)
		if err != nil {
			return 0, err
		}
		v, err := DisplayValue(b)
		if err != nil {
			return 0, err
		}
		if m := ColumnMask(col); v&^m != 0 {
			return 0, errors.Wrapf(ErrMismatch, "display %#03x has LEDs lit outside column %d", v, col)
		}
		leds |= v
	}
	return leds, nil
}
