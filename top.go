// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ledmatrix

import (
	"fmt"

	"github.com/db47h/ledmatrix/hwlib"
	"github.com/db47h/ledmatrix/hwsim"
	"github.com/db47h/ledmatrix/lfsr"
	"github.com/pkg/errors"
)

// Top level pin names.
//
const (
	PinEna    = "ena"
	PinRstN   = "rst_n"
	PinUIIn   = "ui_in"
	PinUIOIn  = "uio_in"
	PinUOOut  = "uo_out"
	PinUIOOut = "uio_out"
	PinUIOOE  = "uio_oe"
)

// OutputEnable is the constant value of uio_oe.
//
const OutputEnable = 0x3F

// Display returns the display multiplexer: a LED is lit while its column is
// active.
//
//	Inputs: led[9], col[3]
//	Outputs: out[9]
//	Function: out[i] = led[i] && col[i%3]
//
func Display() (hwsim.NewPartFn, error) {
	var parts hwsim.Parts
	for i := 0; i < Buttons; i++ {
		parts = append(parts, hwlib.And(fmt.Sprintf("a=led[%d], b=col[%d], out=out[%d]", i, i%Columns, i)))
	}
	return hwsim.Chip("DISPLAY", "led[9], col[3]", "out[9]", parts...)
}

// Top returns the top level chip of the LED matrix.
//
//	Inputs: ena, rst_n, ui_in[8], uio_in[8]
//	Outputs: uo_out[8], uio_out[8], uio_oe[8]
//
func Top(cfg Config) (hwsim.NewPartFn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ring, err := hwlib.Ring(Columns)
	if err != nil {
		return nil, err
	}
	display, err := Display()
	if err != nil {
		return nil, err
	}
	debounce := Debouncer(cfg.DebounceCycles)

	parts := hwsim.Parts{
		hwlib.Not("in=rst_n, out=rst"),
		hwlib.LFSR(16, uint64(lfsr.Taps), uint64(cfg.Seed))("reset=rst, next=next"),
		ring("reset=rst, out=col, out=uio_out[1..3]"),
	}
	for b := 0; b < Buttons; b++ {
		parts = append(parts, debounce(fmt.Sprintf(
			"reset=rst, row=ui_in[%d], sel=col[%d], pressed=pressed[%d], fire=fire[%d]",
			b/Columns, b%Columns, b, b)))
	}
	parts = append(parts,
		hwlib.OrNWay(Buttons)("in=pressed, out=busy"),
		Game("reset=rst, fire=fire, busy=busy, next=next[0..8], led=led, state=uio_out[4..5]"),
		display("led=led, col=col, out[0..7]=uo_out[0..7], out[8]=uio_out[0]"),
		hwlib.ConstN(8, OutputEnable)("out=uio_oe"),
	)

	top, err := hwsim.Chip("LEDMATRIX", "ena, rst_n, ui_in[8], uio_in[8]", "uo_out[8], uio_out[8], uio_oe[8]", parts...)
	if err != nil {
		return nil, errors.Wrap(err, "LEDMATRIX")
	}
	return top, nil
}
