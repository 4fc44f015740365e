// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ledmatrix

import (
	"strconv"

	"github.com/db47h/ledmatrix/hwsim"
)

// debouncer state, updated on rising edges.
//
type debouncer struct {
	n       int
	active  bool // seen high, waiting for a low sample
	count   int  // cycles since the first high sample, saturates at n
	pressed bool
}

func (d *debouncer) clear() {
	d.active, d.count, d.pressed = false, 0, false
}

// next returns the count value after the coming edge if the button is sampled
// high.
//
func (d *debouncer) next() int {
	if !d.active {
		return 1
	}
	if d.count < d.n {
		return d.count + 1
	}
	return d.n
}

func (d *debouncer) fire(reset, row, sel bool) bool {
	return !reset && sel && row && !d.pressed && d.next() >= d.n
}

func (d *debouncer) update(reset, row, sel bool) {
	switch {
	case reset:
		d.clear()
	case sel && row:
		d.count = d.next()
		d.active = true
		if d.count >= d.n {
			d.pressed = true
		}
	case sel:
		d.clear()
	case d.active:
		d.count = d.next()
	}
}

// Debouncer returns a button debouncer for a multiplexed button. The button is
// sampled on row while sel is high. Once it has been seen high, the
// debouncer counts clock cycles (sampled or not) until it is sampled low.
//
//	Inputs: reset, row, sel
//	Outputs: pressed, fire
//	Function: fire is high during the cycle whose rising edge will see the
//	button sampled high for n cycles; it is not raised again until the button
//	has been sampled low. pressed goes high on that edge.
//
func Debouncer(n int) hwsim.NewPartFn {
	if n < 1 {
		n = 1
	}
	return (&hwsim.PartSpec{
		Name:    "DEBOUNCE" + strconv.Itoa(n),
		Inputs:  hwsim.In("reset, row, sel"),
		Outputs: hwsim.Out("pressed, fire"),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			reset, row, sel := s.Pin("reset"), s.Pin("row"), s.Pin("sel")
			pressed, fire := s.Pin("pressed"), s.Pin("fire")
			d := &debouncer{n: n}
			return []hwsim.Component{func(c *hwsim.Circuit) {
				r, in, sl := c.Get(reset), c.Get(row), c.Get(sel)
				if c.AtTick() {
					d.update(r, in, sl)
				}
				c.Set(pressed, d.pressed)
				c.Set(fire, d.fire(r, in, sl))
			}}
		}}).NewPart
}
