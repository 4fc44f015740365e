// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ledmatrix/hwsim"
)

// Int64 returns the state of pins as an integer, pins[0] being the least
// significant bit.
//
func Int64(c *hwsim.Circuit, pins []int) int64 {
	var v int64
	for i := len(pins) - 1; i >= 0; i-- {
		v <<= 1
		if c.Get(pins[i]) {
			v |= 1
		}
	}
	return v
}

// SetInt64 sets pins to the bits of v, pins[0] being the least significant
// bit.
//
func SetInt64(c *hwsim.Circuit, pins []int, v int64) {
	for _, p := range pins {
		c.Set(p, v&1 != 0)
		v >>= 1
	}
}

// source returns a part with the given outputs, set every step from f.
func source(name string, outs []string, f func(c *hwsim.Circuit, pins []int)) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    name,
		Outputs: outs,
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			pins := make([]int, len(outs))
			for i, n := range outs {
				pins[i] = s.Pin(n)
			}
			return []hwsim.Component{func(c *hwsim.Circuit) { f(c, pins) }}
		}}).NewPart
}

// sink returns a part with the given inputs, passed to f every step.
func sink(name string, ins []string, f func(c *hwsim.Circuit, pins []int)) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:   name,
		Inputs: ins,
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			pins := make([]int, len(ins))
			for i, n := range ins {
				pins[i] = s.Pin(n)
			}
			return []hwsim.Component{func(c *hwsim.Circuit) { f(c, pins) }}
		}}).NewPart
}

// Input returns a single pin input whose state is f().
//
//	Outputs: out
//
func Input(f func() bool) hwsim.NewPartFn {
	return source("Input", hwsim.Outputs{pOut}, func(c *hwsim.Circuit, p []int) {
		c.Set(p[0], f())
	})
}

// Output returns a probe. f is called with the state of in on every step.
//
//	Inputs: in
//
func Output(f func(bool)) hwsim.NewPartFn {
	return sink("Output", hwsim.Inputs{pIn}, func(c *hwsim.Circuit, p []int) {
		f(c.Get(p[0]))
	})
}

// InputN returns an input bus whose state is f().
//
//	Outputs: out[bits]
//
func InputN(bits int, f func() int64) hwsim.NewPartFn {
	return source("INPUT"+strconv.Itoa(bits), bus(bits, pOut), func(c *hwsim.Circuit, p []int) {
		SetInt64(c, p, f())
	})
}

// OutputN returns a bus probe. f is called with the state of in on every step.
//
//	Inputs: in[bits]
//
func OutputN(bits int, f func(int64)) hwsim.NewPartFn {
	return sink("OUTPUT"+strconv.Itoa(bits), bus(bits, pIn), func(c *hwsim.Circuit, p []int) {
		f(Int64(c, p))
	})
}

// ConstN returns a bus tied to the constant v.
//
//	Outputs: out[bits]
//
func ConstN(bits int, v int64) hwsim.NewPartFn {
	return source("CONST"+strconv.Itoa(bits), bus(bits, pOut), func(c *hwsim.Circuit, p []int) {
		SetInt64(c, p, v)
	})
}

// Port returns a set of externally driven pins. Unlike Input, a Port has no
// components: its pins keep their state until changed with Circuit.Drive, and
// a new value is visible to other parts from the very next simulation step.
//
//	Outputs: as described by the pin specification string spec (see hwsim.IO).
//
func Port(spec string) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    "PORT",
		Outputs: hwsim.IO(spec),
		Mount:   func(*hwsim.Socket) []hwsim.Component { return nil },
	}).NewPart
}
