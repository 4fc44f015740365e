// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"math/bits"
	"strconv"

	"github.com/db47h/ledmatrix/hwsim"
)

// LFSR returns a Fibonacci linear-feedback shift register of the given width.
//
// taps is the mask of the bits XORed together into the feedback bit. On every
// clock edge, the register shifts left by one bit and the feedback bit is
// shifted in at bit 0. While reset is high, the register loads seed instead.
//
//	Inputs: reset
//	Outputs: out[width], next[width]
//	Function: out = state, next = state << 1 | parity(state & taps)
//
func LFSR(width int, taps uint64, seed uint64) hwsim.NewPartFn {
	if width < 1 || width > 64 {
		panic("invalid LFSR width " + strconv.Itoa(width))
	}
	mask := ^uint64(0) >> uint(64-width)
	taps &= mask
	seed &= mask
	next := func(s uint64) uint64 {
		fb := uint64(bits.OnesCount64(s&taps) & 1)
		return (s<<1 | fb) & mask
	}
	return (&hwsim.PartSpec{
		Name:    "LFSR" + strconv.Itoa(width),
		Inputs:  hwsim.Inputs{pReset},
		Outputs: bus(width, pOut, pNext),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			reset := s.Pin(pReset)
			out, nxt := s.Bus(pOut, width), s.Bus(pNext, width)
			state := seed
			return []hwsim.Component{func(c *hwsim.Circuit) {
				if c.AtTick() {
					if c.Get(reset) {
						state = seed
					} else {
						state = next(state)
					}
				}
				SetInt64(c, out, int64(state))
				SetInt64(c, nxt, int64(next(state)))
			}}
		}}).NewPart
}
