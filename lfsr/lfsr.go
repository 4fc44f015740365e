// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lfsr predicts the state of the 16 bits Fibonacci LFSR used by the
// LED matrix to pick its start pattern.
//
// The register shifts left on every clock edge. The new bit 0 is the XOR of
// bits 15, 13, 12 and 10 of the previous state. This tap set gives a maximal
// length sequence: any non-zero seed goes through all 65535 non-zero states
// before coming back. The zero state is a fixed point.
//
// All functions are pure and safe for concurrent use.
//
package lfsr

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"
)

// Taps is the feedback tap mask: bits 15, 13, 12 and 10.
//
const Taps uint16 = 1<<15 | 1<<13 | 1<<12 | 1<<10

// States is the number of distinct register states.
//
const States = 1 << 16

// ErrInvalidArgument is returned by AdvanceInt for seeds or cycle counts that
// do not fit the register or cycle counter.
//
var ErrInvalidArgument = errors.New("invalid argument")

// Feedback returns the feedback bit for the given state.
//
func Feedback(state uint16) uint16 {
	return uint16(bits.OnesCount16(state&Taps) & 1)
}

// Step returns the state of the register after one clock edge.
//
func Step(state uint16) uint16 {
	return state<<1 | Feedback(state)
}

// Advance returns the state of the register after the given number of clock
// edges, starting from seed. Advance(seed, 0) returns seed.
//
func Advance(seed uint16, cycles uint32) uint16 {
	s := seed
	for ; cycles > 0; cycles-- {
		s = Step(s)
	}
	return s
}

// AdvanceInt is like Advance but takes host integers. It returns an error
// wrapping ErrInvalidArgument if seed does not fit in 16 bits or if cycles is
// negative or larger than math.MaxUint32.
//
func AdvanceInt(seed, cycles int64) (uint16, error) {
	if seed < 0 || seed > math.MaxUint16 {
		return 0, errors.Wrapf(ErrInvalidArgument, "seed %d out of range [0, %d]", seed, math.MaxUint16)
	}
	if cycles < 0 || cycles > math.MaxUint32 {
		return 0, errors.Wrapf(ErrInvalidArgument, "cycle count %d out of range [0, %d]", cycles, uint32(math.MaxUint32))
	}
	return Advance(uint16(seed), uint32(cycles)), nil
}

// Cycle walks the sequence of states starting at seed until a state repeats.
// tail is the number of steps taken before entering the cycle and period is the
// length of the cycle.
//
func Cycle(seed uint16) (tail, period int) {
	var seen [States]int32 // step index + 1 at which each state was seen
	s := seed
	for n := int32(1); ; n++ {
		if i := seen[s]; i != 0 {
			return int(i - 1), int(n - i)
		}
		seen[s] = n
		s = Step(s)
	}
}
