// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for hwsim.
//
// Clocked parts in this package update their state on the rising edge of the
// clock (Circuit.AtTick) from the input values settled during the previous cycle.
// Resets are synchronous and active high.
//
package hwlib

import (
	"github.com/db47h/ledmatrix/hwsim"
)

// common pin names
const (
	pA     = "a"
	pB     = "b"
	pIn    = "in"
	pSel   = "sel"
	pOut   = "out"
	pNext  = "next"
	pReset = "reset"
)

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, 0, len(names)*bits)
	for _, n := range names {
		for j := 0; j < bits; j++ {
			b = append(b, hwsim.BusPinName(n, j))
		}
	}
	return b
}
