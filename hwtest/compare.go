// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits: ComparePart
// checks a part against a reference implementation and Bench drives a device
// under test cycle by cycle.
//
package hwtest

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/db47h/ledmatrix/hwlib"
	"github.com/db47h/ledmatrix/hwsim"
	"github.com/pkg/errors"
)

// connString maps every pin to the wire of the same name.
func connString(pins ...[]string) string {
	var conns []string
	for _, l := range pins {
		for _, n := range l {
			conns = append(conns, n+"="+n)
		}
	}
	return strings.Join(conns, ",")
}

// pinList collapses a list of pin names into a pin specification string:
// "a[0], a[1], b" becomes "a[2],b".
func pinList(pins []string) string {
	width := make(map[string]int)
	var list []string
	for _, n := range pins {
		i := strings.IndexByte(n, '[')
		if i < 0 {
			list = append(list, n)
			continue
		}
		idx, err := strconv.Atoi(n[i+1 : len(n)-1])
		if err != nil {
			panic(err)
		}
		name := n[:i]
		if _, ok := width[name]; !ok {
			list = append(list, name)
		}
		if idx+1 > width[name] {
			width[name] = idx + 1
		}
	}
	for i, n := range list {
		if w, ok := width[n]; ok {
			list[i] = n + "[" + strconv.Itoa(w) + "]"
		}
	}
	return strings.Join(list, ",")
}

func samePinout(p1, p2 hwsim.Part) error {
	same := func(what string, a, b []string) error {
		if len(a) != len(b) {
			return errors.Errorf("%s count mismatch: %s has %d, %s has %d", what, p1.Name, len(a), p2.Name, len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				return errors.Errorf("%s %d mismatch: %s has %q, %s has %q", what, i, p1.Name, a[i], p2.Name, b[i])
			}
		}
		return nil
	}
	if err := same("input", p1.Inputs, p2.Inputs); err != nil {
		return err
	}
	return same("output", p1.Outputs, p2.Outputs)
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface.
//
// The parts are checked with all inputs low, all inputs high, then with up to
// 4096 random input vectors. Inputs change at the falling edge of the clock and
// outputs are compared at the next one, so tpc must leave enough steps for the
// deepest combinational path of both parts to settle within half a cycle.
//
func ComparePart(t *testing.T, tpc uint, part1 hwsim.NewPartFn, part2 hwsim.NewPartFn) {
	t.Helper()

	p1, p2 := part1(""), part2("")
	if err := samePinout(p1, p2); err != nil {
		t.Fatal(err)
	}
	ins, outs := p1.Inputs, p1.Outputs

	// each part reports its outputs in its own column
	got := make([][2]bool, len(outs))
	probe := func(name string, part hwsim.NewPartFn, col int) hwsim.NewPartFn {
		parts := hwsim.Parts{part(connString(ins, outs))}
		for i, o := range outs {
			i := i
			parts = append(parts, hwlib.Output(func(v bool) { got[i][col] = v })("in="+o))
		}
		w, err := hwsim.Chip(name, pinList(ins), "", parts...)
		if err != nil {
			t.Fatal(err)
		}
		return w
	}
	w1, w2 := probe("wrapper1", part1, 0), probe("wrapper2", part2, 1)

	var parts hwsim.Parts
	if len(ins) > 0 {
		parts = append(parts, hwlib.Port(pinList(ins))(connString(ins)))
	}
	parts = append(parts, w1(connString(ins)), w2(connString(ins)))
	c, err := hwsim.NewCircuit(0, tpc, parts...)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	pins := make([]int, len(ins))
	for i, n := range ins {
		if pins[i], err = c.Pin(n); err != nil {
			t.Fatal(err)
		}
	}
	vec := make([]bool, len(ins))
	check := func() {
		for i, n := range pins {
			c.Drive(n, vec[i])
		}
		c.Tock()
		c.Tick()
		for o, v := range got {
			if v[0] != v[1] {
				var b strings.Builder
				for i, n := range ins {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(n + "=" + strconv.FormatBool(vec[i]))
				}
				t.Fatalf("\nExpected %s => %s=%v\nGot %v", b.String(), outs[o], v[0], v[1])
			}
		}
	}

	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))
	iter := 1 << uint(min(len(ins), 12))
	start := time.Now()

	c.Tick()
	check()
	for i := range vec {
		vec[i] = true
	}
	check()
	for ; iter > 0; iter-- {
		for i := range vec {
			vec[i] = rnd.Intn(2) == 1
		}
		check()
	}

	elapsed := time.Since(start)
	cycles := c.Steps() / c.SPC()
	t.Logf("seed %d. %d components. %d steps in %v. %d clock cycles => %.2f Hz", seed, c.Size(), c.Steps(), elapsed, cycles, float64(cycles)/elapsed.Seconds())
}
