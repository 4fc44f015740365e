package hwlib_test

import (
	"strings"
	"testing"
	"testing/quick"

	hw "github.com/db47h/ledmatrix/hwsim"
	hl "github.com/db47h/ledmatrix/hwlib"
)

func testGate(t *testing.T, name string, gate hw.NewPartFn, result [][]bool) {
	t.Helper()
	part := gate("").PartSpec // build dummy gate just to get to the partspec
	inputs := make([]bool, len(part.Inputs))
	outputs := make([]bool, len(part.Outputs))
	var w []string
	parts := make(hw.Parts, 0, len(part.Inputs)+len(part.Outputs)+1)
	for i, n := range part.Inputs {
		w = append(w, n+"="+n)
		in := &inputs[i]
		parts = append(parts, hl.Input(func() bool { return *in })("out="+n))
	}
	for i, n := range part.Outputs {
		w = append(w, n+"="+n)
		out := &outputs[i]
		parts = append(parts, hl.Output(func(v bool) { *out = v })("in="+n))
	}
	parts = append(parts, gate(strings.Join(w, ", ")))
	c, err := hw.NewCircuit(0, testTPC, parts...)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	tot := 1 << uint(len(part.Inputs))
	for i := 0; i < tot; i++ {
		for bit := range inputs {
			inputs[len(inputs)-bit-1] = (i & (1 << uint(bit))) != 0
		}
		c.TickTock()
		for o, out := range outputs {
			exp := result[o][i]
			if exp != out {
				t.Errorf("%s %v = %v, got %v", part.Name, inputs, exp, out)
			}
		}
	}
}

func Test_gate_builtin(t *testing.T) {
	tr, err := hw.Chip("TRUE", "a", "out",
		hl.And("a=true, b=true, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	fa, err := hw.Chip("FALSE", "a", "out",
		hl.Or("a=false, b=false, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	td := []struct {
		name   string
		gate   hw.NewPartFn
		result [][]bool // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{"NOT", hl.Not, [][]bool{{true, false}}},
		{"AND", hl.And, [][]bool{{false, false, false, true}}},
		{"NAND", hl.Nand, [][]bool{{true, true, true, false}}},
		{"OR", hl.Or, [][]bool{{false, true, true, true}}},
		{"NOR", hl.Nor, [][]bool{{true, false, false, false}}},
		{"XOR", hl.Xor, [][]bool{{false, true, true, false}}},
		{"XNOR", hl.Xnor, [][]bool{{true, false, false, true}}},
		{"TRUE", tr, [][]bool{{true, true}}},
		{"FALSE", fa, [][]bool{{false, false}}},
		{"MUX", hl.Mux, [][]bool{{false, false, false, true, true, false, true, true}}},
		{"DMUX", hl.DMux, [][]bool{{false, false, true, false}, {false, false, false, true}}},
		{"MUX2", hl.MuxN(2), [][]bool{mux2Result(0), mux2Result(1)}},
		{"OR3WAY", hl.OrNWay(3), [][]bool{{false, true, true, true, true, true, true, true}}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			testGate(t, d.name, d.gate, d.result)
		})
	}
}

func TestInputN(t *testing.T) {
	in := int64(0)
	out := int64(0)
	c, err := hw.NewCircuit(0, testTPC,
		hl.InputN(16, func() int64 { return in })("out[0..15]= t[0..15]"),
		hl.OutputN(16, func(n int64) { out = n })("in = t"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	in = 0x80a2
	c.TickTock()
	if out != in {
		t.Fatalf("Expected %x, got %x", in, out)
	}
}

func TestConstN(t *testing.T) {
	var out int64
	c, err := hw.NewCircuit(0, testTPC,
		hl.ConstN(6, 0x2d)("out=k"),
		hl.OutputN(6, func(n int64) { out = n })("in=k"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	c.TickTock()
	if out != 0x2d {
		t.Fatalf("Expected 0x2d, got %#x", out)
	}
}

func TestAndN(t *testing.T) {
	var a, b, out int64
	c, err := hw.NewCircuit(0, testTPC,
		hl.InputN(9, func() int64 { return a })("out=a"),
		hl.InputN(9, func() int64 { return b })("out=b"),
		hl.AndN(9)("a=a, b=b, out=out"),
		hl.OutputN(9, func(v int64) { out = v })("in=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	f := func(x, y uint16) bool {
		a, b = int64(x&0x1ff), int64(y&0x1ff)
		c.TickTock()
		return out == a&b
	}
	if err = quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestPort(t *testing.T) {
	b := newBench(t, hl.Not("in=in, out=out"))
	for _, v := range []bool{true, false, true} {
		b.set("in", v)
		b.cycle()
		if got := b.get("out"); got != !v {
			t.Fatalf("in = %v: expected out = %v, got %v", v, !v, got)
		}
	}
}

// mux2Result computes the expected out[bit] of a 2 bits mux for every input
// combination, a[0] being the most significant input.
//
func mux2Result(bit uint) []bool {
	r := make([]bool, 32)
	for i := range r {
		sel := i&1 != 0
		b := i >> 1 & 3
		a := i >> 3 & 3
		v := a
		if sel {
			v = b
		}
		// v holds x[0] in bit 1 and x[1] in bit 0
		r[i] = v&(2>>bit) != 0
	}
	return r
}
