package hwsim_test

import (
	"math/rand"
	"testing"

	hw "github.com/db47h/ledmatrix/hwsim"
	hl "github.com/db47h/ledmatrix/hwlib"
)

func TestDFF(t *testing.T) {
	var (
		in, out int64
	)

	dff4, err := hw.Chip("DFF4", "in[4]", "out[4]",
		hl.DFF("in=in[0], out=out[0]"),
		hl.DFF("in=in[1], out=out[1]"),
		hl.DFF("in=in[2], out=out[2]"),
		hl.DFF("in=in[3], out=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}

	c, err := hw.NewCircuit(0, 4,
		hl.InputN(4, func() int64 { return in })("out[0..3]=in[0..3]"),
		dff4("in=in, out=out"),
		hl.OutputN(4, func(o int64) { out = o })("in[0..3]=out[0..3]"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	var prev int64
	for i := int64(15); i >= 0; i-- {
		// Inputs are delayed by one step, so the DFFs do not see the new
		// value when it changes right at the beginning of a clock cycle.
		in = i

		c.TickTock()

		if prev != out {
			t.Fatalf("bad output for input %d: expected out = %d, got %d", prev, prev, out)
		}

		// here's the value that we should see at the end of the next cycle
		prev = i
	}
}

func Test_bit_register(t *testing.T) {
	reg, err := hw.Chip("BitReg", "in, load", "out",
		hl.Mux("a=out, b=in, sel=load, out=muxOut"),
		hl.DFF("in=muxOut, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}

	var in, load, out bool

	c, err := hw.NewCircuit(0, 4,
		hl.Input(func() bool { return in })("out=dffI"),
		hl.Input(func() bool { return load })("out=dffLD"),
		reg("in=dffI, load=dffLD, out=dffO"),
		hl.Output(func(b bool) { out = b })("in=dffO"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	rnd := rand.New(rand.NewSource(42))

	p := in
	for i := 0; i < 1000; i++ {
		in = rnd.Int63()&(1<<62) != 0
		load = rnd.Int63()&(1<<62) != 0
		c.TickTock()
		if p != out {
			t.Fatalf("cycle %d: expected out = %v, got %v", i, p, out)
		}
		if load {
			p = in
		}
	}
}
