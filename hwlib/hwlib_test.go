package hwlib_test

import (
	"strings"
	"testing"

	hw "github.com/db47h/ledmatrix/hwsim"
	hl "github.com/db47h/ledmatrix/hwlib"
)

const testTPC = 8

// bench wraps a circuit where every input of a part is driven through a Port
// and every output is reachable by name.
//
type bench struct {
	*hw.Circuit
	t *testing.T
}

func newBench(t *testing.T, p hw.Part) *bench {
	t.Helper()
	var conns []string
	for _, n := range p.Inputs {
		conns = append(conns, n+"="+n)
	}
	parts := hw.Parts{p}
	if len(p.Inputs) > 0 {
		parts = append(parts, hl.Port(strings.Join(p.Inputs, ","))(strings.Join(conns, ",")))
	}
	c, err := hw.NewCircuit(1, testTPC, parts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(c.Dispose)
	b := &bench{c, t}
	// power-on edge
	c.Tick()
	return b
}

func (b *bench) pin(name string) int {
	b.t.Helper()
	n, err := b.Pin(name)
	if err != nil {
		b.t.Fatal(err)
	}
	return n
}

func (b *bench) bus(name string, bits int) []int {
	b.t.Helper()
	pins := make([]int, bits)
	for i := range pins {
		pins[i] = b.pin(hw.BusPinName(name, i))
	}
	return pins
}

func (b *bench) set(name string, v bool) {
	b.t.Helper()
	b.Drive(b.pin(name), v)
}

func (b *bench) get(name string) bool {
	b.t.Helper()
	return b.Get(b.pin(name))
}

func (b *bench) getN(name string, bits int) int64 {
	b.t.Helper()
	return hl.Int64(b.Circuit, b.bus(name, bits))
}

// cycle runs a full clock cycle: inputs are expected to have been set at the
// falling edge, outputs are sampled at the next falling edge.
//
func (b *bench) cycle() {
	b.Tock()
	b.Tick()
}
