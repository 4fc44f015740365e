package hwlib_test

import (
	"testing"
	"testing/quick"

	hl "github.com/db47h/ledmatrix/hwlib"
	"github.com/db47h/ledmatrix/lfsr"
)

func TestDFF(t *testing.T) {
	b := newBench(t, hl.DFF("in=in, out=out"))
	prev := false
	for i := 0; i < 64; i++ {
		v := i%3 == 0 || i%5 == 0
		b.set("in", v)
		// the new value shows up only after the next rising edge
		b.Tock()
		if got := b.get("out"); got != prev {
			t.Fatalf("cycle %d: expected out = %v before the edge, got %v", i, prev, got)
		}
		b.Tick()
		if got := b.get("out"); got != v {
			t.Fatalf("cycle %d: expected out = %v after the edge, got %v", i, v, got)
		}
		prev = v
	}
}

func TestRing(t *testing.T) {
	for _, n := range []int{2, 3, 5} {
		ring, err := hl.Ring(n)
		if err != nil {
			t.Fatal(err)
		}
		b := newBench(t, ring("reset=reset, out=out"))
		b.set("reset", true)
		b.cycle()
		b.cycle()
		if got := b.getN("out", n); got != 1 {
			t.Fatalf("RING%d: expected out = 1 after reset, got %b", n, got)
		}
		b.set("reset", false)
		for i := 1; i <= 3*n; i++ {
			b.cycle()
			if got, exp := b.getN("out", n), int64(1)<<uint(i%n); got != exp {
				t.Fatalf("RING%d: cycle %d: expected out = %b, got %b", n, i, exp, got)
			}
		}
	}
	if _, err := hl.Ring(1); err == nil {
		t.Fatal("expected an error for a ring counter of size 1")
	}
}

func TestLFSR16(t *testing.T) {
	f := func(seed uint16) bool {
		p := hl.LFSR(16, uint64(lfsr.Taps), uint64(seed))("reset=reset, out=out, next=next")
		b := newBench(t, p)
		b.set("reset", true)
		b.cycle()
		if got := b.getN("out", 16); got != int64(seed) {
			t.Logf("seed %#04x: expected out = seed after reset, got %#04x", seed, got)
			return false
		}
		b.set("reset", false)
		for i := uint32(1); i <= 40; i++ {
			b.cycle()
			if got, exp := b.getN("out", 16), int64(lfsr.Advance(seed, i)); got != exp {
				t.Logf("seed %#04x, cycle %d: expected out = %#04x, got %#04x", seed, i, exp, got)
				return false
			}
			if got, exp := b.getN("next", 16), int64(lfsr.Advance(seed, i+1)); got != exp {
				t.Logf("seed %#04x, cycle %d: expected next = %#04x, got %#04x", seed, i, exp, got)
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 20}); err != nil {
		t.Fatal(err)
	}
}

func TestLFSR_width(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected LFSR(0, ...) to panic")
		}
	}()
	hl.LFSR(0, 1, 1)
}

func TestLFSR_maximal4(t *testing.T) {
	// x^4 + x^3 + 1
	p := hl.LFSR(4, 0x0c, 1)("reset=reset, out=out")
	b := newBench(t, p)
	b.set("reset", true)
	b.cycle()
	b.set("reset", false)
	seen := make(map[int64]bool)
	for i := 0; i < 15; i++ {
		v := b.getN("out", 4)
		if seen[v] {
			t.Fatalf("state %#x repeated after %d cycles", v, i)
		}
		seen[v] = true
		b.cycle()
	}
	if got := b.getN("out", 4); got != 1 {
		t.Fatalf("expected a period of 15, got state %#x after 15 cycles", got)
	}
}
