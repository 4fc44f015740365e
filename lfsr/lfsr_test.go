package lfsr_test

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/db47h/ledmatrix/lfsr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_pinned(t *testing.T) {
	data := []struct {
		seed   uint16
		cycles uint32
		want   uint16
	}{
		{0xBEEF, 0, 0xBEEF},
		{0xBEEF, 1, 0x7DDE},
		{0xBEEF, 16, 0x6FC4},
		{0xBEEF, 100, 0x0E7D},
		{0xBEEF, 65535, 0xBEEF},
		{0xACE1, 16, 0xE455},
		{0x0001, 1, 0x0002},
		{0xFFFF, 1, 0xFFFE},
		{0x0000, 1000, 0x0000},
	}
	for _, d := range data {
		assert.Equal(t, d.want, lfsr.Advance(d.seed, d.cycles), "Advance(%#04x, %d)", d.seed, d.cycles)
	}
}

func TestAdvance_properties(t *testing.T) {
	zero := func(seed uint16) bool {
		return lfsr.Advance(seed, 0) == seed
	}
	compose := func(seed uint16, n uint8) bool {
		return lfsr.Advance(seed, uint32(n)+1) == lfsr.Advance(lfsr.Advance(seed, uint32(n)), 1)
	}
	split := func(seed uint16, n, m uint8) bool {
		return lfsr.Advance(seed, uint32(n)+uint32(m)) == lfsr.Advance(lfsr.Advance(seed, uint32(n)), uint32(m))
	}
	fixed := func(n uint16) bool {
		return lfsr.Advance(0, uint32(n)) == 0
	}
	nonZero := func(seed uint16, n uint16) bool {
		return seed == 0 || lfsr.Advance(seed, uint32(n)) != 0
	}
	for name, f := range map[string]interface{}{
		"zero": zero, "compose": compose, "split": split, "fixed": fixed, "non_zero": nonZero,
	} {
		require.NoError(t, quick.Check(f, nil), name)
	}
}

func TestStep(t *testing.T) {
	assert.Equal(t, uint16(0), lfsr.Feedback(0))
	assert.Equal(t, uint16(1), lfsr.Feedback(1<<15))
	assert.Equal(t, uint16(0), lfsr.Feedback(1<<15|1<<13))
	assert.Equal(t, uint16(0), lfsr.Feedback(^lfsr.Taps))
	assert.Equal(t, uint16(0x0003), lfsr.Step(0x8001))
	assert.Equal(t, uint16(0xB400), lfsr.Taps)
}

func TestAdvanceInt(t *testing.T) {
	v, err := lfsr.AdvanceInt(0xBEEF, 16)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x6FC4), v)

	for _, d := range [][2]int64{
		{-1, 0},
		{0x10000, 0},
		{1, -1},
		{1, math.MaxUint32 + 1},
	} {
		_, err := lfsr.AdvanceInt(d[0], d[1])
		require.Error(t, err, "AdvanceInt(%d, %d)", d[0], d[1])
		assert.Equal(t, lfsr.ErrInvalidArgument, errors.Cause(err))
	}
}

func TestCycle(t *testing.T) {
	tail, period := lfsr.Cycle(0)
	assert.Equal(t, 0, tail)
	assert.Equal(t, 1, period)

	for _, seed := range []uint16{1, 0xBEEF, 0xACE1, 0xFFFF} {
		tail, period = lfsr.Cycle(seed)
		assert.Equal(t, 0, tail, "seed %#04x", seed)
		assert.Equal(t, lfsr.States-1, period, "seed %#04x", seed)
	}
}

func BenchmarkAdvance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		lfsr.Advance(uint16(i), 16)
	}
}
