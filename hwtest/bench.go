// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"context"
	"fmt"
	"time"

	"github.com/db47h/ledmatrix/hwlib"
	"github.com/db47h/ledmatrix/hwsim"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Default bench settings.
//
const (
	DefaultStepsPerCycle = 8
	DefaultClockPeriod   = 10 * time.Microsecond

	// MinStepsPerCycle leaves a gate-level path of at least one step between
	// an input change and the sampling of outputs on each half cycle.
	MinStepsPerCycle = 4
)

// A Bench drives a device under test the way an HDL test bench does: inputs
// are changed half a clock cycle before the rising edge and outputs are
// sampled half a cycle after it.
//
// Every input of the device is exposed as an externally driven pin and every
// output as a top level wire of the same name.
//
type Bench struct {
	c      *hwsim.Circuit
	log    *zap.Logger
	inputs map[string]bool
	pins   map[string][]int
	cycles uint64

	spc     uint
	workers int
	period  time.Duration
}

// A BenchOption configures a Bench.
//
type BenchOption func(b *Bench)

// WithLogger sets the logger used by the bench. The default is a no-op logger.
//
func WithLogger(l *zap.Logger) BenchOption {
	return func(b *Bench) { b.log = l }
}

// WithStepsPerCycle sets the number of simulation steps per clock cycle. It
// must be at least MinStepsPerCycle. NewBench fails otherwise.
//
func WithStepsPerCycle(n uint) BenchOption {
	return func(b *Bench) { b.spc = n }
}

// WithWorkers sets the number of simulation workers (see hwsim.NewCircuit).
//
func WithWorkers(n int) BenchOption {
	return func(b *Bench) { b.workers = n }
}

// WithClockPeriod sets the simulated clock period reported by SimTime.
//
func WithClockPeriod(d time.Duration) BenchOption {
	return func(b *Bench) { b.period = d }
}

// NewBench returns a new test bench around dut. The returned bench has gone
// through a first rising edge with all inputs low.
//
// Callers must call Close once done with the bench.
//
func NewBench(dut hwsim.NewPartFn, opts ...BenchOption) (*Bench, error) {
	b := &Bench{
		log:     zap.NewNop(),
		inputs:  make(map[string]bool),
		pins:    make(map[string][]int),
		spc:     DefaultStepsPerCycle,
		workers: 1,
		period:  DefaultClockPeriod,
	}
	for _, o := range opts {
		o(b)
	}
	if b.spc < MinStepsPerCycle {
		return nil, errors.Errorf("bench: %d steps per cycle, need at least %d", b.spc, MinStepsPerCycle)
	}

	spec := dut("").PartSpec
	parts := hwsim.Parts{dut(connString(spec.Inputs, spec.Outputs))}
	if len(spec.Inputs) > 0 {
		parts = append(parts, hwlib.Port(pinList(spec.Inputs))(connString(spec.Inputs, nil)))
	}
	for _, n := range spec.Inputs {
		b.inputs[n] = true
	}
	c, err := hwsim.NewCircuit(b.workers, b.spc, parts...)
	if err != nil {
		return nil, errors.Wrapf(err, "bench for %s", spec.Name)
	}
	b.c = c
	b.log = b.log.With(zap.String("dut", spec.Name))
	b.log.Debug("bench ready",
		zap.Int("inputs", len(spec.Inputs)),
		zap.Int("outputs", len(spec.Outputs)),
		zap.Int("components", c.Size()),
		zap.Uint("steps_per_cycle", c.SPC()))

	// power-on edge
	c.Tick()
	return b, nil
}

// Close stops the simulation.
//
func (b *Bench) Close() {
	b.c.Dispose()
}

// Circuit returns the underlying circuit.
//
func (b *Bench) Circuit() *hwsim.Circuit { return b.c }

// lookup returns the pins of the named pin or bus.
//
func (b *Bench) lookup(name string) ([]int, error) {
	if p, ok := b.pins[name]; ok {
		return p, nil
	}
	var pins []int
	if n, err := b.c.Pin(name); err == nil {
		pins = []int{n}
	} else {
		for i := 0; ; i++ {
			n, err := b.c.Pin(hwsim.BusPinName(name, i))
			if err != nil {
				break
			}
			pins = append(pins, n)
		}
	}
	if len(pins) == 0 {
		return nil, errors.Errorf("no such pin or bus %q", name)
	}
	b.pins[name] = pins
	return pins, nil
}

// Set sets the value of an input pin or bus. Bit 0 of v goes to pin name[0].
// The new value is visible to the device from the next simulation step.
//
func (b *Bench) Set(name string, v int64) error {
	pins, err := b.lookup(name)
	if err != nil {
		return err
	}
	if !b.inputs[name] && !b.inputs[hwsim.BusPinName(name, 0)] {
		return errors.Errorf("%q is not an input", name)
	}
	if v < 0 || (len(pins) < 63 && v>>uint(len(pins)) != 0) {
		return errors.Errorf("value %#x does not fit in %d bits of %q", v, len(pins), name)
	}
	for i, p := range pins {
		b.c.Drive(p, v&(1<<uint(i)) != 0)
	}
	b.log.Debug("set", zap.String("pin", name), zap.Int64("value", v), zap.Uint64("cycle", b.cycles))
	return nil
}

// Get returns the value of a pin or bus.
//
func (b *Bench) Get(name string) (int64, error) {
	pins, err := b.lookup(name)
	if err != nil {
		return 0, err
	}
	return hwlib.Int64(b.c, pins), nil
}

// ClockCycles runs the simulation for n clock cycles. It returns early if ctx
// is done.
//
func (b *Bench) ClockCycles(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "at cycle %d", b.cycles)
		}
		b.c.Tock()
		b.c.Tick()
		b.cycles++
	}
	b.log.Debug("clock", zap.Int("cycles", n), zap.Uint64("total", b.cycles))
	return nil
}

// A MismatchError is returned by Expect when a signal does not have the
// expected value.
//
type MismatchError struct {
	Signal    string
	Want, Got int64
	Cycle     uint64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cycle %d: %s = %#x, expected %#x", e.Cycle, e.Signal, e.Got, e.Want)
}

// Expect checks that the named pin or bus has the value want and returns a
// *MismatchError if it does not.
//
func (b *Bench) Expect(name string, want int64) error {
	got, err := b.Get(name)
	if err != nil {
		return err
	}
	if got != want {
		e := &MismatchError{Signal: name, Want: want, Got: got, Cycle: b.cycles}
		b.log.Error("mismatch", zap.String("pin", name), zap.Int64("want", want), zap.Int64("got", got), zap.Uint64("cycle", b.cycles))
		return e
	}
	return nil
}

// Cycles returns the number of clock cycles run since the power-on edge.
//
func (b *Bench) Cycles() uint64 { return b.cycles }

// SimTime returns the simulated time since the power-on edge.
//
func (b *Bench) SimTime() time.Duration { return time.Duration(b.cycles) * b.period }
