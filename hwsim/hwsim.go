// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"math/bits"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// A Component is the update function of a part. It reads input pins with
// Circuit.Get and writes output pins with Circuit.Set once per simulation step.
//
type Component func(c *Circuit)

// A MountFn mounts a part into socket s. It looks up the pin numbers assigned
// by the host chip and returns components closing over them.
//
// A NOT gate mounts like this:
//
//	func(s *Socket) []Component {
//		in, out := s.Pin("in"), s.Pin("out")
//		return []Component{
//			func(c *Circuit) { c.Set(out, !c.Get(in)) },
//		}
//	}
//
type MountFn func(s *Socket) []Component

// Inputs is a list of input pin names.
//
type Inputs []string

// In parses an input pin specification string and panics on error.
// See ParseIOSpec.
//
func In(spec string) Inputs { return IO(spec) }

// Outputs is a list of output pin names.
//
type Outputs []string

// Out parses an output pin specification string and panics on error.
// See ParseIOSpec.
//
func Out(spec string) Outputs { return IO(spec) }

// A PartSpec is the blueprint of a part: its name, its pinout and how to mount
// it in a circuit. Input and output pin names must be distinct.
//
// Use NewPart, or its method value as a NewPartFn, to place the part in a chip:
//
//	var not = (&hwsim.PartSpec{
//		Name:    "NOT",
//		Inputs:  hwsim.In("in"),
//		Outputs: hwsim.Out("out"),
//		Mount:   mountNot,
//	}).NewPart
//
//	inv, _ := hwsim.Chip("INV2", "a, b", "x, y",
//		not("in=a, out=x"),
//		not("in=b, out=y"),
//	)
//
type PartSpec struct {
	Name    string
	Inputs  []string
	Outputs []string
	Mount   MountFn
}

// NewPart returns a Part placing p with the given connections.
// It panics if the connection string cannot be parsed.
//
func (p *PartSpec) NewPart(connections string) Part {
	conns, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	return Part{p, conns}
}

// A NewPartFn returns a new Part given a connection string. See
// ParseConnections for the syntax.
//
type NewPartFn func(c string) Part

// A Part is a PartSpec together with its connections within a host chip.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a list of parts.
//
type Parts []Part

// Circuit is a runnable circuit simulation.
//
// Wire states are kept in two frames. Components read the current frame and
// write the next one; frames are swapped at the end of each step. A built-in
// gate therefore takes exactly one step to propagate its inputs.
//
type Circuit struct {
	cur   []bool
	next  []bool
	cs    []Component
	wires int
	spc   uint
	steps uint

	top   *chip
	names map[string]int

	pool pool
}

// NewCircuit builds a new circuit from the given parts.
//
// workers is the number of goroutines updating components each step. If less
// or equal to 0, GOMAXPROCS is used.
//
// stepsPerCycle is the number of simulation steps per period of the Clk signal.
// It is rounded up to a power of two, 2 at least. It must leave enough steps
// for the deepest combinational path between clocked parts to settle within
// half a cycle.
//
// Dispose must be called once the circuit is no longer needed in order to stop
// worker goroutines.
//
func NewCircuit(workers int, stepsPerCycle uint, parts ...Part) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}

	c := &Circuit{wires: cstCount, spc: ceilPow2(stepsPerCycle)}
	wrap, err := newChip("CIRCUIT", nil, nil, parts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chip wrapper")
	}
	root := newSocket(c)
	c.cs = append(wrap.mountParts(root), updClock)
	c.top = wrap
	c.names = root.m
	c.cur = make([]bool, c.wires)
	c.next = make([]bool, c.wires)
	c.cur[cstClk] = true
	c.cur[cstTrue] = true
	c.next[cstTrue] = true

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	c.pool.start(c, c.cs, workers)
	return c, nil
}

func ceilPow2(n uint) uint {
	if n <= 2 {
		return 2
	}
	return 1 << uint(bits.Len(n-1))
}

// updClock drives Clk high on the first step of each cycle and low from the
// middle of the cycle.
func updClock(c *Circuit) {
	if c.cur[cstFalse] || !c.cur[cstTrue] {
		panic("true or false constants have been overwritten")
	}
	switch step := c.steps + 1; {
	case step&(c.spc-1) == 0:
		c.next[cstClk] = true
	case step&(c.spc/2-1) == 0:
		c.next[cstClk] = false
	default:
		c.next[cstClk] = c.cur[cstClk]
	}
}

// Dispose stops the worker goroutines of the circuit.
//
func (c *Circuit) Dispose() {
	c.pool.stop()
}

// pool runs the components of a circuit on a fixed set of goroutines, each
// one owning a contiguous slice of components.
type pool struct {
	run []chan struct{}
	wg  sync.WaitGroup
}

func (p *pool) start(c *Circuit, cs []Component, workers int) {
	size := (len(cs) + workers - 1) / workers
	for len(cs) > 0 {
		n := min(size, len(cs))
		ch := make(chan struct{}, 1)
		p.run = append(p.run, ch)
		go p.worker(c, cs[:n], ch)
		cs = cs[n:]
	}
}

func (p *pool) worker(c *Circuit, cs []Component, run <-chan struct{}) {
	for range run {
		for _, f := range cs {
			f(c)
		}
		p.wg.Done()
	}
	p.wg.Done()
}

func (p *pool) step() {
	p.wg.Add(len(p.run))
	for _, ch := range p.run {
		ch <- struct{}{}
	}
	p.wg.Wait()
}

func (p *pool) stop() {
	p.wg.Add(len(p.run))
	for _, ch := range p.run {
		close(ch)
	}
	p.wg.Wait()
	p.run = nil
}

func (c *Circuit) allocPin() int {
	n := c.wires
	c.wires++
	return n
}

// Pin returns the pin number of the named top-level wire, that is a wire
// connected to one of the parts passed to NewCircuit.
//
func (c *Circuit) Pin(name string) (int, error) {
	if a, ok := c.top.alias[name]; ok {
		name = a
	}
	n, ok := c.names[name]
	if !ok {
		return 0, errors.Errorf("no such wire %q", name)
	}
	return n, nil
}

// Steps returns the number of steps run so far.
//
func (c *Circuit) Steps() uint { return c.steps }

// SPC returns the number of steps per clock cycle.
//
func (c *Circuit) SPC() uint { return c.spc }

// AtTick returns true on the first step of a clock cycle (rising edge of Clk).
//
func (c *Circuit) AtTick() bool {
	return c.steps&(c.spc-1) == 0
}

// AtTock returns true on the first step of the second half of a clock cycle
// (falling edge of Clk).
//
func (c *Circuit) AtTock() bool {
	return (c.steps+c.spc/2)&(c.spc-1) == 0
}

// Get returns the state of pin n in the current frame.
//
func (c *Circuit) Get(n int) bool { return c.cur[n] }

// Set sets the state of pin n in the next frame.
//
func (c *Circuit) Set(n int, s bool) { c.next[n] = s }

// Toggle sets pin n in the next frame to the opposite of its current state.
//
func (c *Circuit) Toggle(n int) { c.next[n] = !c.cur[n] }

// Drive sets the state of an externally driven pin in both state frames so that
// the new value is visible from the next step on. It must only be called
// between steps, and only on pins that no component sets (see hwlib.Port).
//
func (c *Circuit) Drive(n int, s bool) {
	if n < cstCount {
		panic("cannot drive constant pins")
	}
	c.cur[n] = s
	c.next[n] = s
}

// Step advances the simulation by one step.
//
func (c *Circuit) Step() {
	c.pool.step()
	c.steps++
	c.cur, c.next = c.next, c.cur
}

// Tick runs the simulation until Clk goes low.
//
func (c *Circuit) Tick() {
	for c.Get(cstClk) {
		c.Step()
	}
}

// Tock runs the simulation until Clk goes high, that is the beginning of the
// next clock cycle. Clocked parts sample their inputs on the following step.
//
func (c *Circuit) Tock() {
	for !c.Get(cstClk) {
		c.Step()
	}
}

// TickTock runs the simulation for a whole clock cycle.
//
func (c *Circuit) TickTock() {
	c.Tick()
	c.Tock()
}

// Size returns the component count in the circuit.
//
func (c *Circuit) Size() int { return len(c.cs) }
