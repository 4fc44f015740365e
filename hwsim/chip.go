// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"github.com/pkg/errors"
)

type chip struct {
	PartSpec             // PartSpec for this chip
	parts    []*PartSpec // sub parts
	// pins maps the pins of each sub part to the wire name they connect to
	// within the chip. Wire names are the chip's own input and output pin
	// names, constants, or internal names.
	pins    []map[string]string
	buffers []buffer
	alias   map[string]string
}

// a buffer copies the state of wire src to the chip output dst.
//
type buffer struct {
	src, dst string
}

func (c *chip) mount(s *Socket) []Component {
	local := newSocket(s.c)
	for _, n := range c.Inputs {
		local.m[n] = s.Pin(n)
	}
	for _, n := range c.Outputs {
		local.m[n] = s.Pin(n)
	}
	return c.mountParts(local)
}

func (c *chip) mountParts(s *Socket) []Component {
	var updaters []Component

	for i, p := range c.parts {
		sub := newSocket(s.c)
		for k, w := range c.pins[i] {
			sub.m[k] = s.PinOrNew(w)
		}
		// unconnected inputs are grounded, unconnected outputs get a
		// dedicated wire.
		for _, k := range p.Inputs {
			if _, ok := c.pins[i][k]; !ok {
				sub.m[k] = cstFalse
			}
		}
		for _, k := range p.Outputs {
			if _, ok := c.pins[i][k]; !ok {
				sub.m[k] = s.c.allocPin()
			}
		}
		updaters = append(updaters, p.Mount(sub)...)
	}
	for _, b := range c.buffers {
		src, dst := s.PinOrNew(b.src), s.Pin(b.dst)
		updaters = append(updaters, func(c *Circuit) { c.Set(dst, c.Get(src)) })
	}
	return updaters
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip.
//
// A Xor gate could be created like this:
//
//	xor, err := hwsim.Chip("XOR", "a, b", "out",
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	)
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips:
//
//	xnor, err := hwsim.Chip("XNOR", "a, b", "out",
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	)
//
// Part inputs that are not connected are tied to False, and so are chip
// outputs that no part drives. A part output can drive any number of wires.
//
func Chip(name string, inputs string, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := ParseIOSpec(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+": inputs")
	}
	outs, err := ParseIOSpec(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+": outputs")
	}
	c, err := newChip(name, ins, outs, parts)
	if err != nil {
		return nil, err
	}
	return c.PartSpec.NewPart, nil
}

func newChip(name string, inputs, outputs []string, parts Parts) (*chip, error) {
	wr := newWiring(inputs, outputs)
	c := &chip{
		PartSpec: PartSpec{
			Name:    name,
			Inputs:  inputs,
			Outputs: outputs,
		},
		parts: make([]*PartSpec, len(parts)),
		pins:  make([]map[string]string, len(parts)),
		alias: wr.alias,
	}
	c.PartSpec.Mount = c.mount

	links := make([][]link, len(parts))
	for i, p := range parts {
		if p.PartSpec == nil {
			return nil, errors.Errorf("%s: part #%d has no spec", name, i)
		}
		ls, err := expand(p)
		if err != nil {
			return nil, err
		}
		c.parts[i] = p.PartSpec
		c.pins[i] = make(map[string]string, len(ls))
		links[i] = ls
	}

	// outputs first so that every wire driver is known when wiring inputs.
	for i, p := range parts {
		for _, l := range links[i] {
			if l.input {
				continue
			}
			w, bufs, err := wr.drive(p.Name, l.pin, l.wires)
			if err != nil {
				return nil, err
			}
			c.pins[i][l.pin] = w
			c.buffers = append(c.buffers, bufs...)
		}
	}
	for i, p := range parts {
		for _, l := range links[i] {
			if !l.input {
				continue
			}
			if len(l.wires) > 1 {
				return nil, errors.Errorf("%s input pin %s connected to more than one wire", p.Name, l.pin)
			}
			w, err := wr.read(l.wires[0])
			if err != nil {
				return nil, err
			}
			c.pins[i][l.pin] = w
		}
	}
	return c, nil
}
