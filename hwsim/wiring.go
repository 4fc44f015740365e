// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strings"

	"github.com/pkg/errors"
)

// a link connects a part pin to one or more wires of its host chip.
//
type link struct {
	pin   string
	wires []string
	input bool
}

func busPins(name string, bits int) []string {
	r := make([]string, bits)
	for i := range r {
		r[i] = BusPinName(name, i)
	}
	return r
}

// expand resolves the connections of p against its pinout and returns one link
// per connected pin.
//
func expand(p Part) ([]link, error) {
	var ls []link
	idx := make(map[string]int)
	add := func(pp, cp string) {
		if i, ok := idx[pp]; ok {
			ls[i].wires = append(ls[i].wires, cp)
			return
		}
		idx[pp] = len(ls)
		ls = append(ls, link{pin: pp, wires: []string{cp}, input: contains(p.Inputs, pp)})
	}

	for _, cn := range p.Conns {
		pps, cps := cn.PP, cn.CP
		if len(pps) == 1 && !p.isPin(pps[0]) {
			// bus shorthand: "in=x" stands for "in[0..n]=x[0..n]"
			n := p.busWidth(pps[0])
			if n == 0 {
				return nil, errors.New("invalid pin name " + pps[0] + " for part " + p.Name)
			}
			pps = busPins(pps[0], n)
			if len(cps) == 1 && !isConstant(cps[0]) && !strings.ContainsRune(cps[0], '[') {
				cps = busPins(cps[0], n)
			}
		}
		for _, pp := range pps {
			if !p.isPin(pp) {
				return nil, errors.New("invalid pin name " + pp + " for part " + p.Name)
			}
		}
		switch {
		case len(pps) == len(cps):
			for i := range pps {
				add(pps[i], cps[i])
			}
		case len(cps) == 1:
			// many to one
			for _, pp := range pps {
				add(pp, cps[0])
			}
		case len(pps) == 1:
			// one to many
			for _, cp := range cps {
				add(pps[0], cp)
			}
		default:
			return nil, errors.Errorf("pin count mismatch in pin mapping %s=%s for part %s",
				strings.Join(pps, ","), strings.Join(cps, ","), p.Name)
		}
	}
	return ls, nil
}

func contains(s []string, name string) bool {
	for _, v := range s {
		if v == name {
			return true
		}
	}
	return false
}

func (p *PartSpec) isPin(name string) bool {
	return contains(p.Inputs, name) || contains(p.Outputs, name)
}

func (p *PartSpec) busWidth(name string) int {
	n := 0
	for p.isPin(BusPinName(name, n)) {
		n++
	}
	return n
}

// wiring keeps track of wire drivers within a chip.
//
type wiring struct {
	inputs  map[string]bool
	outputs map[string]bool
	driven  map[string]bool
	alias   map[string]string // wire name -> name of the wire it is shorted to
}

func newWiring(ins, outs []string) *wiring {
	wr := &wiring{
		inputs:  make(map[string]bool, len(ins)),
		outputs: make(map[string]bool, len(outs)),
		driven:  make(map[string]bool),
		alias:   make(map[string]string),
	}
	for _, n := range ins {
		wr.inputs[n] = true
	}
	for _, n := range outs {
		wr.outputs[n] = true
	}
	return wr
}

// drive registers part.pin as the driver of wires. It returns the name of the
// wire the part output should be mounted on, together with the buffers needed
// to drive any additional chip outputs.
//
func (wr *wiring) drive(part, pin string, wires []string) (string, []buffer, error) {
	var w string
	for _, n := range wires {
		prefix := part + "." + pin + ":" + n + ": "
		switch {
		case n == Clk:
			return "", nil, errors.New(prefix + "output pin connected to clock signal")
		case isConstant(n):
			return "", nil, errors.New(prefix + "output pin connected to constant " + n + " input")
		case wr.inputs[n]:
			return "", nil, errors.New(prefix + "chip input pin used as output")
		case wr.driven[n]:
			return "", nil, errors.New(prefix + "output pin already used as output")
		}
		wr.driven[n] = true
		if w == "" && wr.outputs[n] {
			w = n
		}
	}
	if w == "" {
		w = wires[0]
	}
	var bufs []buffer
	for _, n := range wires {
		switch {
		case n == w:
		case wr.outputs[n]:
			bufs = append(bufs, buffer{src: w, dst: n})
		default:
			wr.alias[n] = w
		}
	}
	return w, bufs, nil
}

// read returns the name of the wire a part input connected to n should be
// mounted on.
//
func (wr *wiring) read(n string) (string, error) {
	if a, ok := wr.alias[n]; ok {
		return a, nil
	}
	if isConstant(n) || wr.inputs[n] || wr.outputs[n] || wr.driven[n] {
		return n, nil
	}
	return "", errors.New("pin " + n + " not connected to any output")
}
