// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"

	"github.com/db47h/ledmatrix/internal/hdl"
	"github.com/pkg/errors"
)

// BusPinName returns the pin name for the n-th bit of the named bus.
//
func BusPinName(bus string, bit int) string {
	return bus + "[" + strconv.Itoa(bit) + "]"
}

// ParseIOSpec parses an input or output pin specification string and returns a
// slice of individual pin names suitable for use as the Input or Output field
// of a PartSpec.
//
// The input format is:
//
//	InputDecl  = PinDecl { "," PinDecl } .
//	PinDecl    = PinIdentifier [ BusWidth ] .
//	PinIdentifier = letter { letter | digit } .
//	BusWidth   = "[" decimal_digit { decimal_digit } "]" .
//
// Buses are expanded to individual pin names:
//
//	ParseIOSpec("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func ParseIOSpec(names string) ([]string, error) {
	spec, err := hdl.ParseIOSpec(names)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range spec.List {
		if p.Index == nil {
			out = append(out, p.Name)
			continue
		}
		if p.Index.End != nil {
			return nil, errors.Errorf("in %q at pos %d: bus range in pin specification", names, p.Pos.Offset+1)
		}
		if p.Index.Start == 0 {
			return nil, errors.Errorf("in %q at pos %d: zero width bus %s", names, p.Pos.Offset+1, p.Name)
		}
		for i := 0; i < p.Index.Start; i++ {
			out = append(out, BusPinName(p.Name, i))
		}
	}
	return out, nil
}

// IO is a wrapper around ParseIOSpec that panics if an error is returned.
//
func IO(spec string) []string {
	pins, err := ParseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// A Connection represents a connection between the pin PP of a part and
// the pins CP in its host chip.
//
// Bare names are kept as is: a PP that names a bus of the part, like "in" for
// the pins "in[0]" to "in[n]", is expanded by Chip once the part's pinout is
// known.
//
type Connection struct {
	PP []string
	CP []string
}

// ParseConnections parses a connection configuration like "partPinX=chipPinY, ..."
// into a []Connection.
//
// Input format:
//
//	Conns = Conn { "," Conn } .
//	Conn  = Pin "=" Pin .
//	Pin   = identifier [ "[" Index | Range "]" ] .
//	Index = integer .
//	Range = integer ".." integer .
//
func ParseConnections(c string) ([]Connection, error) {
	conns, err := hdl.ParseConnections(c)
	if err != nil {
		return nil, err
	}
	out := make([]Connection, 0, len(conns.List))
	for _, a := range conns.List {
		pp, err := expandPin(c, a.Part)
		if err != nil {
			return nil, err
		}
		cp, err := expandPin(c, a.Chip)
		if err != nil {
			return nil, err
		}
		out = append(out, Connection{PP: pp, CP: cp})
	}
	return out, nil
}

func expandPin(in string, p *hdl.Pin) ([]string, error) {
	if p.Index == nil {
		return []string{p.Name}, nil
	}
	start := p.Index.Start
	if p.Index.End == nil {
		return []string{BusPinName(p.Name, start)}, nil
	}
	end := *p.Index.End
	if end < start {
		return nil, errors.Errorf("in %q at pos %d: invalid range %d..%d", in, p.Pos.Offset+1, start, end)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(p.Name, i))
	}
	return r, nil
}
