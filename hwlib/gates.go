// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ledmatrix/hwsim"
)

// Logic is the truth function of a two input gate.
//
type Logic func(a, b bool) bool

// Truth functions of the built-in gates.
//
var (
	AndLogic  Logic = func(a, b bool) bool { return a && b }
	NandLogic Logic = func(a, b bool) bool { return !(a && b) }
	OrLogic   Logic = func(a, b bool) bool { return a || b }
	NorLogic  Logic = func(a, b bool) bool { return !(a || b) }
	XorLogic  Logic = func(a, b bool) bool { return a != b }
	XnorLogic Logic = func(a, b bool) bool { return a == b }
)

// binary returns a gate with inputs a, b and output out.
func binary(name string, f Logic) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    name,
		Inputs:  hwsim.Inputs{pA, pB},
		Outputs: hwsim.Outputs{pOut},
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
			return []hwsim.Component{
				func(c *hwsim.Circuit) { c.Set(out, f(c.Get(a), c.Get(b))) },
			}
		},
	}).NewPart
}

var (
	and  = binary("AND", AndLogic)
	nand = binary("NAND", NandLogic)
	or   = binary("OR", OrLogic)
	nor  = binary("NOR", NorLogic)
	xor  = binary("XOR", XorLogic)
	xnor = binary("XNOR", XnorLogic)

	not = (&hwsim.PartSpec{
		Name:    "NOT",
		Inputs:  hwsim.Inputs{pIn},
		Outputs: hwsim.Outputs{pOut},
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			in, out := s.Pin(pIn), s.Pin(pOut)
			return []hwsim.Component{
				func(c *hwsim.Circuit) { c.Set(out, !c.Get(in)) },
			}
		},
	}).NewPart
)

// Not returns a NOT gate (in; out = !in).
//
func Not(w string) hwsim.Part { return not(w) }

// And returns an AND gate (a, b; out).
//
func And(w string) hwsim.Part { return and(w) }

// Nand returns a NAND gate (a, b; out).
//
func Nand(w string) hwsim.Part { return nand(w) }

// Or returns an OR gate (a, b; out).
//
func Or(w string) hwsim.Part { return or(w) }

// Nor returns a NOR gate (a, b; out).
//
func Nor(w string) hwsim.Part { return nor(w) }

// Xor returns a XOR gate (a, b; out).
//
func Xor(w string) hwsim.Part { return xor(w) }

// Xnor returns a XNOR gate (a, b; out).
//
func Xnor(w string) hwsim.Part { return xnor(w) }

// GateN returns a bitwise gate over two buses. The part is named name
// followed by the bus width.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out[i] = f(a[i], b[i])
//
func GateN(name string, bits int, f Logic) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    name + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: bus(bits, pOut),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			a, b, out := s.Bus(pA, bits), s.Bus(pB, bits), s.Bus(pOut, bits)
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					for i, o := range out {
						c.Set(o, f(c.Get(a[i]), c.Get(b[i])))
					}
				},
			}
		}}).NewPart
}

// AndN returns a bitwise AND over two buses of the given width.
//
func AndN(bits int) hwsim.NewPartFn { return GateN("AND", bits, AndLogic) }

// OrNWay returns an OR gate with the given number of inputs.
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = in[0] || in[1] || ... || in[ways-1]
//
func OrNWay(ways int) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    "OR" + strconv.Itoa(ways) + "Way",
		Inputs:  bus(ways, pIn),
		Outputs: hwsim.Outputs{pOut},
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			in, out := s.Bus(pIn, ways), s.Pin(pOut)
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					v := false
					for _, n := range in {
						v = v || c.Get(n)
					}
					c.Set(out, v)
				}}
		}}).NewPart
}
