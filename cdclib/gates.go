// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cdclib provides a library of reusable parts for socsim:
// basic gates, domain-clocked flip-flops, clock-domain-crossing
// synchronizers, a cross-domain event relay, a frequency meter and a
// synchronous FIFO.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package cdclib

import (
	"github.com/db47h/socsim"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

var notGate = socsim.PartSpec{Name: "NOT", Inputs: []string{pIn}, Outputs: []string{pOut},
	Mount: func(s *socsim.Socket) []socsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []socsim.Component{
			func(c *socsim.Circuit) { c.Set(out, !c.Get(in)) },
		}
	},
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) socsim.Part {
	return notGate.NewPart(w)
}

// other gates
type gate func(a, b bool) bool

func (g gate) mount(s *socsim.Socket) []socsim.Component {
	a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
	return []socsim.Component{
		func(c *socsim.Circuit) { c.Set(out, g(c.Get(a), c.Get(b))) },
	}
}

func newGate(name string, fn gate) *socsim.PartSpec {
	return &socsim.PartSpec{
		Name:    name,
		Inputs:  []string{pA, pB},
		Outputs: []string{pOut},
		Mount:   fn.mount,
	}
}

var (
	andGate  = newGate("AND", func(a, b bool) bool { return a && b })
	nandGate = newGate("NAND", func(a, b bool) bool { return !(a && b) })
	orGate   = newGate("OR", func(a, b bool) bool { return a || b })
	norGate  = newGate("NOR", func(a, b bool) bool { return !(a || b) })
	xorGate  = newGate("XOR", func(a, b bool) bool { return a && !b || !a && b })
)

// And returns an AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And(w string) socsim.Part { return andGate.NewPart(w) }

// Nand returns a NAND gate.
//
func Nand(w string) socsim.Part { return nandGate.NewPart(w) }

// Or returns an OR gate.
//
func Or(w string) socsim.Part { return orGate.NewPart(w) }

// Nor returns a NOR gate.
//
func Nor(w string) socsim.Part { return norGate.NewPart(w) }

// Xor returns a XOR gate.
//
func Xor(w string) socsim.Part { return xorGate.NewPart(w) }

var muxGate = socsim.PartSpec{Name: "MUX", Inputs: []string{pA, pB, pSel}, Outputs: []string{pOut},
	Mount: func(s *socsim.Socket) []socsim.Component {
		a, b, sel, out := s.Pin(pA), s.Pin(pB), s.Pin(pSel), s.Pin(pOut)
		return []socsim.Component{
			func(c *socsim.Circuit) {
				if c.Get(sel) {
					c.Set(out, c.Get(b))
				} else {
					c.Set(out, c.Get(a))
				}
			},
		}
	},
}

// Mux returns a 2-way multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: out = sel ? b : a
//
func Mux(w string) socsim.Part { return muxGate.NewPart(w) }
