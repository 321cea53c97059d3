// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cdclib

import (
	"strconv"

	"github.com/db47h/socsim"
	"github.com/rs/zerolog"
)

// Input creates a function based input.
//
//	Outputs: out
//	Function: out = f()
//
func Input(f func() bool) socsim.NewPartFn {
	p := &socsim.PartSpec{
		Name:    "Input",
		Inputs:  nil,
		Outputs: []string{pOut},
		Mount: func(s *socsim.Socket) []socsim.Component {
			pin := s.Pin(pOut)
			return []socsim.Component{
				func(c *socsim.Circuit) { c.Set(pin, f()) },
			}
		},
	}
	return p.NewPart
}

// Output creates an output or probe. The fn function is called with the
// named pin state on every circuit update.
//
//	Inputs: in
//	Function: f(in)
//
func Output(f func(value bool)) socsim.NewPartFn {
	p := &socsim.PartSpec{
		Name:    "Output",
		Inputs:  []string{pIn},
		Outputs: nil,
		Mount: func(s *socsim.Socket) []socsim.Component {
			pin := s.Pin(pIn)
			return []socsim.Component{
				func(c *socsim.Circuit) { f(c.Get(pin)) },
			}
		},
	}
	return p.NewPart
}

// InputN creates an input bus of the given bits size.
//
//	Outputs: out[bits]
//	Function: out = f()
//
func InputN(bits int, f func() int64) socsim.NewPartFn {
	bs := strconv.Itoa(bits)
	return (&socsim.PartSpec{
		Name:    "Input" + bs,
		Inputs:  nil,
		Outputs: socsim.IO("out[" + bs + "]"),
		Mount: func(s *socsim.Socket) []socsim.Component {
			pins := s.Bus(pOut, bits)
			return []socsim.Component{
				func(c *socsim.Circuit) { c.SetInt64(pins, f()) },
			}
		}}).NewPart
}

// OutputN creates an output bus of the given bits size.
//
//	Inputs: in[bits]
//	Function: f(in)
//
func OutputN(bits int, f func(int64)) socsim.NewPartFn {
	bs := strconv.Itoa(bits)
	return (&socsim.PartSpec{
		Name:    "Output" + bs,
		Inputs:  socsim.IO("in[" + bs + "]"),
		Outputs: nil,
		Mount: func(s *socsim.Socket) []socsim.Component {
			pins := s.Bus(pIn, bits)
			return []socsim.Component{
				func(c *socsim.Circuit) { f(c.GetInt64(pins)) },
			}
		}}).NewPart
}

// Probe creates a signal probe that logs every transition of its input
// pin, along with the global step counter, at debug level.
//
//	Inputs: in
//
func Probe(log zerolog.Logger, name string) socsim.NewPartFn {
	p := &socsim.PartSpec{
		Name:   "Probe",
		Inputs: []string{pIn},
		Mount: func(s *socsim.Socket) []socsim.Component {
			pin := s.Pin(pIn)
			var prev, seen bool
			return []socsim.Component{
				func(c *socsim.Circuit) {
					v := c.Get(pin)
					if !seen || v != prev {
						log.Debug().Str("signal", name).Bool("value", v).
							Uint64("step", c.Steps()).Msg("transition")
						seen, prev = true, v
					}
				},
			}
		},
	}
	return p.NewPart
}
