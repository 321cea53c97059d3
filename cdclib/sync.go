// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cdclib

import (
	"github.com/db47h/socsim"
)

// Sync2 returns a two-stage synchronizer that moves a single-bit level
// into the dst clock domain.
//
//	Inputs: in
//	Outputs: out, rise, fall
//
// out follows in with a fixed latency of two dst ticks: after any
// transition of in, and two dst ticks of stability, out equals the
// stable value. rise and fall are one-dst-tick wide pulses extracted
// from the corresponding edges of out.
//
// Sync2 is only safe for single-bit levels. Multi-bit values must cross
// domains through a FIFO or a register guarded by an EventRelay
// handshake, never through per-bit synchronizers.
//
// The dst domain's reset clears all stages.
//
func Sync2(dst *socsim.Domain) socsim.NewPartFn {
	return (&socsim.PartSpec{
		Name:    "Sync2",
		Inputs:  []string{pIn},
		Outputs: []string{pOut, "rise", "fall"},
		Mount: func(s *socsim.Socket) []socsim.Component {
			in, out := s.Pin(pIn), s.Pin(pOut)
			rise, fall := s.Pin("rise"), s.Pin("fall")
			// q1 and q2 are the synchronizer stages, q3 the edge
			// detection register.
			var q1, q2, q3 bool
			return []socsim.Component{
				func(c *socsim.Circuit) {
					switch {
					case dst.InReset():
						q1, q2, q3 = false, false, false
					case dst.Rising():
						q3, q2, q1 = q2, q1, c.Get(in)
					}
					c.Set(out, q2)
					c.Set(rise, q2 && !q3)
					c.Set(fall, !q2 && q3)
				},
			}
		}}).NewPart
}
