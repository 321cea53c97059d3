// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cdclib

import (
	"strconv"

	"github.com/db47h/socsim"
	"github.com/db47h/socsim/queue"
	"github.com/pkg/errors"
)

// FIFO returns a synchronous first-in first-out buffer clocked in the
// given domain. It is a thin wrapper around queue.Ring.
//
//	Inputs: we, re, din[bits]
//	Outputs: full, empty, dout[bits]
//
// On each tick, a read (re while not empty) is served before a write
// (we while not full), so a simultaneous read and write works on a full
// FIFO. dout is registered: it holds the last value read. Writes while
// full and reads while empty are ignored.
//
// This buffer crosses no domain boundary; use an EventRelay or a
// Sync2-guarded handshake to move data between domains.
//
func FIFO(dom *socsim.Domain, bits, depth int) (socsim.NewPartFn, error) {
	if bits < 1 || bits > 63 {
		return nil, errors.Errorf("unsupported data width %d (must be 1 to 63)", bits)
	}
	if depth < 1 {
		return nil, errors.Errorf("unsupported depth %d (must be at least 1)", depth)
	}

	bs := strconv.Itoa(bits)
	return (&socsim.PartSpec{
		Name:    "FIFO",
		Inputs:  socsim.IO("we, re, din[" + bs + "]"),
		Outputs: socsim.IO("full, empty, dout[" + bs + "]"),
		Mount: func(s *socsim.Socket) []socsim.Component {
			we, re := s.Pin("we"), s.Pin("re")
			din, dout := s.Bus("din", bits), s.Bus("dout", bits)
			full, empty := s.Pin("full"), s.Pin("empty")
			ring := queue.NewRing[int64](depth)
			var rd int64
			return []socsim.Component{
				func(c *socsim.Circuit) {
					switch {
					case dom.InReset():
						ring.Reset()
						rd = 0
					case dom.Rising():
						if c.Get(re) {
							if v, ok := ring.Pop(); ok {
								rd = v
							}
						}
						if c.Get(we) {
							ring.Push(c.GetInt64(din))
						}
					}
					c.Set(full, ring.Full())
					c.Set(empty, ring.Empty())
					c.SetInt64(dout, rd)
				},
			}
		}}).NewPart, nil
}
