// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cdclib

import (
	"github.com/db47h/socsim"
)

// relay control states, clocked in the input domain.
const (
	relayReady = iota
	relayWaitAck
	relayWaitClear
)

// EventRelay returns a part that delivers each event occurring in domain
// in as exactly one corresponding event in domain out, with zero loss
// and zero duplication, for any ratio of the two domains' clock periods.
//
//	Inputs: event_in (in domain)
//	Outputs: ready (in domain), event_out (out domain)
//
// An event is registered by asserting event_in for exactly one in-domain
// tick while ready is true. ready drops for the duration of the
// round-trip handshake and reasserts once a new event may be accepted.
// event_out is one out-domain tick wide; its latency depends on the
// relative phase of the two clocks and is not fixed.
//
// Asserting event_in while ready is false violates the handshake
// contract: the event is dropped without signaling. Honoring ready is
// the caller's responsibility.
//
// The relay holds a request latch in the in domain. An accepted event
// sets the latch; the latch level crosses to the out domain through a
// Sync2 whose rising edge forms event_out. The synchronized level feeds
// back into the in domain through a second Sync2: the latch clears once
// the feedback confirms the set level, and ready reasserts only when the
// feedback subsequently confirms the cleared level. The two-step
// clearing keeps a new event from entering the synchronizer pipeline
// before the previous one has fully drained from it.
//
func EventRelay(in, out *socsim.Domain) (socsim.NewPartFn, error) {
	ctl := (&socsim.PartSpec{
		Name:    "relayCtl",
		Inputs:  socsim.IO("event_in, ack"),
		Outputs: socsim.IO("req, ready"),
		Mount: func(s *socsim.Socket) []socsim.Component {
			evt, ack := s.Pin("event_in"), s.Pin("ack")
			req, rdy := s.Pin("req"), s.Pin("ready")
			var latch, prev bool
			state := relayReady
			return []socsim.Component{
				func(c *socsim.Circuit) {
					switch {
					case in.InReset():
						latch, prev, state = false, false, relayReady
					case in.Rising():
						e := c.Get(evt)
						switch state {
						case relayReady:
							if e && !prev {
								latch = true
								state = relayWaitAck
							}
						case relayWaitAck:
							if c.Get(ack) {
								latch = false
								state = relayWaitClear
							}
						case relayWaitClear:
							if !c.Get(ack) {
								state = relayReady
							}
						}
						prev = e
					}
					c.Set(req, latch)
					c.Set(rdy, state == relayReady && !in.InReset())
				},
			}
		}}).NewPart

	return socsim.Chip("EventRelay", "event_in", "ready, event_out", socsim.Parts{
		ctl("event_in=event_in, ack=ack, req=req, ready=ready"),
		Sync2(out)("in=req, out=level, rise=event_out"),
		Sync2(in)("in=level, out=ack"),
	})
}
