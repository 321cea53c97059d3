// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cdclib

import (
	"strconv"

	"github.com/db47h/socsim"
	"github.com/pkg/errors"
)

// FreqMeter returns a part that measures the clock period ratio between
// two domains. Every window ticks of the meas domain, a gate event
// crosses into the ref domain through an EventRelay; the part counts the
// ref ticks elapsed between consecutive gate events.
//
//	Outputs: count[bits], valid (both in the ref domain)
//
// count latches the number of ref ticks in the last gate window and
// valid pulses for one ref tick on each update. count approximates
// window * Tmeas / Tref once the pipeline has filled; the first value
// includes the relay startup latency and should be discarded.
//
// The gate generator honors the relay's ready handshake: if a window
// elapses while the previous event is still in flight, the gate event is
// deferred until ready reasserts, stretching that one measurement
// instead of dropping it.
//
func FreqMeter(meas, ref *socsim.Domain, bits int, window uint) (socsim.NewPartFn, error) {
	if bits < 1 || bits > 63 {
		return nil, errors.Errorf("unsupported count width %d (must be 1 to 63)", bits)
	}
	if window == 0 {
		return nil, errors.New("gate window must be at least one tick")
	}

	gate := (&socsim.PartSpec{
		Name:    "freqGate",
		Inputs:  socsim.IO("ready"),
		Outputs: socsim.IO("gate"),
		Mount: func(s *socsim.Socket) []socsim.Component {
			rdy, out := s.Pin("ready"), s.Pin("gate")
			var cnt uint
			var pulse bool
			return []socsim.Component{
				func(c *socsim.Circuit) {
					switch {
					case meas.InReset():
						cnt, pulse = 0, false
					case meas.Rising():
						pulse = false
						cnt++
						if cnt >= window && c.Get(rdy) {
							pulse = true
							cnt = 0
						}
					}
					c.Set(out, pulse)
				},
			}
		}}).NewPart

	counter := (&socsim.PartSpec{
		Name:    "freqCount",
		Inputs:  socsim.IO("tick_in"),
		Outputs: socsim.IO("count[" + strconv.Itoa(bits) + "], valid"),
		Mount: func(s *socsim.Socket) []socsim.Component {
			tick := s.Pin("tick_in")
			count, valid := s.Bus("count", bits), s.Pin("valid")
			mask := int64(1)<<uint(bits) - 1
			var run, latched int64
			var pulse bool
			return []socsim.Component{
				func(c *socsim.Circuit) {
					switch {
					case ref.InReset():
						run, latched, pulse = 0, 0, false
					case ref.Rising():
						pulse = false
						run++
						if c.Get(tick) {
							latched = run & mask
							run = 0
							pulse = true
						}
					}
					c.SetInt64(count, latched)
					c.Set(valid, pulse)
				},
			}
		}}).NewPart

	relay, err := EventRelay(meas, ref)
	if err != nil {
		return nil, err
	}

	hi := strconv.Itoa(bits - 1)
	return socsim.Chip("FreqMeter", "", "count["+strconv.Itoa(bits)+"], valid", socsim.Parts{
		gate("ready=rdy, gate=gate"),
		relay("event_in=gate, ready=rdy, event_out=winEvt"),
		counter("tick_in=winEvt, count[0.."+hi+"]=count[0.."+hi+"], valid=valid"),
	})
}
