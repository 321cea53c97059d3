// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wblib

import (
	"github.com/pkg/errors"
)

// A Req bundles the initiator-to-target signal lines of a bus port:
// cycle qualifier, per-beat strobe, write enable, address, write data
// and byte-select mask.
//
type Req struct {
	Cyc  bool
	Stb  bool
	We   bool
	Adr  uint64
	DatW uint64
	Sel  uint64
}

// A Rsp bundles the target-to-initiator signal lines of a bus port:
// acknowledge, error, retry, stall and read data.
//
type Rsp struct {
	Ack   bool
	Err   bool
	Rty   bool
	Stall bool
	DatR  uint64
}

// translator is the handshake translation variant, selected once at
// construction over the mode pairing. forward computes the combinational
// signal view from the current state; edge advances the state by one
// clock tick.
type translator interface {
	forward(req Req, rsp Rsp) (Req, Rsp)
	edge(req Req, rsp Rsp)
	reset()
}

// A Bridge is the bus protocol adapter in bundled presentation. It
// translates the transaction stream of an initiator port into that of a
// target port, remapping addresses between granularities and handshake
// signals between modes. The bridge buffers no payload data and passes
// error and retry flags through unmodified; their interpretation is the
// initiator's responsibility.
//
type Bridge struct {
	cfg   Config
	xlate func(uint64) uint64
	tr    translator
}

// New returns a Bridge for the given configuration, or an error if the
// configuration is unsupported.
//
func New(cfg Config) (*Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "bus adapter configuration")
	}
	off, _ := OffsetBits(cfg.DataBits)

	b := &Bridge{cfg: cfg}
	switch {
	case cfg.InitiatorGranularity == cfg.TargetGranularity:
		b.xlate = func(a uint64) uint64 { return a & maskBits(cfg.AddrBits) }
	case cfg.InitiatorGranularity == Byte:
		b.xlate = func(a uint64) uint64 { return ByteToWord(a, cfg.AddrBits, off) }
	default:
		b.xlate = func(a uint64) uint64 { return WordToByte(a, cfg.AddrBits, off) }
	}
	switch {
	case cfg.InitiatorMode == cfg.TargetMode:
		b.tr = passthrough{}
	case cfg.InitiatorMode == Pipelined:
		b.tr = &pipeToClassic{}
	default:
		b.tr = classicToPipe{}
	}
	return b, nil
}

// Config returns the bridge configuration.
//
func (b *Bridge) Config() Config { return b.cfg }

// Forward computes the combinational signal view for the current tick:
// given the initiator's request lines and the target's response lines,
// it returns the request presented to the target and the response
// presented to the initiator. The internal state machine is not
// advanced.
//
func (b *Bridge) Forward(req Req, rsp Rsp) (Req, Rsp) {
	treq, irsp := b.tr.forward(req, rsp)
	treq.Adr = b.xlate(treq.Adr)
	return treq, irsp
}

// Tick computes Forward for the current tick and then advances the
// internal state machine by one clock edge.
//
func (b *Bridge) Tick(req Req, rsp Rsp) (Req, Rsp) {
	treq, irsp := b.Forward(req, rsp)
	b.tr.edge(req, rsp)
	return treq, irsp
}

// Reset forces the internal state machine back to idle.
//
func (b *Bridge) Reset() { b.tr.reset() }

// passthrough handles both sides speaking the same handshake
// discipline: all lines are wired straight through with no added state.
type passthrough struct{}

func (passthrough) forward(req Req, rsp Rsp) (Req, Rsp) { return req, rsp }
func (passthrough) edge(Req, Rsp)                       {}
func (passthrough) reset()                              {}

// pipeToClassic gates a pipelined initiator down to a classic target.
// The strobe is forwarded only while idle, which keeps at most one
// request outstanding at the target. The initiator sees no
// backpressure: a classic target has no flow-control input and accepts
// a request at any time, producing exactly one acknowledgment.
type pipeToClassic struct {
	state int
}

const (
	adapterIdle = iota
	adapterWaitAck
)

func (t *pipeToClassic) forward(req Req, rsp Rsp) (Req, Rsp) {
	treq := req
	treq.Stb = req.Stb && t.state == adapterIdle
	irsp := rsp
	irsp.Stall = false
	return treq, irsp
}

func (t *pipeToClassic) edge(req Req, rsp Rsp) {
	switch t.state {
	case adapterIdle:
		if req.Cyc && req.Stb && !rsp.Stall && !rsp.Ack {
			t.state = adapterWaitAck
		}
	case adapterWaitAck:
		// the transaction completes on ack or err, or the initiator
		// aborts by dropping both cyc and stb.
		if rsp.Ack || rsp.Err || (!req.Cyc && !req.Stb) {
			t.state = adapterIdle
		}
	}
}

func (t *pipeToClassic) reset() { t.state = adapterIdle }

// classicToPipe presents a classic initiator to a pipelined target. The
// strobe is forwarded unconditionally and the target's stall is
// reflected back to the initiator: a classic initiator never issues a
// second request before the first completes, so no state machine is
// needed.
type classicToPipe struct{}

func (classicToPipe) forward(req Req, rsp Rsp) (Req, Rsp) { return req, rsp }
func (classicToPipe) edge(Req, Rsp)                       {}
func (classicToPipe) reset()                              {}
