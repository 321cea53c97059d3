// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package socsim

// A Domain is an independently clocked and independently reset unit of
// synchronous state. Its clock is derived from the circuit's global step
// counter: the clock rises every period steps, starting at step phase,
// and falls half a period later. Clocked parts bind to a Domain at
// construction time and sample their inputs on Rising.
//
// Asserting a domain's reset forces the state owned by parts clocked in
// that domain back to initial values; it does not affect other domains.
//
type Domain struct {
	name   string
	period uint
	phase  uint

	clk     bool
	rising  bool
	falling bool
	ticks   uint64
	rst     bool // true while reset is asserted

	c *Circuit
}

// Domains is a list of clock domains driven by a circuit.
//
type Domains []*Domain

// NewDomain returns a new free-running clock domain. period is the clock
// period in simulation steps and must be an even number >= 2; phase
// delays the first rising edge by the given number of steps and must be
// less than period. Both are checked by NewCircuit.
//
// The period must leave enough steps per clock tick for combinational
// signals to settle: at least one step more than the longest
// combinational chain feeding a clocked part of the domain.
//
func NewDomain(name string, period, phase uint) *Domain {
	return &Domain{name: name, period: period, phase: phase}
}

// Name returns the domain name.
//
func (d *Domain) Name() string { return d.name }

// Period returns the clock period in simulation steps.
//
func (d *Domain) Period() uint { return d.period }

// Clk returns the current clock level.
//
func (d *Domain) Clk() bool { return d.clk }

// Rising returns true during the step of a rising clock edge. Clocked
// parts call this in their update function to decide when to sample
// their inputs.
//
func (d *Domain) Rising() bool { return d.rising }

// Falling returns true during the step of a falling clock edge.
//
func (d *Domain) Falling() bool { return d.falling }

// Ticks returns the number of rising edges seen so far.
//
func (d *Domain) Ticks() uint64 { return d.ticks }

// InReset returns true while the domain's reset is asserted. Parts
// clocked in the domain must force their state to initial values while
// this is true.
//
func (d *Domain) InReset() bool { return d.rst }

// SetReset asserts or releases the domain's reset line. It must only be
// called in between simulation steps.
//
func (d *Domain) SetReset(asserted bool) {
	if d.rst == asserted {
		return
	}
	d.rst = asserted
	if d.c != nil {
		d.c.log.Debug().Str("domain", d.name).Bool("asserted", asserted).Msg("reset")
	}
}

// advance updates the clock state for the step about to be simulated.
//
func (d *Domain) advance(step uint64) {
	lvl := false
	if step >= uint64(d.phase) {
		lvl = (step-uint64(d.phase))%uint64(d.period) < uint64(d.period/2)
	}
	d.rising = lvl && !d.clk
	d.falling = !lvl && d.clk
	d.clk = lvl
	if d.rising {
		d.ticks++
	}
}
