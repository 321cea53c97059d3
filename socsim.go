// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package socsim

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// A Component is a component in a circuit that can Get and Set states.
//
type Component func(c *Circuit)

// Circuit is a runnable circuit simulation.
//
type Circuit struct {
	s0    []bool // wire states frame #0
	s1    []bool // wire states frame #1
	cs    []Component
	count int    // wire count
	step  uint64 // global step counter
	doms  Domains
	log   zerolog.Logger

	wc []chan struct{}
	wg sync.WaitGroup
}

// An Option configures a Circuit.
//
type Option func(*Circuit)

// WithLogger sets the logger used for elaboration and reset diagnostics.
// The default logger discards everything.
//
func WithLogger(l zerolog.Logger) Option {
	return func(c *Circuit) { c.log = l }
}

// NewCircuit builds a new circuit based on the given clock domains and
// parts.
//
// workers is the number of goroutines used to update the state of the
// Circuit each step of the simulation. If less or equal to 0, the value
// of GOMAXPROCS will be used.
//
// Domains are validated here: names must be unique and non-empty,
// periods even and >= 2, phases smaller than the period. A domain must
// not be shared between circuits.
//
// Callers must make sure to call Dispose() once the circuit is no longer
// needed in order to release allocated resources.
//
func NewCircuit(workers int, doms Domains, parts Parts, opts ...Option) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}

	// new circuit with room for constant value pins.
	cc := &Circuit{count: cstCount, log: zerolog.Nop()}
	for _, o := range opts {
		o(cc)
	}

	names := make(map[string]bool, len(doms))
	for _, d := range doms {
		switch {
		case d == nil:
			return nil, errors.New("nil clock domain")
		case d.name == "" || names[d.name]:
			return nil, errors.Errorf("duplicate or empty domain name %q", d.name)
		case d.period < 2 || d.period%2 != 0:
			return nil, errors.Errorf("domain %s: period must be even and >= 2, got %d", d.name, d.period)
		case d.phase >= d.period:
			return nil, errors.Errorf("domain %s: phase %d must be less than period %d", d.name, d.phase, d.period)
		case d.c != nil:
			return nil, errors.Errorf("domain %s already driven by another circuit", d.name)
		}
		names[d.name] = true
		d.c = cc
	}
	cc.doms = doms

	wrap, err := Chip("CIRCUIT", "", "", parts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chip wrapper")
	}
	ups := wrap("").Mount(newSocket(cc))
	cc.cs = ups
	cc.s0 = make([]bool, cc.count)
	cc.s1 = make([]bool, cc.count)
	// init constant pins
	cc.s0[cstTrue] = true
	cc.s1[cstTrue] = true

	// workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers <= 0 {
		workers = 1
	}
	for len(ups) > 0 {
		size := len(ups) / workers
		if size*workers < len(ups) {
			size++
		}
		wc := make(chan struct{}, 1)
		cc.wc = append(cc.wc, wc)
		go worker(cc, ups[:size], wc)
		ups = ups[size:]
	}

	cc.log.Debug().Int("components", len(cc.cs)).Int("wires", cc.count).
		Int("domains", len(doms)).Msg("circuit elaborated")

	return cc, nil
}

// Dispose releases all resources allocated for a circuit and stops
// worker goroutines.
//
func (c *Circuit) Dispose() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		close(wc)
	}
	c.wg.Wait()
}

func worker(c *Circuit, cs []Component, wc <-chan struct{}) {
	for {
		_, ok := <-wc
		if !ok {
			c.wg.Done()
			return
		}
		for _, f := range cs {
			f(c)
		}
		c.wg.Done()
	}
}

// alloc allocates a pin and returns its number.
//
func (c *Circuit) allocPin() int {
	cnt := c.count
	c.count++
	return cnt
}

// Steps returns the value of the global step counter.
//
func (c *Circuit) Steps() uint64 {
	return c.step
}

// Get returns the state of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
//
func (c *Circuit) Get(n int) bool {
	return c.s0[n]
}

// Set sets the state s of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
//
func (c *Circuit) Set(n int, s bool) {
	c.s1[n] = s
}

// Toggle toggles the state of pin n.
//
func (c *Circuit) Toggle(n int) {
	c.s1[n] = !c.s0[n]
}

// Step advances the simulation by one step.
//
func (c *Circuit) Step() {
	if c.s0[cstFalse] || !c.s0[cstTrue] {
		panic("true or false constants have been overwritten")
	}

	for _, d := range c.doms {
		d.advance(c.step)
	}

	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		wc <- struct{}{}
	}
	c.wg.Wait()

	c.step++
	c.s1[cstTrue] = true
	c.s1[cstFalse] = false
	c.s0, c.s1 = c.s1, c.s0
}

// Run advances the simulation by the given number of steps.
//
func (c *Circuit) Run(steps int) {
	for i := 0; i < steps; i++ {
		c.Step()
	}
}

// Tick runs the simulation through the next rising edge of d's clock
// and on to the following falling edge. Once Tick returns, the outputs
// of parts clocked in d reflect the inputs sampled on that edge and
// have propagated to probes.
//
// Step 0 can be a rising edge before any input has propagated; Tick
// skips it so that the sampled edge always sees settled inputs.
//
func (c *Circuit) Tick(d *Domain) {
	if c.step == 0 {
		c.Step()
	}
	for {
		c.Step()
		if d.rising {
			break
		}
	}
	for {
		c.Step()
		if d.falling {
			return
		}
	}
}

// Ticks runs the simulation for n clock ticks of domain d.
//
func (c *Circuit) Ticks(d *Domain, n int) {
	for i := 0; i < n; i++ {
		c.Tick(d)
	}
}

// Size returns the component count in the circuit.
//
func (c *Circuit) Size() int { return len(c.cs) }
