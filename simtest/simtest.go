// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing circuits.
//
package simtest

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/db47h/socsim"
	"github.com/db47h/socsim/cdclib"
)

// An EdgeCounter counts rising edges of a signal observed through a
// cdclib.Output probe. Unlike sampling once per tick, it sees every
// simulation step, so it counts pulses reliably even when the observed
// signal lives in a faster clock domain than the sampling loop.
//
type EdgeCounter struct {
	n    int
	prev bool
}

// Observe updates the counter with the current signal level. Use it as
// an Output probe callback.
//
func (e *EdgeCounter) Observe(v bool) {
	if v && !e.prev {
		e.n++
	}
	e.prev = v
}

// Count returns the number of rising edges observed so far.
//
func (e *EdgeCounter) Count() int { return e.n }

// WaitTrue ticks domain d until cond returns true and reports whether it
// did within maxTicks ticks.
//
func WaitTrue(c *socsim.Circuit, d *socsim.Domain, maxTicks int, cond func() bool) bool {
	for i := 0; i < maxTicks; i++ {
		if cond() {
			return true
		}
		c.Tick(d)
	}
	return cond()
}

func connString(in, out []string) string {
	var b strings.Builder
	for _, n := range in {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(n)
	}
	for _, n := range out {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(n)
	}
	return b.String()
}

func pinList(in []string) string {
	bus := make(map[string]int)
	var pins []string

	for _, n := range in {
		if b := strings.IndexRune(n, '['); b >= 0 {
			bn := n[:b]
			idx, err := strconv.Atoi(n[b+1 : strings.IndexRune(n, ']')])
			if err != nil {
				panic(err)
			}
			if bidx, ok := bus[bn]; !ok || bidx < idx {
				bus[bn] = idx
			}
		} else {
			pins = append(pins, n)
		}
	}

	var b strings.Builder
	for k, n := range bus {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(k)
		b.WriteRune('[')
		b.WriteString(strconv.Itoa(n + 1))
		b.WriteRune(']')
	}
	for _, n := range pins {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
	}
	return b.String()
}

func randBool() bool {
	return rand.Int63()&(1<<62) != 0
}

// ComparePart takes two parts and compares their outputs given the same
// inputs, one clock tick of domain d at a time. Both parts must have the
// same input/output interface. Inputs change only in between ticks, so
// the parts may differ in combinational depth as long as both settle
// within half a clock period.
//
func ComparePart(t *testing.T, d *socsim.Domain, part1, part2 socsim.NewPartFn) {
	t.Helper()

	rand.Seed(time.Now().UnixNano())

	ps1, ps2 := part1(""), part2("")
	if len(ps1.Inputs) != len(ps2.Inputs) {
		t.Fatal("len(ps1.Inputs) != len(ps2.Inputs)")
	}
	if len(ps1.Outputs) != len(ps2.Outputs) {
		t.Fatal("len(ps1.Outputs) != len(ps2.Outputs)")
	}
	for i := range ps1.Inputs {
		if ps1.Inputs[i] != ps2.Inputs[i] {
			t.Fatalf("ps1.Inputs[i] = %q != ps2.Inputs[i] = %q", ps1.Inputs[i], ps2.Inputs[i])
		}
	}
	for i := range ps1.Outputs {
		if ps1.Outputs[i] != ps2.Outputs[i] {
			t.Fatalf("ps1.Outputs[i] = %q != ps2.Outputs[i] = %q", ps1.Outputs[i], ps2.Outputs[i])
		}
	}

	conns := connString(ps1.Inputs, ps1.Outputs)

	inputs := make([]bool, len(ps1.Inputs))
	outputs := make([][2]bool, len(ps1.Outputs))

	// build two wrappers with their own set of outputs
	parts1 := socsim.Parts{part1(conns)}
	for i, o := range ps1.Outputs {
		n := i
		parts1 = append(parts1, cdclib.Output(func(b bool) { outputs[n][0] = b })("in="+o))
	}
	parts2 := socsim.Parts{part2(conns)}
	for i, o := range ps2.Outputs {
		n := i
		parts2 = append(parts2, cdclib.Output(func(b bool) { outputs[n][1] = b })("in="+o))
	}
	w1, err := socsim.Chip("wrapper1", pinList(ps1.Inputs), "", parts1)
	if err != nil {
		t.Fatal(err)
	}
	w2, err := socsim.Chip("wrapper2", pinList(ps2.Inputs), "", parts2)
	if err != nil {
		t.Fatal(err)
	}

	var parts socsim.Parts
	for i, n := range ps1.Inputs {
		k := i
		parts = append(parts, cdclib.Input(func() bool { return inputs[k] })("out="+n))
	}
	cstr := connString(ps1.Inputs, nil)
	parts = append(parts, w1(cstr), w2(cstr))

	c, err := socsim.NewCircuit(0, socsim.Domains{d}, parts)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	check := func() {
		t.Helper()
		for o, out := range outputs {
			if out[0] != out[1] {
				t.Fatalf("output %s mismatch: part1 = %v, part2 = %v (inputs %v)",
					ps1.Outputs[o], out[0], out[1], inputs)
			}
		}
	}

	// try all 0, all 1, then random patterns
	c.Tick(d)
	check()

	for in := range inputs {
		inputs[in] = true
	}
	c.Tick(d)
	check()

	iter := len(ps1.Inputs)
	if iter > 12 {
		iter = 12
	}
	for i := 0; i < 1<<uint(iter); i++ {
		for in := range inputs {
			inputs[in] = randBool()
		}
		c.Tick(d)
		check()
	}
}
