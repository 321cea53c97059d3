package cdclib_test

import (
	"testing"

	"github.com/db47h/socsim"
	"github.com/db47h/socsim/cdclib"
)

func Test_sync2_latency(t *testing.T) {
	dst := socsim.NewDomain("dst", 4, 0)
	var in, out, rise, fall bool
	c, err := socsim.NewCircuit(0, socsim.Domains{dst}, socsim.Parts{
		cdclib.Input(func() bool { return in })("out=x"),
		cdclib.Sync2(dst)("in=x, out=q, rise=r, fall=f"),
		cdclib.Output(func(v bool) { out = v })("in=q"),
		cdclib.Output(func(v bool) { rise = v })("in=r"),
		cdclib.Output(func(v bool) { fall = v })("in=f"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	c.Tick(dst)
	if out || rise || fall {
		t.Fatal("expected all outputs low at start")
	}

	// a high level propagates in exactly two ticks, with a single rise
	// pulse on the second one.
	in = true
	c.Tick(dst)
	if out {
		t.Fatal("output high after one tick")
	}
	c.Tick(dst)
	if !out || !rise || fall {
		t.Fatalf("after two ticks: out=%v rise=%v fall=%v, expected true true false", out, rise, fall)
	}
	c.Tick(dst)
	if !out || rise {
		t.Fatalf("rise pulse wider than one tick (out=%v rise=%v)", out, rise)
	}

	// same latency going back down, with a single fall pulse.
	in = false
	c.Tick(dst)
	if !out {
		t.Fatal("output low after one tick")
	}
	c.Tick(dst)
	if out || !fall || rise {
		t.Fatalf("after two ticks: out=%v rise=%v fall=%v, expected false false true", out, rise, fall)
	}
	c.Tick(dst)
	if fall {
		t.Fatal("fall pulse wider than one tick")
	}
}

func Test_sync2_reset(t *testing.T) {
	dst := socsim.NewDomain("dst", 4, 0)
	var in, out, rise bool
	c, err := socsim.NewCircuit(0, socsim.Domains{dst}, socsim.Parts{
		cdclib.Input(func() bool { return in })("out=x"),
		cdclib.Sync2(dst)("in=x, out=q, rise=r"),
		cdclib.Output(func(v bool) { out = v })("in=q"),
		cdclib.Output(func(v bool) { rise = v })("in=r"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	in = true
	c.Ticks(dst, 3)
	if !out {
		t.Fatal("expected output high")
	}
	dst.SetReset(true)
	c.Tick(dst)
	if out || rise {
		t.Fatal("expected all stages cleared by reset")
	}
	dst.SetReset(false)
	c.Ticks(dst, 2)
	if !out {
		t.Fatal("expected output to track input again after reset release")
	}
}
