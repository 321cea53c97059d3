package cdclib_test

import (
	"testing"

	"github.com/db47h/socsim"
	"github.com/db47h/socsim/cdclib"
)

func Test_dff(t *testing.T) {
	d := socsim.NewDomain("sys", 4, 0)
	var in, out bool
	c, err := socsim.NewCircuit(0, socsim.Domains{d}, socsim.Parts{
		cdclib.Input(func() bool { return in })("out=x"),
		cdclib.DFF(d)("in=x, out=q"),
		cdclib.Output(func(v bool) { out = v })("in=q"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	for _, v := range []bool{true, false, true, true, false} {
		in = v
		c.Tick(d)
		if out != v {
			t.Errorf("expected out = %v after tick", v)
		}
	}
}

// a 1-bit load register built from a mux feeding a flip-flop. The clock
// period leaves enough steps per half cycle for the mux output to settle
// before the flip-flop samples it.
func Test_dff_register(t *testing.T) {
	d := socsim.NewDomain("sys", 8, 0)
	reg, err := socsim.Chip("REG1", "in, load", "out", socsim.Parts{
		cdclib.Mux("a=out, b=in, sel=load, out=d0"),
		cdclib.DFF(d)("in=d0, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}

	var in, load, out bool
	c, err := socsim.NewCircuit(0, socsim.Domains{d}, socsim.Parts{
		cdclib.Input(func() bool { return in })("out=in"),
		cdclib.Input(func() bool { return load })("out=load"),
		reg("in=in, load=load, out=out"),
		cdclib.Output(func(v bool) { out = v })("in=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	td := []struct {
		in, load, out bool
	}{
		{false, false, false},
		{true, false, false}, // no load, holds 0
		{true, true, true},   // load 1
		{false, false, true}, // holds 1
		{true, false, true},
		{false, true, false}, // load 0
		{true, false, false},
	}
	for i, d2 := range td {
		in, load = d2.in, d2.load
		c.Tick(d)
		if out != d2.out {
			t.Errorf("step %d: in=%v load=%v: out = %v, expected %v", i, d2.in, d2.load, out, d2.out)
		}
	}
}
