package socsim_test

import (
	"testing"

	"github.com/db47h/socsim"
	"github.com/db47h/socsim/cdclib"
)

func Test_gate_custom(t *testing.T) {
	xor, err := socsim.Chip("XOR", "a, b", "out", socsim.Parts{
		cdclib.Nand("a=a, b=b, out=nandAB"),
		cdclib.Nand("a=a, b=nandAB, out=w0"),
		cdclib.Nand("a=b, b=nandAB, out=w1"),
		cdclib.Nand("a=w0, b=w1, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	xnor, err := socsim.Chip("XNOR", "a, b", "out", socsim.Parts{
		xor("a=a, b=b, out=xorAB"),
		cdclib.Not("in=xorAB, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}

	var a, b, out bool
	d := socsim.NewDomain("sys", 8, 0)
	c, err := socsim.NewCircuit(0, socsim.Domains{d}, socsim.Parts{
		cdclib.Input(func() bool { return a })("out=a"),
		cdclib.Input(func() bool { return b })("out=b"),
		xnor("a=a, b=b, out=out"),
		cdclib.Output(func(v bool) { out = v })("in=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	td := []struct {
		a, b, out bool
	}{
		{false, false, true},
		{false, true, false},
		{true, false, false},
		{true, true, true},
	}
	for _, d2 := range td {
		a, b = d2.a, d2.b
		c.Tick(d)
		if out != d2.out {
			t.Errorf("XNOR(%v, %v) = %v, expected %v", d2.a, d2.b, out, d2.out)
		}
	}
}

func Test_chip_errors(t *testing.T) {
	if _, err := socsim.Chip("bad", "a", "out", socsim.Parts{
		cdclib.Not("in=a, typo=out"),
	}); err == nil {
		t.Error("expected error for unknown pin name")
	}
	if _, err := socsim.Chip("bad", "a, b", "out", socsim.Parts{
		cdclib.Not("in=a, out=out"),
		cdclib.Not("in=b, out=out"),
	}); err == nil {
		t.Error("expected error for doubly driven output")
	}
	if _, err := socsim.Chip("bad", "a", "out", socsim.Parts{
		cdclib.Not("in=dangling, out=out"),
	}); err == nil {
		t.Error("expected error for input connected to no output")
	}
	if _, err := socsim.NewCircuit(0, nil, nil); err == nil {
		t.Error("expected error for empty part list")
	}
}

func Test_domain_validation(t *testing.T) {
	td := []struct {
		name string
		doms socsim.Domains
	}{
		{"odd period", socsim.Domains{socsim.NewDomain("a", 3, 0)}},
		{"zero period", socsim.Domains{socsim.NewDomain("a", 0, 0)}},
		{"bad phase", socsim.Domains{socsim.NewDomain("a", 4, 4)}},
		{"dup name", socsim.Domains{socsim.NewDomain("a", 4, 0), socsim.NewDomain("a", 4, 0)}},
		{"nil domain", socsim.Domains{nil}},
	}
	var in bool
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := socsim.NewCircuit(0, d.doms, socsim.Parts{
				cdclib.Input(func() bool { return in })("out=x"),
				cdclib.Output(func(bool) {})("in=x"),
			})
			if err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func Test_domain_clocks(t *testing.T) {
	d1 := socsim.NewDomain("fast", 2, 0)
	d2 := socsim.NewDomain("slow", 6, 2)
	var in bool
	c, err := socsim.NewCircuit(0, socsim.Domains{d1, d2}, socsim.Parts{
		cdclib.Input(func() bool { return in })("out=x"),
		cdclib.Output(func(bool) {})("in=x"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	c.Run(60)
	if got := d1.Ticks(); got != 30 {
		t.Errorf("fast domain: expected 30 ticks in 60 steps, got %d", got)
	}
	// slow clock rises at steps 2, 8, 14, ... : 10 edges in 60 steps.
	if got := d2.Ticks(); got != 10 {
		t.Errorf("slow domain: expected 10 ticks in 60 steps, got %d", got)
	}
}

// A registered bit must survive a domain's reset being asserted on
// another domain.
func Test_domain_reset_isolation(t *testing.T) {
	da := socsim.NewDomain("a", 4, 0)
	db := socsim.NewDomain("b", 4, 0)
	var in bool
	var outA, outB bool
	c, err := socsim.NewCircuit(0, socsim.Domains{da, db}, socsim.Parts{
		cdclib.Input(func() bool { return in })("out=x"),
		cdclib.DFF(da)("in=x, out=qa"),
		cdclib.DFF(db)("in=x, out=qb"),
		cdclib.Output(func(v bool) { outA = v })("in=qa"),
		cdclib.Output(func(v bool) { outB = v })("in=qb"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	in = true
	c.Tick(da)
	c.Tick(db)
	if !outA || !outB {
		t.Fatalf("expected both flip-flops set, got a=%v b=%v", outA, outB)
	}

	db.SetReset(true)
	c.Tick(da)
	if !outA {
		t.Error("reset of domain b must not clear state owned by domain a")
	}
	if outB {
		t.Error("expected flip-flop in domain b cleared by reset")
	}
	db.SetReset(false)
	c.Tick(db)
	if !outB {
		t.Error("expected flip-flop in domain b to reload after reset release")
	}
}
