package wblib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/db47h/socsim"
	"github.com/db47h/socsim/cdclib"
	"github.com/db47h/socsim/simtest"
	"github.com/db47h/socsim/wblib"
)

// a passthrough adapter must be indistinguishable from plain wires.
func Test_adapter_transparency(t *testing.T) {
	d := socsim.NewDomain("sys", 8, 0)
	adapter, err := wblib.Adapter(d, wblib.Config{
		InitiatorMode: wblib.Classic, TargetMode: wblib.Classic,
		InitiatorGranularity: wblib.Byte, TargetGranularity: wblib.Byte,
		AddrBits: 4, DataBits: 8,
	})
	require.NoError(t, err)

	in := "i_cyc, i_stb, i_we, i_adr[4], i_dat_w[8], i_sel[1], t_ack, t_err, t_rty, t_stall, t_dat_r[8]"
	out := "t_cyc, t_stb, t_we, t_adr[4], t_dat_w[8], t_sel[1], i_ack, i_err, i_rty, i_stall, i_dat_r[8]"
	wires := (&socsim.PartSpec{
		Name:    "wires",
		Inputs:  socsim.IO(in),
		Outputs: socsim.IO(out),
		Mount: func(s *socsim.Socket) []socsim.Component {
			var src, dst []int
			for _, names := range [][2]string{
				{"i_cyc", "t_cyc"}, {"i_stb", "t_stb"}, {"i_we", "t_we"},
				{"t_ack", "i_ack"}, {"t_err", "i_err"}, {"t_rty", "i_rty"}, {"t_stall", "i_stall"},
			} {
				src, dst = append(src, s.Pin(names[0])), append(dst, s.Pin(names[1]))
			}
			for i := 0; i < 4; i++ {
				src, dst = append(src, s.Pin(socsim.BusPinName("i_adr", i))), append(dst, s.Pin(socsim.BusPinName("t_adr", i)))
			}
			for i := 0; i < 8; i++ {
				src, dst = append(src, s.Pin(socsim.BusPinName("i_dat_w", i))), append(dst, s.Pin(socsim.BusPinName("t_dat_w", i)))
				src, dst = append(src, s.Pin(socsim.BusPinName("t_dat_r", i))), append(dst, s.Pin(socsim.BusPinName("i_dat_r", i)))
			}
			src, dst = append(src, s.Pin(socsim.BusPinName("i_sel", 0))), append(dst, s.Pin(socsim.BusPinName("t_sel", 0)))
			return []socsim.Component{
				func(c *socsim.Circuit) {
					for i := range src {
						c.Set(dst[i], c.Get(src[i]))
					}
				},
			}
		}}).NewPart

	simtest.ComparePart(t, d, adapter, wires)
}

type adapterHarness struct {
	c   *socsim.Circuit
	dom *socsim.Domain

	// initiator side, driven by the test
	iCyc, iStb, iWe bool
	iAdr, iDatW     int64

	// target side, driven by the test
	tAck, tStall bool
	tDatR        int64

	// adapter outputs
	tCyc, tStb   bool
	tAdr         int64
	iAck, iStall bool
	iDatR        int64
}

func newAdapterHarness(t *testing.T, cfg wblib.Config) *adapterHarness {
	t.Helper()
	h := &adapterHarness{dom: socsim.NewDomain("sys", 8, 0)}
	adapter, err := wblib.Adapter(h.dom, cfg)
	require.NoError(t, err)
	h.c, err = socsim.NewCircuit(0, socsim.Domains{h.dom}, socsim.Parts{
		cdclib.Input(func() bool { return h.iCyc })("out=i_cyc"),
		cdclib.Input(func() bool { return h.iStb })("out=i_stb"),
		cdclib.Input(func() bool { return h.iWe })("out=i_we"),
		cdclib.InputN(cfg.AddrBits, func() int64 { return h.iAdr })("out[0..15]=i_adr[0..15]"),
		cdclib.InputN(cfg.DataBits, func() int64 { return h.iDatW })("out[0..31]=i_dat_w[0..31]"),
		cdclib.Input(func() bool { return h.tAck })("out=t_ack"),
		cdclib.Input(func() bool { return h.tStall })("out=t_stall"),
		cdclib.InputN(cfg.DataBits, func() int64 { return h.tDatR })("out[0..31]=t_dat_r[0..31]"),
		adapter("i_cyc=i_cyc, i_stb=i_stb, i_we=i_we, i_adr[0..15]=i_adr[0..15], i_dat_w[0..31]=i_dat_w[0..31], "+
			"t_ack=t_ack, t_stall=t_stall, t_dat_r[0..31]=t_dat_r[0..31], "+
			"t_cyc=t_cyc, t_stb=t_stb, t_adr[0..15]=t_adr[0..15], "+
			"i_ack=i_ack, i_stall=i_stall, i_dat_r[0..31]=i_dat_r[0..31]"),
		cdclib.Output(func(v bool) { h.tCyc = v })("in=t_cyc"),
		cdclib.Output(func(v bool) { h.tStb = v })("in=t_stb"),
		cdclib.OutputN(cfg.AddrBits, func(v int64) { h.tAdr = v })("in[0..15]=t_adr[0..15]"),
		cdclib.Output(func(v bool) { h.iAck = v })("in=i_ack"),
		cdclib.Output(func(v bool) { h.iStall = v })("in=i_stall"),
		cdclib.OutputN(cfg.DataBits, func(v int64) { h.iDatR = v })("in[0..31]=i_dat_r[0..31]"),
	})
	require.NoError(t, err)
	t.Cleanup(h.c.Dispose)
	return h
}

// the stalled-read scenario at pin level: a classic initiator reads from
// a pipelined target that stalls for 3 ticks, then acknowledges with
// 0xDEAD on the 4th.
func Test_adapter_stalled_read(t *testing.T) {
	h := newAdapterHarness(t, wblib.Config{
		InitiatorMode: wblib.Classic, TargetMode: wblib.Pipelined,
		InitiatorGranularity: wblib.Byte, TargetGranularity: wblib.Byte,
		AddrBits: 16, DataBits: 32,
	})

	h.iCyc, h.iStb, h.iAdr = true, true, 0x40
	h.tStall = true
	for n := 0; n < 3; n++ {
		h.c.Tick(h.dom)
		require.True(t, h.tStb, "strobe must stay asserted while stalled")
		require.True(t, h.iStall, "backpressure must reach the initiator")
		require.False(t, h.iAck)
	}
	h.tStall = false
	h.tAck, h.tDatR = true, 0xDEAD
	h.c.Tick(h.dom)
	require.True(t, h.iAck)
	require.EqualValues(t, 0xDEAD, h.iDatR)
	require.EqualValues(t, 0x40, h.tAdr)

	h.iCyc, h.iStb = false, false
	h.tAck = false
	h.c.Tick(h.dom)
	require.False(t, h.tCyc)
	require.False(t, h.iAck)
}

// reset forces the gating state machine back to idle.
func Test_adapter_reset(t *testing.T) {
	h := newAdapterHarness(t, wblib.Config{
		InitiatorMode: wblib.Pipelined, TargetMode: wblib.Classic,
		InitiatorGranularity: wblib.Byte, TargetGranularity: wblib.Byte,
		AddrBits: 16, DataBits: 32,
	})

	// a strobe goes out and the adapter starts waiting for the ack.
	// Run propagates signals without crossing a clock edge.
	h.iCyc, h.iStb, h.iAdr = true, true, 2
	h.c.Run(3)
	require.True(t, h.tStb, "an idle adapter forwards the strobe")
	h.c.Tick(h.dom)
	require.False(t, h.tStb, "strobe must be gated while waiting for the ack")

	h.dom.SetReset(true)
	h.c.Tick(h.dom)
	require.False(t, h.tCyc, "bus lines must be idle during reset")
	h.dom.SetReset(false)

	h.c.Run(3)
	require.True(t, h.tStb, "adapter must be idle again after reset")
}
