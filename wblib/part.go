// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wblib

import (
	"strconv"

	"github.com/db47h/socsim"
)

// Adapter returns the bus protocol adapter as a part with discrete
// signal lines, clocked in the given domain. Initiator-facing pins are
// prefixed i_, target-facing pins t_. This is the same adapter as
// Bridge in a different presentation; the choice between the two is a
// wiring concern only.
//
//	Inputs:  i_cyc, i_stb, i_we, i_adr[A], i_dat_w[D], i_sel[D/8],
//	         t_ack, t_err, t_rty, t_stall, t_dat_r[D]
//	Outputs: t_cyc, t_stb, t_we, t_adr[A], t_dat_w[D], t_sel[D/8],
//	         i_ack, i_err, i_rty, i_stall, i_dat_r[D]
//
// where A and D are the configured address and data widths. The domain's
// reset forces the internal state machine back to idle.
//
func Adapter(dom *socsim.Domain, cfg Config) (socsim.NewPartFn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ab := strconv.Itoa(cfg.AddrBits)
	db := strconv.Itoa(cfg.DataBits)
	sb := strconv.Itoa(cfg.DataBits / 8)

	return (&socsim.PartSpec{
		Name: "BusAdapter",
		Inputs: socsim.IO("i_cyc, i_stb, i_we, i_adr[" + ab + "], i_dat_w[" + db + "], i_sel[" + sb + "], " +
			"t_ack, t_err, t_rty, t_stall, t_dat_r[" + db + "]"),
		Outputs: socsim.IO("t_cyc, t_stb, t_we, t_adr[" + ab + "], t_dat_w[" + db + "], t_sel[" + sb + "], " +
			"i_ack, i_err, i_rty, i_stall, i_dat_r[" + db + "]"),
		Mount: func(s *socsim.Socket) []socsim.Component {
			// each mounted instance gets its own state machine.
			b, err := New(cfg)
			if err != nil {
				panic(err)
			}
			var (
				iCyc, iStb, iWe = s.Pin("i_cyc"), s.Pin("i_stb"), s.Pin("i_we")
				iAdr            = s.Bus("i_adr", cfg.AddrBits)
				iDatW           = s.Bus("i_dat_w", cfg.DataBits)
				iSel            = s.Bus("i_sel", cfg.DataBits/8)
				tAck, tErr      = s.Pin("t_ack"), s.Pin("t_err")
				tRty, tStall    = s.Pin("t_rty"), s.Pin("t_stall")
				tDatR           = s.Bus("t_dat_r", cfg.DataBits)

				tCyc, tStb, tWe = s.Pin("t_cyc"), s.Pin("t_stb"), s.Pin("t_we")
				tAdr            = s.Bus("t_adr", cfg.AddrBits)
				tDatW           = s.Bus("t_dat_w", cfg.DataBits)
				tSel            = s.Bus("t_sel", cfg.DataBits/8)
				iAck, iErr      = s.Pin("i_ack"), s.Pin("i_err")
				iRty, iStall    = s.Pin("i_rty"), s.Pin("i_stall")
				iDatR           = s.Bus("i_dat_r", cfg.DataBits)
			)
			return []socsim.Component{
				func(c *socsim.Circuit) {
					req := Req{
						Cyc:  c.Get(iCyc),
						Stb:  c.Get(iStb),
						We:   c.Get(iWe),
						Adr:  uint64(c.GetInt64(iAdr)),
						DatW: uint64(c.GetInt64(iDatW)),
						Sel:  uint64(c.GetInt64(iSel)),
					}
					rsp := Rsp{
						Ack:   c.Get(tAck),
						Err:   c.Get(tErr),
						Rty:   c.Get(tRty),
						Stall: c.Get(tStall),
						DatR:  uint64(c.GetInt64(tDatR)),
					}
					if dom.InReset() {
						b.Reset()
						req = Req{}
					}
					treq, irsp := b.Forward(req, rsp)
					if dom.Rising() && !dom.InReset() {
						b.tr.edge(req, rsp)
					}
					c.Set(tCyc, treq.Cyc)
					c.Set(tStb, treq.Stb)
					c.Set(tWe, treq.We)
					c.SetInt64(tAdr, int64(treq.Adr))
					c.SetInt64(tDatW, int64(treq.DatW))
					c.SetInt64(tSel, int64(treq.Sel))
					c.Set(iAck, irsp.Ack)
					c.Set(iErr, irsp.Err)
					c.Set(iRty, irsp.Rty)
					c.Set(iStall, irsp.Stall)
					c.SetInt64(iDatR, int64(irsp.DatR))
				},
			}
		}}).NewPart, nil
}
