// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cdclib

import (
	"github.com/db47h/socsim"
)

type dff struct {
	dom *socsim.Domain
	In  int `hw:"in"`
	Out int `hw:"out"`
	v   bool
}

func (d *dff) Update(c *socsim.Circuit) {
	switch {
	case d.dom.InReset():
		d.v = false
	case d.dom.Rising():
		d.v = c.Get(d.In)
	}
	c.Set(d.Out, d.v)
}

// DFF returns a data flip-flop clocked in the given domain.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the domain's tick counter.
//
// The domain's reset clears the flip-flop.
//
func DFF(dom *socsim.Domain) socsim.NewPartFn {
	return socsim.MakePart(&dff{dom: dom}).NewPart
}
