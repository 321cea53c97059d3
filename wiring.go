package socsim

import (
	"github.com/pkg/errors"
)

// a pin is identified by the part it belongs to and its name in that
// part's interface. p < 0 for the host chip's own pins.
type pin struct {
	p    int
	name string
}

const (
	typeUnknown = iota
	typeInput
	typeOutput
)

type node struct {
	name string // chip internal wire name
	pin  pin
	outs []*node
	org  *node // pin feeding that node
	typ  int
}

func (n *node) isOutput() bool {
	return n.typ == typeOutput
}

func (n *node) setName(name string) {
	n.name = name
	for _, o := range n.outs {
		o.setName(name)
	}
}

type wiring map[pin]*node

func newWiring(ins, outs []string) (wr wiring, inputRoot *node) {
	wr = make(wiring, len(ins)+len(outs)+1)
	// inputRoot serves as a parent marker for chip inputs.
	inputRoot = &node{pin: pin{-1, "__INPUT__"}, outs: make([]*node, len(ins)), typ: typeInput}

	// add true and false as chip inputs
	p := pin{-1, True}
	wr[p] = &node{pin: p, org: inputRoot, typ: typeUnknown}
	p = pin{-1, False}
	wr[p] = &node{pin: p, org: inputRoot, typ: typeUnknown}

	for i, in := range ins {
		p := pin{-1, in}
		n := &node{pin: p, org: inputRoot, typ: typeUnknown}
		wr[p] = n
		inputRoot.outs[i] = n
	}

	for _, out := range outs {
		p := pin{-1, out}
		n := &node{pin: p, org: nil, typ: typeOutput}
		wr[p] = n
	}
	return wr, inputRoot
}

func (wr wiring) add(in pin, iType int, out pin, oType int) error {
	if out.p < 0 {
		switch out.name {
		case False:
			return nil
		case True:
			return errors.New("output pin connected to constant \"true\" input")
		}
	}
	wi := wr[in]
	if wi == nil {
		wi = &node{pin: in, typ: iType}
		wr[in] = wi
	}
	wo := wr[out]
	switch {
	case wo == nil:
		wo = &node{pin: out, org: wi, typ: oType}
		wr[out] = wo
	case wo.org == nil:
		wo.org = wi
	default:
		return errors.New("output pin already used as output or is one of the chip's input pins")
	}
	wi.outs = append(wi.outs, wo)
	return nil
}
