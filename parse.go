package socsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Connection links a pin of a part (PP) to one or more wire names (CP)
// in its host chip.
//
type Connection struct {
	PP string
	CP []string
}

// ParseConnections parses a connection configuration like:
//
//	"partPinX=chipPinY, partPinZ=chipPinZ, bus[0..3]=chipBus[4..7]"
//
// Individual pin names are matched one to one; a single part output pin
// may fan out to several wires ("out=a, out=b" or using a one-to-many
// range). Whitespace is ignored.
//
func ParseConnections(c string) ([]Connection, error) {
	c = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, c)
	if c == "" {
		return nil, nil
	}

	var conns []Connection
	for _, m := range strings.Split(c, ",") {
		if m == "" {
			continue
		}
		i := strings.IndexRune(m, '=')
		if i <= 0 || i == len(m)-1 {
			return nil, errors.Errorf("invalid pin mapping %q", m)
		}
		k, v := m[:i], m[i+1:]
		ks, err := expandRange(k)
		if err != nil {
			return nil, errors.Wrap(err, "expand pin name "+k)
		}
		vs, err := expandRange(v)
		if err != nil {
			return nil, errors.Wrap(err, "expand wire name "+v)
		}
		switch {
		case len(ks) == len(vs):
			// many to many
			for i := range ks {
				conns = append(conns, Connection{PP: ks[i], CP: []string{vs[i]}})
			}
		case len(ks) == 1:
			// one to many
			conns = append(conns, Connection{PP: k, CP: vs})
		case len(vs) == 1:
			// many to one
			for _, k := range ks {
				conns = append(conns, Connection{PP: k, CP: []string{v}})
			}
		default:
			return nil, errors.Errorf("pin count mismatch in pin mapping %q", m)
		}
	}
	return conns, nil
}

// expandRange expands a bus range like "in[0..3]" to the individual pin
// names in[0], in[1], in[2], in[3]. Names without a range, including
// indexed pins like "in[2]", are returned as is.
//
func expandRange(name string) ([]string, error) {
	i := strings.IndexRune(name, '[')
	if i < 0 {
		return []string{name}, nil
	}
	bus := name[:i]
	if bus == "" {
		return nil, errors.New("empty bus name")
	}
	n := name[i+1:]
	i = strings.Index(n, "..")
	if i < 0 {
		return []string{name}, nil
	}
	start, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, err
	}
	n = n[i+2:]
	i = strings.IndexRune(n, ']')
	if i < 0 {
		return nil, errors.New("no terminating ] in bus range")
	}
	end, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, errors.Errorf("decreasing bus range [%d..%d]", start, end)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(bus, i))
	}
	return r, nil
}

// ParseIOSpec parses an input or output pin specification string and
// returns individual pin names in a slice, expanding bus declarations to
// individual pin names:
//
//	ParseIOSpec("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}, nil
//
func ParseIOSpec(spec string) ([]string, error) {
	spec = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, spec)
	if spec == "" {
		return nil, nil
	}
	var out []string
	for _, n := range strings.Split(spec, ",") {
		if n == "" {
			return nil, errors.Errorf("in %q: empty pin name", spec)
		}
		i := strings.IndexRune(n, '[')
		if i < 0 {
			out = append(out, n)
			continue
		}
		if i == 0 {
			return nil, errors.Errorf("in %q: empty bus name", spec)
		}
		if n[len(n)-1] != ']' {
			return nil, errors.Errorf("in %q: missing close bracket", spec)
		}
		sz, err := strconv.Atoi(n[i+1 : len(n)-1])
		if err != nil || sz <= 0 {
			return nil, errors.Errorf("in %q: bad bus size for %q", spec, n)
		}
		for b := 0; b < sz; b++ {
			out = append(out, BusPinName(n[:i], b))
		}
	}
	return out, nil
}

// IO expands an input or output pin specification, like ParseIOSpec, and
// panics if the specification does not parse. It is meant to be used in
// PartSpec literals.
//
func IO(spec string) []string {
	pins, err := ParseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// BusPinName returns the name of the pin at the given index in a bus.
//
func BusPinName(name string, index int) string {
	return name + "[" + strconv.Itoa(index) + "]"
}
