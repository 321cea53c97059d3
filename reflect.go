// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package socsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection
// must implement. See MakePart.
//
type Updater interface {
	Update(*Circuit)
}

// MakePart wraps an Updater into a custom component.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and
// output pins. By default, the pin name is the field name in lowercase.
// A specific pin name can be forced by adding it in the tag:
// `hw:"in,pin_name"`. Buses must be arrays of int.
//
// proto must be a pointer to a struct value. Each mounted instance
// starts as a shallow copy of *proto, so untagged fields can carry
// per-part configuration (a clock domain, a width) into the instances.
//
func MakePart(proto Updater) *PartSpec {
	pv := reflect.ValueOf(proto)
	if pv.Kind() != reflect.Ptr || pv.Elem().Kind() != reflect.Struct {
		panic(errors.Errorf("unsupported prototype type %q", pv.Kind()))
	}
	typ := pv.Elem().Type()

	sp := &PartSpec{
		Name: typ.Name(),
	}

	n := typ.NumField()
	for i := 0; i < n; i++ {
		var isInput bool
		f := typ.Field(i)
		pin := strings.ToLower(f.Name)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		tv := strings.Split(tag, ",")
		switch len(tv) {
		case 0:
			continue
		case 2:
			if tv[1] != "" {
				pin = tv[1]
			}
			fallthrough
		case 1:
			switch tv[0] {
			case "in":
				isInput = true
			case "out":
			default:
				panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
			}
		}

		ft := f.Type
		if k := ft.Kind(); k == reflect.Array && ft.Elem().Kind() == reflect.Int {
			// bus
			for i := 0; i < ft.Len(); i++ {
				if isInput {
					sp.Inputs = append(sp.Inputs, pin+"["+strconv.Itoa(i)+"]")
				} else {
					sp.Outputs = append(sp.Outputs, pin+"["+strconv.Itoa(i)+"]")
				}
			}
		} else if k == reflect.Int {
			// pin
			if isInput {
				sp.Inputs = append(sp.Inputs, pin)
			} else {
				sp.Outputs = append(sp.Outputs, pin)
			}
		} else {
			panic(errors.Errorf("unsupported type %q for field %q in %q", k, f.Name, typ.Name()))
		}
	}
	sp.Mount = mountPart(pv.Elem(), typ)
	return sp
}

func mountPart(proto reflect.Value, typ reflect.Type) MountFn {
	return func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		e.Set(proto)
		n := typ.NumField()
		for i := 0; i < n; i++ {
			f := typ.Field(i)
			pin := strings.ToLower(f.Name)
			tag, ok := f.Tag.Lookup("hw")
			if !ok {
				continue
			}
			tv := strings.Split(tag, ",")
			switch len(tv) {
			case 0:
				continue
			case 2:
				if tv[1] != "" {
					pin = tv[1]
				}
			}
			fv := e.Field(i)
			ft := f.Type
			if k := ft.Kind(); k == reflect.Array && ft.Elem().Kind() == reflect.Int {
				// bus
				for i := 0; i < fv.Len(); i++ {
					fv.Index(i).SetInt(int64(s.Pin(pin + "[" + strconv.Itoa(i) + "]")))
				}
			} else if k == reflect.Int {
				// pin
				fv.SetInt(int64(s.Pin(pin)))
			} else {
				panic(errors.Errorf("unsupported type %q for field %q in %q", k, f.Name, typ.Name()))
			}
		}

		comp := v.Interface().(Updater)
		return []Component{comp.Update}
	}
}
