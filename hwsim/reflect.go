// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must implement.
// See MakePart.
//
type Updater interface {
	Update(c *Circuit)
}

// pinField describes a struct field holding a pin number or a bus of pin
// numbers.
//
type pinField struct {
	index int    // field index
	pin   string // pin or bus name
	bits  int    // bus width, 0 for single pins
}

// MakePart wraps an Updater into a custom component.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pin fields must be of type int, buses must be arrays of int. When the part is
// mounted, a new value of the struct type is allocated and its pin fields are
// set to the pin numbers assigned by the host chip. Untagged fields can be used
// to keep the component's state.
//
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	sp := &PartSpec{
		Name: typ.Name(),
	}

	var fields []pinField
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		pin := strings.ToLower(f.Name)
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pin = tv[1]
		}
		var isInput bool
		switch tv[0] {
		case "in":
			isInput = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		pf := pinField{index: i, pin: pin}
		var names []string
		switch ft := f.Type; {
		case ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Int:
			pf.bits = ft.Len()
			names = busPins(pin, pf.bits)
		case ft.Kind() == reflect.Int:
			names = []string{pin}
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft.Kind(), f.Name, typ.Name()))
		}
		if isInput {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
		fields = append(fields, pf)
	}
	sp.Mount = mountPart(typ, fields)
	return sp
}

func mountPart(typ reflect.Type, fields []pinField) MountFn {
	return func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		for _, f := range fields {
			fv := e.Field(f.index)
			if f.bits == 0 {
				fv.SetInt(int64(s.Pin(f.pin)))
				continue
			}
			for i, n := range s.Bus(f.pin, f.bits) {
				fv.Index(i).SetInt(int64(n))
			}
		}
		return []Component{v.Interface().(Updater).Update}
	}
}
