// Package types defines the managed-object graph exposed by UDisks2 and the
// typed records reconstructed from it.
package types

import "strings"

// Value is a dynamically typed D-Bus property value.
//
// The set of implementations is closed: only the variants declared in this
// file satisfy it. Type-switch on the concrete variant to read the payload.
type Value interface {
	// Signature returns the D-Bus type signature of the value.
	Signature() string

	isValue()
}

// String is a D-Bus string (s).
type String string

// Bool is a D-Bus boolean (b).
type Bool bool

// Byte is a D-Bus byte (y).
type Byte uint8

// Int16 is a D-Bus int16 (n).
type Int16 int16

// Uint16 is a D-Bus uint16 (q).
type Uint16 uint16

// Int32 is a D-Bus int32 (i).
type Int32 int32

// Uint32 is a D-Bus uint32 (u).
type Uint32 uint32

// Int64 is a D-Bus int64 (x).
type Int64 int64

// Uint64 is a D-Bus uint64 (t).
type Uint64 uint64

// Double is a D-Bus double (d).
type Double float64

// Path is a D-Bus object path (o).
type Path ObjectPath

// Bytes is a D-Bus byte array (ay). UDisks2 uses it for NUL terminated
// device paths and mount points.
type Bytes []byte

// Array is a homogeneous D-Bus array of any element type other than byte.
type Array []Value

// Struct is a D-Bus struct, a fixed tuple of values.
type Struct []Value

// Dict is a D-Bus dictionary with string keys (a{sv}).
type Dict map[string]Value

func (String) Signature() string { return "s" }
func (Bool) Signature() string   { return "b" }
func (Byte) Signature() string   { return "y" }
func (Int16) Signature() string  { return "n" }
func (Uint16) Signature() string { return "q" }
func (Int32) Signature() string  { return "i" }
func (Uint32) Signature() string { return "u" }
func (Int64) Signature() string  { return "x" }
func (Uint64) Signature() string { return "t" }
func (Double) Signature() string { return "d" }
func (Path) Signature() string   { return "o" }
func (Bytes) Signature() string  { return "ay" }
func (Dict) Signature() string   { return "a{sv}" }

// Signature reports the element signature of the first item. Empty arrays
// carry no element type and report "av".
func (a Array) Signature() string {
	if len(a) == 0 || a[0] == nil {
		return "av"
	}
	return "a" + a[0].Signature()
}

func (s Struct) Signature() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, v := range s {
		if v == nil {
			b.WriteByte('v')
			continue
		}
		b.WriteString(v.Signature())
	}
	b.WriteByte(')')
	return b.String()
}

func (String) isValue() {}
func (Bool) isValue()   {}
func (Byte) isValue()   {}
func (Int16) isValue()  {}
func (Uint16) isValue() {}
func (Int32) isValue()  {}
func (Uint32) isValue() {}
func (Int64) isValue()  {}
func (Uint64) isValue() {}
func (Double) isValue() {}
func (Path) isValue()   {}
func (Bytes) isValue()  {}
func (Array) isValue()  {}
func (Struct) isValue() {}
func (Dict) isValue()   {}

// CloneValue returns a deep copy of v so that records never alias the
// slices and maps owned by a cached graph.
func CloneValue(v Value) Value {
	switch t := v.(type) {
	case Bytes:
		if t == nil {
			return Bytes(nil)
		}
		return append(Bytes(nil), t...)
	case Array:
		if t == nil {
			return Array(nil)
		}
		out := make(Array, len(t))
		for i, item := range t {
			out[i] = CloneValue(item)
		}
		return out
	case Struct:
		if t == nil {
			return Struct(nil)
		}
		out := make(Struct, len(t))
		for i, item := range t {
			out[i] = CloneValue(item)
		}
		return out
	case Dict:
		return t.Clone()
	default:
		return v
	}
}

// Clone returns a deep copy of the dictionary.
func (d Dict) Clone() Dict {
	if d == nil {
		return nil
	}
	out := make(Dict, len(d))
	for k, v := range d {
		out[k] = CloneValue(v)
	}
	return out
}
