// Package values extracts typed Go values from UDisks2 property bags.
//
// Every accessor is fail-soft: a missing property or a value of the wrong
// D-Bus type yields false, never a panic and never a substituted default.
// Numeric values are not widened; a Uint32 property read with Uint64 is a
// mismatch.
package values

import (
	"bytes"

	"github.com/deploymenttheory/go-udisks/internal/types"
)

// lookup returns the property as variant V.
func lookup[V types.Value](bag types.PropertyBag, name string) (V, bool) {
	var zero V
	raw, ok := bag[name]
	if !ok || raw == nil {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// String reads an s property.
func String(bag types.PropertyBag, name string) (string, bool) {
	v, ok := lookup[types.String](bag, name)
	return string(v), ok
}

// Bool reads a b property.
func Bool(bag types.PropertyBag, name string) (bool, bool) {
	v, ok := lookup[types.Bool](bag, name)
	return bool(v), ok
}

// Byte reads a y property.
func Byte(bag types.PropertyBag, name string) (uint8, bool) {
	v, ok := lookup[types.Byte](bag, name)
	return uint8(v), ok
}

// Int16 reads an n property.
func Int16(bag types.PropertyBag, name string) (int16, bool) {
	v, ok := lookup[types.Int16](bag, name)
	return int16(v), ok
}

// Uint16 reads a q property.
func Uint16(bag types.PropertyBag, name string) (uint16, bool) {
	v, ok := lookup[types.Uint16](bag, name)
	return uint16(v), ok
}

// Int32 reads an i property.
func Int32(bag types.PropertyBag, name string) (int32, bool) {
	v, ok := lookup[types.Int32](bag, name)
	return int32(v), ok
}

// Uint32 reads a u property.
func Uint32(bag types.PropertyBag, name string) (uint32, bool) {
	v, ok := lookup[types.Uint32](bag, name)
	return uint32(v), ok
}

// Int64 reads an x property.
func Int64(bag types.PropertyBag, name string) (int64, bool) {
	v, ok := lookup[types.Int64](bag, name)
	return int64(v), ok
}

// Uint64 reads a t property.
func Uint64(bag types.PropertyBag, name string) (uint64, bool) {
	v, ok := lookup[types.Uint64](bag, name)
	return uint64(v), ok
}

// Double reads a d property.
func Double(bag types.PropertyBag, name string) (float64, bool) {
	v, ok := lookup[types.Double](bag, name)
	return float64(v), ok
}

// ObjectPath reads an o property.
func ObjectPath(bag types.PropertyBag, name string) (types.ObjectPath, bool) {
	v, ok := lookup[types.Path](bag, name)
	return types.ObjectPath(v), ok
}

// Bytes reads an ay property. The returned slice is a copy.
func Bytes(bag types.PropertyBag, name string) ([]byte, bool) {
	v, ok := lookup[types.Bytes](bag, name)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

// ByteString reads an ay property holding a NUL terminated string, the
// encoding UDisks2 uses for device nodes and mount points.
func ByteString(bag types.PropertyBag, name string) (string, bool) {
	v, ok := lookup[types.Bytes](bag, name)
	if !ok {
		return "", false
	}
	return trimNUL(v), true
}

// Array reads any array property other than ay. The returned slice is a
// copy.
func Array(bag types.PropertyBag, name string) ([]types.Value, bool) {
	v, ok := lookup[types.Array](bag, name)
	if !ok {
		return nil, false
	}
	out := make([]types.Value, len(v))
	for i, item := range v {
		out[i] = types.CloneValue(item)
	}
	return out, true
}

// Strings reads an as property.
func Strings(bag types.PropertyBag, name string) ([]string, bool) {
	return arrayOf(bag, name, func(v types.Value) (string, bool) {
		s, ok := v.(types.String)
		return string(s), ok
	})
}

// ObjectPaths reads an ao property.
func ObjectPaths(bag types.PropertyBag, name string) ([]types.ObjectPath, bool) {
	return arrayOf(bag, name, func(v types.Value) (types.ObjectPath, bool) {
		p, ok := v.(types.Path)
		return types.ObjectPath(p), ok
	})
}

// ByteStrings reads an aay property of NUL terminated strings.
func ByteStrings(bag types.PropertyBag, name string) ([]string, bool) {
	return arrayOf(bag, name, func(v types.Value) (string, bool) {
		b, ok := v.(types.Bytes)
		if !ok {
			return "", false
		}
		return trimNUL(b), true
	})
}

// Structs reads an a(...) property, returning each struct's fields.
func Structs(bag types.PropertyBag, name string) ([][]types.Value, bool) {
	return arrayOf(bag, name, func(v types.Value) ([]types.Value, bool) {
		s, ok := v.(types.Struct)
		if !ok {
			return nil, false
		}
		fields := make([]types.Value, len(s))
		for i, f := range s {
			fields[i] = types.CloneValue(f)
		}
		return fields, true
	})
}

// Dict reads an a{sv} property. The returned dictionary is a copy.
func Dict(bag types.PropertyBag, name string) (types.Dict, bool) {
	v, ok := lookup[types.Dict](bag, name)
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// arrayOf converts every element of an array property with conv. A single
// mismatching element makes the whole property unusable.
func arrayOf[T any](bag types.PropertyBag, name string, conv func(types.Value) (T, bool)) ([]T, bool) {
	arr, ok := lookup[types.Array](bag, name)
	if !ok {
		return nil, false
	}
	out := make([]T, 0, len(arr))
	for _, item := range arr {
		if item == nil {
			return nil, false
		}
		v, ok := conv(item)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func trimNUL(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
