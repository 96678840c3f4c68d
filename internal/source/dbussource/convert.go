package dbussource

import (
	"reflect"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"

	"github.com/deploymenttheory/go-udisks/internal/types"
)

// convertGraph turns a decoded GetManagedObjects reply into a graph.
// Properties whose payload has no types.Value variant (unix fds, nested
// variants of unsupported kinds) are dropped.
func convertGraph(raw map[dbus.ObjectPath]map[string]map[string]dbus.Variant, log zerolog.Logger) types.ManagedObjectGraph {
	graph := make(types.ManagedObjectGraph, len(raw))
	for path, ifaces := range raw {
		bag := make(types.InterfaceBag, len(ifaces))
		for name, props := range ifaces {
			pb := make(types.PropertyBag, len(props))
			for prop, variant := range props {
				v, ok := convertValue(variant.Value())
				if !ok {
					log.Debug().
						Str("object", string(path)).
						Str("interface", name).
						Str("property", prop).
						Str("signature", variant.Signature().String()).
						Msg("Dropping property with unsupported type")
					continue
				}
				pb[prop] = v
			}
			bag[name] = pb
		}
		graph[types.ObjectPath(path)] = bag
	}
	return graph
}

// convertValue maps a godbus payload onto the closed types.Value set.
func convertValue(v interface{}) (types.Value, bool) {
	switch t := v.(type) {
	case dbus.Variant:
		return convertValue(t.Value())
	case string:
		return types.String(t), true
	case bool:
		return types.Bool(t), true
	case byte:
		return types.Byte(t), true
	case int16:
		return types.Int16(t), true
	case uint16:
		return types.Uint16(t), true
	case int32:
		return types.Int32(t), true
	case uint32:
		return types.Uint32(t), true
	case int64:
		return types.Int64(t), true
	case uint64:
		return types.Uint64(t), true
	case float64:
		return types.Double(t), true
	case dbus.ObjectPath:
		return types.Path(t), true
	case dbus.Signature:
		return types.String(t.String()), true
	case []byte:
		return types.Bytes(append([]byte(nil), t...)), true
	case []interface{}:
		// godbus decodes structs inside variants as []interface{}.
		s := make(types.Struct, 0, len(t))
		for _, field := range t {
			fv, ok := convertValue(field)
			if !ok {
				return nil, false
			}
			s = append(s, fv)
		}
		return s, true
	case map[string]dbus.Variant:
		d := make(types.Dict, len(t))
		for k, item := range t {
			iv, ok := convertValue(item.Value())
			if !ok {
				continue
			}
			d[k] = iv
		}
		return d, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		arr := make(types.Array, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, ok := convertValue(rv.Index(i).Interface())
			if !ok {
				return nil, false
			}
			arr = append(arr, item)
		}
		return arr, true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		d := make(types.Dict, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			item, ok := convertValue(iter.Value().Interface())
			if !ok {
				continue
			}
			d[iter.Key().String()] = item
		}
		return d, true
	}

	return nil, false
}
