// Package snapshot stores managed-object graphs as YAML documents.
//
// Each property value is written with its D-Bus signature so that a graph
// read back from disk parses exactly like one fetched from the bus:
//
//	/org/freedesktop/UDisks2/drives/disk0:
//	  org.freedesktop.UDisks2.Drive:
//	    Id: {type: s, value: disk0}
//	    Size: {type: t, value: 500107862016}
//	    MediaCompatibility: {type: a, items: [{type: s, value: thumb}]}
package snapshot

import (
	"encoding/base64"
	"fmt"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-udisks/internal/types"
)

// Type tags for container values. Scalars use their D-Bus signature.
const (
	tagArray   = "a"
	tagStruct  = "r"
	tagDict    = "a{sv}"
	tagBytes   = "ay"
	tagBytes64 = "ay64"
)

// Document is the on-disk layout of a graph.
type Document map[string]map[string]map[string]Node

// Node is one encoded property value.
type Node struct {
	Type    string          `yaml:"type"`
	Value   yaml.Node       `yaml:"value,omitempty"`
	Items   []Node          `yaml:"items,omitempty"`
	Entries map[string]Node `yaml:"entries,omitempty"`
}

// Encode converts a graph into its document form.
func Encode(graph types.ManagedObjectGraph) (Document, error) {
	doc := make(Document, len(graph))
	for path, ifaces := range graph {
		bag := make(map[string]map[string]Node, len(ifaces))
		for name, props := range ifaces {
			enc := make(map[string]Node, len(props))
			for prop, v := range props {
				n, err := encodeValue(v)
				if err != nil {
					return nil, fmt.Errorf("%s %s.%s: %w", path, name, prop, err)
				}
				enc[prop] = n
			}
			bag[name] = enc
		}
		doc[string(path)] = bag
	}
	return doc, nil
}

// Decode converts a document back into a graph. Unlike the accessors, a
// malformed document is an error: snapshots are written by Encode.
func Decode(doc Document) (types.ManagedObjectGraph, error) {
	graph := make(types.ManagedObjectGraph, len(doc))
	for path, ifaces := range doc {
		if !types.ObjectPath(path).IsValid() {
			return nil, fmt.Errorf("invalid object path %q", path)
		}
		bag := make(types.InterfaceBag, len(ifaces))
		for name, props := range ifaces {
			pb := make(types.PropertyBag, len(props))
			for prop, n := range props {
				v, err := decodeValue(n)
				if err != nil {
					return nil, fmt.Errorf("%s %s.%s: %w", path, name, prop, err)
				}
				pb[prop] = v
			}
			bag[name] = pb
		}
		graph[types.ObjectPath(path)] = bag
	}
	return graph, nil
}

func scalar(tag string, v interface{}) (Node, error) {
	n := Node{Type: tag}
	if err := n.Value.Encode(v); err != nil {
		return Node{}, err
	}
	return n, nil
}

func encodeValue(v types.Value) (Node, error) {
	switch t := v.(type) {
	case types.String:
		return scalar(t.Signature(), string(t))
	case types.Bool:
		return scalar(t.Signature(), bool(t))
	case types.Byte:
		return scalar(t.Signature(), uint8(t))
	case types.Int16:
		return scalar(t.Signature(), int16(t))
	case types.Uint16:
		return scalar(t.Signature(), uint16(t))
	case types.Int32:
		return scalar(t.Signature(), int32(t))
	case types.Uint32:
		return scalar(t.Signature(), uint32(t))
	case types.Int64:
		return scalar(t.Signature(), int64(t))
	case types.Uint64:
		return scalar(t.Signature(), uint64(t))
	case types.Double:
		return scalar(t.Signature(), float64(t))
	case types.Path:
		return scalar(t.Signature(), string(t))
	case types.Bytes:
		if utf8.Valid(t) {
			return scalar(tagBytes, string(t))
		}
		return scalar(tagBytes64, base64.StdEncoding.EncodeToString(t))
	case types.Array:
		items, err := encodeItems(t)
		return Node{Type: tagArray, Items: items}, err
	case types.Struct:
		items, err := encodeItems(t)
		return Node{Type: tagStruct, Items: items}, err
	case types.Dict:
		entries := make(map[string]Node, len(t))
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			n, err := encodeValue(t[k])
			if err != nil {
				return Node{}, err
			}
			entries[k] = n
		}
		return Node{Type: tagDict, Entries: entries}, nil
	case nil:
		return Node{}, fmt.Errorf("nil value")
	default:
		return Node{}, fmt.Errorf("unsupported value %T", v)
	}
}

func encodeItems(vs []types.Value) ([]Node, error) {
	items := make([]Node, 0, len(vs))
	for _, v := range vs {
		n, err := encodeValue(v)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, nil
}

func decodeScalar[T any](n Node) (T, error) {
	var out T
	if n.Value.Kind == 0 {
		return out, fmt.Errorf("type %q requires a value", n.Type)
	}
	if err := n.Value.Decode(&out); err != nil {
		return out, fmt.Errorf("type %q: %w", n.Type, err)
	}
	return out, nil
}

func decodeValue(n Node) (types.Value, error) {
	switch n.Type {
	case "s":
		v, err := decodeScalar[string](n)
		return types.String(v), err
	case "b":
		v, err := decodeScalar[bool](n)
		return types.Bool(v), err
	case "y":
		v, err := decodeScalar[uint8](n)
		return types.Byte(v), err
	case "n":
		v, err := decodeScalar[int16](n)
		return types.Int16(v), err
	case "q":
		v, err := decodeScalar[uint16](n)
		return types.Uint16(v), err
	case "i":
		v, err := decodeScalar[int32](n)
		return types.Int32(v), err
	case "u":
		v, err := decodeScalar[uint32](n)
		return types.Uint32(v), err
	case "x":
		v, err := decodeScalar[int64](n)
		return types.Int64(v), err
	case "t":
		v, err := decodeScalar[uint64](n)
		return types.Uint64(v), err
	case "d":
		v, err := decodeScalar[float64](n)
		return types.Double(v), err
	case "o":
		v, err := decodeScalar[string](n)
		if err == nil && !types.ObjectPath(v).IsValid() {
			err = fmt.Errorf("invalid object path %q", v)
		}
		return types.Path(v), err
	case tagBytes:
		v, err := decodeScalar[string](n)
		return types.Bytes(v), err
	case tagBytes64:
		s, err := decodeScalar[string](n)
		if err != nil {
			return nil, err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		return types.Bytes(b), err
	case tagArray:
		items, err := decodeItems(n.Items)
		return types.Array(items), err
	case tagStruct:
		items, err := decodeItems(n.Items)
		return types.Struct(items), err
	case tagDict:
		d := make(types.Dict, len(n.Entries))
		for k, e := range n.Entries {
			v, err := decodeValue(e)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", k, err)
			}
			d[k] = v
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown value type %q", n.Type)
	}
}

func decodeItems(nodes []Node) ([]types.Value, error) {
	items := make([]types.Value, 0, len(nodes))
	for i, n := range nodes {
		v, err := decodeValue(n)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, v)
	}
	return items, nil
}
