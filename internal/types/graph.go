package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ObjectPath identifies a managed object, e.g.
// /org/freedesktop/UDisks2/block_devices/sda. It is only stable for the
// lifetime of one fetched graph.
type ObjectPath string

// IsValid reports whether p is a syntactically valid D-Bus object path.
func (p ObjectPath) IsValid() bool {
	s := string(p)
	if len(s) == 0 || s[0] != '/' {
		return false
	}
	if s == "/" {
		return true
	}
	if strings.HasSuffix(s, "/") {
		return false
	}
	for _, elem := range strings.Split(s[1:], "/") {
		if elem == "" {
			return false
		}
		for _, r := range elem {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
				return false
			}
		}
	}
	return true
}

// Base returns the last element of the path.
func (p ObjectPath) Base() string {
	s := string(p)
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// PropertyBag maps property names to values for one interface.
type PropertyBag map[string]Value

// InterfaceBag maps interface names to their property bags for one object.
type InterfaceBag map[string]PropertyBag

// Has reports whether every named interface is present.
func (b InterfaceBag) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := b[name]; !ok {
			return false
		}
	}
	return true
}

// Names returns the interface names in sorted order.
func (b InterfaceBag) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ManagedObjectGraph is the full object tree returned by one
// GetManagedObjects call. A graph is installed into a cache as a whole and
// is treated as immutable from then on.
type ManagedObjectGraph map[ObjectPath]InterfaceBag

// Paths returns the object paths in sorted order.
func (g ManagedObjectGraph) Paths() []ObjectPath {
	paths := make([]ObjectPath, 0, len(g))
	for path := range g {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
	return paths
}

// Clone returns a deep copy of the graph.
func (g ManagedObjectGraph) Clone() ManagedObjectGraph {
	if g == nil {
		return nil
	}
	out := make(ManagedObjectGraph, len(g))
	for path, ifaces := range g {
		bag := make(InterfaceBag, len(ifaces))
		for name, props := range ifaces {
			p := make(PropertyBag, len(props))
			for k, v := range props {
				p[k] = CloneValue(v)
			}
			bag[name] = p
		}
		out[path] = bag
	}
	return out
}

// ParseFunc reconstructs a record of type T from one object. It returns
// false when the object is not of that kind or lacks a mandatory field.
type ParseFunc[T any] func(path ObjectPath, ifaces InterfaceBag) (T, bool)

// ErrSourceUnavailable is returned when the object source cannot be reached
// at all, e.g. there is no bus connection.
var ErrSourceUnavailable = errors.New("object source unavailable")

// SourceError reports a failed round trip to the object source.
type SourceError struct {
	Op          string
	Destination string
	Path        ObjectPath
	Err         error
}

func (e *SourceError) Error() string {
	if e.Destination == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s%s: %v", e.Op, e.Destination, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
