package disks

import (
	"github.com/deploymenttheory/go-udisks/internal/parsers/values"
	"github.com/deploymenttheory/go-udisks/internal/types"
)

var _ types.ParseFunc[types.PartitionTable] = ParsePartitionTable

// ParsePartitionTable reconstructs a PartitionTable from the
// org.freedesktop.UDisks2.PartitionTable interface of an object. Type is
// mandatory; Partitions defaults to empty.
func ParsePartitionTable(path types.ObjectPath, ifaces types.InterfaceBag) (types.PartitionTable, bool) {
	props, ok := ifaces[types.PartitionTableInterface]
	if !ok {
		return types.PartitionTable{}, false
	}

	tableType, ok := values.String(props, "Type")
	if !ok {
		return types.PartitionTable{}, false
	}

	t := types.PartitionTable{Path: path, Type: tableType}
	t.Partitions, _ = values.ObjectPaths(props, "Partitions")

	return t, true
}
