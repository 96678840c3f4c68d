package disks

import (
	"iter"
	"sort"

	"github.com/deploymenttheory/go-udisks/internal/types"
)

// Assemble groups drives with their whole-disk block and partitions.
//
// A drive's parent is the non-partition block whose Drive property points at
// it; when several do, the lowest object path wins. Partitions are the
// blocks whose Partition.Table is the parent, ordered by number. Drives without a parent block (e.g. an empty
// card reader slot) are omitted.
func Assemble(drives iter.Seq[types.Drive], blocks iter.Seq[types.Block]) types.Disks {
	parents := make(map[types.ObjectPath]types.Block)
	children := make(map[types.ObjectPath][]types.Block)

	for b := range blocks {
		if b.Partition != nil {
			children[b.Partition.Table] = append(children[b.Partition.Table], b)
			continue
		}
		if !b.HasDrive() {
			continue
		}
		if existing, ok := parents[b.Drive]; ok && existing.Path < b.Path {
			continue
		}
		parents[b.Drive] = b
	}

	var devices []types.DiskDevice
	for d := range drives {
		parent, ok := parents[d.Path]
		if !ok {
			continue
		}

		partitions := children[parent.Path]
		sort.Slice(partitions, func(i, j int) bool {
			return partitions[i].Partition.Number < partitions[j].Partition.Number
		})

		devices = append(devices, types.DiskDevice{
			Drive:      d,
			Parent:     parent,
			Partitions: partitions,
		})
	}

	sort.Slice(devices, func(i, j int) bool {
		a, b := devices[i].Drive, devices[j].Drive
		if a.SortKey != b.SortKey {
			return a.SortKey < b.SortKey
		}
		return a.Path < b.Path
	})

	return types.Disks{Devices: devices}
}
