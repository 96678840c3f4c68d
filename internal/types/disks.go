package types

// PartitionTable is the org.freedesktop.UDisks2.PartitionTable projection of
// an object. The same object normally also exposes a Block.
type PartitionTable struct {
	Path ObjectPath `json:"path" yaml:"path"`

	// Type is mandatory: "dos" or "gpt".
	Type       string       `json:"type" yaml:"type"`
	Partitions []ObjectPath `json:"partitions,omitempty" yaml:"partitions,omitempty"`
}

// Disks groups drives with the block devices that belong to them.
type Disks struct {
	Devices []DiskDevice `json:"devices" yaml:"devices"`
}

// DiskDevice is one drive with its whole-disk block and partitions.
type DiskDevice struct {
	Drive      Drive   `json:"drive" yaml:"drive"`
	Parent     Block   `json:"parent" yaml:"parent"`
	Partitions []Block `json:"partitions,omitempty" yaml:"partitions,omitempty"`
}

// IsPartitioned reports whether the parent block carries a partition table.
func (d DiskDevice) IsPartitioned() bool {
	return d.Parent.Table != nil
}

// Unallocated returns the number of bytes of the parent block not covered by
// any partition. Extended partition containers are not counted twice.
func (d DiskDevice) Unallocated() uint64 {
	var used uint64
	for _, p := range d.Partitions {
		if p.Partition == nil || p.Partition.IsContained {
			continue
		}
		used += p.Partition.Size
	}
	if used >= d.Parent.Size {
		return 0
	}
	return d.Parent.Size - used
}
