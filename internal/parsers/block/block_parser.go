package block

import (
	"github.com/deploymenttheory/go-udisks/internal/parsers/disks"
	"github.com/deploymenttheory/go-udisks/internal/parsers/values"
	"github.com/deploymenttheory/go-udisks/internal/types"
)

var _ types.ParseFunc[types.Block] = Parse

// Parse reconstructs a Block from the org.freedesktop.UDisks2.Block interface
// of an object. Device is mandatory. The Partition, PartitionTable,
// Filesystem, Swapspace, Encrypted and Loop interfaces of the same object
// fill the optional sub-records; one that fails to parse is left nil.
func Parse(path types.ObjectPath, ifaces types.InterfaceBag) (types.Block, bool) {
	props, ok := ifaces[types.BlockInterface]
	if !ok {
		return types.Block{}, false
	}

	device, ok := values.ByteString(props, "Device")
	if !ok {
		return types.Block{}, false
	}

	b := types.Block{Path: path, Device: device}

	b.PreferredDevice, _ = values.ByteString(props, "PreferredDevice")
	b.Symlinks, _ = values.ByteStrings(props, "Symlinks")
	b.DeviceNumber, _ = values.Uint64(props, "DeviceNumber")
	b.ID, _ = values.String(props, "Id")
	b.Size, _ = values.Uint64(props, "Size")
	b.ReadOnly, _ = values.Bool(props, "ReadOnly")

	b.Drive, _ = values.ObjectPath(props, "Drive")
	b.MDRaid, _ = values.ObjectPath(props, "MDRaid")
	b.MDRaidMember, _ = values.ObjectPath(props, "MDRaidMember")
	b.CryptoBackingDevice, _ = values.ObjectPath(props, "CryptoBackingDevice")

	b.IDUsage, _ = values.String(props, "IdUsage")
	b.IDType, _ = values.String(props, "IdType")
	b.IDVersion, _ = values.String(props, "IdVersion")
	b.IDLabel, _ = values.String(props, "IdLabel")
	b.IDUUID, _ = values.String(props, "IdUUID")

	b.HintPartitionable, _ = values.Bool(props, "HintPartitionable")
	b.HintSystem, _ = values.Bool(props, "HintSystem")
	b.HintIgnore, _ = values.Bool(props, "HintIgnore")
	b.HintAuto, _ = values.Bool(props, "HintAuto")
	b.HintName, _ = values.String(props, "HintName")
	b.HintIconName, _ = values.String(props, "HintIconName")
	b.HintSymbolicIconName, _ = values.String(props, "HintSymbolicIconName")

	b.UserspaceMountOptions, _ = values.Strings(props, "UserspaceMountOptions")
	b.Configuration = parseConfiguration(props)

	if p, ok := parsePartition(ifaces); ok {
		b.Partition = &p
	}
	if t, ok := disks.ParsePartitionTable(path, ifaces); ok {
		b.Table = &t
	}
	if f, ok := parseFilesystem(ifaces); ok {
		b.Filesystem = &f
	}
	if s, ok := parseSwapspace(ifaces); ok {
		b.Swapspace = &s
	}
	if e, ok := parseEncrypted(ifaces); ok {
		b.Encrypted = &e
	}
	if l, ok := parseLoop(ifaces); ok {
		b.Loop = &l
	}

	return b, true
}

// parseConfiguration reads the a(sa{sv}) Configuration property. Entries
// that do not have that shape are skipped.
func parseConfiguration(props types.PropertyBag) []types.ConfigurationItem {
	entries, ok := values.Structs(props, "Configuration")
	if !ok {
		return nil
	}

	var items []types.ConfigurationItem
	for _, fields := range entries {
		if len(fields) != 2 {
			continue
		}
		kind, ok := fields[0].(types.String)
		if !ok {
			continue
		}
		details, ok := fields[1].(types.Dict)
		if !ok {
			continue
		}
		items = append(items, types.ConfigurationItem{Kind: string(kind), Details: details})
	}
	return items
}
