package block

import (
	"github.com/deploymenttheory/go-udisks/internal/parsers/values"
	"github.com/deploymenttheory/go-udisks/internal/types"
)

// parsePartition reads the Partition interface. Table is mandatory.
func parsePartition(ifaces types.InterfaceBag) (types.BlockPartition, bool) {
	props, ok := ifaces[types.PartitionInterface]
	if !ok {
		return types.BlockPartition{}, false
	}

	table, ok := values.ObjectPath(props, "Table")
	if !ok {
		return types.BlockPartition{}, false
	}

	p := types.BlockPartition{Table: table}
	p.Number, _ = values.Uint32(props, "Number")
	p.Type, _ = values.String(props, "Type")
	p.Flags, _ = values.Uint64(props, "Flags")
	p.Offset, _ = values.Uint64(props, "Offset")
	p.Size, _ = values.Uint64(props, "Size")
	p.Name, _ = values.String(props, "Name")
	p.UUID, _ = values.String(props, "UUID")
	p.IsContainer, _ = values.Bool(props, "IsContainer")
	p.IsContained, _ = values.Bool(props, "IsContained")

	return p, true
}

func parseFilesystem(ifaces types.InterfaceBag) (types.BlockFilesystem, bool) {
	props, ok := ifaces[types.FilesystemInterface]
	if !ok {
		return types.BlockFilesystem{}, false
	}

	var f types.BlockFilesystem
	f.MountPoints, _ = values.ByteStrings(props, "MountPoints")
	f.Size, _ = values.Uint64(props, "Size")

	return f, true
}

func parseSwapspace(ifaces types.InterfaceBag) (types.BlockSwapspace, bool) {
	props, ok := ifaces[types.SwapspaceInterface]
	if !ok {
		return types.BlockSwapspace{}, false
	}

	active, ok := values.Bool(props, "Active")
	if !ok {
		return types.BlockSwapspace{}, false
	}

	return types.BlockSwapspace{Active: active}, true
}

func parseEncrypted(ifaces types.InterfaceBag) (types.BlockEncrypted, bool) {
	props, ok := ifaces[types.EncryptedInterface]
	if !ok {
		return types.BlockEncrypted{}, false
	}

	var e types.BlockEncrypted
	e.HintEncryptionType, _ = values.String(props, "HintEncryptionType")
	e.MetadataSize, _ = values.Uint64(props, "MetadataSize")
	e.CleartextDevice, _ = values.ObjectPath(props, "CleartextDevice")

	return e, true
}

// parseLoop reads the Loop interface. BackingFile is mandatory.
func parseLoop(ifaces types.InterfaceBag) (types.BlockLoop, bool) {
	props, ok := ifaces[types.LoopInterface]
	if !ok {
		return types.BlockLoop{}, false
	}

	backing, ok := values.ByteString(props, "BackingFile")
	if !ok {
		return types.BlockLoop{}, false
	}

	l := types.BlockLoop{BackingFile: backing}
	l.Autoclear, _ = values.Bool(props, "Autoclear")
	l.SetupByUID, _ = values.Uint32(props, "SetupByUID")

	return l, true
}
