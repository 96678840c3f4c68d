package types

import "time"

// Well-known UDisks2 service identity.
const (
	DefaultDestination = "org.freedesktop.UDisks2"
	DefaultRootPath    = ObjectPath("/org/freedesktop/UDisks2")
	DefaultTimeout     = 3000 * time.Millisecond

	ObjectManagerInterface  = "org.freedesktop.DBus.ObjectManager"
	GetManagedObjectsMethod = ObjectManagerInterface + ".GetManagedObjects"
)

// UDisks2 interface names.
const (
	DriveInterface          = "org.freedesktop.UDisks2.Drive"
	BlockInterface          = "org.freedesktop.UDisks2.Block"
	PartitionInterface      = "org.freedesktop.UDisks2.Partition"
	PartitionTableInterface = "org.freedesktop.UDisks2.PartitionTable"
	FilesystemInterface     = "org.freedesktop.UDisks2.Filesystem"
	SwapspaceInterface      = "org.freedesktop.UDisks2.Swapspace"
	EncryptedInterface      = "org.freedesktop.UDisks2.Encrypted"
	LoopInterface           = "org.freedesktop.UDisks2.Loop"
)
