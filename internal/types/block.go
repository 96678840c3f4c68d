package types

import "github.com/google/uuid"

// Block is a block device as exposed by org.freedesktop.UDisks2.Block, plus
// the optional per-object interfaces that refine it.
type Block struct {
	Path ObjectPath `json:"path" yaml:"path"`

	// Device is mandatory, e.g. /dev/sda1.
	Device          string   `json:"device" yaml:"device"`
	PreferredDevice string   `json:"preferred_device" yaml:"preferred_device"`
	Symlinks        []string `json:"symlinks,omitempty" yaml:"symlinks,omitempty"`
	DeviceNumber    uint64   `json:"device_number" yaml:"device_number"`
	ID              string   `json:"id" yaml:"id"`
	Size            uint64   `json:"size" yaml:"size"`
	ReadOnly        bool     `json:"read_only" yaml:"read_only"`

	Drive               ObjectPath `json:"drive" yaml:"drive"`
	MDRaid              ObjectPath `json:"mdraid" yaml:"mdraid"`
	MDRaidMember        ObjectPath `json:"mdraid_member" yaml:"mdraid_member"`
	CryptoBackingDevice ObjectPath `json:"crypto_backing_device" yaml:"crypto_backing_device"`

	IDUsage   string `json:"id_usage" yaml:"id_usage"`
	IDType    string `json:"id_type" yaml:"id_type"`
	IDVersion string `json:"id_version" yaml:"id_version"`
	IDLabel   string `json:"id_label" yaml:"id_label"`
	IDUUID    string `json:"id_uuid" yaml:"id_uuid"`

	HintPartitionable    bool   `json:"hint_partitionable" yaml:"hint_partitionable"`
	HintSystem           bool   `json:"hint_system" yaml:"hint_system"`
	HintIgnore           bool   `json:"hint_ignore" yaml:"hint_ignore"`
	HintAuto             bool   `json:"hint_auto" yaml:"hint_auto"`
	HintName             string `json:"hint_name" yaml:"hint_name"`
	HintIconName         string `json:"hint_icon_name" yaml:"hint_icon_name"`
	HintSymbolicIconName string `json:"hint_symbolic_icon_name" yaml:"hint_symbolic_icon_name"`

	UserspaceMountOptions []string            `json:"userspace_mount_options,omitempty" yaml:"userspace_mount_options,omitempty"`
	Configuration         []ConfigurationItem `json:"configuration,omitempty" yaml:"configuration,omitempty"`

	Partition  *BlockPartition  `json:"partition,omitempty" yaml:"partition,omitempty"`
	Table      *PartitionTable  `json:"table,omitempty" yaml:"table,omitempty"`
	Filesystem *BlockFilesystem `json:"filesystem,omitempty" yaml:"filesystem,omitempty"`
	Swapspace  *BlockSwapspace  `json:"swapspace,omitempty" yaml:"swapspace,omitempty"`
	Encrypted  *BlockEncrypted  `json:"encrypted,omitempty" yaml:"encrypted,omitempty"`
	Loop       *BlockLoop       `json:"loop,omitempty" yaml:"loop,omitempty"`
}

// ConfigurationItem is one entry of the Block.Configuration property, e.g.
// an fstab or crypttab line.
type ConfigurationItem struct {
	Kind    string `json:"kind" yaml:"kind"`
	Details Dict   `json:"details" yaml:"details"`
}

// BlockPartition holds org.freedesktop.UDisks2.Partition properties.
type BlockPartition struct {
	// Table is mandatory: the object path of the containing partition table.
	Table       ObjectPath `json:"table" yaml:"table"`
	Number      uint32     `json:"number" yaml:"number"`
	Type        string     `json:"type" yaml:"type"`
	Flags       uint64     `json:"flags" yaml:"flags"`
	Offset      uint64     `json:"offset" yaml:"offset"`
	Size        uint64     `json:"size" yaml:"size"`
	Name        string     `json:"name" yaml:"name"`
	UUID        string     `json:"uuid" yaml:"uuid"`
	IsContainer bool       `json:"is_container" yaml:"is_container"`
	IsContained bool       `json:"is_contained" yaml:"is_contained"`
}

// PartitionUUID parses the partition UUID. MBR partitions use short
// non-UUID identifiers and report false.
func (p BlockPartition) PartitionUUID() (uuid.UUID, bool) {
	return parseUUID(p.UUID)
}

// End returns the offset of the first byte after the partition.
func (p BlockPartition) End() uint64 {
	return p.Offset + p.Size
}

// BlockFilesystem holds org.freedesktop.UDisks2.Filesystem properties.
type BlockFilesystem struct {
	MountPoints []string `json:"mount_points" yaml:"mount_points"`
	Size        uint64   `json:"size" yaml:"size"`
}

// IsMounted reports whether the filesystem has at least one mount point.
func (f BlockFilesystem) IsMounted() bool {
	return len(f.MountPoints) > 0
}

// BlockSwapspace holds org.freedesktop.UDisks2.Swapspace properties.
type BlockSwapspace struct {
	Active bool `json:"active" yaml:"active"`
}

// BlockEncrypted holds org.freedesktop.UDisks2.Encrypted properties.
type BlockEncrypted struct {
	HintEncryptionType string     `json:"hint_encryption_type" yaml:"hint_encryption_type"`
	MetadataSize       uint64     `json:"metadata_size" yaml:"metadata_size"`
	CleartextDevice    ObjectPath `json:"cleartext_device" yaml:"cleartext_device"`
}

// IsUnlocked reports whether a cleartext device is currently set up.
func (e BlockEncrypted) IsUnlocked() bool {
	return e.CleartextDevice != "" && e.CleartextDevice != "/"
}

// BlockLoop holds org.freedesktop.UDisks2.Loop properties.
type BlockLoop struct {
	BackingFile string `json:"backing_file" yaml:"backing_file"`
	Autoclear   bool   `json:"autoclear" yaml:"autoclear"`
	SetupByUID  uint32 `json:"setup_by_uid" yaml:"setup_by_uid"`
}

// IsPartition reports whether the block is a partition of another block.
func (b Block) IsPartition() bool {
	return b.Partition != nil
}

// HasFilesystem reports whether the block carries a filesystem interface.
func (b Block) HasFilesystem() bool {
	return b.Filesystem != nil
}

// HasDrive reports whether the block is backed by a drive object. UDisks2
// uses "/" for "no object".
func (b Block) HasDrive() bool {
	return b.Drive != "" && b.Drive != "/"
}

// FilesystemUUID parses IdUUID. FAT and NTFS serials are not UUIDs and
// report false.
func (b Block) FilesystemUUID() (uuid.UUID, bool) {
	return parseUUID(b.IDUUID)
}

// DisplayName returns the preferred device, falling back to the device node.
func (b Block) DisplayName() string {
	if b.PreferredDevice != "" {
		return b.PreferredDevice
	}
	return b.Device
}

func parseUUID(s string) (uuid.UUID, bool) {
	if len(s) != 36 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
