package inventory

import (
	"fmt"
	"iter"
	"time"

	"github.com/deploymenttheory/go-udisks/internal/types"
)

// Kind selects what a request lists.
type Kind string

const (
	KindDrives Kind = "drives"
	KindBlocks Kind = "blocks"
	KindTables Kind = "tables"
	KindDisks  Kind = "disks"
	KindObject Kind = "object"
)

// ListKinds are the kinds accepted by the list command, in display order.
var ListKinds = []Kind{KindDrives, KindBlocks, KindTables, KindDisks}

// Querier is the read side of a udisks2 client.
type Querier interface {
	Source() string
	GetDrive(path types.ObjectPath) (types.Drive, bool)
	GetDrives() iter.Seq[types.Drive]
	GetBlock(path types.ObjectPath) (types.Block, bool)
	GetBlocks() iter.Seq[types.Block]
	GetPartitionTable(path types.ObjectPath) (types.PartitionTable, bool)
	GetPartitionTables() iter.Seq[types.PartitionTable]
	Disks() types.Disks
	Has(path types.ObjectPath) bool
	Interfaces(path types.ObjectPath) ([]string, bool)
}

// Snapshotter returns a copy of the cached graph.
type Snapshotter interface {
	Source() string
	Snapshot() types.ManagedObjectGraph
}

// Request represents an inventory query
type Request struct {
	Kind Kind

	// Path is the object to show when Kind is KindObject.
	Path string

	// Filters for drives and blocks
	Removable  bool
	Filesystem string
}

// Response represents inventory results
type Response struct {
	Kind   Kind          `json:"kind" yaml:"kind"`
	Source string        `json:"source" yaml:"source"`
	Took   time.Duration `json:"took" yaml:"took"`

	Drives []types.Drive          `json:"drives,omitempty" yaml:"drives,omitempty"`
	Blocks []types.Block          `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Tables []types.PartitionTable `json:"tables,omitempty" yaml:"tables,omitempty"`
	Disks  []types.DiskDevice     `json:"disks,omitempty" yaml:"disks,omitempty"`
	Object *ObjectDetail          `json:"object,omitempty" yaml:"object,omitempty"`
}

// Count returns the number of listed records.
func (r *Response) Count() int {
	switch r.Kind {
	case KindDrives:
		return len(r.Drives)
	case KindBlocks:
		return len(r.Blocks)
	case KindTables:
		return len(r.Tables)
	case KindDisks:
		return len(r.Disks)
	case KindObject:
		if r.Object != nil {
			return 1
		}
	}
	return 0
}

// ObjectDetail is every typed view of a single object.
type ObjectDetail struct {
	Path       types.ObjectPath      `json:"path" yaml:"path"`
	Interfaces []string              `json:"interfaces" yaml:"interfaces"`
	Drive      *types.Drive          `json:"drive,omitempty" yaml:"drive,omitempty"`
	Block      *types.Block          `json:"block,omitempty" yaml:"block,omitempty"`
	Table      *types.PartitionTable `json:"table,omitempty" yaml:"table,omitempty"`
}

// DumpRequest represents a snapshot export
type DumpRequest struct {
	OutputPath string
}

// DumpResponse summarizes a written snapshot
type DumpResponse struct {
	Source     string `json:"source" yaml:"source"`
	OutputPath string `json:"output_path" yaml:"output_path"`
	Objects    int    `json:"objects" yaml:"objects"`
}

// FormatSize returns a human-readable size string
func FormatSize(size uint64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := uint64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
