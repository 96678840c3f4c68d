// Package udisks2 provides a cached, typed view of the storage objects
// published by the UDisks2 service.
//
// A Client fetches the complete managed-object graph in one round trip and
// answers every query from that cached snapshot. Call Update to refresh it.
package udisks2

import (
	"context"
	"io"
	"iter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/deploymenttheory/go-udisks/internal/config"
	"github.com/deploymenttheory/go-udisks/internal/interfaces"
	"github.com/deploymenttheory/go-udisks/internal/logger"
	"github.com/deploymenttheory/go-udisks/internal/metrics"
	"github.com/deploymenttheory/go-udisks/internal/parsers/block"
	"github.com/deploymenttheory/go-udisks/internal/parsers/disks"
	"github.com/deploymenttheory/go-udisks/internal/parsers/drive"
	"github.com/deploymenttheory/go-udisks/internal/services"
	"github.com/deploymenttheory/go-udisks/internal/source/dbussource"
	"github.com/deploymenttheory/go-udisks/internal/source/snapshot"
	"github.com/deploymenttheory/go-udisks/internal/types"
)

type (
	ObjectPath         = types.ObjectPath
	ManagedObjectGraph = types.ManagedObjectGraph
	InterfaceBag       = types.InterfaceBag
	PropertyBag        = types.PropertyBag
	Value              = types.Value

	Drive          = types.Drive
	Block          = types.Block
	PartitionTable = types.PartitionTable
	Disks          = types.Disks
	DiskDevice     = types.DiskDevice

	SourceError  = types.SourceError
	ObjectSource = interfaces.ObjectSource
	Config       = config.Config
)

// ErrSourceUnavailable is wrapped by connection failures.
var ErrSourceUnavailable = types.ErrSourceUnavailable

// Client answers storage queries from a cached managed-object graph.
type Client struct {
	cache  *services.ManagedObjectCache
	source ObjectSource
	closer io.Closer
}

type options struct {
	source     ObjectSource
	config     *Config
	log        *zerolog.Logger
	registerer prometheus.Registerer
}

// Option configures New.
type Option func(*options)

// WithSource reads the graph from source instead of the bus. The caller
// keeps ownership of source.
func WithSource(source ObjectSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithConfig sets the bus address, timeout and snapshot file.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

// WithLogger sets the logger used for refresh events.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = &log
	}
}

// WithRegisterer registers cache metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// New builds a client and performs the initial Update. If that fails no
// client is returned.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := config.Default()
	if o.config != nil {
		cfg = *o.config
	}

	log := logger.WithComponent("udisks2")
	if o.log != nil {
		log = *o.log
	}

	collector, err := metrics.NewCollector(o.registerer, cfg.Metrics)
	if err != nil {
		return nil, err
	}

	c := &Client{source: o.source}
	if c.source == nil {
		if err := c.openSource(cfg); err != nil {
			return nil, err
		}
	}

	c.cache = services.NewManagedObjectCache(c.source,
		services.WithLogger(log),
		services.WithMetrics(collector),
	)

	if err := c.cache.Update(ctx); err != nil {
		c.Close()
		return nil, err
	}

	log.Debug().Str("source", c.source.Describe()).Int("objects", c.cache.Len()).Msg("Client ready")

	return c, nil
}

func (c *Client) openSource(cfg Config) error {
	if cfg.Snapshot != "" {
		c.source = snapshot.NewSource(cfg.Snapshot)
		return nil
	}

	src, err := dbussource.New(cfg.Source)
	if err != nil {
		return err
	}
	c.source = src
	c.closer = src
	return nil
}

// Close releases a bus connection opened by New. Sources supplied with
// WithSource are left open.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}

// Update refetches the whole graph. On failure the previous snapshot stays
// in place and a *SourceError is returned.
func (c *Client) Update(ctx context.Context) error {
	return c.cache.Update(ctx)
}

// Source describes where the graph is read from.
func (c *Client) Source() string {
	return c.source.Describe()
}

// GetDrive returns the drive at path. It reports false both when no object
// has that path and when the object is not a drive; use Has to tell the two
// apart.
func (c *Client) GetDrive(path ObjectPath) (Drive, bool) {
	return services.Lookup(c.cache, path, drive.Parse)
}

// GetDrives yields every object that parses as a drive.
func (c *Client) GetDrives() iter.Seq[Drive] {
	return services.All(c.cache, drive.Parse)
}

// GetBlock returns the block device at path.
func (c *Client) GetBlock(path ObjectPath) (Block, bool) {
	return services.Lookup(c.cache, path, block.Parse)
}

// GetBlocks yields every object that parses as a block device.
func (c *Client) GetBlocks() iter.Seq[Block] {
	return services.All(c.cache, block.Parse)
}

// GetPartitionTable returns the partition table exposed by the block at path.
func (c *Client) GetPartitionTable(path ObjectPath) (PartitionTable, bool) {
	return services.Lookup(c.cache, path, disks.ParsePartitionTable)
}

// GetPartitionTables yields every partition table.
func (c *Client) GetPartitionTables() iter.Seq[PartitionTable] {
	return services.All(c.cache, disks.ParsePartitionTable)
}

// Disks groups drives with their whole-disk block and partitions.
func (c *Client) Disks() Disks {
	return disks.Assemble(c.GetDrives(), c.GetBlocks())
}

// Has reports whether any object exists at path.
func (c *Client) Has(path ObjectPath) bool {
	return c.cache.Has(path)
}

// Interfaces lists the interface names exposed by the object at path.
func (c *Client) Interfaces(path ObjectPath) ([]string, bool) {
	return c.cache.Interfaces(path)
}

// Len returns the number of objects in the cached graph.
func (c *Client) Len() int {
	return c.cache.Len()
}

// LastUpdated returns the time of the last successful Update.
func (c *Client) LastUpdated() time.Time {
	return c.cache.LastUpdated()
}

// Snapshot returns a deep copy of the cached graph.
func (c *Client) Snapshot() ManagedObjectGraph {
	return c.cache.Snapshot()
}
