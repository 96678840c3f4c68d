package services

import (
	"context"
	"errors"
	"iter"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/deploymenttheory/go-udisks/internal/interfaces"
	"github.com/deploymenttheory/go-udisks/internal/logger"
	"github.com/deploymenttheory/go-udisks/internal/metrics"
	"github.com/deploymenttheory/go-udisks/internal/types"
)

// ManagedObjectCache holds the last graph fetched from an ObjectSource.
//
// The graph is only ever replaced as a whole by Update. Queries read a
// reference to the current graph under a read lock and then work on that
// snapshot without holding the lock, so a concurrent Update never changes
// what an in-progress iteration sees.
type ManagedObjectCache struct {
	source  interfaces.ObjectSource
	log     zerolog.Logger
	metrics *metrics.Collector

	mu          sync.RWMutex
	graph       types.ManagedObjectGraph
	lastUpdated time.Time
	updateMu    sync.Mutex
}

// CacheOption configures a ManagedObjectCache.
type CacheOption func(*ManagedObjectCache)

// WithLogger sets the logger used for refresh events.
func WithLogger(log zerolog.Logger) CacheOption {
	return func(c *ManagedObjectCache) {
		c.log = log
	}
}

// WithMetrics records refreshes with collector.
func WithMetrics(collector *metrics.Collector) CacheOption {
	return func(c *ManagedObjectCache) {
		c.metrics = collector
	}
}

// NewManagedObjectCache creates an empty cache over source. No round trip is
// made until Update is called.
func NewManagedObjectCache(source interfaces.ObjectSource, opts ...CacheOption) *ManagedObjectCache {
	c := &ManagedObjectCache{
		source: source,
		log:    logger.WithComponent("cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update fetches the full graph and replaces the cached one. On failure the
// previous snapshot is kept and the error is returned as a
// *types.SourceError. Update never retries.
func (c *ManagedObjectCache) Update(ctx context.Context) error {
	// Serializes refreshes; the read lock below stays free for queries
	// while the round trip is in flight.
	c.updateMu.Lock()
	defer c.updateMu.Unlock()

	start := time.Now()
	graph, err := c.source.FetchAll(ctx)
	if err != nil {
		err = asSourceError(err)
		c.metrics.ObserveUpdate(start, 0, err)
		c.log.Warn().Err(err).Str("source", c.source.Describe()).Msg("Managed object refresh failed, keeping previous snapshot")
		return err
	}
	if graph == nil {
		graph = types.ManagedObjectGraph{}
	}

	c.mu.Lock()
	c.graph = graph
	c.lastUpdated = time.Now()
	c.mu.Unlock()

	c.metrics.ObserveUpdate(start, len(graph), nil)
	c.log.Debug().
		Str("source", c.source.Describe()).
		Int("objects", len(graph)).
		Dur("duration", time.Since(start)).
		Msg("Managed objects refreshed")

	return nil
}

// snapshot returns the current graph. Callers must not modify it.
func (c *ManagedObjectCache) snapshot() types.ManagedObjectGraph {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.graph
}

// Populated reports whether at least one Update has succeeded.
func (c *ManagedObjectCache) Populated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.graph != nil
}

// LastUpdated returns the time of the last successful Update.
func (c *ManagedObjectCache) LastUpdated() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdated
}

// Len returns the number of objects in the current snapshot.
func (c *ManagedObjectCache) Len() int {
	return len(c.snapshot())
}

// Has reports whether an object with the given path exists, regardless of
// which interfaces it exposes.
func (c *ManagedObjectCache) Has(path types.ObjectPath) bool {
	_, ok := c.snapshot()[path]
	return ok
}

// Interfaces returns the interface names exposed by path, sorted.
func (c *ManagedObjectCache) Interfaces(path types.ObjectPath) ([]string, bool) {
	ifaces, ok := c.snapshot()[path]
	if !ok {
		return nil, false
	}
	return ifaces.Names(), true
}

// Snapshot returns a deep copy of the current graph.
func (c *ManagedObjectCache) Snapshot() types.ManagedObjectGraph {
	g := c.snapshot()
	if g == nil {
		return types.ManagedObjectGraph{}
	}
	return g.Clone()
}

// Lookup parses the object at path with parse. A missing object and an
// object of a different kind both report false.
func Lookup[T any](c *ManagedObjectCache, path types.ObjectPath, parse types.ParseFunc[T]) (T, bool) {
	ifaces, ok := c.snapshot()[path]
	if !ok {
		var zero T
		return zero, false
	}
	return parse(path, ifaces)
}

// All returns a lazy sequence of every object that parse accepts. Each
// iteration reads the snapshot current at the time it starts, so ranging
// twice between updates yields the same records. Order is unspecified.
func All[T any](c *ManagedObjectCache, parse types.ParseFunc[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for path, ifaces := range c.snapshot() {
			record, ok := parse(path, ifaces)
			if !ok {
				continue
			}
			if !yield(record) {
				return
			}
		}
	}
}

func asSourceError(err error) error {
	var srcErr *types.SourceError
	if errors.As(err, &srcErr) {
		return err
	}
	return &types.SourceError{Op: "fetch", Err: err}
}
