//go:generate mockgen -destination=mocks/mock_object_source.go -package=mocks github.com/deploymenttheory/go-udisks/internal/interfaces ObjectSource,GraphWriter

package interfaces

import (
	"context"

	"github.com/deploymenttheory/go-udisks/internal/types"
)

// ObjectSource fetches the complete managed-object graph in one round trip
type ObjectSource interface {
	// FetchAll returns every managed object below the source's root path.
	// Failures are reported as *types.SourceError and no partial graph is
	// ever returned.
	FetchAll(ctx context.Context) (types.ManagedObjectGraph, error)

	// Describe returns a short human-readable name for the source, used in
	// logs.
	Describe() string
}

// GraphWriter persists a managed-object graph
type GraphWriter interface {
	WriteGraph(ctx context.Context, graph types.ManagedObjectGraph) error
}
