package inventory

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/deploymenttheory/go-udisks/internal/interfaces"
	"github.com/deploymenttheory/go-udisks/internal/types"
	"github.com/deploymenttheory/go-udisks/pkg/app"
)

// Handle processes an inventory request against the cached graph
func Handle(ctx *app.Context, client Querier, req *Request) (*Response, error) {
	startTime := time.Now()

	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx.Log(fmt.Sprintf("Listing %s from %s", req.Kind, client.Source()))

	response := &Response{
		Kind:   req.Kind,
		Source: client.Source(),
	}

	// 2. Collect records, sorted for stable output
	switch req.Kind {
	case KindDrives:
		for d := range client.GetDrives() {
			if req.Removable && !d.Removable && !d.MediaRemovable {
				continue
			}
			response.Drives = append(response.Drives, d)
		}
		slices.SortFunc(response.Drives, func(a, b types.Drive) int {
			return cmp.Or(cmp.Compare(a.SortKey, b.SortKey), cmp.Compare(a.Path, b.Path))
		})

	case KindBlocks:
		for b := range client.GetBlocks() {
			if req.Filesystem != "" && b.IDType != req.Filesystem {
				continue
			}
			response.Blocks = append(response.Blocks, b)
		}
		slices.SortFunc(response.Blocks, func(a, b types.Block) int {
			return cmp.Compare(a.Path, b.Path)
		})

	case KindTables:
		for t := range client.GetPartitionTables() {
			response.Tables = append(response.Tables, t)
		}
		slices.SortFunc(response.Tables, func(a, b types.PartitionTable) int {
			return cmp.Compare(a.Path, b.Path)
		})

	case KindDisks:
		for _, dev := range client.Disks().Devices {
			if req.Removable && !dev.Drive.Removable && !dev.Drive.MediaRemovable {
				continue
			}
			response.Disks = append(response.Disks, dev)
		}

	case KindObject:
		detail, err := describeObject(client, types.ObjectPath(req.Path))
		if err != nil {
			return nil, err
		}
		response.Object = detail
	}

	response.Took = time.Since(startTime)
	ctx.Log(fmt.Sprintf("Found %d %s in %v", response.Count(), req.Kind, response.Took))

	return response, nil
}

// describeObject collects every view that parses for path. An object that
// exists but matches no known kind still reports its interfaces.
func describeObject(client Querier, path types.ObjectPath) (*ObjectDetail, error) {
	names, ok := client.Interfaces(path)
	if !ok {
		return nil, app.NewError(app.ErrCodeObjectNotFound, fmt.Sprintf("no object at %s", path), nil)
	}

	detail := &ObjectDetail{Path: path, Interfaces: names}
	if d, ok := client.GetDrive(path); ok {
		detail.Drive = &d
	}
	if b, ok := client.GetBlock(path); ok {
		detail.Block = &b
	}
	if t, ok := client.GetPartitionTable(path); ok {
		detail.Table = &t
	}
	return detail, nil
}

// Dump writes the cached graph with writer.
func Dump(ctx *app.Context, client Snapshotter, writer interfaces.GraphWriter, req *DumpRequest) (*DumpResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx.Progress("Copying snapshot...", 10)
	graph := client.Snapshot()

	ctx.Progress("Writing snapshot...", 50)
	if err := writer.WriteGraph(ctx, graph); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", req.OutputPath, err)
	}

	ctx.Progress("Complete", 100)
	ctx.Log(fmt.Sprintf("Wrote %d objects to %s", len(graph), req.OutputPath))

	return &DumpResponse{
		Source:     client.Source(),
		OutputPath: req.OutputPath,
		Objects:    len(graph),
	}, nil
}
