package udisks2

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/deploymenttheory/go-udisks/internal/config"
	"github.com/deploymenttheory/go-udisks/internal/interfaces/mocks"
	"github.com/deploymenttheory/go-udisks/internal/logger"
	"github.com/deploymenttheory/go-udisks/internal/types"
)

const (
	laptopFixture = "../../internal/source/snapshot/testdata/laptop.yaml"

	ssdPath     = ObjectPath("/org/freedesktop/UDisks2/drives/Samsung_SSD_980_S64DNX0R123456")
	readerPath  = ObjectPath("/org/freedesktop/UDisks2/drives/Generic_Card_Reader")
	nvmePath    = ObjectPath("/org/freedesktop/UDisks2/block_devices/nvme0n1")
	nvmeP1Path  = ObjectPath("/org/freedesktop/UDisks2/block_devices/nvme0n1p1")
	nvmeP2Path  = ObjectPath("/org/freedesktop/UDisks2/block_devices/nvme0n1p2")
	loopPath    = ObjectPath("/org/freedesktop/UDisks2/block_devices/loop0")
	brokenPath  = ObjectPath("/org/freedesktop/UDisks2/block_devices/broken")
	managerPath = ObjectPath("/org/freedesktop/UDisks2/Manager")
)

func newSnapshotClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.Default()
	cfg.Snapshot = laptopFixture

	c, err := New(context.Background(), WithConfig(cfg), WithLogger(logger.Nop()))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func newMockClient(t *testing.T, graphs ...ManagedObjectGraph) (*Client, *mocks.MockObjectSource) {
	t.Helper()
	ctrl := gomock.NewController(t)
	src := mocks.NewMockObjectSource(ctrl)
	src.EXPECT().Describe().Return("mock").AnyTimes()

	calls := make([]any, 0, len(graphs))
	for _, g := range graphs {
		calls = append(calls, src.EXPECT().FetchAll(gomock.Any()).Return(g, nil))
	}
	gomock.InOrder(calls...)

	c, err := New(context.Background(), WithSource(src), WithLogger(logger.Nop()))
	require.NoError(t, err)
	return c, src
}

func drivePaths(c *Client) []ObjectPath {
	var paths []ObjectPath
	for d := range c.GetDrives() {
		paths = append(paths, d.Path)
	}
	slices.Sort(paths)
	return paths
}

func TestClient_Snapshot(t *testing.T) {
	c := newSnapshotClient(t)
	assert.Equal(t, "snapshot:"+laptopFixture, c.Source())

	assert.Equal(t, []ObjectPath{readerPath, ssdPath}, drivePaths(c))

	ssd, ok := c.GetDrive(ssdPath)
	require.True(t, ok)
	assert.Equal(t, "Samsung-SSD-980-S64DNX0R123456", ssd.ID)
	assert.Equal(t, "Samsung SSD 980 500GB", ssd.DisplayName())
	assert.Empty(t, ssd.MediaCompatibility)

	var devices []string
	for b := range c.GetBlocks() {
		devices = append(devices, b.Device)
	}
	assert.ElementsMatch(t, []string{"/dev/nvme0n1", "/dev/nvme0n1p1", "/dev/nvme0n1p2", "/dev/loop0"}, devices)

	p1, ok := c.GetBlock(nvmeP1Path)
	require.True(t, ok)
	require.Len(t, p1.Configuration, 1)
	assert.Equal(t, "fstab", p1.Configuration[0].Kind)
	require.NotNil(t, p1.Filesystem)
	assert.Equal(t, []string{"/boot/efi"}, p1.Filesystem.MountPoints)

	loop, ok := c.GetBlock(loopPath)
	require.True(t, ok)
	assert.False(t, loop.HasDrive())
	require.NotNil(t, loop.Loop)
	assert.Equal(t, "/var/lib/snapd/snaps/core22_1380.snap", loop.Loop.BackingFile)

	table, ok := c.GetPartitionTable(nvmePath)
	require.True(t, ok)
	assert.Equal(t, "gpt", table.Type)
	assert.Equal(t, []ObjectPath{nvmeP1Path, nvmeP2Path}, table.Partitions)

	var tables int
	for range c.GetPartitionTables() {
		tables++
	}
	assert.Equal(t, 1, tables)
}

func TestClient_Disks(t *testing.T) {
	c := newSnapshotClient(t)

	d := c.Disks()
	require.Len(t, d.Devices, 1, "the card reader has no media")

	dev := d.Devices[0]
	assert.Equal(t, ssdPath, dev.Drive.Path)
	assert.Equal(t, nvmePath, dev.Parent.Path)
	require.Len(t, dev.Partitions, 2)
	assert.Equal(t, nvmeP1Path, dev.Partitions[0].Path)
	assert.Equal(t, nvmeP2Path, dev.Partitions[1].Path)
	assert.Equal(t, uint64(1097728), dev.Unallocated())
}

func TestClient_GateAndMandatoryFields(t *testing.T) {
	c := newSnapshotClient(t)

	tests := []struct {
		name      string
		path      ObjectPath
		wantDrive bool
		wantBlock bool
	}{
		{name: "drive", path: ssdPath, wantDrive: true},
		{name: "whole disk", path: nvmePath, wantBlock: true},
		{name: "manager is neither", path: managerPath},
		{name: "block without device", path: brokenPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := c.GetDrive(tt.path)
			assert.Equal(t, tt.wantDrive, ok)
			_, ok = c.GetBlock(tt.path)
			assert.Equal(t, tt.wantBlock, ok)
			assert.True(t, c.Has(tt.path))
		})
	}
}

func TestClient_IdentityAmbiguity(t *testing.T) {
	c := newSnapshotClient(t)

	_, ok := c.GetDrive(nvmePath)
	assert.False(t, ok)
	_, ok = c.GetDrive("/org/freedesktop/UDisks2/drives/missing")
	assert.False(t, ok)

	assert.True(t, c.Has(nvmePath))
	assert.False(t, c.Has("/org/freedesktop/UDisks2/drives/missing"))

	names, ok := c.Interfaces(nvmePath)
	require.True(t, ok)
	assert.Equal(t, []string{types.BlockInterface, types.PartitionTableInterface}, names)
}

func TestClient_IdempotentRead(t *testing.T) {
	c := newSnapshotClient(t)

	first := drivePaths(c)
	second := drivePaths(c)
	assert.Equal(t, first, second)

	blocks := c.GetBlocks()
	var a, b []string
	for blk := range blocks {
		a = append(a, blk.Device)
	}
	for blk := range blocks {
		b = append(b, blk.Device)
	}
	assert.ElementsMatch(t, a, b, "a sequence can be ranged more than once")
}

func TestClient_DualInterfaceObject(t *testing.T) {
	const path = ObjectPath("/org/freedesktop/UDisks2/odd")
	graph := ManagedObjectGraph{
		path: {
			types.DriveInterface: {"Id": types.String("odd")},
			types.BlockInterface: {"Device": types.Bytes("/dev/odd\x00")},
		},
	}

	c, _ := newMockClient(t, graph)

	d, ok := c.GetDrive(path)
	require.True(t, ok)
	assert.Equal(t, "odd", d.ID)

	b, ok := c.GetBlock(path)
	require.True(t, ok)
	assert.Equal(t, "/dev/odd", b.Device)

	assert.Equal(t, []ObjectPath{path}, drivePaths(c))
	var blocks int
	for range c.GetBlocks() {
		blocks++
	}
	assert.Equal(t, 1, blocks)
}

func TestClient_UpdateReplacesGraph(t *testing.T) {
	const (
		a = ObjectPath("/org/freedesktop/UDisks2/drives/A")
		b = ObjectPath("/org/freedesktop/UDisks2/drives/B")
	)

	c, _ := newMockClient(t,
		ManagedObjectGraph{a: {types.DriveInterface: {"Id": types.String("A")}}},
		ManagedObjectGraph{b: {types.DriveInterface: {"Id": types.String("B")}}},
	)
	assert.Equal(t, []ObjectPath{a}, drivePaths(c))

	require.NoError(t, c.Update(context.Background()))
	assert.Equal(t, []ObjectPath{b}, drivePaths(c))

	_, ok := c.GetDrive(a)
	assert.False(t, ok)
}

func TestClient_FailedUpdateKeepsSnapshot(t *testing.T) {
	const a = ObjectPath("/org/freedesktop/UDisks2/drives/A")

	c, src := newMockClient(t, ManagedObjectGraph{a: {types.DriveInterface: {"Id": types.String("A")}}})
	src.EXPECT().FetchAll(gomock.Any()).Return(nil, context.DeadlineExceeded)

	err := c.Update(context.Background())
	require.Error(t, err)

	var srcErr *SourceError
	assert.ErrorAs(t, err, &srcErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, []ObjectPath{a}, drivePaths(c))
}

func TestNew_Failure(t *testing.T) {
	t.Run("initial fetch fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := mocks.NewMockObjectSource(ctrl)
		src.EXPECT().Describe().Return("mock").AnyTimes()
		src.EXPECT().FetchAll(gomock.Any()).Return(nil, errors.New("no such service"))

		c, err := New(context.Background(), WithSource(src), WithLogger(logger.Nop()))
		assert.Nil(t, c)

		var srcErr *SourceError
		assert.ErrorAs(t, err, &srcErr)
	})

	t.Run("missing snapshot", func(t *testing.T) {
		cfg := config.Default()
		cfg.Snapshot = filepath.Join(t.TempDir(), "missing.yaml")

		c, err := New(context.Background(), WithConfig(cfg), WithLogger(logger.Nop()))
		assert.Nil(t, c)
		assert.Error(t, err)
	})
}

func TestNew_Registerer(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := config.Default()
	cfg.Snapshot = laptopFixture

	c, err := New(context.Background(), WithConfig(cfg), WithLogger(logger.Nop()), WithRegisterer(reg))
	require.NoError(t, err)
	defer c.Close()

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "udisks_cache_objects" {
			found = true
			assert.Equal(t, 8.0, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
}

func TestClient_LenAndLastUpdated(t *testing.T) {
	c := newSnapshotClient(t)
	assert.Equal(t, 8, c.Len())
	assert.False(t, c.LastUpdated().IsZero())

	before := c.LastUpdated()
	require.NoError(t, c.Update(context.Background()))
	assert.False(t, c.LastUpdated().Before(before))
}
