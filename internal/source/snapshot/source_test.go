package snapshot

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-udisks/internal/types"
)

const laptopFixture = "testdata/laptop.yaml"

func TestSource_FetchAll(t *testing.T) {
	src := NewSource(laptopFixture)
	assert.Equal(t, "snapshot:testdata/laptop.yaml", src.Describe())

	graph, err := src.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, graph, 8)

	root := graph["/org/freedesktop/UDisks2/block_devices/nvme0n1"]
	require.NotNil(t, root)
	assert.Equal(t, types.Bytes("/dev/nvme0n1\x00"), root[types.BlockInterface]["Device"])
	assert.Equal(t, types.Uint64(500107862016), root[types.BlockInterface]["Size"])
	assert.Equal(t, types.String("gpt"), root[types.PartitionTableInterface]["Type"])

	p1 := graph["/org/freedesktop/UDisks2/block_devices/nvme0n1p1"]
	conf, ok := p1[types.BlockInterface]["Configuration"].(types.Array)
	require.True(t, ok)
	require.Len(t, conf, 1)
	entry, ok := conf[0].(types.Struct)
	require.True(t, ok)
	assert.Equal(t, types.String("fstab"), entry[0])
	assert.Equal(t, types.Int32(1), entry[1].(types.Dict)["passno"])
}

func TestSource_FetchAll_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewSource(filepath.Join(t.TempDir(), "nope.yaml")).FetchAll(context.Background())
		var srcErr *types.SourceError
		require.ErrorAs(t, err, &srcErr)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewSource(laptopFixture).FetchAll(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unknown type tag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("/a:\n  x.Y:\n    P: {type: zz, value: 1}\n"), 0o644))
		_, err := NewSource(path).FetchAll(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown value type "zz"`)
	})
}

func TestRead_Empty(t *testing.T) {
	graph, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, graph)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "invalid object path key", doc: "relative:\n  x.Y:\n    P: {type: s, value: a}\n"},
		{name: "wrong scalar", doc: "/a:\n  x.Y:\n    P: {type: t, value: abc}\n"},
		{name: "missing value", doc: "/a:\n  x.Y:\n    P: {type: u}\n"},
		{name: "invalid path value", doc: "/a:\n  x.Y:\n    P: {type: o, value: nope}\n"},
		{name: "bad nested item", doc: "/a:\n  x.Y:\n    P: {type: a, items: [{type: b, value: maybe}]}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestWriter_WriteGraph(t *testing.T) {
	graph := types.ManagedObjectGraph{
		"/org/freedesktop/UDisks2/block_devices/sdb": {
			types.BlockInterface: {
				"Device":   types.Bytes("/dev/sdb\x00"),
				"Id":       types.String("by-id-usb-Kingston"),
				"ReadOnly": types.Bool(false),
				"Raw":      types.Bytes{0xff, 0xfe, 0x00},
				"Major":    types.Uint16(8),
				"Weight":   types.Double(0.5),
				"Hint":     types.Int16(-1),
				"Flags":    types.Byte(3),
				"Offset":   types.Int64(-4096),
				"Symlinks": types.Array{types.Bytes("/dev/disk/by-label/USB\x00")},
				"Configuration": types.Array{types.Struct{
					types.String("crypttab"),
					types.Dict{"name": types.Bytes("luks-1\x00"), "opts": types.Array{}},
				}},
			},
			types.PartitionTableInterface: {
				"Type":       types.String("dos"),
				"Partitions": types.Array{types.Path("/org/freedesktop/UDisks2/block_devices/sdb1")},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, NewWriter(path).WriteGraph(context.Background(), graph))

	got, err := NewSource(path).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, graph, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not be left behind")
}

func TestWrite_Unsupported(t *testing.T) {
	graph := types.ManagedObjectGraph{"/a": {"x.Y": {"P": nil}}}
	err := Write(&bytes.Buffer{}, graph)
	assert.Error(t, err)
}
