package inventory

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFormatOutput(t *testing.T) {
	client := newTestClient(t)

	disks, err := Handle(newTestContext(), client, &Request{Kind: KindDisks})
	require.NoError(t, err)

	tests := []struct {
		name     string
		format   string
		wantErr  bool
		validate func(*testing.T, string)
	}{
		{
			name:   "table format",
			format: "table",
			validate: func(t *testing.T, output string) {
				assert.Contains(t, output, "DEVICE")
				assert.Contains(t, output, "/dev/nvme0n1")
				assert.Contains(t, output, "/boot/efi")
				assert.Contains(t, output, "gpt")
				assert.Contains(t, output, "(free)")
				assert.Contains(t, output, "1 disk totaling 465.8 GiB")
			},
		},
		{
			name:   "json format",
			format: "json",
			validate: func(t *testing.T, output string) {
				var decoded map[string]any
				require.NoError(t, json.Unmarshal([]byte(output), &decoded))
				assert.Equal(t, "disks", decoded["kind"])
				assert.Len(t, decoded["disks"], 1)
			},
		},
		{
			name:   "yaml format",
			format: "yaml",
			validate: func(t *testing.T, output string) {
				var decoded map[string]any
				require.NoError(t, yaml.Unmarshal([]byte(output), &decoded))
				assert.Equal(t, "disks", decoded["kind"])
			},
		},
		{
			name:    "unsupported format",
			format:  "csv",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := FormatOutput(&buf, disks, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, buf.String())
		})
	}
}

func TestFormatOutput_Kinds(t *testing.T) {
	client := newTestClient(t)

	tests := []struct {
		request *Request
		want    []string
	}{
		{&Request{Kind: KindDrives}, []string{"NAME", "Samsung SSD 980 500GB", "Card Reader", "2 drives"}},
		{&Request{Kind: KindBlocks}, []string{"MOUNTPOINTS", "/dev/loop0", "squashfs", "root", "4 blocks"}},
		{&Request{Kind: KindTables}, []string{"PARTITIONS", "nvme0n1", "1 table"}},
		{&Request{Kind: KindBlocks, Filesystem: "btrfs"}, []string{"No blocks found."}},
		{
			&Request{Kind: KindObject, Path: "/org/freedesktop/UDisks2/block_devices/nvme0n1p1"},
			[]string{"Interfaces:", "org.freedesktop.UDisks2.Partition", "Partition:", "1 of nvme0n1", "Configured:", "fstab"},
		},
		{
			&Request{Kind: KindObject, Path: "/org/freedesktop/UDisks2/drives/Samsung_SSD_980_S64DNX0R123456"},
			[]string{"Drive:", "S64DNX0R123456", "Detected:", "2023-11-14"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.request.Kind), func(t *testing.T) {
			resp, err := Handle(newTestContext(), client, tt.request)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, FormatOutput(&buf, resp, "table"))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestFormatDump(t *testing.T) {
	resp := &DumpResponse{Source: "dbus:system:org.freedesktop.UDisks2/org/freedesktop/UDisks2", OutputPath: "out.yaml", Objects: 8}

	var buf bytes.Buffer
	require.NoError(t, FormatDump(&buf, resp, "table"))
	assert.Equal(t, "Wrote 8 objects from dbus:system:org.freedesktop.UDisks2/org/freedesktop/UDisks2 to out.yaml\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatDump(&buf, resp, "json"))
	assert.JSONEq(t, `{"source":"dbus:system:org.freedesktop.UDisks2/org/freedesktop/UDisks2","output_path":"out.yaml","objects":8}`, buf.String())

	assert.Error(t, FormatDump(&buf, resp, "xml"))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{536870912, "512.0 MiB"},
		{500107862016, "465.8 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.size))
	}
}
