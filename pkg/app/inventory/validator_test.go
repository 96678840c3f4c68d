package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		wantErr bool
	}{
		{name: "drives", request: Request{Kind: KindDrives}},
		{name: "removable disks", request: Request{Kind: KindDisks, Removable: true}},
		{name: "blocks by filesystem", request: Request{Kind: KindBlocks, Filesystem: "vfat"}},
		{name: "object", request: Request{Kind: KindObject, Path: "/org/freedesktop/UDisks2/drives/x"}},
		{name: "empty kind", request: Request{}, wantErr: true},
		{name: "unknown kind", request: Request{Kind: "volumes"}, wantErr: true},
		{name: "object without path", request: Request{Kind: KindObject}, wantErr: true},
		{name: "object with trailing slash", request: Request{Kind: KindObject, Path: "/org/freedesktop/"}, wantErr: true},
		{name: "removable blocks", request: Request{Kind: KindBlocks, Removable: true}, wantErr: true},
		{name: "filesystem on drives", request: Request{Kind: KindDrives, Filesystem: "ext4"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDumpRequest_Validate(t *testing.T) {
	assert.NoError(t, (&DumpRequest{OutputPath: "graph.yaml"}).Validate())
	assert.NoError(t, (&DumpRequest{OutputPath: "/tmp/graph.yml"}).Validate())
	assert.Error(t, (&DumpRequest{}).Validate())
	assert.Error(t, (&DumpRequest{OutputPath: "graph.json"}).Validate())
}

func TestValidateFormat(t *testing.T) {
	for _, f := range Formats {
		assert.NoError(t, ValidateFormat(f))
	}
	assert.Error(t, ValidateFormat("csv"))
	assert.Error(t, ValidateFormat(""))
}
