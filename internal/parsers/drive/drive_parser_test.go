package drive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-udisks/internal/types"
)

const drivePath = types.ObjectPath("/org/freedesktop/UDisks2/drives/WDC_WD10EZEX_WD_WCC6Y0123456")

func TestParse(t *testing.T) {
	ifaces := types.InterfaceBag{
		types.DriveInterface: {
			"Id":                 types.String("WDC-WD10EZEX-WD-WCC6Y0123456"),
			"Vendor":             types.String("WDC"),
			"Model":              types.String("WD10EZEX-08WN4A0"),
			"Serial":             types.String("WD-WCC6Y0123456"),
			"Size":               types.Uint64(1000204886016),
			"RotationRate":       types.Int32(7200),
			"ConnectionBus":      types.String("sata"),
			"MediaCompatibility": types.Array{types.String("hdd")},
			"CanPowerOff":        types.Bool(true),
			"SiblingId":          types.String(""),
			"TimeDetected":       types.Uint64(1700000000000000),
			"Configuration":      types.Dict{"ata-pm-standby": types.Int32(241)},
		},
	}

	d, ok := Parse(drivePath, ifaces)
	require.True(t, ok)

	assert.Equal(t, drivePath, d.Path)
	assert.Equal(t, "WDC-WD10EZEX-WD-WCC6Y0123456", d.ID)
	assert.Equal(t, "WDC", d.Vendor)
	assert.Equal(t, "WD10EZEX-08WN4A0", d.Model)
	assert.Equal(t, uint64(1000204886016), d.Size)
	assert.Equal(t, int32(7200), d.RotationRate)
	assert.True(t, d.IsRotational())
	assert.Equal(t, "sata", d.ConnectionBus)
	assert.Equal(t, []string{"hdd"}, d.MediaCompatibility)
	assert.True(t, d.CanPowerOff)
	assert.Equal(t, time.UnixMicro(1700000000000000), d.TimeDetected())
	assert.True(t, d.TimeMediaDetected().IsZero())
	assert.Equal(t, types.Int32(241), d.Configuration["ata-pm-standby"])
	assert.Equal(t, "WDC WD10EZEX-08WN4A0", d.DisplayName())
}

func TestParse_Gate(t *testing.T) {
	tests := []struct {
		name   string
		ifaces types.InterfaceBag
		wantOK bool
		wantID string
	}{
		{
			name:   "only the drive interface with an id",
			ifaces: types.InterfaceBag{types.DriveInterface: {"Id": types.String("drive0")}},
			wantOK: true,
			wantID: "drive0",
		},
		{
			name:   "empty id is still an id",
			ifaces: types.InterfaceBag{types.DriveInterface: {"Id": types.String("")}},
			wantOK: true,
		},
		{
			name:   "block object",
			ifaces: types.InterfaceBag{types.BlockInterface: {"Device": types.Bytes("/dev/sda\x00")}},
			wantOK: false,
		},
		{
			name:   "missing mandatory id",
			ifaces: types.InterfaceBag{types.DriveInterface: {"Model": types.String("x")}},
			wantOK: false,
		},
		{
			name:   "mistyped mandatory id",
			ifaces: types.InterfaceBag{types.DriveInterface: {"Id": types.Uint32(0)}},
			wantOK: false,
		},
		{
			name:   "no interfaces",
			ifaces: types.InterfaceBag{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Parse(drivePath, tt.ifaces)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantID, d.ID)
				assert.Equal(t, drivePath, d.Path)
			}
		})
	}
}

func TestParse_OptionalDefaults(t *testing.T) {
	ifaces := types.InterfaceBag{
		types.DriveInterface: {
			"Id":   types.String("drive0"),
			"Size": types.Uint32(10), // wrong width
		},
	}

	d, ok := Parse(drivePath, ifaces)
	require.True(t, ok)
	assert.Zero(t, d.Size)
	assert.Empty(t, d.Vendor)
	assert.Nil(t, d.MediaCompatibility)
	assert.False(t, d.IsRotational())
	assert.Equal(t, "drive0", d.DisplayName())
}
