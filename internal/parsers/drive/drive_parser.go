package drive

import (
	"github.com/deploymenttheory/go-udisks/internal/parsers/values"
	"github.com/deploymenttheory/go-udisks/internal/types"
)

var _ types.ParseFunc[types.Drive] = Parse

// Parse reconstructs a Drive from the org.freedesktop.UDisks2.Drive
// interface of an object. Id is mandatory; every other property defaults to
// its zero value when missing or mistyped.
func Parse(path types.ObjectPath, ifaces types.InterfaceBag) (types.Drive, bool) {
	props, ok := ifaces[types.DriveInterface]
	if !ok {
		return types.Drive{}, false
	}

	id, ok := values.String(props, "Id")
	if !ok {
		return types.Drive{}, false
	}

	d := types.Drive{Path: path, ID: id}

	d.Vendor, _ = values.String(props, "Vendor")
	d.Model, _ = values.String(props, "Model")
	d.Revision, _ = values.String(props, "Revision")
	d.Serial, _ = values.String(props, "Serial")
	d.WWN, _ = values.String(props, "WWN")

	d.Media, _ = values.String(props, "Media")
	d.MediaCompatibility, _ = values.Strings(props, "MediaCompatibility")
	d.MediaRemovable, _ = values.Bool(props, "MediaRemovable")
	d.MediaAvailable, _ = values.Bool(props, "MediaAvailable")
	d.MediaChangeDetected, _ = values.Bool(props, "MediaChangeDetected")

	d.Optical, _ = values.Bool(props, "Optical")
	d.OpticalBlank, _ = values.Bool(props, "OpticalBlank")
	d.OpticalNumTracks, _ = values.Uint32(props, "OpticalNumTracks")
	d.OpticalNumAudioTracks, _ = values.Uint32(props, "OpticalNumAudioTracks")
	d.OpticalNumDataTracks, _ = values.Uint32(props, "OpticalNumDataTracks")
	d.OpticalNumSessions, _ = values.Uint32(props, "OpticalNumSessions")

	d.Size, _ = values.Uint64(props, "Size")
	d.RotationRate, _ = values.Int32(props, "RotationRate")
	d.ConnectionBus, _ = values.String(props, "ConnectionBus")
	d.Seat, _ = values.String(props, "Seat")
	d.Removable, _ = values.Bool(props, "Removable")
	d.Ejectable, _ = values.Bool(props, "Ejectable")
	d.SortKey, _ = values.String(props, "SortKey")
	d.CanPowerOff, _ = values.Bool(props, "CanPowerOff")
	d.SiblingID, _ = values.String(props, "SiblingId")

	d.TimeDetectedUsec, _ = values.Uint64(props, "TimeDetected")
	d.TimeMediaDetectedUsec, _ = values.Uint64(props, "TimeMediaDetected")

	d.Configuration, _ = values.Dict(props, "Configuration")

	return d, true
}
