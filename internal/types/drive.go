package types

import "time"

// Drive is a physical or logical drive as exposed by the
// org.freedesktop.UDisks2.Drive interface.
type Drive struct {
	Path ObjectPath `json:"path" yaml:"path"`

	// ID is mandatory. It may be empty when the drive has no stable
	// identity but the property must be present.
	ID string `json:"id" yaml:"id"`

	Vendor   string `json:"vendor" yaml:"vendor"`
	Model    string `json:"model" yaml:"model"`
	Revision string `json:"revision" yaml:"revision"`
	Serial   string `json:"serial" yaml:"serial"`
	WWN      string `json:"wwn" yaml:"wwn"`

	Media               string   `json:"media" yaml:"media"`
	MediaCompatibility  []string `json:"media_compatibility" yaml:"media_compatibility"`
	MediaRemovable      bool     `json:"media_removable" yaml:"media_removable"`
	MediaAvailable      bool     `json:"media_available" yaml:"media_available"`
	MediaChangeDetected bool     `json:"media_change_detected" yaml:"media_change_detected"`

	Optical               bool   `json:"optical" yaml:"optical"`
	OpticalBlank          bool   `json:"optical_blank" yaml:"optical_blank"`
	OpticalNumTracks      uint32 `json:"optical_num_tracks" yaml:"optical_num_tracks"`
	OpticalNumAudioTracks uint32 `json:"optical_num_audio_tracks" yaml:"optical_num_audio_tracks"`
	OpticalNumDataTracks  uint32 `json:"optical_num_data_tracks" yaml:"optical_num_data_tracks"`
	OpticalNumSessions    uint32 `json:"optical_num_sessions" yaml:"optical_num_sessions"`

	Size          uint64 `json:"size" yaml:"size"`
	RotationRate  int32  `json:"rotation_rate" yaml:"rotation_rate"`
	ConnectionBus string `json:"connection_bus" yaml:"connection_bus"`
	Seat          string `json:"seat" yaml:"seat"`
	Removable     bool   `json:"removable" yaml:"removable"`
	Ejectable     bool   `json:"ejectable" yaml:"ejectable"`
	SortKey       string `json:"sort_key" yaml:"sort_key"`
	CanPowerOff   bool   `json:"can_power_off" yaml:"can_power_off"`
	SiblingID     string `json:"sibling_id" yaml:"sibling_id"`

	// Microseconds since the epoch, 0 when unknown.
	TimeDetectedUsec      uint64 `json:"time_detected" yaml:"time_detected"`
	TimeMediaDetectedUsec uint64 `json:"time_media_detected" yaml:"time_media_detected"`

	Configuration Dict `json:"configuration,omitempty" yaml:"configuration,omitempty"`
}

// TimeDetected returns when the drive was first detected, or the zero time.
func (d Drive) TimeDetected() time.Time {
	return usecTime(d.TimeDetectedUsec)
}

// TimeMediaDetected returns when the current media was detected, or the
// zero time.
func (d Drive) TimeMediaDetected() time.Time {
	return usecTime(d.TimeMediaDetectedUsec)
}

// IsRotational reports whether the drive is known to use rotating media.
// RotationRate is -1 for unknown rotating media and 0 for non-rotating.
func (d Drive) IsRotational() bool {
	return d.RotationRate != 0
}

// DisplayName returns a short human-readable name for the drive.
func (d Drive) DisplayName() string {
	switch {
	case d.Vendor != "" && d.Model != "":
		return d.Vendor + " " + d.Model
	case d.Model != "":
		return d.Model
	case d.Vendor != "":
		return d.Vendor
	case d.ID != "":
		return d.ID
	default:
		return d.Path.Base()
	}
}

func usecTime(usec uint64) time.Time {
	if usec == 0 {
		return time.Time{}
	}
	return time.UnixMicro(int64(usec))
}
