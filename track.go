package gomuxlib

import (
	"time"

	"github.com/bluenviron/gomuxlib/pkg/codecs"
)

// TrackKind is the kind of a track.
type TrackKind int

// Track kinds.
const (
	TrackKindVideo TrackKind = iota
	TrackKindAudio
	TrackKindSubtitle
)

// String implements fmt.Stringer.
func (k TrackKind) String() string {
	switch k {
	case TrackKindVideo:
		return "video"
	case TrackKindAudio:
		return "audio"
	case TrackKindSubtitle:
		return "subtitle"
	}
	return "unknown"
}

// Track is a media track muxed into the output stream.
// Tracks are owned by the caller; the Muxer keys its private state by ID.
type Track struct {
	// Unique identifier of the track inside the session.
	ID int

	// Kind of the track.
	Kind TrackKind

	// Clock rate used by format backends to convert timestamps
	// into timescale units.
	ClockRate int

	// Codec of the track. Optional for subtitle tracks.
	Codec codecs.Codec

	// Offset between the raw timeline of the source and the
	// session timeline, added to every incoming timestamp.
	TimeOffset time.Duration
}
