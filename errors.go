package gomuxlib

import (
	"errors"
)

// ErrNotInitialized is returned by write methods called before Initialize().
var ErrNotInitialized = errors.New("muxer is not initialized")

// ErrClosed is returned by write methods called after Close().
var ErrClosed = errors.New("muxer is closed")

// ErrFirstPacketNotKeyFrame is returned when the first packet
// of a track is not a keyframe.
var ErrFirstPacketNotKeyFrame = errors.New("first packet of track is not a keyframe")

// ErrNegativeTimestamp is returned when a timestamp is negative
// after offset application, which normalization cannot safely fix.
var ErrNegativeTimestamp = errors.New("negative timestamp")

// ErrTrackKindMismatch is returned when a packet or cue is submitted
// through a write method that does not match the kind of its track.
var ErrTrackKindMismatch = errors.New("track kind does not match the write method")

// ErrNoSupportedTracks is returned by a Format when none of the
// session tracks can be stored into the container.
var ErrNoSupportedTracks = errors.New("no tracks can be stored into this container format")
