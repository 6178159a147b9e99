package gomuxlib

import (
	"time"
)

// EncodedPacket is an encoded media packet produced by an external
// encoder or demuxer. The Muxer reads it and never modifies it.
type EncodedPacket struct {
	// Presentation timestamp. Raw when handed to the Muxer,
	// normalized when handed to a Format.
	PTS time.Duration

	// Whether the packet can be decoded without reference to
	// previous packets.
	IsKeyFrame bool

	// Encoded payload.
	Payload []byte
}

// SubtitleCue is a timed text cue produced by an external source.
type SubtitleCue struct {
	// Presentation timestamp. Raw when handed to the Muxer,
	// normalized when handed to a Format.
	PTS time.Duration

	// Time the cue stays visible.
	Duration time.Duration

	// Text of the cue.
	Text string
}
