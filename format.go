package gomuxlib

import (
	"time"

	"github.com/bluenviron/gomuxlib/pkg/logger"
)

// Format is a container format backend. It performs the byte-level
// container layout, while the Muxer guarantees that timestamps handed to
// it are normalized and that every call happens under the write gate,
// one at a time, in submission order.
type Format interface {
	// Initialize writes the leading container structures
	// and returns the MIME type of the output stream.
	Initialize(tracks []*Track, parent logger.Writer) (string, error)

	// WriteVideoPacket writes a video packet. pkt.PTS is normalized.
	WriteVideoPacket(track *Track, pkt *EncodedPacket) error

	// WriteAudioPacket writes an audio packet. pkt.PTS is normalized.
	WriteAudioPacket(track *Track, pkt *EncodedPacket) error

	// WriteSubtitleCue writes a subtitle cue. cue.PTS is normalized.
	WriteSubtitleCue(track *Track, cue *SubtitleCue) error

	// CloseTrack releases per-track resources ahead of Finalize,
	// when a track will receive no further packets.
	CloseTrack(track *Track) error

	// Finalize writes the trailing container structures
	// and releases resources.
	Finalize() error
}

func multiplyAndDivide(v, m, d time.Duration) time.Duration {
	secs := v / d
	dec := v % d
	return (secs*m + dec*m/d)
}

// durationToTimescale converts a duration into timescale units.
func durationToTimescale(v time.Duration, timeScale uint32) int64 {
	return int64(multiplyAndDivide(v, time.Duration(timeScale), time.Second))
}
