package gomuxlib

import (
	"fmt"
	"io"
	"time"

	"github.com/bluenviron/mediacommon/v2/pkg/formats/pmp4"

	"github.com/bluenviron/gomuxlib/pkg/codecs"
	"github.com/bluenviron/gomuxlib/pkg/logger"
)

type formatMP4Track struct {
	pmp4.Track
	lastDTS    int64
	hasSamples bool
}

func findMP4Track(tracks []*formatMP4Track, id int) *formatMP4Track {
	for _, track := range tracks {
		if track.ID == id {
			return track
		}
	}
	return nil
}

// FormatMP4 writes a non-fragmented MP4 file. Since sample tables precede
// sample data in the output, samples are buffered in memory and written
// at once by Finalize. Subtitle tracks and codecs that cannot be stored
// into MP4 are skipped.
type FormatMP4 struct {
	// W is the destination of the file. Required.
	W io.Writer

	parent logger.Writer
	tracks []*formatMP4Track
}

// Initialize implements Format.
func (f *FormatMP4) Initialize(tracks []*Track, parent logger.Writer) (string, error) {
	if f.W == nil {
		return "", fmt.Errorf("a destination writer is required")
	}
	f.parent = parent

	hasVideo := false

	for _, track := range tracks {
		codec := codecs.ToMP4(track.Codec)
		if codec == nil {
			f.parent.Log(logger.Warn, "skipping track %d (%s)", track.ID, track.Kind)
			continue
		}

		if track.Kind == TrackKindVideo {
			hasVideo = true
		}

		f.tracks = append(f.tracks, &formatMP4Track{
			Track: pmp4.Track{
				ID:        track.ID,
				TimeScale: uint32(track.ClockRate),
				Codec:     codec,
			},
		})
	}

	if f.tracks == nil {
		return "", ErrNoSupportedTracks
	}

	if hasVideo {
		return "video/mp4", nil
	}
	return "audio/mp4", nil
}

// WriteVideoPacket implements Format.
func (f *FormatMP4) WriteVideoPacket(track *Track, pkt *EncodedPacket) error {
	return f.write(track, pkt.PTS, !pkt.IsKeyFrame, pkt.Payload)
}

// WriteAudioPacket implements Format.
func (f *FormatMP4) WriteAudioPacket(track *Track, pkt *EncodedPacket) error {
	return f.write(track, pkt.PTS, !pkt.IsKeyFrame, pkt.Payload)
}

// WriteSubtitleCue implements Format.
func (f *FormatMP4) WriteSubtitleCue(_ *Track, _ *SubtitleCue) error {
	return nil
}

// CloseTrack implements Format. Buffered samples must be kept until
// Finalize, hence this is a no-op.
func (f *FormatMP4) CloseTrack(_ *Track) error {
	return nil
}

// Finalize implements Format. It assembles the presentation out of the
// buffered samples and writes the file.
func (f *FormatMP4) Finalize() error {
	var presentation pmp4.Presentation

	for _, t := range f.tracks {
		if t.hasSamples {
			presentation.Tracks = append(presentation.Tracks, &t.Track)
		}
	}

	if presentation.Tracks == nil {
		return fmt.Errorf("no samples were written")
	}

	return presentation.Marshal(f.W)
}

func (f *FormatMP4) write(track *Track, pts time.Duration, isNonSyncSample bool, payload []byte) error {
	t := findMP4Track(f.tracks, track.ID)
	if t == nil {
		return nil
	}

	dts := durationToTimescale(pts, t.TimeScale)

	if !t.hasSamples {
		t.hasSamples = true
		t.TimeOffset = int32(dts)
	} else {
		duration := dts - t.lastDTS
		if duration < 0 {
			duration = 0
		}
		t.Samples[len(t.Samples)-1].Duration = uint32(duration)
	}

	t.Samples = append(t.Samples, &pmp4.Sample{
		IsNonSyncSample: isNonSyncSample,
		PayloadSize:     uint32(len(payload)),
		GetPayload: func() ([]byte, error) {
			return payload, nil
		},
	})
	t.lastDTS = dts

	return nil
}
