package gomuxlib

import (
	"fmt"
	"io"
	"time"

	"github.com/bluenviron/mediacommon/v2/pkg/formats/fmp4"
	"github.com/bluenviron/mediacommon/v2/pkg/formats/fmp4/seekablebuffer"

	"github.com/bluenviron/gomuxlib/pkg/codecs"
	"github.com/bluenviron/gomuxlib/pkg/logger"
)

const (
	fmp4DefaultPartDuration = 1 * time.Second
)

type formatFMP4Track struct {
	initTrack *fmp4.InitTrack

	firstDTS int64
	lastDTS  int64
	samples  []*fmp4.PartSample
}

func findFMP4Track(tracks []*formatFMP4Track, id int) *formatFMP4Track {
	for _, track := range tracks {
		if track.initTrack.ID == id {
			return track
		}
	}
	return nil
}

// FormatFMP4 writes a fragmented MP4 stream: an initialization segment
// followed by parts, each covering about PartDuration of content.
// Subtitle tracks and codecs that cannot be stored into MP4 are skipped.
type FormatFMP4 struct {
	// W is the destination of the stream. Required.
	W io.Writer

	// PartDuration is the target duration of each part.
	// It defaults to 1 second.
	PartDuration time.Duration

	parent             logger.Writer
	tracks             []*formatFMP4Track
	nextSequenceNumber uint32
	outBuf             seekablebuffer.Buffer
}

// Initialize implements Format.
func (f *FormatFMP4) Initialize(tracks []*Track, parent logger.Writer) (string, error) {
	if f.W == nil {
		return "", fmt.Errorf("a destination writer is required")
	}
	if f.PartDuration == 0 {
		f.PartDuration = fmp4DefaultPartDuration
	}
	f.parent = parent

	var initTracks []*fmp4.InitTrack
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

		f.tracks = append(f.tracks, &formatFMP4Track{
			initTrack: &fmp4.InitTrack{
				ID:        track.ID,
				TimeScale: uint32(track.ClockRate),
				Codec:     codec,
			},
			firstDTS: -1,
		})
	}

	if f.tracks == nil {
		return "", ErrNoSupportedTracks
	}

	initTracks = make([]*fmp4.InitTrack, len(f.tracks))
	for i, track := range f.tracks {
		initTracks[i] = track.initTrack
	}

	init := fmp4.Init{
		Tracks: initTracks,
	}

	f.outBuf.Reset()
	err := init.Marshal(&f.outBuf)
	if err != nil {
		return "", err
	}

	_, err = f.W.Write(f.outBuf.Bytes())
	if err != nil {
		return "", err
	}

	if hasVideo {
		return "video/mp4", nil
	}
	return "audio/mp4", nil
}

// WriteVideoPacket implements Format.
func (f *FormatFMP4) WriteVideoPacket(track *Track, pkt *EncodedPacket) error {
	return f.write(track, pkt.PTS, !pkt.IsKeyFrame, pkt.Payload)
}

// WriteAudioPacket implements Format.
func (f *FormatFMP4) WriteAudioPacket(track *Track, pkt *EncodedPacket) error {
	return f.write(track, pkt.PTS, !pkt.IsKeyFrame, pkt.Payload)
}

// WriteSubtitleCue implements Format.
func (f *FormatFMP4) WriteSubtitleCue(_ *Track, _ *SubtitleCue) error {
	return nil
}

// CloseTrack implements Format. It flushes the buffered samples of the
// track, including the pending one, whose duration stays zero.
func (f *FormatFMP4) CloseTrack(track *Track) error {
	t := findFMP4Track(f.tracks, track.ID)
	if t == nil || t.firstDTS < 0 || len(t.samples) == 0 {
		return nil
	}

	part := &fmp4.Part{
		Tracks: []*fmp4.PartTrack{{
			ID:       t.initTrack.ID,
			BaseTime: uint64(t.firstDTS),
			Samples:  t.samples,
		}},
	}

	t.samples = nil
	t.firstDTS = -1

	return f.writePart(part)
}

// Finalize implements Format.
func (f *FormatFMP4) Finalize() error {
	return f.flush(true)
}

func (f *FormatFMP4) write(track *Track, pts time.Duration, isNonSyncSample bool, payload []byte) error {
	t := findFMP4Track(f.tracks, track.ID)
	if t == nil {
		return nil
	}

	dts := durationToTimescale(pts, t.initTrack.TimeScale)

	if t.firstDTS < 0 {
		t.firstDTS = dts
	} else {
		diff := dts - t.lastDTS
		if diff < 0 {
			diff = 0
		}
		t.samples[len(t.samples)-1].Duration = uint32(diff)
	}

	t.samples = append(t.samples, &fmp4.PartSample{
		IsNonSyncSample: isNonSyncSample,
		Payload:         payload,
	})
	t.lastDTS = dts

	if (t.lastDTS - t.firstDTS) >= durationToTimescale(f.PartDuration, t.initTrack.TimeScale) {
		return f.flush(false)
	}

	return nil
}

// flush writes buffered samples of all tracks as a single part. Unless
// final, the most recent sample of each track is retained, since its
// duration is known only when the following sample arrives.
func (f *FormatFMP4) flush(final bool) error {
	var part fmp4.Part

	for _, t := range f.tracks {
		if t.firstDTS < 0 {
			continue
		}

		if len(t.samples) > 1 || (final && len(t.samples) != 0) {
			samples := t.samples
			if !final {
				samples = t.samples[:len(t.samples)-1]
			}

			part.Tracks = append(part.Tracks, &fmp4.PartTrack{
				ID:       t.initTrack.ID,
				BaseTime: uint64(t.firstDTS),
				Samples:  samples,
			})

			if !final {
				t.samples = t.samples[len(t.samples)-1:]
				t.firstDTS = t.lastDTS
			} else {
				t.samples = nil
			}
		}
	}

	if part.Tracks == nil {
		return nil
	}

	return f.writePart(&part)
}

func (f *FormatFMP4) writePart(part *fmp4.Part) error {
	part.SequenceNumber = f.nextSequenceNumber
	f.nextSequenceNumber++

	f.outBuf.Reset()
	err := part.Marshal(&f.outBuf)
	if err != nil {
		return err
	}

	_, err = f.W.Write(f.outBuf.Bytes())
	return err
}
