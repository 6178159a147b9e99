package gomuxlib

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bluenviron/mediacommon/v2/pkg/formats/mpegts"

	"github.com/bluenviron/gomuxlib/pkg/codecs"
	"github.com/bluenviron/gomuxlib/pkg/logger"
)

const (
	mpegtsBufferSize = 64 * 1024
	mpegtsTimeScale  = 90000
)

// FormatMPEGTS writes a MPEG-TS stream. Subtitle tracks and codecs that
// cannot be stored into MPEG-TS are skipped.
type FormatMPEGTS struct {
	// W is the destination of the stream. Required.
	W io.Writer

	parent logger.Writer
	bw     *bufio.Writer
	mw     *mpegts.Writer
	tracks map[int]*mpegts.Track
}

// Initialize implements Format.
func (f *FormatMPEGTS) Initialize(tracks []*Track, parent logger.Writer) (string, error) {
	if f.W == nil {
		return "", fmt.Errorf("a destination writer is required")
	}
	f.parent = parent
	f.tracks = make(map[int]*mpegts.Track)

	var mwTracks []*mpegts.Track

	for _, track := range tracks {
		codec := codecs.ToMPEGTS(track.Codec)
		if codec == nil {
			f.parent.Log(logger.Warn, "skipping track %d (%s)", track.ID, track.Kind)
			continue
		}

		mwTrack := &mpegts.Track{
			Codec: codec,
		}
		f.tracks[track.ID] = mwTrack
		mwTracks = append(mwTracks, mwTrack)
	}

	if mwTracks == nil {
		return "", ErrNoSupportedTracks
	}

	f.bw = bufio.NewWriterSize(f.W, mpegtsBufferSize)

	f.mw = &mpegts.Writer{
		W:      f.bw,
		Tracks: mwTracks,
	}
	err := f.mw.Initialize()
	if err != nil {
		return "", err
	}

	return "video/mp2t", nil
}

// WriteVideoPacket implements Format.
func (f *FormatMPEGTS) WriteVideoPacket(track *Track, pkt *EncodedPacket) error {
	mwTrack, ok := f.tracks[track.ID]
	if !ok {
		return nil
	}

	pts := durationToTimescale(pkt.PTS, mpegtsTimeScale)

	switch track.Codec.(type) {
	case *codecs.H264:
		return f.mw.WriteH264(mwTrack, pts, pts, [][]byte{pkt.Payload})

	case *codecs.H265:
		return f.mw.WriteH265(mwTrack, pts, pts, [][]byte{pkt.Payload})
	}

	return nil
}

// WriteAudioPacket implements Format.
func (f *FormatMPEGTS) WriteAudioPacket(track *Track, pkt *EncodedPacket) error {
	mwTrack, ok := f.tracks[track.ID]
	if !ok {
		return nil
	}

	pts := durationToTimescale(pkt.PTS, mpegtsTimeScale)

	switch track.Codec.(type) {
	case *codecs.MPEG4Audio:
		return f.mw.WriteMPEG4Audio(mwTrack, pts, [][]byte{pkt.Payload})

	case *codecs.Opus:
		return f.mw.WriteOpus(mwTrack, pts, [][]byte{pkt.Payload})
	}

	return nil
}

// WriteSubtitleCue implements Format.
func (f *FormatMPEGTS) WriteSubtitleCue(_ *Track, _ *SubtitleCue) error {
	return nil
}

// CloseTrack implements Format. MPEG-TS has no per-track trailing
// structures; buffered packets are flushed to the destination.
func (f *FormatMPEGTS) CloseTrack(_ *Track) error {
	return f.bw.Flush()
}

// Finalize implements Format. MPEG-TS has no trailing structures.
func (f *FormatMPEGTS) Finalize() error {
	return f.bw.Flush()
}
