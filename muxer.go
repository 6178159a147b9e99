// Package gomuxlib implements a streaming media multiplexer: it accepts
// independently encoded packets and subtitle cues arriving asynchronously
// from encoders or demuxed sources and assembles them into a single,
// time-ordered container stream, delegating byte layout to a pluggable
// container format.
package gomuxlib

import (
	"fmt"
	"sync"
	"time"

	"github.com/bluenviron/gomuxlib/pkg/counterdumper"
	"github.com/bluenviron/gomuxlib/pkg/logger"
	"github.com/bluenviron/gomuxlib/pkg/writegate"
)

type muxerState int

const (
	muxerStateUninitialized muxerState = iota
	muxerStateInitialized
	muxerStateClosed
)

// Muxer interleaves encoded packets and subtitle cues of multiple tracks
// into a single container stream. Incoming timestamps are normalized into
// a monotonic per-track timeline sharing one session origin; emission to
// the format backend is serialized in submission order.
//
// Write methods may be called concurrently; each packet either fully
// normalizes and emits or fails without touching backend state.
type Muxer struct {
	// Tracks muxed into the output stream. Required.
	Tracks []*Track

	// Format is the container format backend. Required.
	Format Format

	// Parent logger. It defaults to logger.Discard.
	Parent logger.Writer

	mutex      sync.Mutex
	state      muxerState
	mimeType   string
	normalizer *timestampNormalizer
	gate       writegate.Gate

	clampedTimestamps *counterdumper.CounterDumper
}

// Log implements logger.Writer.
func (m *Muxer) Log(level logger.Level, format string, args ...any) {
	m.Parent.Log(level, "[muxer] "+format, args...)
}

// Initialize initializes the Muxer: it validates the configuration and
// makes the format backend write the leading container structures.
// It must be called before any write method.
func (m *Muxer) Initialize() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	switch m.state {
	case muxerStateInitialized:
		return fmt.Errorf("muxer is already initialized")
	case muxerStateClosed:
		return ErrClosed
	}

	if m.Parent == nil {
		m.Parent = logger.Discard
	}
	if m.Format == nil {
		return fmt.Errorf("a format backend is required")
	}
	if len(m.Tracks) == 0 {
		return fmt.Errorf("at least one track is required")
	}

	ids := make(map[int]struct{}, len(m.Tracks))
	for _, track := range m.Tracks {
		if _, ok := ids[track.ID]; ok {
			return fmt.Errorf("duplicate track ID %d", track.ID)
		}
		ids[track.ID] = struct{}{}
	}

	m.clampedTimestamps = &counterdumper.CounterDumper{
		OnReport: func(v uint64) {
			m.Log(logger.Warn, "%d timestamp%s clamped to keep track timelines monotonic",
				v,
				func() string {
					if v == 1 {
						return ""
					}
					return "s"
				}())
		},
	}
	m.clampedTimestamps.Start()

	m.normalizer = &timestampNormalizer{
		parent:  m,
		onClamp: m.clampedTimestamps.Increase,
	}
	m.normalizer.initialize()

	mimeType, err := m.Format.Initialize(m.Tracks, m)
	if err != nil {
		m.clampedTimestamps.Stop()
		return err
	}
	m.mimeType = mimeType

	m.state = muxerStateInitialized
	return nil
}

// MimeType returns the MIME type of the output stream.
// It is available after Initialize().
func (m *Muxer) MimeType() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.mimeType
}

// WriteVideo normalizes the timestamp of a video packet and hands the
// packet to the format backend. Packets of a given track must be
// submitted in arrival order, starting with a keyframe.
func (m *Muxer) WriteVideo(track *Track, pkt *EncodedPacket) error {
	if track.Kind != TrackKindVideo {
		return fmt.Errorf("track %d is not a video track: %w", track.ID, ErrTrackKindMismatch)
	}

	pts, err := m.normalizePacket(track, pkt.PTS, pkt.IsKeyFrame)
	if err != nil {
		return err
	}

	return m.gate.Do(func() error {
		normalized := *pkt
		normalized.PTS = pts
		return m.Format.WriteVideoPacket(track, &normalized)
	})
}

// WriteAudio normalizes the timestamp of an audio packet and hands the
// packet to the format backend.
func (m *Muxer) WriteAudio(track *Track, pkt *EncodedPacket) error {
	if track.Kind != TrackKindAudio {
		return fmt.Errorf("track %d is not an audio track: %w", track.ID, ErrTrackKindMismatch)
	}

	pts, err := m.normalizePacket(track, pkt.PTS, pkt.IsKeyFrame)
	if err != nil {
		return err
	}

	return m.gate.Do(func() error {
		normalized := *pkt
		normalized.PTS = pts
		return m.Format.WriteAudioPacket(track, &normalized)
	})
}

// WriteSubtitle normalizes the timestamp of a subtitle cue and hands the
// cue to the format backend. Cues are independently decodable, hence they
// are treated as keyframes.
func (m *Muxer) WriteSubtitle(track *Track, cue *SubtitleCue) error {
	if track.Kind != TrackKindSubtitle {
		return fmt.Errorf("track %d is not a subtitle track: %w", track.ID, ErrTrackKindMismatch)
	}

	pts, err := m.normalizePacket(track, cue.PTS, true)
	if err != nil {
		return err
	}

	return m.gate.Do(func() error {
		normalized := *cue
		normalized.PTS = pts
		return m.Format.WriteSubtitleCue(track, &normalized)
	})
}

// CloseTrack signals that a track will receive no further packets,
// releasing its normalizer state and per-track backend resources early.
func (m *Muxer) CloseTrack(track *Track) error {
	m.mutex.Lock()
	if m.state != muxerStateInitialized {
		m.mutex.Unlock()
		return m.stateError()
	}
	m.normalizer.closeTrack(track)
	m.mutex.Unlock()

	return m.gate.Do(func() error {
		return m.Format.CloseTrack(track)
	})
}

// Close makes the format backend write the trailing container structures
// and releases resources. No further submissions are accepted afterwards.
func (m *Muxer) Close() error {
	m.mutex.Lock()
	if m.state != muxerStateInitialized {
		m.mutex.Unlock()
		return m.stateError()
	}
	m.state = muxerStateClosed
	m.mutex.Unlock()

	err := m.gate.Do(func() error {
		return m.Format.Finalize()
	})

	m.clampedTimestamps.Stop()

	return err
}

// normalization is synchronous and never suspends, so it runs under the
// muxer mutex instead of the write gate; the gate is acquired only once
// normalization has succeeded.
func (m *Muxer) normalizePacket(track *Track, raw time.Duration, isKeyFrame bool) (time.Duration, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.state != muxerStateInitialized {
		return 0, m.stateError()
	}

	return m.normalizer.normalize(track, raw, isKeyFrame)
}

func (m *Muxer) stateError() error {
	if m.state == muxerStateClosed {
		return ErrClosed
	}
	return ErrNotInitialized
}
