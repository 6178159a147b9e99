package gomuxlib

import (
	"fmt"
	"time"

	"github.com/bluenviron/gomuxlib/pkg/logger"
)

const (
	// a delta above this value between consecutive raw timestamps of a
	// track is treated as a wraparound or corrupt source data.
	wraparoundThreshold = time.Hour

	// substituted for a spurious jump: one frame at 24 fps.
	// this does not adapt to the actual frame rate of the track.
	syntheticFrameDuration = time.Second / 24

	// minimum forward step applied when clamping or when relative
	// deltas would stall the timeline.
	minForwardStep = time.Millisecond
)

// trackTimestampState is the per-track state of the normalizer.
// It is created lazily on the first packet of a track and removed
// when the track is closed.
type trackTimestampState struct {
	// highest normalized timestamp emitted so far.
	maxTimestamp time.Duration

	// monotonic floor established at the last keyframe. Timestamps are
	// never allowed to regress below it, while small jitter between
	// keyframes is tolerated.
	keyFrameFloor time.Duration

	// last raw (pre-synthesis) offset-adjusted timestamp,
	// baseline for delta computation.
	lastRaw time.Duration

	// sticky once a large discontinuity has been observed; from then on
	// timestamps are derived relatively, never from raw absolute values.
	hasWraparound bool
}

// timestampNormalizer converts raw incoming timestamps into a monotonic,
// offset-corrected, wraparound-tolerant output timeline, one state machine
// per track. It is not safe for concurrent use; the Muxer serializes calls.
type timestampNormalizer struct {
	parent  logger.Writer
	onClamp func()

	synchronizer trackSynchronizer
	tracks       map[int]*trackTimestampState
}

func (n *timestampNormalizer) initialize() {
	if n.onClamp == nil {
		n.onClamp = func() {}
	}
	n.tracks = make(map[int]*trackTimestampState)
}

// closeTrack removes the state of a track.
func (n *timestampNormalizer) closeTrack(track *Track) {
	delete(n.tracks, track.ID)
}

// normalize converts the raw timestamp of a packet into the output timeline.
// It must be called once per packet, in arrival order, for a given track.
func (n *timestampNormalizer) normalize(track *Track, raw time.Duration, isKeyFrame bool) (time.Duration, error) {
	adjusted := n.synchronizer.adjust(raw) + track.TimeOffset

	state, ok := n.tracks[track.ID]
	if !ok {
		if !isKeyFrame {
			return 0, fmt.Errorf("track %d: %w", track.ID, ErrFirstPacketNotKeyFrame)
		}
		if adjusted < 0 {
			return 0, fmt.Errorf("track %d: %w (%v)", track.ID, ErrNegativeTimestamp, adjusted)
		}

		n.tracks[track.ID] = &trackTimestampState{
			maxTimestamp:  adjusted,
			keyFrameFloor: adjusted,
			lastRaw:       adjusted,
		}
		return adjusted, nil
	}

	delta := adjusted - state.lastRaw
	working := adjusted

	switch {
	case delta > wraparoundThreshold || delta < -wraparoundThreshold:
		// a single large jump must not shift the whole remaining timeline:
		// ignore the raw value and advance by a synthetic frame.
		if !state.hasWraparound {
			state.hasWraparound = true
			n.parent.Log(logger.Warn,
				"track %d: timestamp discontinuity of %v detected, switching to relative timing",
				track.ID, delta)
		}
		working = state.maxTimestamp + syntheticFrameDuration

	case state.hasWraparound:
		// absolute values are no longer trustworthy for this track;
		// keep advancing with the observed relative delta.
		step := delta
		if step < minForwardStep {
			step = minForwardStep
		}
		working = state.maxTimestamp + step
	}

	// the synthetic substitution is never fed back as the baseline,
	// otherwise genuine subsequent jumps would be masked.
	state.lastRaw = adjusted

	if working < 0 {
		return 0, fmt.Errorf("track %d: %w (%v)", track.ID, ErrNegativeTimestamp, working)
	}

	if isKeyFrame {
		state.keyFrameFloor = state.maxTimestamp
	}

	if working < state.keyFrameFloor {
		working = state.maxTimestamp + minForwardStep
		n.onClamp()
	}

	if working > state.maxTimestamp {
		state.maxTimestamp = working
	}

	return working, nil
}
