package gomuxlib

import (
	"time"
)

// trackSynchronizer aligns all tracks of a session on a single time origin.
// The origin is the first raw timestamp observed across any track; whichever
// track delivers a packet first sets the clock for all, so relative
// inter-track timing is preserved even when raw timelines do not start at zero.
type trackSynchronizer struct {
	originSet bool
	origin    time.Duration
}

// adjust subtracts the session origin from a raw timestamp,
// capturing the origin on the first call.
func (s *trackSynchronizer) adjust(raw time.Duration) time.Duration {
	if !s.originSet {
		s.originSet = true
		s.origin = raw
	}
	return raw - s.origin
}
