package clock

import "github.com/jonboulle/clockwork"

// clockworkClock adapts a clockwork.Clock to Clock.
type clockworkClock struct {
	source clockwork.Clock
}

// FromClockwork returns a Clock that reads its Instants from source.
// Advancing a clockwork fake clock advances the returned Clock too.
func FromClockwork(source clockwork.Clock) Clock {
	if source == nil {
		source = clockwork.NewRealClock()
	}
	return &clockworkClock{source: source}
}

func (c *clockworkClock) Now() Instant {
	return FromTime(c.source.Now())
}

func (c *clockworkClock) LaterBy(durationMillis int64) Instant {
	return c.Now().Add(durationMillis)
}

func (c *clockworkClock) IsNowBefore(deadline Instant) bool {
	return c.Now() < deadline
}
