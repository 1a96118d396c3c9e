// Package clock provides the time source used by wait and polling logic.
//
// Time is expressed as an Instant, a count of milliseconds since the Unix
// epoch. Consumers compute deadlines with LaterBy and test them with
// IsNowBefore, so a FakeClock can stand in for the wall clock in tests.
package clock

import (
	"math"
	"sync"
	"time"
)

const (
	// MaxInstant is the latest representable Instant. LaterBy saturates here.
	MaxInstant Instant = math.MaxInt64

	// MinInstant is the earliest representable Instant. LaterBy saturates here.
	MinInstant Instant = math.MinInt64
)

// Instant is a point in time in milliseconds since the Unix epoch (UTC).
type Instant int64

// FromTime converts t to an Instant, truncating to the millisecond.
func FromTime(t time.Time) Instant {
	return Instant(t.UnixMilli())
}

// Time returns the Instant as a UTC time.Time.
func (i Instant) Time() time.Time {
	return time.UnixMilli(int64(i)).UTC()
}

// Add returns i shifted by millis, saturating at MinInstant and MaxInstant.
func (i Instant) Add(millis int64) Instant {
	a := int64(i)
	if millis > 0 && a > math.MaxInt64-millis {
		return MaxInstant
	}
	if millis < 0 && a < math.MinInt64-millis {
		return MinInstant
	}
	return Instant(a + millis)
}

// Clock is a source of Instants and deadline checks.
type Clock interface {
	// Now returns the current Instant.
	Now() Instant

	// LaterBy returns Now() shifted by durationMillis. Negative and zero
	// durations are allowed. The result saturates instead of overflowing.
	LaterBy(durationMillis int64) Instant

	// IsNowBefore reports whether Now() is strictly before deadline.
	IsNowBefore(deadline Instant) bool
}

// SystemClock implements Clock using the host wall clock.
// Clock adjustments on the host are passed through, not corrected.
type SystemClock struct{}

// NewSystemClock creates a new SystemClock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current wall-clock Instant.
func (c *SystemClock) Now() Instant {
	return FromTime(time.Now())
}

// LaterBy returns the current Instant shifted by durationMillis.
func (c *SystemClock) LaterBy(durationMillis int64) Instant {
	return c.Now().Add(durationMillis)
}

// IsNowBefore reports whether the wall clock is strictly before deadline.
func (c *SystemClock) IsNowBefore(deadline Instant) bool {
	return c.Now() < deadline
}

// FakeClock implements Clock with a manually controlled Instant for testing.
// It is safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	current Instant
}

// NewFakeClock creates a new FakeClock reading the given Instant.
func NewFakeClock(i Instant) *FakeClock {
	return &FakeClock{current: i}
}

// NewFakeClockAt creates a new FakeClock reading the given time.
func NewFakeClockAt(t time.Time) *FakeClock {
	return NewFakeClock(FromTime(t))
}

// Now returns the fixed Instant.
func (c *FakeClock) Now() Instant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// LaterBy returns the fixed Instant shifted by durationMillis.
func (c *FakeClock) LaterBy(durationMillis int64) Instant {
	return c.Now().Add(durationMillis)
}

// IsNowBefore reports whether the fixed Instant is strictly before deadline.
func (c *FakeClock) IsNowBefore(deadline Instant) bool {
	return c.Now() < deadline
}

// Set updates the fixed Instant. Moving backwards is allowed.
func (c *FakeClock) Set(i Instant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = i
}

// Advance moves the fixed Instant by millis, saturating at the bounds.
func (c *FakeClock) Advance(millis int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(millis)
}

// AdvanceDuration moves the fixed Instant by d, truncated to milliseconds.
func (c *FakeClock) AdvanceDuration(d time.Duration) {
	c.Advance(d.Milliseconds())
}
