package clock

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestFromClockwork(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("reads the fake clock", func(t *testing.T) {
		fake := clockwork.NewFakeClockAt(start)
		clock := FromClockwork(fake)

		if got := clock.Now(); got != FromTime(start) {
			t.Errorf("Now() = %d, want %d", got, FromTime(start))
		}
	})

	t.Run("follows fake clock advances", func(t *testing.T) {
		fake := clockwork.NewFakeClockAt(start)
		clock := FromClockwork(fake)

		deadline := clock.LaterBy(500)
		if !clock.IsNowBefore(deadline) {
			t.Fatal("IsNowBefore(deadline) = false before advancing")
		}

		fake.Advance(499 * time.Millisecond)
		if !clock.IsNowBefore(deadline) {
			t.Error("IsNowBefore(deadline) = false at 1ms before deadline")
		}

		fake.Advance(1 * time.Millisecond)
		if clock.IsNowBefore(deadline) {
			t.Error("IsNowBefore(deadline) = true at the deadline")
		}
	})

	t.Run("nil source uses real time", func(t *testing.T) {
		clock := FromClockwork(nil)

		before := FromTime(time.Now())
		actual := clock.Now()
		after := FromTime(time.Now())

		if actual < before || actual > after {
			t.Errorf("Now() = %d outside [%d, %d]", actual, before, after)
		}
	})
}
