package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/wdkit/internal/clock"
	"github.com/danieljhkim/wdkit/internal/location"
)

func TestBrowserLocation_RoundTrip(t *testing.T) {
	sess := setupBrowserSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	points := []location.Location{
		{Latitude: 52.520008, Longitude: 13.404954},
		{Latitude: -33.8688, Longitude: 151.2093},
	}

	for _, want := range points {
		require.NoError(t, sess.SetLocation(ctx, want))

		got, ok, err := sess.Location(ctx)
		require.NoError(t, err)
		require.True(t, ok, "override should make a position available")
		require.InDelta(t, want.Latitude, got.Latitude, 1e-9)
		require.InDelta(t, want.Longitude, got.Longitude, 1e-9)
	}
}

func TestBrowserLocation_OverrideVisibleBeforeDeadline(t *testing.T) {
	sess := setupBrowserSession(t)
	clk := clock.NewSystemClock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	want := location.Location{Latitude: 48.8584, Longitude: 2.2945}
	require.NoError(t, sess.SetLocation(ctx, want))

	deadline := clk.LaterBy(10_000)
	var got location.Location
	var ok bool
	for clk.IsNowBefore(deadline) {
		var err error
		got, ok, err = sess.Location(ctx)
		require.NoError(t, err)
		if ok {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	require.True(t, ok, "position not reported before deadline")
	require.InDelta(t, want.Latitude, got.Latitude, 1e-9)
}
