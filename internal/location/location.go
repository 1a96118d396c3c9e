// Package location defines the geolocation capability of a controlled
// browser session.
//
// A Context relays get and set requests to the session that owns the
// position. Nothing is cached here: every call reaches the session, and a
// session without a position reports "no value" rather than a zero Location.
//
// Two implementations live here. FakeContext holds the position in memory
// for tests. RemoteContext adapts any driver that dispatches named commands
// (a WebDriver-style command executor) through the Executor interface.
// The DevTools-backed session in package rodsession is the third, and the
// one the wdkit commands use.
package location

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedCapability indicates the session cannot read or override
	// its geolocation.
	ErrUnsupportedCapability = errors.New("geolocation capability not supported")

	// ErrNoSession indicates the backing session has been closed.
	ErrNoSession = errors.New("no active session")
)

// Location is a physical position. Ranges are not validated; the browser
// side decides what it accepts.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

// String returns a short human readable form.
func (l Location) String() string {
	return fmt.Sprintf("latitude: %g, longitude: %g, altitude: %g", l.Latitude, l.Longitude, l.Altitude)
}

// Context is the geolocation capability of a session.
type Context interface {
	// Location returns the position currently reported by the session.
	// ok is false when the session has no position to report.
	Location(ctx context.Context) (loc Location, ok bool, err error)

	// SetLocation asks the session to report loc from now on.
	SetLocation(ctx context.Context, loc Location) error
}
