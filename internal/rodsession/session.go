// Package rodsession implements the geolocation capability on top of a
// Chrome DevTools session driven by go-rod.
//
// SetLocation installs an Emulation.setGeolocationOverride on the page and
// Location reads the position back through navigator.geolocation, so the
// value returned is what page scripts observe.
package rodsession

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
	"github.com/ysmood/gson"

	"github.com/danieljhkim/wdkit/internal/location"
	"github.com/danieljhkim/wdkit/internal/logging"
)

// cdpMethodNotFound is the JSON-RPC code a browser returns for an unknown method.
const cdpMethodNotFound = -32601

// defaultPositionTimeoutMillis bounds getCurrentPosition inside the page
// when the caller's context carries no deadline.
const defaultPositionTimeoutMillis = 10000

// Options configures how a Session reaches a browser.
type Options struct {
	// ControlURL is the DevTools websocket of a running browser.
	// When empty a browser is launched.
	ControlURL string

	// Bin is the browser executable to launch. Empty means auto-detect.
	Bin string

	// Headless launches the browser without a window.
	Headless bool

	// PageURL is opened when the session starts.
	PageURL string

	// Accuracy in meters reported with overridden positions.
	Accuracy float64
}

// Session is a location.Context backed by a single browser page.
// Calls are serialized: one command is in flight per session.
type Session struct {
	mu       sync.Mutex
	opts     Options
	log      logrus.FieldLogger
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// Connect opens a session. ctx bounds the browser launch, the DevTools
// connection and the first page load. The launched process and the
// connection stay bound to ctx afterwards, so ctx must outlive the session:
// canceling it tears the browser down as Close would.
func Connect(ctx context.Context, opts Options, log logrus.FieldLogger) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.PageURL == "" {
		opts.PageURL = "about:blank"
	}
	if log == nil {
		log = logging.Discard()
	}

	s := &Session{opts: opts, log: log}

	controlURL := opts.ControlURL
	if controlURL == "" {
		s.launcher = launcher.New().Context(ctx).Headless(opts.Headless)
		if opts.Bin != "" {
			s.launcher = s.launcher.Bin(opts.Bin)
		}
		u, err := s.launcher.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = u
		log.WithField("control_url", controlURL).Debug("launched browser")
	}

	s.browser = newBrowser(ctx, controlURL)
	if err := s.browser.Connect(); err != nil {
		// A browser that never connected has no client to close through.
		s.browser = nil
		s.Close()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	grant := proto.BrowserGrantPermissions{
		Permissions: []proto.BrowserPermissionType{proto.BrowserPermissionTypeGeolocation},
	}
	if err := grant.Call(s.browser); err != nil {
		log.WithError(err).Warn("failed to grant geolocation permission")
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: opts.PageURL})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to open page %s: %w", opts.PageURL, err)
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to load page %s: %w", opts.PageURL, err)
	}
	s.page = page

	log.WithField("page_url", opts.PageURL).Debug("session ready")
	return s, nil
}

// SetLocation overrides the position reported to the page.
func (s *Session) SetLocation(ctx context.Context, loc location.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page == nil {
		return location.ErrNoSession
	}

	s.log.WithFields(logrus.Fields{
		"latitude":  loc.Latitude,
		"longitude": loc.Longitude,
	}).Debug("setting geolocation override")

	accuracy := s.opts.Accuracy
	override := proto.EmulationSetGeolocationOverride{
		Latitude:  &loc.Latitude,
		Longitude: &loc.Longitude,
		Accuracy:  &accuracy,
	}
	if err := override.Call(s.page.Context(ctx)); err != nil {
		return commandError("Emulation.setGeolocationOverride", err)
	}
	return nil
}

// positionScript resolves with the page's view of the current position.
const positionScript = `(timeout) => new Promise((resolve) => {
	if (!navigator.geolocation) {
		resolve({ supported: false });
		return;
	}
	navigator.geolocation.getCurrentPosition(
		(p) => resolve({
			supported: true,
			available: true,
			latitude: p.coords.latitude,
			longitude: p.coords.longitude,
			altitude: p.coords.altitude,
		}),
		(e) => resolve({ supported: true, available: false, error: e.message }),
		{ timeout: timeout, maximumAge: 0 },
	);
})`

// Location returns the position the page currently observes.
func (s *Session) Location(ctx context.Context) (location.Location, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page == nil {
		return location.Location{}, false, location.ErrNoSession
	}

	res, err := s.page.Context(ctx).Eval(positionScript, positionTimeout(ctx))
	if err != nil {
		return location.Location{}, false, commandError("navigator.geolocation", err)
	}

	loc, ok, err := decodePosition(res.Value)
	if err != nil {
		return location.Location{}, false, err
	}
	if !ok {
		s.log.WithField("reason", res.Value.Get("error").Str()).Debug("page reported no position")
	}
	return loc, ok, nil
}

// Close releases the page, the browser connection and any launched browser.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page != nil {
		if err := s.page.Close(); err != nil {
			s.log.WithError(err).Debug("failed to close page")
		}
		s.page = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.log.WithError(err).Debug("failed to close browser")
		}
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.launcher = nil
	}
}

// newBrowser returns an unconnected browser bound to ctx.
func newBrowser(ctx context.Context, controlURL string) *rod.Browser {
	return rod.New().ControlURL(controlURL).Context(ctx)
}

// decodePosition interprets the object resolved by positionScript.
func decodePosition(v gson.JSON) (location.Location, bool, error) {
	if v.Nil() {
		return location.Location{}, false, errors.New("empty geolocation result")
	}
	if !v.Get("supported").Bool() {
		return location.Location{}, false, fmt.Errorf("%w: page has no navigator.geolocation", location.ErrUnsupportedCapability)
	}
	if !v.Get("available").Bool() {
		return location.Location{}, false, nil
	}

	loc := location.Location{
		Latitude:  v.Get("latitude").Num(),
		Longitude: v.Get("longitude").Num(),
	}
	// The override carries no altitude, so browsers usually report null.
	if alt := v.Get("altitude"); !alt.Nil() {
		loc.Altitude = alt.Num()
	}
	return loc, true, nil
}

func positionTimeout(ctx context.Context) int64 {
	deadline, ok := ctx.Deadline()
	if !ok {
		return defaultPositionTimeoutMillis
	}
	remaining := time.Until(deadline).Milliseconds()
	if remaining < 1 {
		return 1
	}
	return remaining
}

func commandError(method string, err error) error {
	var cdpErr *cdp.Error
	if errors.As(err, &cdpErr) && cdpErr.Code == cdpMethodNotFound {
		return fmt.Errorf("%w: %s: %v", location.ErrUnsupportedCapability, method, err)
	}
	return fmt.Errorf("%s failed: %w", method, err)
}
