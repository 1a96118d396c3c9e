package location

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Command names sent to the executor.
const (
	CommandGetLocation = "getLocation"
	CommandSetLocation = "setLocation"
)

// ErrUnknownCommand is returned by an Executor that does not implement a
// command. RemoteContext reports it as ErrUnsupportedCapability.
var ErrUnknownCommand = errors.New("unknown command")

// Executor sends a named command to a remote session.
type Executor interface {
	Execute(ctx context.Context, name string, params map[string]any) (json.RawMessage, error)
}

// Capabilities describes what a remote session advertised when it started.
type Capabilities interface {
	LocationContextEnabled() bool
}

// CapabilityMap is a Capabilities backed by the raw capability map a
// session returns on creation.
type CapabilityMap map[string]any

// LocationContextEnabled reports the "locationContextEnabled" capability.
func (m CapabilityMap) LocationContextEnabled() bool {
	v, ok := m["locationContextEnabled"].(bool)
	return ok && v
}

// RemoteContext implements Context by dispatching commands to an Executor.
// It is the adapter for drivers that speak named commands rather than
// DevTools: wrap the driver's command executor in an Executor and pass the
// capabilities it returned on session creation.
type RemoteContext struct {
	exec Executor
	caps Capabilities
}

// NewRemoteContext creates a RemoteContext. A nil caps is treated as a
// session that supports location.
func NewRemoteContext(exec Executor, caps Capabilities) *RemoteContext {
	return &RemoteContext{exec: exec, caps: caps}
}

func (r *RemoteContext) supported() error {
	if r.exec == nil {
		return ErrNoSession
	}
	if r.caps != nil && !r.caps.LocationContextEnabled() {
		return fmt.Errorf("%w: session did not enable location context", ErrUnsupportedCapability)
	}
	return nil
}

// Location fetches the session position.
func (r *RemoteContext) Location(ctx context.Context) (Location, bool, error) {
	if err := r.supported(); err != nil {
		return Location{}, false, err
	}

	raw, err := r.exec.Execute(ctx, CommandGetLocation, nil)
	if err != nil {
		return Location{}, false, commandError(CommandGetLocation, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Location{}, false, nil
	}

	var loc Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return Location{}, false, fmt.Errorf("failed to decode %s response: %w", CommandGetLocation, err)
	}
	return loc, true, nil
}

// SetLocation overrides the session position.
func (r *RemoteContext) SetLocation(ctx context.Context, loc Location) error {
	if err := r.supported(); err != nil {
		return err
	}

	params := map[string]any{"location": loc}
	if _, err := r.exec.Execute(ctx, CommandSetLocation, params); err != nil {
		return commandError(CommandSetLocation, err)
	}
	return nil
}

func commandError(name string, err error) error {
	if errors.Is(err, ErrUnknownCommand) {
		return fmt.Errorf("%w: %s: %v", ErrUnsupportedCapability, name, err)
	}
	return fmt.Errorf("%s failed: %w", name, err)
}
