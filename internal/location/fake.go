package location

import (
	"context"
	"sync"
)

// FakeContext implements Context in memory for testing.
// It is safe for concurrent use.
type FakeContext struct {
	mu          sync.Mutex
	unsupported bool
	current     *Location
}

// NewFakeContext creates a FakeContext with no position.
func NewFakeContext() *FakeContext {
	return &FakeContext{}
}

// NewFakeContextAt creates a FakeContext reporting loc.
func NewFakeContextAt(loc Location) *FakeContext {
	return &FakeContext{current: &loc}
}

// NewUnsupportedFakeContext creates a FakeContext that rejects every call
// with ErrUnsupportedCapability.
func NewUnsupportedFakeContext() *FakeContext {
	return &FakeContext{unsupported: true}
}

// Location returns the stored position, if any.
func (f *FakeContext) Location(ctx context.Context) (Location, bool, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unsupported {
		return Location{}, false, ErrUnsupportedCapability
	}
	if f.current == nil {
		return Location{}, false, nil
	}
	return *f.current, true, nil
}

// SetLocation stores loc.
func (f *FakeContext) SetLocation(ctx context.Context, loc Location) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unsupported {
		return ErrUnsupportedCapability
	}
	f.current = &loc
	return nil
}

// Clear removes the stored position.
func (f *FakeContext) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = nil
}
