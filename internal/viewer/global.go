package viewer

import (
	"sync"

	"asset-viewer/internal/content"
)

// The package-level accessors operate on a single process-wide active
// viewport, for callers that do not thread the handle themselves. The handle
// API on Viewport is the primary interface; these are a convenience shim
// over it.

var (
	activeMu sync.Mutex
	active   *Viewport
)

// Activate makes v the process-wide active viewport. Any previously active
// viewport is cleaned up first.
func Activate(v *Viewport) {
	activeMu.Lock()
	prev := active
	active = v
	activeMu.Unlock()
	if prev != nil && prev != v {
		prev.Cleanup()
	}
}

// Active returns the process-wide active viewport, or nil.
func Active() *Viewport {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

// Load loads content into the active viewport. Returns ErrNoViewport when
// none is active.
func Load(desc content.Descriptor) error {
	v := Active()
	if v == nil {
		return ErrNoViewport
	}
	return v.LoadContent(desc)
}

// Shutdown cleans up and deactivates the active viewport, if any.
func Shutdown() {
	activeMu.Lock()
	v := active
	active = nil
	activeMu.Unlock()
	if v != nil {
		v.Cleanup()
	}
}
