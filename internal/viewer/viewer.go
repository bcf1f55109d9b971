// Package viewer implements the content-rendering lifecycle: a Viewport
// displays exactly one content item at a time in a continuously animated 3D
// scene, and every content transition fully disposes the previous item's
// resources.
//
// Lifecycle: New → [LoadContent → ClearContent → LoadContent → …]* →
// Cleanup. LoadContent, ClearContent, Update, Draw, and Cleanup must be
// called from the frame thread; asset preparation runs on its own goroutine
// and results are handed back to the frame thread through Update.
package viewer

import (
	"errors"
	"fmt"
	"sync"

	"asset-viewer/internal/content"
	"asset-viewer/internal/logger"
	"asset-viewer/internal/orbit"
	"asset-viewer/internal/overlay"
)

var (
	// ErrViewportClosed is returned by LoadContent after Cleanup.
	ErrViewportClosed = errors.New("viewer: viewport is cleaned up")

	// ErrNoViewport is returned by the package-level Load when no
	// viewport is active.
	ErrNoViewport = errors.New("viewer: no active viewport")
)

// Viewport owns the active content node, the overlay stack, and the orbit
// controls for one visualization session.
type Viewport struct {
	backend  Backend
	log      *logger.Logger
	controls *orbit.Controls
	overlays *overlay.Stack
	shutdown func()

	// mu guards gen, pending, loading, and closed; they are touched from
	// load goroutines as well as the frame thread.
	mu      sync.Mutex
	gen     uint64
	pending []delivery
	loading bool
	closed  bool

	// Frame-thread-only state.
	node    Node
	lastErr error
}

// delivery is one finished preparation handed from a load goroutine to the
// frame thread.
type delivery struct {
	gen   uint64
	asset Asset
	err   error
	url   string
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithLogger sets the diagnostic logger.
func WithLogger(l *logger.Logger) Option {
	return func(v *Viewport) { v.log = l }
}

// WithShutdown sets a hook run once by Cleanup, after content is cleared;
// typically the frame loop's Stop.
func WithShutdown(fn func()) Option {
	return func(v *Viewport) { v.shutdown = fn }
}

// New returns a viewport rendering through backend. This is the initialize
// operation; the returned handle is passed explicitly to every subsequent
// call.
func New(backend Backend, opts ...Option) *Viewport {
	v := &Viewport{
		backend:  backend,
		controls: orbit.New(),
		overlays: overlay.NewStack(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Controls returns the viewport's orbit controls.
func (v *Viewport) Controls() *orbit.Controls {
	return v.controls
}

// Overlays returns the viewport's overlay widget stack.
func (v *Viewport) Overlays() *overlay.Stack {
	return v.overlays
}

// Node returns the live content node, or nil when the viewport is empty.
func (v *Viewport) Node() Node {
	return v.node
}

// LastError returns the most recent load or install failure, cleared by the
// next successful install.
func (v *Viewport) LastError() error {
	return v.lastErr
}

// Loading reports whether a load is in flight: requested but neither
// installed, failed, nor superseded.
func (v *Viewport) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Closed reports whether Cleanup has run.
func (v *Viewport) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// LoadContent synchronously clears the current content, then prepares the
// described asset on a new goroutine. The prepared asset installs from a
// later Update call; a load superseded before then never installs.
//
// Unknown kinds and unsupported model extensions fail immediately with a
// *content.UnsupportedFormatError and change nothing. Calling LoadContent
// after Cleanup fails with ErrViewportClosed.
func (v *Viewport) LoadContent(desc content.Descriptor) error {
	v.mu.Lock()
	closed := v.closed
	v.mu.Unlock()
	if closed {
		return fmt.Errorf("load %s: %w", desc.Kind, ErrViewportClosed)
	}
	if err := desc.Validate(); err != nil {
		v.log.Logf("rejected %s load: %v", desc.Kind, err)
		return err
	}

	v.ClearContent()

	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.loading = true
	v.mu.Unlock()

	v.log.Logf("loading %s from %s", desc.Kind, desc.URL)
	go func() {
		asset, err := v.backend.Prepare(desc)
		v.deliver(gen, asset, err, desc.URL)
	}()
	return nil
}

// deliver hands a finished preparation to the frame thread. Results whose
// generation was superseded while they were in flight are discarded here;
// the fetch itself is never aborted, only ignored.
func (v *Viewport) deliver(gen uint64, asset Asset, err error, url string) {
	v.mu.Lock()
	if v.closed || gen != v.gen {
		v.mu.Unlock()
		if asset != nil {
			asset.Discard()
		}
		v.log.Logf("discarding superseded result for %s", url)
		return
	}
	v.pending = append(v.pending, delivery{gen: gen, asset: asset, err: err, url: url})
	v.mu.Unlock()
}

// Update installs prepared assets and advances the live node's animation.
// Call once per frame with the frame clock (seconds) and frame duration.
func (v *Viewport) Update(now, dt float64) {
	v.mu.Lock()
	closed := v.closed
	gen := v.gen
	batch := v.pending
	v.pending = nil
	v.mu.Unlock()

	for _, d := range batch {
		if closed || d.gen != gen {
			if d.asset != nil {
				d.asset.Discard()
			}
			continue
		}
		v.mu.Lock()
		if v.gen == d.gen {
			v.loading = false
		}
		v.mu.Unlock()
		if d.err != nil {
			v.lastErr = d.err
			v.log.Logf("load failed for %s: %v", d.url, d.err)
			continue
		}
		v.install(d.asset, d.url)
	}

	if v.node != nil {
		v.node.Animate(now, dt)
	}
}

func (v *Viewport) install(a Asset, url string) {
	node, widgets, err := v.backend.Install(a)
	if err != nil {
		v.lastErr = err
		v.log.Logf("install failed for %s: %v", url, err)
		return
	}
	v.node = node
	for _, w := range widgets {
		v.overlays.Push(w)
	}
	if node.Kind() == content.KindPanorama360 {
		v.controls.EnterPanorama()
	}
	v.lastErr = nil
	v.log.Logf("installed %s content", node.Kind())
}

// Draw renders the live node. Call between the stage's Begin and End.
func (v *Viewport) Draw() {
	if v.node != nil {
		v.node.Draw()
	}
}

// ClearContent removes and disposes the current node, discards any
// in-flight load, removes all overlay widgets, and, when the cleared content
// was a panorama, restores the camera and orbit limits. Idempotent.
func (v *Viewport) ClearContent() {
	v.mu.Lock()
	v.gen++ // supersede any in-flight load
	v.loading = false
	stale := v.pending
	v.pending = nil
	v.mu.Unlock()
	for _, d := range stale {
		if d.asset != nil {
			d.asset.Discard()
		}
	}

	if v.node == nil {
		v.overlays.Clear()
		return
	}
	wasPanorama := v.node.Kind() == content.KindPanorama360
	v.node.Dispose()
	v.node = nil
	v.overlays.Clear()
	if wasPanorama {
		v.controls.ExitPanorama()
	}
}

// Cleanup clears content and permanently closes the viewport, then runs the
// shutdown hook (stopping the frame loop). Idempotent; the viewport must not
// be reused afterward.
func (v *Viewport) Cleanup() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()

	v.ClearContent()
	if v.shutdown != nil {
		v.shutdown()
	}
	v.log.Log("viewport cleaned up")
}
