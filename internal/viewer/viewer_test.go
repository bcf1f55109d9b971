package viewer

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-viewer/internal/content"
	"asset-viewer/internal/logger"
	"asset-viewer/internal/overlay"
)

// fakeBackend counts every asset and node it hands out so tests can verify
// the viewport returns to a zero-resource baseline. Prepare optionally blocks
// on gate so tests can control when an in-flight load completes.
type fakeBackend struct {
	gate       chan struct{}
	prepareErr error
	installErr error
	widgets    int

	mu     sync.Mutex
	assets []*fakeAsset
	nodes  []*fakeNode
}

type fakeAsset struct {
	kind content.Kind

	mu        sync.Mutex
	discarded bool
	installed bool
}

func (a *fakeAsset) Kind() content.Kind { return a.kind }

func (a *fakeAsset) Discard() {
	a.mu.Lock()
	a.discarded = true
	a.mu.Unlock()
}

type fakeNode struct {
	kind     content.Kind
	disposed bool
	animated int
	lastNow  float64
}

func (n *fakeNode) Kind() content.Kind { return n.kind }
func (n *fakeNode) Animate(now, dt float64) {
	n.animated++
	n.lastNow = now
}
func (n *fakeNode) Draw()    {}
func (n *fakeNode) Dispose() { n.disposed = true }

type fakeWidget struct{}

func (fakeWidget) Update() {}
func (fakeWidget) Draw()   {}

func (b *fakeBackend) Prepare(desc content.Descriptor) (Asset, error) {
	if b.gate != nil {
		<-b.gate
	}
	if b.prepareErr != nil {
		return nil, b.prepareErr
	}
	a := &fakeAsset{kind: desc.Kind}
	b.mu.Lock()
	b.assets = append(b.assets, a)
	b.mu.Unlock()
	return a, nil
}

func (b *fakeBackend) Install(asset Asset) (Node, []overlay.Widget, error) {
	if b.installErr != nil {
		return nil, nil, b.installErr
	}
	fa := asset.(*fakeAsset)
	fa.mu.Lock()
	fa.installed = true
	fa.mu.Unlock()
	n := &fakeNode{kind: fa.kind}
	b.mu.Lock()
	b.nodes = append(b.nodes, n)
	b.mu.Unlock()
	var widgets []overlay.Widget
	for i := 0; i < b.widgets; i++ {
		widgets = append(widgets, fakeWidget{})
	}
	return n, widgets, nil
}

// liveResources counts assets neither discarded nor consumed by an install,
// plus nodes not yet disposed.
func (b *fakeBackend) liveResources() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	live := 0
	for _, a := range b.assets {
		a.mu.Lock()
		if !a.discarded && !a.installed {
			live++
		}
		a.mu.Unlock()
	}
	for _, n := range b.nodes {
		if !n.disposed {
			live++
		}
	}
	return live
}

// drainUntil pumps Update until cond holds or the deadline passes.
func drainUntil(t *testing.T, v *Viewport, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	now := 0.0
	for time.Now().Before(deadline) {
		v.Update(now, 0.016)
		now += 0.016
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for viewport state")
}

func imageDesc() content.Descriptor {
	return content.Descriptor{Kind: content.KindImage, URL: "shots/cat.png"}
}

func TestLoadContentInstallsNode(t *testing.T) {
	b := &fakeBackend{widgets: 1}
	v := New(b)

	require.NoError(t, v.LoadContent(imageDesc()))
	drainUntil(t, v, func() bool { return v.Node() != nil })

	assert.Equal(t, content.KindImage, v.Node().Kind())
	assert.Equal(t, 1, v.Overlays().Len())
	assert.NoError(t, v.LastError())
}

func TestUpdateAnimatesWithWallClock(t *testing.T) {
	b := &fakeBackend{}
	v := New(b)

	require.NoError(t, v.LoadContent(imageDesc()))
	drainUntil(t, v, func() bool { return v.Node() != nil })

	node := v.Node().(*fakeNode)
	before := node.animated
	v.Update(42.5, 0.016)
	assert.Equal(t, before+1, node.animated)
	assert.Equal(t, 42.5, node.lastNow)
}

func TestClearContentReleasesEverything(t *testing.T) {
	b := &fakeBackend{widgets: 2}
	v := New(b)

	require.NoError(t, v.LoadContent(imageDesc()))
	drainUntil(t, v, func() bool { return v.Node() != nil })
	require.Equal(t, 2, v.Overlays().Len())

	v.ClearContent()

	assert.Nil(t, v.Node())
	assert.Equal(t, 0, v.Overlays().Len())
	assert.Equal(t, 0, b.liveResources())

	// Idempotent.
	v.ClearContent()
	assert.Equal(t, 0, b.liveResources())
}

func TestSupersededLoadNeverInstalls(t *testing.T) {
	b := &fakeBackend{gate: make(chan struct{})}
	log := logger.New(filepath.Join(t.TempDir(), "viewer.txt"))
	v := New(b, WithLogger(log))

	first := content.Descriptor{Kind: content.KindImage, URL: "first.png"}
	second := content.Descriptor{Kind: content.KindVideo, URL: "second.mp4"}
	require.NoError(t, v.LoadContent(first))
	require.NoError(t, v.LoadContent(second))

	close(b.gate)
	drainUntil(t, v, func() bool { return v.Node() != nil })

	assert.Equal(t, content.KindVideo, v.Node().Kind())
	// Exactly one install; the first load's asset was discarded, not shown.
	b.mu.Lock()
	assert.Len(t, b.nodes, 1)
	b.mu.Unlock()
	assert.Equal(t, 1, b.liveResources()) // only the live node

	drainUntil(t, v, func() bool {
		for _, line := range log.Lines() {
			if strings.Contains(line, "superseded") && strings.Contains(line, "first.png") {
				return true
			}
		}
		return false
	})
}

func TestClearContentDiscardsInFlightLoad(t *testing.T) {
	b := &fakeBackend{gate: make(chan struct{})}
	v := New(b)

	require.NoError(t, v.LoadContent(imageDesc()))
	v.ClearContent()
	close(b.gate)

	// The prepared asset must be discarded without ever installing.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		v.Update(0, 0.016)
		if b.liveResources() == 0 {
			b.mu.Lock()
			n := len(b.assets)
			b.mu.Unlock()
			if n == 1 {
				break
			}
		}
		time.Sleep(time.Millisecond)
	}
	assert.Nil(t, v.Node())
	assert.Equal(t, 0, b.liveResources())
}

func TestStaleDeliveryAfterNewerLoadIsDiscarded(t *testing.T) {
	b := &fakeBackend{}
	v := New(b)

	// Hand-deliver a result carrying an old generation while a newer load
	// is current; it must be discarded without installing.
	v.mu.Lock()
	v.gen = 7
	v.mu.Unlock()
	stale := &fakeAsset{kind: content.KindImage}
	v.deliver(3, stale, nil, "old.png")

	v.Update(0, 0.016)
	assert.Nil(t, v.Node())
	stale.mu.Lock()
	assert.True(t, stale.discarded)
	stale.mu.Unlock()
}

func TestLoadingFlagTracksInFlightLoad(t *testing.T) {
	b := &fakeBackend{gate: make(chan struct{})}
	v := New(b)
	assert.False(t, v.Loading())

	require.NoError(t, v.LoadContent(imageDesc()))
	assert.True(t, v.Loading())

	close(b.gate)
	drainUntil(t, v, func() bool { return v.Node() != nil })
	assert.False(t, v.Loading())

	// Clearing with nothing in flight keeps the flag down.
	v.ClearContent()
	assert.False(t, v.Loading())
}

func TestLoadingFlagClearedByClearContent(t *testing.T) {
	b := &fakeBackend{gate: make(chan struct{})}
	v := New(b)

	require.NoError(t, v.LoadContent(imageDesc()))
	require.True(t, v.Loading())

	v.ClearContent()
	assert.False(t, v.Loading())
	close(b.gate)
}

func TestLoadFailureLeavesViewportEmpty(t *testing.T) {
	b := &fakeBackend{prepareErr: errors.New("fetch: connection refused")}
	v := New(b)

	require.NoError(t, v.LoadContent(imageDesc()))
	drainUntil(t, v, func() bool { return v.LastError() != nil })

	assert.Nil(t, v.Node())
	assert.False(t, v.Loading())
	assert.ErrorContains(t, v.LastError(), "connection refused")

	// A later successful load recovers and clears the error.
	b.prepareErr = nil
	require.NoError(t, v.LoadContent(imageDesc()))
	drainUntil(t, v, func() bool { return v.Node() != nil })
	assert.NoError(t, v.LastError())
}

func TestInstallFailureDiscardsAndReports(t *testing.T) {
	b := &fakeBackend{installErr: errors.New("texture upload failed")}
	v := New(b)

	require.NoError(t, v.LoadContent(imageDesc()))
	drainUntil(t, v, func() bool { return v.LastError() != nil })
	assert.Nil(t, v.Node())
}

func TestUnknownKindRejectedSynchronously(t *testing.T) {
	v := New(&fakeBackend{})

	err := v.LoadContent(content.Descriptor{Kind: content.KindUnknown, URL: "x"})
	var unsupported *content.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)

	err = v.LoadContent(content.Descriptor{Kind: content.KindImage, URL: ""})
	assert.Error(t, err)
	assert.Nil(t, v.Node())
}

func TestPanoramaEntersAndRestoresCamera(t *testing.T) {
	b := &fakeBackend{}
	v := New(b)
	c := v.Controls()

	c.Yaw = 0.8
	c.Distance = 9
	savedYaw, savedDistance := c.Yaw, c.Distance
	savedMax := c.MaxDistance

	pano := content.Descriptor{Kind: content.KindPanorama360, URL: "tour.mp4"}
	require.NoError(t, v.LoadContent(pano))
	drainUntil(t, v, func() bool { return v.Node() != nil })

	assert.True(t, c.InPanorama())
	assert.False(t, c.AllowPan)
	assert.Greater(t, c.MaxDistance, savedMax)
	assert.Less(t, c.Distance, float32(1))

	v.ClearContent()

	assert.False(t, c.InPanorama())
	assert.Equal(t, savedYaw, c.Yaw)
	assert.Equal(t, savedDistance, c.Distance)
	assert.Equal(t, savedMax, c.MaxDistance)
	assert.True(t, c.AllowPan)
}

func TestCleanupIsIdempotentAndFinal(t *testing.T) {
	b := &fakeBackend{}
	shutdowns := 0
	v := New(b, WithShutdown(func() { shutdowns++ }))

	require.NoError(t, v.LoadContent(imageDesc()))
	drainUntil(t, v, func() bool { return v.Node() != nil })

	v.Cleanup()
	v.Cleanup()

	assert.True(t, v.Closed())
	assert.Nil(t, v.Node())
	assert.Equal(t, 0, b.liveResources())
	assert.Equal(t, 1, shutdowns)

	err := v.LoadContent(imageDesc())
	assert.ErrorIs(t, err, ErrViewportClosed)
}

func TestRepeatedLoadClearCyclesLeakNothing(t *testing.T) {
	b := &fakeBackend{widgets: 1}
	v := New(b)

	items := []content.Descriptor{
		{Kind: content.KindImage, URL: "a.png"},
		{Kind: content.KindVideo, URL: "b.mp4"},
		{Kind: content.KindPanorama360, URL: "c.mp4"},
		{Kind: content.KindModel3D, URL: "d.glb"},
	}
	for _, item := range items {
		k := item.Kind
		require.NoError(t, v.LoadContent(item))
		drainUntil(t, v, func() bool { return v.Node() != nil && v.Node().Kind() == k })
		v.ClearContent()
		assert.Equal(t, 0, b.liveResources(), "leak after %s", k)
		assert.False(t, v.Controls().InPanorama())
	}
}

func TestActiveViewportSwapCleansPrevious(t *testing.T) {
	t.Cleanup(Shutdown)

	b := &fakeBackend{}
	v1 := New(b)
	v2 := New(b)

	Activate(v1)
	require.Same(t, v1, Active())

	Activate(v2)
	assert.True(t, v1.Closed())
	assert.False(t, v2.Closed())

	require.NoError(t, Load(imageDesc()))
	drainUntil(t, v2, func() bool { return v2.Node() != nil })

	Shutdown()
	assert.True(t, v2.Closed())
	assert.Nil(t, Active())
	assert.ErrorIs(t, Load(imageDesc()), ErrNoViewport)
}
