package videotex

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPlayer builds a player around a hand-fed frame channel, skipping
// the ffmpeg probe so the pacing and playback-state logic tests need no
// media file.
func newTestPlayer(frameDur float64) *Player {
	return &Player{
		width:    4,
		height:   2,
		frameDur: frameDur,
		frames:   make(chan *image.RGBA, frameBufferSize),
		done:     make(chan struct{}),
		playing:  true,
	}
}

func testFrame() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, 4, 2))
}

func TestNextFramePacedByFrameRate(t *testing.T) {
	p := newTestPlayer(1.0 / 30)
	first := testFrame()
	second := testFrame()
	p.frames <- first
	p.frames <- second

	got := p.NextFrame(1.0)
	require.Same(t, first, got)

	// Too soon after the previous frame.
	assert.Nil(t, p.NextFrame(1.0+p.frameDur/2))

	got = p.NextFrame(1.0 + p.frameDur)
	require.Same(t, second, got)

	// Buffer drained: nothing to show even after a full frame interval.
	assert.Nil(t, p.NextFrame(2.0))
}

func TestPauseSuppressesFrames(t *testing.T) {
	p := newTestPlayer(1.0 / 30)
	p.frames <- testFrame()

	p.Pause()
	assert.False(t, p.Playing())
	assert.Nil(t, p.NextFrame(5))
	assert.Nil(t, p.NextFrame(10))

	// Resume: the buffered frame comes through.
	p.Play()
	assert.True(t, p.Playing())
	assert.NotNil(t, p.NextFrame(10))
}

func TestToggleFlipsPlaybackState(t *testing.T) {
	p := newTestPlayer(1.0 / 30)
	require.True(t, p.Playing())

	p.Toggle()
	assert.False(t, p.Playing())
	p.Toggle()
	assert.True(t, p.Playing())
}

func TestCloseIsIdempotent(t *testing.T) {
	p := newTestPlayer(1.0 / 30)

	p.Close()
	p.Close()

	// A closed player keeps rejecting frame requests without blocking.
	assert.Nil(t, p.NextFrame(1))
}

func TestNextFrameNilOnClosedChannel(t *testing.T) {
	p := newTestPlayer(1.0 / 30)
	close(p.frames)

	assert.Nil(t, p.NextFrame(1))
}
