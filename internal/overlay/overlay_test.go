package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingWidget struct {
	updates int
	draws   int
}

func (w *countingWidget) Update() { w.updates++ }
func (w *countingWidget) Draw()   { w.draws++ }

func TestStackUpdateAndDrawReachEveryWidget(t *testing.T) {
	s := NewStack()
	a := &countingWidget{}
	b := &countingWidget{}
	s.Push(a)
	s.Push(b)
	assert.Equal(t, 2, s.Len())

	s.Update()
	s.Draw()
	s.Draw()

	assert.Equal(t, 1, a.updates)
	assert.Equal(t, 2, a.draws)
	assert.Equal(t, 1, b.updates)
	assert.Equal(t, 2, b.draws)
}

type fakePlayer struct {
	playing bool
}

func (p *fakePlayer) Playing() bool { return p.playing }
func (p *fakePlayer) Toggle()       { p.playing = !p.playing }

func TestPlayPauseButtonLabelFollowsPlayback(t *testing.T) {
	player := &fakePlayer{playing: true}
	b := NewPlayPauseButton(player)

	assert.Equal(t, "Pause", b.Label())

	player.Toggle()
	assert.Equal(t, "Play", b.Label())

	player.Toggle()
	assert.Equal(t, "Pause", b.Label())
}

func TestStackClearIsIdempotent(t *testing.T) {
	s := NewStack()
	s.Push(&countingWidget{})

	s.Clear()
	assert.Equal(t, 0, s.Len())
	s.Clear()
	assert.Equal(t, 0, s.Len())

	// Update/Draw on an empty stack are no-ops.
	s.Update()
	s.Draw()
}
