package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"asset-viewer/internal/orbit"
)

func TestApplyFollowsOrbitState(t *testing.T) {
	s := New(true)
	c := orbit.New()
	c.Yaw = 0
	c.Pitch = 0
	c.Distance = 6
	c.Target = orbit.Vec3{X: 1, Y: 2, Z: 3}

	s.Apply(c)

	assert.InDelta(t, 1, s.Camera.Position.X, 1e-5)
	assert.InDelta(t, 2, s.Camera.Position.Y, 1e-5)
	assert.InDelta(t, 9, s.Camera.Position.Z, 1e-5)
	assert.Equal(t, float32(1), s.Camera.Target.X)
	assert.Equal(t, float32(3), s.Camera.Target.Z)
}

func TestApplyTracksPanoramaCamera(t *testing.T) {
	s := New(true)
	c := orbit.New()
	c.EnterPanorama()

	s.Apply(c)

	// Camera parked near the sphere center.
	assert.InDelta(t, 0, s.Camera.Target.X, 1e-5)
	assert.Less(t, s.Camera.Position.Z, float32(1))
}
