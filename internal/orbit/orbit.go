// Package orbit implements the viewport's orbit camera: yaw/pitch/distance
// around a target point, with zoom and pitch limits, optional panning, and a
// panorama mode that parks the camera at the origin with relaxed limits.
// The controls are pure state; the graphics layer applies them to the real
// camera each frame.
package orbit

import (
	"github.com/chewxy/math32"
)

const (
	// Default framing for flat content and models.
	defaultDistance    = 6
	defaultPitch       = 0.15
	defaultMinDistance = 2
	defaultMaxDistance = 14

	// Panorama mode: camera sits at the sphere center with a wide zoom
	// range so the user can look around and lean in or out.
	panoramaDistance    = 0.1
	panoramaMinDistance = 0.05
	panoramaMaxDistance = 450

	// pitchLimit keeps the camera from flipping over the poles.
	pitchLimit = 1.5

	dragSensitivity = 0.005
	wheelStep       = 0.5
)

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float32
}

// Controls holds the orbit state for one viewport.
type Controls struct {
	Yaw      float32
	Pitch    float32
	Distance float32
	Target   Vec3

	MinDistance float32
	MaxDistance float32
	AllowPan    bool

	panorama bool
	saved    savedState
}

type savedState struct {
	yaw, pitch, distance float32
	target               Vec3
	minD, maxD           float32
	allowPan             bool
}

// New returns orbit controls framing the origin at the default distance.
func New() *Controls {
	return &Controls{
		Pitch:       defaultPitch,
		Distance:    defaultDistance,
		MinDistance: defaultMinDistance,
		MaxDistance: defaultMaxDistance,
		AllowPan:    true,
	}
}

// Drag rotates the camera by a mouse delta in pixels.
func (c *Controls) Drag(dx, dy float32) {
	c.Yaw += dx * dragSensitivity
	c.Pitch += dy * dragSensitivity
	if c.Pitch > pitchLimit {
		c.Pitch = pitchLimit
	}
	if c.Pitch < -pitchLimit {
		c.Pitch = -pitchLimit
	}
}

// Wheel zooms by a scroll delta, clamped to the current distance limits.
func (c *Controls) Wheel(delta float32) {
	c.Distance -= delta * wheelStep
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Pan shifts the target laterally. Ignored when panning is disabled
// (panorama mode).
func (c *Controls) Pan(dx, dy float32) {
	if !c.AllowPan {
		return
	}
	// Pan in the camera's screen plane: right vector from yaw, up is world Y.
	rightX := math32.Cos(c.Yaw)
	rightZ := -math32.Sin(c.Yaw)
	scale := c.Distance * dragSensitivity
	c.Target.X -= dx * scale * rightX
	c.Target.Z -= dx * scale * rightZ
	c.Target.Y += dy * scale
}

// Eye returns the camera position implied by the current orbit state.
func (c *Controls) Eye() Vec3 {
	cp := math32.Cos(c.Pitch)
	return Vec3{
		X: c.Target.X + c.Distance*cp*math32.Sin(c.Yaw),
		Y: c.Target.Y + c.Distance*math32.Sin(c.Pitch),
		Z: c.Target.Z + c.Distance*cp*math32.Cos(c.Yaw),
	}
}

// EnterPanorama saves the current state and reconfigures the controls for
// inside-the-sphere viewing: target at the origin, near-zero distance, wide
// zoom range, panning off. Calling it while already in panorama mode is a
// no-op.
func (c *Controls) EnterPanorama() {
	if c.panorama {
		return
	}
	c.saved = savedState{
		yaw: c.Yaw, pitch: c.Pitch, distance: c.Distance,
		target: c.Target, minD: c.MinDistance, maxD: c.MaxDistance,
		allowPan: c.AllowPan,
	}
	c.panorama = true
	c.Target = Vec3{}
	c.Distance = panoramaDistance
	c.MinDistance = panoramaMinDistance
	c.MaxDistance = panoramaMaxDistance
	c.AllowPan = false
}

// ExitPanorama restores the state saved by EnterPanorama. No-op outside
// panorama mode.
func (c *Controls) ExitPanorama() {
	if !c.panorama {
		return
	}
	c.panorama = false
	c.Yaw = c.saved.yaw
	c.Pitch = c.saved.pitch
	c.Distance = c.saved.distance
	c.Target = c.saved.target
	c.MinDistance = c.saved.minD
	c.MaxDistance = c.saved.maxD
	c.AllowPan = c.saved.allowPan
}

// InPanorama reports whether panorama mode is active.
func (c *Controls) InPanorama() bool {
	return c.panorama
}
