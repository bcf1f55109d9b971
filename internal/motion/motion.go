// Package motion provides the idle animations applied to installed content.
// All motion is a function of elapsed wall-clock time, not frame count, so
// animation speed is independent of frame rate.
package motion

import (
	"github.com/chewxy/math32"
)

const (
	// BobAmplitude and BobRate drive the vertical float of flat content
	// (rate 0.5 rad/s = period ~12.6s).
	BobAmplitude = 0.1
	BobRate      = 0.5

	// SwayAmplitude and SwayRate drive the slight yaw oscillation of flat
	// content (rate 0.3 rad/s = period ~21s).
	SwayAmplitude = 0.05
	SwayRate      = 0.3

	// SpinRate is the continuous yaw rotation applied to 3D models, rad/s.
	SpinRate = 0.3
)

// Bob returns the vertical offset for flat content at elapsed time t seconds.
func Bob(t float64) float32 {
	return BobAmplitude * math32.Sin(float32(t)*BobRate)
}

// Sway returns the yaw angle in radians for flat content at elapsed time t.
func Sway(t float64) float32 {
	return SwayAmplitude * math32.Sin(float32(t)*SwayRate)
}

// Spin returns the yaw angle in radians for a model at elapsed time t since
// it was installed.
func Spin(t float64) float32 {
	return SpinRate * float32(t)
}

// Fade ramps a value from 0 to a target over a fixed duration. Zero value is
// not usable; construct with NewFade.
type Fade struct {
	target   float32
	duration float64
	start    float64
	started  bool
}

// NewFade returns a fade toward target over duration seconds.
func NewFade(target float32, duration float64) *Fade {
	return &Fade{target: target, duration: duration}
}

// Value returns the faded value at time now (seconds). The first call starts
// the ramp; later calls interpolate linearly until the target is reached.
func (f *Fade) Value(now float64) float32 {
	if !f.started {
		f.started = true
		f.start = now
	}
	if f.duration <= 0 {
		return f.target
	}
	p := (now - f.start) / f.duration
	if p >= 1 {
		return f.target
	}
	if p < 0 {
		return 0
	}
	return f.target * float32(p)
}

// Done reports whether the fade has reached its target by time now.
func (f *Fade) Done(now float64) bool {
	return f.started && now-f.start >= f.duration
}
