// Package graphics is the raylib layer: window, frame loop, orbit input,
// and the GPU backend that turns prepared assets into live scene nodes.
package graphics

import (
	"sync/atomic"

	"asset-viewer/internal/orbit"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// backgroundColor is the viewport clear color behind all content.
var backgroundColor = rl.NewColor(16, 16, 20, 255)

// OpenWindow creates the resizable render window and sets the frame-rate
// cap. Call once, before any GPU resource is created.
func OpenWindow(width, height int, title string, targetFPS int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetTargetFPS(int32(targetFPS))
}

// CloseWindow disposes the render surface and GL context.
func CloseWindow() {
	rl.CloseWindow()
}

// Loop is the frame loop as a cancellable repeating task bound to the
// display frame clock: Run drives update/draw once per refresh until Stop is
// called or the window is closed, making teardown deterministic.
type Loop struct {
	stop atomic.Bool
}

// NewLoop returns a loop ready to run.
func NewLoop() *Loop {
	return &Loop{}
}

// Stop makes Run return after the current frame. Safe from any goroutine
// and idempotent.
func (l *Loop) Stop() {
	l.stop.Store(true)
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	return l.stop.Load()
}

// Run drives the frame loop: each frame it calls update with the frame
// clock (seconds) and frame duration, then clears the screen and calls
// draw. Window resizes need no handling here: the camera aspect and the
// overlay layout both follow the current framebuffer size every frame.
func (l *Loop) Run(update func(now, dt float64), draw func()) {
	for !l.stop.Load() && !rl.WindowShouldClose() {
		update(rl.GetTime(), float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		rl.ClearBackground(backgroundColor)
		draw()
		rl.EndDrawing()
	}
}

// UpdateOrbit feeds this frame's mouse input into the orbit controls:
// left-drag rotates, right-drag pans (ignored in panorama mode), wheel
// zooms. Call once per frame from update.
func UpdateOrbit(c *orbit.Controls) {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		c.Drag(d.X, d.Y)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		c.Pan(d.X, d.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Wheel(wheel)
	}
}
