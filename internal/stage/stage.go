// Package stage owns the viewport's camera rig and backdrop. The camera
// position comes from the orbit controls each frame; the backdrop is a
// subtle grid on the XZ plane below the content.
package stage

import (
	"asset-viewer/internal/orbit"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 20
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 40
	gridMajorAlpha = 90
	// gridY keeps the backdrop below floating content.
	gridY = -2
)

// Stage holds the 3D camera and draws the backdrop between BeginMode3D and
// the content node.
type Stage struct {
	Camera      rl.Camera3D
	GridVisible bool
}

// New returns a stage with a perspective camera (fovy 45°, Y up). Position
// and target are applied from the orbit controls each frame via Apply.
func New(gridVisible bool) *Stage {
	s := &Stage{GridVisible: gridVisible}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// Apply positions the camera from the orbit state. Safe to call every frame
// and after window resizes; aspect follows the framebuffer automatically.
func (s *Stage) Apply(c *orbit.Controls) {
	eye := c.Eye()
	s.Camera.Position = rl.NewVector3(eye.X, eye.Y, eye.Z)
	s.Camera.Target = rl.NewVector3(c.Target.X, c.Target.Y, c.Target.Z)
}

// Begin enters 3D mode and draws the backdrop grid (hidden in panorama
// mode). Pair with End.
func (s *Stage) Begin(inPanorama bool) {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible && !inPanorama {
		drawBackdropGrid()
	}
}

// End leaves 3D mode.
func (s *Stage) End() {
	rl.EndMode3D()
}

// drawBackdropGrid draws minor/major grid lines on the XZ plane at gridY.
// Start/end vectors are reused to avoid per-frame allocations.
func drawBackdropGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), gridY, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), gridY, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), gridY, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), gridY, float32(z)
		rl.DrawLine3D(start, end, c)
	}
}
