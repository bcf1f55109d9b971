package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudFontSize   = 20
	hudPadding    = 12
	hudLineHeight = hudFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// HUD draws runtime diagnostics in the top-right corner: frame rate, heap
// allocation, and the current content status. All lines are off by default.
type HUD struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStatus   bool
	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	status       string
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a HUD with all lines hidden.
func New() *HUD {
	return &HUD{}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (h *HUD) SetShowFPS(show bool) {
	h.ShowFPS = show
}

// SetShowMemAlloc sets whether the heap allocation counter is drawn under FPS.
func (h *HUD) SetShowMemAlloc(show bool) {
	h.ShowMemAlloc = show
}

// SetShowStatus sets whether the content status line is drawn.
func (h *HUD) SetShowStatus(show bool) {
	h.ShowStatus = show
}

// SetStatus sets the content status line, e.g. "image: cat.png" or the last
// load error. Empty hides the line.
func (h *HUD) SetStatus(status string) {
	h.status = status
}

// SetFont sets the font used to draw the HUD. Zero texture ID = raylib default.
func (h *HUD) SetFont(font rl.Font) {
	h.font = font
}

// Draw renders any enabled lines. Call after the scene and overlays in the
// draw loop. FPS/Mem text is only recomputed every updateInterval frames to
// limit allocations; the status line redraws whatever was last set.
func (h *HUD) Draw() {
	h.frameCount++
	update := (h.frameCount % updateInterval) == 0
	if h.ShowFPS && h.lastFpsText == "" {
		update = true
	}
	if h.ShowMemAlloc && h.lastMemText == "" {
		update = true
	}

	y := int32(hudPadding)

	if h.ShowFPS {
		if update {
			h.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		h.drawLine(h.lastFpsText, y, rl.Green)
		y += hudLineHeight
	}

	if h.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&h.lastMemStats)
			mb := float64(h.lastMemStats.Alloc) / (1024 * 1024)
			h.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		h.drawLine(h.lastMemText, y, rl.Green)
		y += hudLineHeight
	}

	if h.ShowStatus && h.status != "" {
		h.drawLine(h.status, y, rl.SkyBlue)
	}
}

// drawLine draws one right-aligned HUD line at the given y.
func (h *HUD) drawLine(text string, y int32, tint rl.Color) {
	if text == "" {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	if h.font.Texture.ID != 0 {
		sz := float32(hudFontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(h.font, text, sz, 1).X-float32(hudPadding), float32(y))
		rl.DrawTextEx(h.font, text, pos, sz, 1, tint)
		return
	}
	w := rl.MeasureText(text, hudFontSize)
	rl.DrawText(text, screenW-w-hudPadding, y, hudFontSize, tint)
}
