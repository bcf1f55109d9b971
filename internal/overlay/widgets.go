package overlay

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize    = 20
	padding     = 8
	lineHeight  = fontSize + 4
	buttonW     = 120
	buttonH     = 36
	bottomInset = 24
)

var (
	// Reused every frame to avoid per-frame color allocations.
	panelBgColor   = rl.NewColor(24, 24, 24, 230)
	panelLineColor = rl.NewColor(80, 80, 80, 255)
	hintBgColor    = rl.NewColor(24, 24, 24, 180)
)

// font is the shared overlay font; zero texture ID falls back to raylib's
// default font. Set once after the window exists.
var font rl.Font

// SetFont sets the font used by all overlay widgets.
func SetFont(f rl.Font) {
	font = f
}

func drawLabel(text string, x, y int32, color rl.Color) {
	if font.Texture.ID != 0 {
		rl.DrawTextEx(font, text, rl.NewVector2(float32(x), float32(y)), float32(fontSize), 1, color)
		return
	}
	rl.DrawText(text, x, y, fontSize, color)
}

func measureLabel(text string) int32 {
	if font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(font, text, float32(fontSize), 1).X)
	}
	return rl.MeasureText(text, fontSize)
}

// Player is the playback state a PlayPauseButton controls.
type Player interface {
	Playing() bool
	Toggle()
}

// PlayPauseButton is a clickable control at the bottom center of the window
// that toggles video playback. Its label follows the playback state.
type PlayPauseButton struct {
	player Player
}

// NewPlayPauseButton returns a button controlling player.
func NewPlayPauseButton(player Player) *PlayPauseButton {
	return &PlayPauseButton{player: player}
}

func (b *PlayPauseButton) bounds() rl.Rectangle {
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())
	return rl.NewRectangle((screenW-buttonW)/2, screenH-buttonH-bottomInset, buttonW, buttonH)
}

// Label returns the current button text ("Pause" while playing).
func (b *PlayPauseButton) Label() string {
	if b.player.Playing() {
		return "Pause"
	}
	return "Play"
}

// Update toggles playback when the button is clicked.
func (b *PlayPauseButton) Update() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), b.bounds()) {
		b.player.Toggle()
	}
}

// Draw renders the button with its state-dependent label.
func (b *PlayPauseButton) Draw() {
	r := b.bounds()
	rl.DrawRectangleRec(r, panelBgColor)
	rl.DrawRectangleLinesEx(r, 1, panelLineColor)
	text := b.Label()
	x := int32(r.X) + (int32(r.Width)-measureLabel(text))/2
	y := int32(r.Y) + (int32(r.Height)-fontSize)/2
	drawLabel(text, x, y, rl.White)
}

// Hint is a persistent one-line message at the bottom center of the window,
// used for the panorama drag-to-look prompt.
type Hint struct {
	Text string
}

// NewHint returns a hint showing text.
func NewHint(text string) *Hint {
	return &Hint{Text: text}
}

// Update is a no-op; hints take no input.
func (h *Hint) Update() {}

// Draw renders the hint bar.
func (h *Hint) Draw() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	w := measureLabel(h.Text) + 2*padding
	x := (screenW - w) / 2
	y := screenH - lineHeight - bottomInset
	rl.DrawRectangle(x, y, w, lineHeight, hintBgColor)
	drawLabel(h.Text, x+padding, y+2, rl.LightGray)
}

// InfoPanel is a multi-line panel in the top-left corner, used for model
// metadata (animation-clip count, interaction hints).
type InfoPanel struct {
	Lines []string
}

// NewInfoPanel returns a panel showing lines.
func NewInfoPanel(lines []string) *InfoPanel {
	return &InfoPanel{Lines: lines}
}

// Update is a no-op; the panel takes no input.
func (p *InfoPanel) Update() {}

// Draw renders the panel with one row per line.
func (p *InfoPanel) Draw() {
	if len(p.Lines) == 0 {
		return
	}
	w := int32(0)
	for _, line := range p.Lines {
		if lw := measureLabel(line); lw > w {
			w = lw
		}
	}
	w += 2 * padding
	h := int32(len(p.Lines))*lineHeight + padding
	rl.DrawRectangle(padding, padding, w, h, panelBgColor)
	rl.DrawRectangleLines(padding, padding, w, h, panelLineColor)
	for i, line := range p.Lines {
		drawLabel(line, 2*padding, padding+4+int32(i)*lineHeight, rl.LightGray)
	}
}
