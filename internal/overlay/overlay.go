// Package overlay implements the UI widgets layered over the 3D viewport:
// the video play/pause control, the panorama drag hint, and the model info
// panel. Widgets are owned by the viewport and removed on every content
// change and on cleanup.
package overlay

// Widget is a single overlay element. Update handles input once per frame;
// Draw renders in the 2D pass after the 3D scene.
type Widget interface {
	Update()
	Draw()
}

// Stack holds the overlay widgets for one viewport in draw order.
type Stack struct {
	widgets []Widget
}

// NewStack returns an empty overlay stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push appends a widget on top of the stack.
func (s *Stack) Push(w Widget) {
	s.widgets = append(s.widgets, w)
}

// Clear removes all widgets. Idempotent.
func (s *Stack) Clear() {
	s.widgets = nil
}

// Len returns the number of live widgets.
func (s *Stack) Len() int {
	return len(s.widgets)
}

// Update runs input handling for every widget, bottom to top.
func (s *Stack) Update() {
	for _, w := range s.widgets {
		w.Update()
	}
}

// Draw renders every widget, bottom to top.
func (s *Stack) Draw() {
	for _, w := range s.widgets {
		w.Draw()
	}
}
