package engine

import "sync"

// Viewport reports the screen position of the window the disc lives in
type Viewport interface {
	Position() (x, y int)
}

// StaticViewport never moves
type StaticViewport struct {
	X, Y int
}

// Position implements Viewport
func (v StaticViewport) Position() (int, int) {
	return v.X, v.Y
}

// ViewportFunc adapts a function to Viewport
type ViewportFunc func() (x, y int)

// Position implements Viewport
func (f ViewportFunc) Position() (int, int) {
	return f()
}

// MovableViewport is a viewport moved programmatically, by key presses in
// the terminal or by tests.
type MovableViewport struct {
	mu   sync.RWMutex
	x, y int
}

// NewMovableViewport creates a viewport at (x, y)
func NewMovableViewport(x, y int) *MovableViewport {
	return &MovableViewport{x: x, y: y}
}

// Position implements Viewport
func (v *MovableViewport) Position() (int, int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.x, v.y
}

// Move shifts the viewport by (dx, dy)
func (v *MovableViewport) Move(dx, dy int) {
	v.mu.Lock()
	v.x += dx
	v.y += dy
	v.mu.Unlock()
}

// MoveTo places the viewport at (x, y)
func (v *MovableViewport) MoveTo(x, y int) {
	v.mu.Lock()
	v.x, v.y = x, y
	v.mu.Unlock()
}
