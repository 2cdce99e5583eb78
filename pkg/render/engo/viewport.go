// pkg/render/engo/viewport.go
package engo

import (
	"github.com/EngoEngine/engo"
)

// WindowViewport reports the position of the engo window on the desktop.
// Before the window exists, or when running headless, it reports (0, 0).
type WindowViewport struct{}

// Position implements engine.Viewport
func (WindowViewport) Position() (int, int) {
	if engo.Window == nil {
		return 0, 0
	}
	return engo.Window.GetPos()
}
