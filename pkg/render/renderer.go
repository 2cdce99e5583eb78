// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-bouncer/pkg/logging"
	"github.com/opd-ai/go-bouncer/pkg/physics"
)

// Renderer draws one frame of the disc.
type Renderer interface {
	Clear()
	RenderDisc(frame physics.Frame, radius float64)
	Present()
}

// NullRenderer is a Renderer that only logs what it is asked to draw.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
}

// NewNullRenderer creates a new NullRenderer with structured logging. A nil
// logger uses the default stderr logger.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{
		logger: logger,
	}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	ctx := context.Background()
	d.logger.Debug(ctx, "Clear called")
}

// Present implements Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	ctx := context.Background()
	d.logger.Debug(ctx, "Present called", "frames", d.frames)
}

// RenderDisc implements Renderer.
func (d *NullRenderer) RenderDisc(frame physics.Frame, radius float64) {
	ctx := context.Background()
	d.logger.Debug(ctx, "RenderDisc called",
		"x", frame.Position.X,
		"y", frame.Position.Y,
		"radius", radius,
		"contacts", len(frame.Contacts),
	)
}

// Frames returns how many frames have been presented.
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}
