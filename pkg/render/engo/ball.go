// pkg/render/engo/ball.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-bouncer/pkg/engine"
	"github.com/opd-ai/go-bouncer/pkg/physics"
	"github.com/opd-ai/go-bouncer/pkg/render"
)

// Ball is the disc entity drawn by the render system
type Ball struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// NewBall creates a disc entity of the given radius and colour
func NewBall(radius float32, c color.Color) *Ball {
	ball := &Ball{BasicEntity: ecs.NewBasic()}
	ball.RenderComponent = common.RenderComponent{
		Drawable: common.Circle{},
		Color:    c,
	}
	ball.SpaceComponent = common.SpaceComponent{
		Width:  2 * radius,
		Height: 2 * radius,
	}
	return ball
}

// BallSystem steps the simulation once per engo frame and moves the disc
// entity to the resulting position.
type BallSystem struct {
	sim      *engine.Simulation
	viewport engine.Viewport
	ball     *Ball
}

// NewBallSystem creates a system driving ball from sim
func NewBallSystem(sim *engine.Simulation, viewport engine.Viewport, ball *Ball) *BallSystem {
	return &BallSystem{
		sim:      sim,
		viewport: viewport,
		ball:     ball,
	}
}

// Remove satisfies the ecs.System interface
func (bs *BallSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the simulation by one frame
func (bs *BallSystem) Update(dt float32) {
	frame := bs.sim.Step(bs.viewport)
	snap := bs.sim.Snapshot()
	bs.place(frame, snap.Radius, snap.Bounds)
}

// place sets the disc's bounding box so its centre sits at the frame
// position. Engo's space component is anchored at the top-left corner.
func (bs *BallSystem) place(frame physics.Frame, radius float64, bounds physics.Bounds) {
	x, y := render.ToScreen(frame.Position, bounds.Width(), bounds.Height())
	bs.ball.SpaceComponent.Position = engo.Point{
		X: float32(x - radius),
		Y: float32(y - radius),
	}
	bs.ball.SpaceComponent.Width = float32(2 * radius)
	bs.ball.SpaceComponent.Height = float32(2 * radius)
}
