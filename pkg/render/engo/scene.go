// pkg/render/engo/scene.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/colornames"

	"github.com/opd-ai/go-bouncer/pkg/engine"
	"github.com/opd-ai/go-bouncer/pkg/render"
)

// BallScene is the single scene of the windowed bouncer
type BallScene struct {
	sim      *engine.Simulation
	viewport engine.Viewport

	discColor       color.RGBA
	backgroundColor color.RGBA

	ball  *Ball
	balls *BallSystem
	input *InputSystem
}

// NewBallScene creates a scene showing sim. A nil viewport samples the
// engo window.
func NewBallScene(sim *engine.Simulation, viewport engine.Viewport) *BallScene {
	if viewport == nil {
		viewport = WindowViewport{}
	}
	cfg := sim.Config()
	return &BallScene{
		sim:             sim,
		viewport:        viewport,
		discColor:       render.MustParseColor(cfg.Render.Color, colornames.White),
		backgroundColor: render.MustParseColor(cfg.Render.Background, colornames.Black),
	}
}

// Type returns the scene type (required by Engo)
func (scene *BallScene) Type() string {
	return "BallScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *BallScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *BallScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)

	common.SetBackground(scene.backgroundColor)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.build()
	world.AddSystem(scene.balls)
	world.AddSystem(scene.input)

	renderSystem.Add(&scene.ball.BasicEntity, &scene.ball.RenderComponent, &scene.ball.SpaceComponent)

	scene.sim.Start(scene.viewport)
}

// build creates the disc entity and the systems that drive it
func (scene *BallScene) build() {
	snap := scene.sim.Snapshot()
	scene.ball = NewBall(float32(snap.Radius), scene.discColor)
	scene.balls = NewBallSystem(scene.sim, scene.viewport, scene.ball)
	scene.balls.place(snap.Frame, snap.Radius, snap.Bounds)
	scene.input = NewInputSystem(scene.sim)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *BallScene) Exit() {
	scene.sim.Stop()
}

// Run opens the window and blocks until it closes
func Run(sim *engine.Simulation) {
	cfg := sim.Config()
	opts := engo.RunOptions{
		Title:        cfg.Render.Title,
		Width:        cfg.Width,
		Height:       cfg.Height,
		VSync:        cfg.Render.VSync,
		NotResizable: true,
	}
	engo.Run(opts, NewBallScene(sim, nil))
}
