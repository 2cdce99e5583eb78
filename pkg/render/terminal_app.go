package render

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/colornames"

	"github.com/opd-ai/go-bouncer/pkg/engine"
	"github.com/opd-ai/go-bouncer/pkg/physics"
)

// Viewport steps for arrow keys, in screen pixels
const (
	ViewportStep      = 10
	ViewportFastStep  = 50
	terminalFrameTime = 16 * time.Millisecond
)

// TerminalApp runs a simulation in the terminal. With no window to drag,
// the arrow keys move a virtual viewport instead.
type TerminalApp struct {
	screen   tcell.Screen
	renderer *TerminalRenderer
	sim      *engine.Simulation
	viewport *engine.MovableViewport
}

// NewTerminalApp wires sim to an initialised screen.
func NewTerminalApp(screen tcell.Screen, sim *engine.Simulation) *TerminalApp {
	cfg := sim.Config()
	disc := MustParseColor(cfg.Render.Color, colornames.White)
	background := MustParseColor(cfg.Render.Background, colornames.Black)

	return &TerminalApp{
		screen:   screen,
		renderer: NewTerminalRenderer(screen, float64(cfg.Width), float64(cfg.Height), disc, background),
		sim:      sim,
		viewport: engine.NewMovableViewport(0, 0),
	}
}

// Viewport returns the virtual viewport driven by the arrow keys.
func (a *TerminalApp) Viewport() *engine.MovableViewport {
	return a.viewport
}

// Renderer returns the app's renderer.
func (a *TerminalApp) Renderer() *TerminalRenderer {
	return a.renderer
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *TerminalApp) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		step := ViewportStep
		if ev.Modifiers()&tcell.ModShift != 0 {
			step = ViewportFastStep
		}

		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			a.viewport.Move(-step, 0)
		case tcell.KeyRight:
			a.viewport.Move(step, 0)
		case tcell.KeyUp:
			a.viewport.Move(0, -step)
		case tcell.KeyDown:
			a.viewport.Move(0, step)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'r', 'R':
				a.sim.Reset()
			}
		}

	case *tcell.EventResize:
		a.renderer.Layout()
		a.screen.Sync()
	}

	return true
}

// Draw renders frame using the simulation's current geometry.
func (a *TerminalApp) Draw(frame physics.Frame) {
	snap := a.sim.Snapshot()
	a.renderer.Resize(snap.Bounds.Width(), snap.Bounds.Height())

	vx, vy := a.viewport.Position()
	a.renderer.SetStatus(fmt.Sprintf(" pos (%.0f, %.0f)  view (%d, %d)  bounces %d  arrows move  r reset  q quit",
		frame.Position.X, frame.Position.Y, vx, vy, snap.TotalBounces()))

	a.renderer.Clear()
	a.renderer.RenderDisc(frame, snap.Radius)
	a.renderer.Present()
}

// Run polls terminal events and steps the simulation at ~60 FPS until the
// user quits or ctx is cancelled. The caller owns the screen and calls Fini.
func (a *TerminalApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(terminalFrameTime)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	a.sim.Start(a.viewport)
	defer a.sim.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventChan:
			if !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Draw(a.sim.Step(a.viewport))
		}
	}
}
