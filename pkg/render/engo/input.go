// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-bouncer/pkg/engine"
)

// Button names
const (
	ButtonQuit  = "quit"
	ButtonReset = "reset"
)

// InputSystem handles the keyboard: Escape quits, R drops the disc again
// from the centre.
type InputSystem struct {
	sim  *engine.Simulation
	exit func()
}

// NewInputSystem creates a new input system
func NewInputSystem(sim *engine.Simulation) *InputSystem {
	return &InputSystem{
		sim:  sim,
		exit: engo.Exit,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads the registered buttons
func (is *InputSystem) Update(dt float32) {
	is.apply(
		engo.Input.Button(ButtonQuit).JustPressed(),
		engo.Input.Button(ButtonReset).JustPressed(),
	)
}

func (is *InputSystem) apply(quit, reset bool) {
	if quit {
		is.exit()
		return
	}
	if reset {
		is.sim.Reset()
	}
}

// SetupInputBindings sets up the key bindings
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape, engo.KeyQ)
	engo.Input.RegisterButton(ButtonReset, engo.KeyR)
}
