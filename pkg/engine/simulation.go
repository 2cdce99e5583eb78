// pkg/engine/simulation.go
package engine

import (
	"context"
	"sync"

	"github.com/opd-ai/go-bouncer/pkg/config"
	"github.com/opd-ai/go-bouncer/pkg/event"
	"github.com/opd-ai/go-bouncer/pkg/logging"
	"github.com/opd-ai/go-bouncer/pkg/physics"
)

// Status is the lifecycle state of a simulation
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	}
	return "unknown"
}

// Simulation drives one bouncing disc from the positions reported by a
// viewport and publishes what happens on its event bus.
type Simulation struct {
	mu      sync.Mutex
	cfg     *config.Config
	pending *config.Config
	body    *physics.Body
	clock   physics.Clock
	bus     *event.Bus
	logger  *logging.Logger
	ctx     context.Context

	status  Status
	frames  uint64
	bounces map[physics.Wall]uint64
	last    physics.Frame
	viewX   int
	viewY   int
	hasView bool
}

// Snapshot is a copy of the simulation's counters and latest frame
type Snapshot struct {
	Status   Status
	Frames   uint64
	Bounces  map[physics.Wall]uint64
	Frame    physics.Frame
	Radius   float64
	Bounds   physics.Bounds
	Baseline physics.Vector2D
}

// TotalBounces sums the bounce counters over every wall
func (s Snapshot) TotalBounces() uint64 {
	var total uint64
	for _, n := range s.Bounces {
		total += n
	}
	return total
}

// NewSimulation builds a simulation for cfg. A nil clock uses the system
// clock, a nil bus gets a private bus and a nil logger discards output.
func NewSimulation(cfg *config.Config, clock physics.Clock, bus *event.Bus, logger *logging.Logger) *Simulation {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if clock == nil {
		clock = physics.NewSystemClock()
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Simulation{
		cfg:     cfg.Clone(),
		clock:   clock,
		bus:     bus,
		logger:  logger,
		ctx:     logging.WithRunID(context.Background(), logging.GenerateRunID()),
		bounces: make(map[physics.Wall]uint64),
	}
	s.body = s.buildBody(s.cfg)
	return s
}

func (s *Simulation) buildBody(cfg *config.Config) *physics.Body {
	return physics.NewBodyWithParams(
		float64(cfg.Radius),
		physics.Vector2D{},
		float64(cfg.Width),
		float64(cfg.Height),
		cfg.Gravity,
		s.clock,
		cfg.BodyParams(),
	)
}

// Context carries the simulation's run ID for log correlation
func (s *Simulation) Context() context.Context {
	return s.ctx
}

// Bus returns the bus events are published on
func (s *Simulation) Bus() *event.Bus {
	return s.bus
}

// Config returns a copy of the active configuration
func (s *Simulation) Config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// Start records the viewport's initial position as the coupling reference
// and marks the simulation running.
func (s *Simulation) Start(viewport Viewport) {
	s.mu.Lock()
	s.startLocked(viewport)
	cfg := s.cfg
	s.mu.Unlock()

	s.logger.Info(s.ctx, "simulation started",
		"radius", cfg.Radius,
		"width", cfg.Width,
		"height", cfg.Height,
		"gravity", cfg.Gravity,
	)
	s.bus.Publish(&event.BaseEvent{EventType: event.SimulationStarted, Source: s})
}

func (s *Simulation) startLocked(viewport Viewport) {
	x, y := viewport.Position()
	s.body.InitViewportReference(float64(x), float64(y))
	s.viewX, s.viewY = x, y
	s.hasView = true
	s.status = StatusRunning
}

// Stop marks the simulation stopped. Later steps are ignored.
func (s *Simulation) Stop() {
	s.mu.Lock()
	s.status = StatusStopped
	frames := s.frames
	s.mu.Unlock()

	s.logger.Info(s.ctx, "simulation stopped", "frames", frames)
}

// Status returns the lifecycle state
func (s *Simulation) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Step advances the simulation by one frame. The viewport is sampled and
// reported before the body is integrated. A simulation that was never
// started is started from this sample instead.
func (s *Simulation) Step(viewport Viewport) physics.Frame {
	var events []event.Event

	s.mu.Lock()
	if s.pending != nil {
		events = append(events, s.reloadLocked(s.pending))
		s.pending = nil
	}

	switch s.status {
	case StatusStopped:
		frame := s.last
		s.mu.Unlock()
		s.publish(events)
		return frame
	case StatusIdle:
		s.startLocked(viewport)
		events = append(events, &event.BaseEvent{EventType: event.SimulationStarted, Source: s})
	default:
		x, y := viewport.Position()
		s.body.ReportViewportMotion(float64(x), float64(y))
		if x != s.viewX || y != s.viewY {
			events = append(events, event.NewViewportEvent(s,
				float64(x-s.viewX), float64(y-s.viewY), s.body.ViewportVelocity()))
			s.viewX, s.viewY = x, y
		}
	}

	frame := s.body.Update()
	s.frames++
	s.last = frame
	for _, c := range frame.Contacts {
		s.bounces[c.Wall]++
		events = append(events, event.NewBounceEvent(s, c, frame.Position, s.frames))
	}
	s.mu.Unlock()

	for _, c := range frame.Contacts {
		s.logger.Debug(s.ctx, "bounce", "wall", c.Wall.String(), "impact", c.Impact, "velocity", c.Velocity)
	}
	s.publish(events)
	return frame
}

func (s *Simulation) publish(events []event.Event) {
	for _, e := range events {
		s.bus.Publish(e)
	}
}

// Reload replaces the body with one built from cfg. The disc restarts from
// the centre at rest, keeping the current viewport as its reference.
func (s *Simulation) Reload(cfg *config.Config) {
	s.mu.Lock()
	e := s.reloadLocked(cfg)
	s.pending = nil
	s.mu.Unlock()

	s.bus.Publish(e)
}

// RequestReload queues cfg to be applied at the start of the next Step.
// Safe to call from any goroutine.
func (s *Simulation) RequestReload(cfg *config.Config) {
	s.mu.Lock()
	s.pending = cfg.Clone()
	s.mu.Unlock()
}

// Reset rebuilds the body from the active configuration
func (s *Simulation) Reset() {
	s.Reload(s.Config())
}

func (s *Simulation) reloadLocked(cfg *config.Config) event.Event {
	s.cfg = cfg.Clone()
	s.body = s.buildBody(s.cfg)
	if s.hasView {
		s.body.InitViewportReference(float64(s.viewX), float64(s.viewY))
	}

	s.logger.Info(s.ctx, "configuration reloaded",
		"radius", s.cfg.Radius,
		"width", s.cfg.Width,
		"height", s.cfg.Height,
		"gravity", s.cfg.Gravity,
	)
	return &event.BaseEvent{EventType: event.ConfigReloaded, Source: s}
}

// Snapshot copies the current counters
func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	bounces := make(map[physics.Wall]uint64, len(s.bounces))
	for w, n := range s.bounces {
		bounces[w] = n
	}
	baseline, _ := s.body.Baseline()
	return Snapshot{
		Status:   s.status,
		Frames:   s.frames,
		Bounces:  bounces,
		Frame:    s.last,
		Radius:   s.body.Radius(),
		Bounds:   s.body.Bounds(),
		Baseline: baseline,
	}
}
