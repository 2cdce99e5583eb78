// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-bouncer/pkg/physics"
)

// Type represents the type of event
type Type string

// Event types published by the simulation
const (
	SimulationStarted Type = "simulation_started"
	BodyBounced       Type = "body_bounced"
	ViewportMoved     Type = "viewport_moved"
	ConfigReloaded    Type = "config_reloaded"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:   id,
		Type: eventType,
		Cancel: func() {
			b.Unsubscribe(eventType, id)
		},
	}
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (b *Bus) Unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// HandlerCount returns the number of handlers registered for eventType.
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Specific event implementations

// BounceEvent reports one wall hit
type BounceEvent struct {
	BaseEvent
	Wall     physics.Wall
	Speed    float64 // magnitude of the axis velocity at impact
	Position physics.Vector2D
	Frame    uint64
}

// NewBounceEvent creates a bounce event from a resolved contact
func NewBounceEvent(source interface{}, contact physics.Contact, position physics.Vector2D, frame uint64) *BounceEvent {
	speed := contact.Impact
	if speed < 0 {
		speed = -speed
	}
	return &BounceEvent{
		BaseEvent: BaseEvent{
			EventType: BodyBounced,
			Source:    source,
		},
		Wall:     contact.Wall,
		Speed:    speed,
		Position: position,
		Frame:    frame,
	}
}

// ViewportEvent reports a viewport displacement between two samples
type ViewportEvent struct {
	BaseEvent
	DeltaX, DeltaY float64
	Velocity       physics.Vector2D
}

// NewViewportEvent creates a viewport movement event
func NewViewportEvent(source interface{}, dx, dy float64, velocity physics.Vector2D) *ViewportEvent {
	return &ViewportEvent{
		BaseEvent: BaseEvent{
			EventType: ViewportMoved,
			Source:    source,
		},
		DeltaX:   dx,
		DeltaY:   dy,
		Velocity: velocity,
	}
}
