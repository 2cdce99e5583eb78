package physics

import "time"

// Frame is the result of one Update call.
type Frame struct {
	Time     time.Time
	Position Vector2D
	Velocity Vector2D
	// Contacts lists the walls hit this frame, at most one per axis.
	Contacts []Contact
}

// Collided reports whether any wall was hit during the frame.
func (f Frame) Collided() bool {
	return len(f.Contacts) > 0
}

// Body is a disc moving inside a viewport-sized box. Motion between wall
// hits follows closed-form projectile equations anchored at the last
// per-axis reference reset, so each axis keeps its own time origin.
//
// A Body is not safe for concurrent use; the frame loop owns it.
type Body struct {
	radius  float64
	bounds  Bounds
	gravity Vector2D
	params  Params
	clock   Clock

	position         Vector2D
	velocity         Vector2D
	baselinePosition Vector2D
	baselineVelocity Vector2D
	t0X, t0Y         time.Time

	viewportVelocity     Vector2D
	lastViewportPosition Vector2D
	lastViewportTime     time.Time
}

// NewBody creates a disc of the given radius at initial inside a
// width x height viewport, using the default tuning.
func NewBody(radius float64, initial Vector2D, width, height float64, gravity bool, clock Clock) *Body {
	return NewBodyWithParams(radius, initial, width, height, gravity, clock, DefaultParams())
}

// NewBodyWithParams is NewBody with explicit tunables. The caller guarantees
// 2*radius is smaller than both viewport dimensions.
func NewBodyWithParams(radius float64, initial Vector2D, width, height float64, gravity bool, clock Clock, params Params) *Body {
	if clock == nil {
		clock = NewSystemClock()
	}

	b := &Body{
		radius:           radius,
		bounds:           NewBounds(width, height),
		params:           params,
		clock:            clock,
		position:         initial,
		baselinePosition: initial,
		velocity:         params.InitialVelocity,
		baselineVelocity: params.InitialVelocity,
	}
	if gravity {
		b.gravity = Vector2D{X: 0, Y: -params.GravityAccel}
	}

	now := clock.Now()
	b.t0X = now
	b.t0Y = now
	b.lastViewportTime = now

	return b
}

// InitViewportReference records the viewport's starting position so the
// first ReportViewportMotion does not see a spurious jump.
func (b *Body) InitViewportReference(x, y float64) {
	b.lastViewportPosition = Vector2D{X: x, Y: y}
	b.lastViewportTime = b.clock.Now()
}

// ReportViewportMotion feeds the latest viewport position sample. It
// estimates the viewport velocity by finite difference and nudges the
// baseline position by a quarter of the displacement, with x inverted
// because screen and simulation x run in opposite apparent directions.
func (b *Body) ReportViewportMotion(x, y float64) {
	now := b.clock.Now()
	current := Vector2D{X: x, Y: y}
	delta := current.Sub(b.lastViewportPosition)

	b.baselinePosition.Y += delta.Y * b.params.BaselineNudge
	b.baselinePosition.X -= delta.X * b.params.BaselineNudge

	dt := seconds(b.lastViewportTime, now)
	if dt > b.params.MinViewportInterval.Seconds() {
		estimate := delta.Scale(b.params.ViewportGain / dt)
		if estimate.IsFinite() {
			b.viewportVelocity = estimate
		}
	}

	b.lastViewportPosition = current
	b.lastViewportTime = now
}

// Update advances the disc to the current clock reading, resolves wall
// hits and re-anchors every axis that collided.
func (b *Body) Update() Frame {
	now := b.clock.Now()
	b.integrate(now)

	var contacts []Contact
	if c, ok := resolveX(b.position.X, b.velocity.X, b.radius, b.bounds, b.params.Restitution, b.viewportVelocity.X); ok {
		b.position.X = c.Position
		b.velocity.X = c.Velocity
		b.resetX(now)
		contacts = append(contacts, c)
	}
	if c, ok := resolveY(b.position.Y, b.velocity.Y, b.radius, b.bounds, b.params.Restitution, b.viewportVelocity.Y); ok {
		b.position.Y = c.Position
		b.velocity.Y = c.Velocity
		b.resetY(now)
		contacts = append(contacts, c)
	}

	return Frame{
		Time:     now,
		Position: b.position,
		Velocity: b.velocity,
		Contacts: contacts,
	}
}

// integrate evaluates the closed-form motion since each axis's reference
// time. Horizontal velocity only changes at wall hits.
func (b *Body) integrate(now time.Time) {
	ex := seconds(b.t0X, now) * b.params.TimeScale
	ey := seconds(b.t0Y, now) * b.params.TimeScale

	b.velocity.Y = b.baselineVelocity.Y + b.gravity.Y*ey
	b.position.Y = b.baselinePosition.Y + 0.5*(b.baselineVelocity.Y+b.velocity.Y)*ey
	b.position.X = b.baselinePosition.X + b.velocity.X*ex
}

func (b *Body) resetX(now time.Time) {
	b.t0X = now
	b.baselinePosition.X = b.position.X
}

func (b *Body) resetY(now time.Time) {
	b.t0Y = now
	b.baselinePosition.Y = b.position.Y
	b.baselineVelocity.Y = b.velocity.Y
}

// Position returns the translation the renderer should apply.
func (b *Body) Position() Vector2D { return b.position }

// Velocity returns the velocity computed by the last Update.
func (b *Body) Velocity() Vector2D { return b.velocity }

// ViewportVelocity returns the latest viewport velocity estimate.
func (b *Body) ViewportVelocity() Vector2D { return b.viewportVelocity }

// Baseline returns the reference position and velocity of the current
// closed-form segment.
func (b *Body) Baseline() (position, velocity Vector2D) {
	return b.baselinePosition, b.baselineVelocity
}

// Radius returns the disc radius
func (b *Body) Radius() float64 { return b.radius }

// Bounds returns the viewport box
func (b *Body) Bounds() Bounds { return b.bounds }

// Gravity returns the constant acceleration, zero when disabled.
func (b *Body) Gravity() Vector2D { return b.gravity }
