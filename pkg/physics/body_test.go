package physics

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

var epoch = time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

// newTestBody builds a body on a manual clock in a 300x300 viewport.
func newTestBody(radius float64, initial Vector2D, gravity bool, velocity Vector2D) (*Body, *ManualClock) {
	clock := NewManualClock(epoch)
	params := DefaultParams()
	params.InitialVelocity = velocity
	return NewBodyWithParams(radius, initial, 300, 300, gravity, clock, params), clock
}

func TestNewBody_Construction_DerivesBoundsAndGravity(t *testing.T) {
	tests := []struct {
		name            string
		width, height   float64
		gravity         bool
		expectedBounds  Bounds
		expectedGravity Vector2D
	}{
		{
			name:            "square_with_gravity",
			width:           300,
			height:          300,
			gravity:         true,
			expectedBounds:  Bounds{MinX: -150, MaxX: 150, MinY: -150, MaxY: 150},
			expectedGravity: Vector2D{X: 0, Y: -DefaultGravityAccel},
		},
		{
			name:            "wide_without_gravity",
			width:           800,
			height:          400,
			gravity:         false,
			expectedBounds:  Bounds{MinX: -400, MaxX: 400, MinY: -200, MaxY: 200},
			expectedGravity: Vector2D{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := NewBody(40, Vector2D{}, tt.width, tt.height, tt.gravity, NewManualClock(epoch))

			if body.Bounds() != tt.expectedBounds {
				t.Errorf("Bounds() = %+v, expected %+v", body.Bounds(), tt.expectedBounds)
			}
			if body.Gravity() != tt.expectedGravity {
				t.Errorf("Gravity() = %v, expected %v", body.Gravity(), tt.expectedGravity)
			}
			if body.Radius() != 40 {
				t.Errorf("Radius() = %v, expected 40", body.Radius())
			}
		})
	}
}

func TestBody_NoMotion_PositionStaysAtInitial(t *testing.T) {
	initial := Vector2D{X: 12, Y: -7}
	body, clock := newTestBody(40, initial, false, Vector2D{})
	body.InitViewportReference(320, 240)

	for i := 0; i < 1000; i++ {
		clock.Advance(16 * time.Millisecond)
		body.ReportViewportMotion(320, 240)
		frame := body.Update()

		if frame.Position != initial {
			t.Fatalf("frame %d: position = %v, expected %v", i, frame.Position, initial)
		}
		if frame.Collided() {
			t.Fatalf("frame %d: unexpected contact %+v", i, frame.Contacts)
		}
	}
}

func TestBody_RightWall_DampedRebound(t *testing.T) {
	body, clock := newTestBody(40, Vector2D{}, false, Vector2D{X: 1})

	// 4s * 30 = 120 simulated units, past the 110 limit.
	clock.Advance(4 * time.Second)
	frame := body.Update()

	if len(frame.Contacts) != 1 || frame.Contacts[0].Wall != WallRight {
		t.Fatalf("expected a single right wall contact, got %+v", frame.Contacts)
	}
	if frame.Position.X != 110 {
		t.Errorf("position.X = %v, expected 110", frame.Position.X)
	}
	if !approxEqual(frame.Velocity.X, -0.7) {
		t.Errorf("velocity.X = %v, expected -0.7", frame.Velocity.X)
	}
	if frame.Contacts[0].Impact != 1 {
		t.Errorf("impact = %v, expected 1", frame.Contacts[0].Impact)
	}
}

func TestBody_LeftWall_DampedRebound(t *testing.T) {
	body, clock := newTestBody(40, Vector2D{}, false, Vector2D{X: -2})

	clock.Advance(2 * time.Second)
	frame := body.Update()

	if len(frame.Contacts) != 1 || frame.Contacts[0].Wall != WallLeft {
		t.Fatalf("expected a single left wall contact, got %+v", frame.Contacts)
	}
	if frame.Position.X != -110 {
		t.Errorf("position.X = %v, expected -110", frame.Position.X)
	}
	if !approxEqual(frame.Velocity.X, 1.4) {
		t.Errorf("velocity.X = %v, expected 1.4", frame.Velocity.X)
	}
}

func TestBody_VerticalRebound_FloorDampedCeilingLossless(t *testing.T) {
	t.Run("floor", func(t *testing.T) {
		body, clock := newTestBody(40, Vector2D{}, true, Vector2D{})

		// 0.5s * 30 = 15: velocity -37.5, position -281.25.
		clock.Advance(500 * time.Millisecond)
		frame := body.Update()

		if len(frame.Contacts) != 1 || frame.Contacts[0].Wall != WallFloor {
			t.Fatalf("expected floor contact, got %+v", frame.Contacts)
		}
		if frame.Position.Y != -110 {
			t.Errorf("position.Y = %v, expected -110", frame.Position.Y)
		}
		if frame.Contacts[0].Impact != -37.5 {
			t.Errorf("impact = %v, expected -37.5", frame.Contacts[0].Impact)
		}
		if coefficient := frame.Velocity.Y / frame.Contacts[0].Impact; !approxEqual(coefficient, -0.7) {
			t.Errorf("floor coefficient = %v, expected -0.7", coefficient)
		}
	})

	t.Run("ceiling", func(t *testing.T) {
		body, clock := newTestBody(40, Vector2D{}, false, Vector2D{Y: 2})

		clock.Advance(4 * time.Second)
		frame := body.Update()

		if len(frame.Contacts) != 1 || frame.Contacts[0].Wall != WallCeiling {
			t.Fatalf("expected ceiling contact, got %+v", frame.Contacts)
		}
		if frame.Position.Y != 110 {
			t.Errorf("position.Y = %v, expected 110", frame.Position.Y)
		}
		if frame.Velocity.Y != -2 {
			t.Errorf("velocity.Y = %v, expected exactly -2", frame.Velocity.Y)
		}
	})
}

func TestBody_Corner_BothAxesCollide(t *testing.T) {
	body, clock := newTestBody(40, Vector2D{}, false, Vector2D{X: 1, Y: 2})

	clock.Advance(4 * time.Second)
	frame := body.Update()

	if len(frame.Contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(frame.Contacts))
	}
	if frame.Contacts[0].Wall != WallRight || frame.Contacts[1].Wall != WallCeiling {
		t.Errorf("walls = %v, %v; expected right, ceiling", frame.Contacts[0].Wall, frame.Contacts[1].Wall)
	}
	if frame.Position != (Vector2D{X: 110, Y: 110}) {
		t.Errorf("position = %v, expected (110, 110)", frame.Position)
	}
}

func TestBody_ReferenceReset_ZeroElapsedReproducesClampedState(t *testing.T) {
	body, clock := newTestBody(40, Vector2D{}, true, Vector2D{X: 1})

	clock.Advance(4 * time.Second)
	collided := body.Update()
	if len(collided.Contacts) != 2 {
		t.Fatalf("expected wall and floor contacts, got %+v", collided.Contacts)
	}

	baseP, baseV := body.Baseline()
	if baseP != collided.Position {
		t.Errorf("baseline position = %v, expected %v", baseP, collided.Position)
	}
	if baseV.Y != collided.Velocity.Y {
		t.Errorf("baseline velocity.Y = %v, expected %v", baseV.Y, collided.Velocity.Y)
	}

	// Same clock reading: elapsed time is zero on both axes.
	again := body.Update()
	if again.Position != collided.Position {
		t.Errorf("position = %v, expected %v", again.Position, collided.Position)
	}
	if again.Velocity != collided.Velocity {
		t.Errorf("velocity = %v, expected %v", again.Velocity, collided.Velocity)
	}
	if again.Collided() {
		t.Errorf("position exactly on a wall must not collide, got %+v", again.Contacts)
	}
}

func TestBody_ReportViewportMotion_EstimatesVelocityAndNudgesBaseline(t *testing.T) {
	body, clock := newTestBody(40, Vector2D{X: 10, Y: 20}, false, Vector2D{})
	body.InitViewportReference(100, 200)

	clock.Advance(500 * time.Millisecond)
	body.ReportViewportMotion(130, 190)

	vv := body.ViewportVelocity()
	if !approxEqual(vv.X, 30/0.5*DefaultViewportGain) {
		t.Errorf("viewport velocity X = %v, expected %v", vv.X, 30/0.5*DefaultViewportGain)
	}
	if !approxEqual(vv.Y, -10/0.5*DefaultViewportGain) {
		t.Errorf("viewport velocity Y = %v, expected %v", vv.Y, -10/0.5*DefaultViewportGain)
	}

	baseP, _ := body.Baseline()
	expected := Vector2D{X: 10 - 30*0.25, Y: 20 - 10*0.25}
	if !approxEqual(baseP.X, expected.X) || !approxEqual(baseP.Y, expected.Y) {
		t.Errorf("baseline = %v, expected %v", baseP, expected)
	}
}

func TestBody_ReportViewportMotion_ZeroIntervalKeepsStateFinite(t *testing.T) {
	body, _ := newTestBody(40, Vector2D{}, true, Vector2D{})
	body.InitViewportReference(0, 0)

	// No clock advance: dt is zero.
	body.ReportViewportMotion(50, 50)

	if vv := body.ViewportVelocity(); vv != (Vector2D{}) {
		t.Errorf("viewport velocity = %v, expected unchanged zero", vv)
	}

	frame := body.Update()
	if !frame.Position.IsFinite() || !frame.Velocity.IsFinite() {
		t.Fatalf("state became non-finite: %+v", frame)
	}
}

func TestBody_InitViewportReference_DoesNotMoveBaseline(t *testing.T) {
	initial := Vector2D{X: 5, Y: 5}
	body, clock := newTestBody(40, initial, false, Vector2D{})

	clock.Advance(time.Second)
	body.InitViewportReference(900, 700)

	baseP, baseV := body.Baseline()
	if baseP != initial || baseV != (Vector2D{}) {
		t.Errorf("baseline = %v/%v, expected %v/zero", baseP, baseV, initial)
	}
	if body.ViewportVelocity() != (Vector2D{}) {
		t.Errorf("viewport velocity = %v, expected zero", body.ViewportVelocity())
	}

	// The next sample is measured against the initialised reference.
	clock.Advance(time.Second)
	body.ReportViewportMotion(900, 700)
	if body.ViewportVelocity() != (Vector2D{}) {
		t.Errorf("viewport velocity = %v, expected zero for a stationary viewport", body.ViewportVelocity())
	}
}

func TestBody_WallHit_AddsViewportVelocity(t *testing.T) {
	body, clock := newTestBody(40, Vector2D{}, false, Vector2D{X: 1})
	body.InitViewportReference(0, 0)

	// Viewport moves 100px right over one second: vx = 0.3.
	clock.Advance(time.Second)
	body.ReportViewportMotion(100, 0)

	// Baseline x is now -25; 5s after t0 the disc is at -25 + 150 = 125.
	clock.Advance(4 * time.Second)
	frame := body.Update()

	if len(frame.Contacts) != 1 || frame.Contacts[0].Wall != WallRight {
		t.Fatalf("expected right wall contact, got %+v", frame.Contacts)
	}
	if !approxEqual(frame.Velocity.X, -0.7+0.3) {
		t.Errorf("velocity.X = %v, expected %v", frame.Velocity.X, -0.7+0.3)
	}
}

func TestBody_FloorHit_SubtractsViewportVelocity(t *testing.T) {
	body, clock := newTestBody(40, Vector2D{}, true, Vector2D{})
	body.InitViewportReference(0, 0)

	clock.Advance(250 * time.Millisecond)
	body.ReportViewportMotion(0, 0)
	clock.Advance(250 * time.Millisecond)
	body.ReportViewportMotion(0, 25) // vy = 25/0.25*0.003 = 0.3

	frame := body.Update()
	if len(frame.Contacts) != 1 || frame.Contacts[0].Wall != WallFloor {
		t.Fatalf("expected floor contact, got %+v", frame.Contacts)
	}
	expected := -0.7*frame.Contacts[0].Impact - 0.3
	if !approxEqual(frame.Velocity.Y, expected) {
		t.Errorf("velocity.Y = %v, expected %v", frame.Velocity.Y, expected)
	}
}

func TestBody_Instances_DoNotShareBookkeeping(t *testing.T) {
	first, firstClock := newTestBody(40, Vector2D{}, false, Vector2D{X: 1})
	second, _ := newTestBody(40, Vector2D{X: 3}, false, Vector2D{})

	first.InitViewportReference(10, 10)
	firstClock.Advance(4 * time.Second)
	first.ReportViewportMotion(60, 10)
	first.Update()

	baseP, _ := second.Baseline()
	if baseP != (Vector2D{X: 3}) {
		t.Errorf("second baseline = %v, expected (3, 0)", baseP)
	}
	if second.ViewportVelocity() != (Vector2D{}) {
		t.Errorf("second viewport velocity = %v, expected zero", second.ViewportVelocity())
	}
	if frame := second.Update(); frame.Position != (Vector2D{X: 3}) {
		t.Errorf("second position = %v, expected (3, 0)", frame.Position)
	}
}

func TestBody_DropScenario_BouncesLoseHeight(t *testing.T) {
	body, clock := newTestBody(40, Vector2D{}, true, Vector2D{})
	body.InitViewportReference(0, 0)
	bounds := body.Bounds()

	var rebounds []float64
	lastSpeed := 0.0
	falling := true

	for i := 0; i < 2000; i++ {
		clock.Advance(16 * time.Millisecond)
		body.ReportViewportMotion(0, 0)
		frame := body.Update()

		if !bounds.Contains(frame.Position, body.Radius()) {
			t.Fatalf("frame %d: position %v escaped bounds", i, frame.Position)
		}

		for _, c := range frame.Contacts {
			switch c.Wall {
			case WallFloor:
				if !approxEqual(c.Velocity, -0.7*c.Impact) {
					t.Fatalf("frame %d: rebound %v, expected %v", i, c.Velocity, -0.7*c.Impact)
				}
				rebounds = append(rebounds, c.Velocity)
				falling = false
			case WallCeiling:
				t.Fatalf("frame %d: dropped disc should never reach the ceiling", i)
			default:
				t.Fatalf("frame %d: unexpected %v contact", i, c.Wall)
			}
		}

		if falling {
			speed := -frame.Velocity.Y
			if speed <= lastSpeed {
				t.Fatalf("frame %d: downward speed %v did not increase from %v", i, speed, lastSpeed)
			}
			lastSpeed = speed
		}
	}

	if len(rebounds) < 4 {
		t.Fatalf("expected at least 4 floor contacts, got %d", len(rebounds))
	}
	for i := 1; i < 4; i++ {
		if rebounds[i] >= rebounds[i-1] {
			t.Errorf("rebound %d speed %v did not drop below %v", i, rebounds[i], rebounds[i-1])
		}
	}
}
