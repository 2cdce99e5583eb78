package physics

import "time"

const (
	// DefaultTimeScale makes simulated time run 30x faster than wall-clock time.
	DefaultTimeScale = 30.0
	// DefaultDamping is the rebound coefficient for the side walls and the floor.
	DefaultDamping = 0.7
	// CeilingRestitution reflects ceiling hits without energy loss.
	CeilingRestitution = 1.0
	// DefaultGravityAccel is the downward acceleration when gravity is enabled.
	DefaultGravityAccel = 2.5
	// DefaultViewportGain maps screen pixels per second to simulation velocity.
	DefaultViewportGain = 0.003
	// DefaultBaselineNudge is the share of a viewport displacement folded into
	// the baseline position: half of a half step, 0.5*(b + (b + d*0.5)) - b.
	DefaultBaselineNudge = 0.25
	// DefaultMinViewportInterval is the shortest sample interval that yields a
	// viewport velocity estimate. Shorter intervals keep the previous estimate.
	DefaultMinViewportInterval = time.Microsecond
)

// Restitution is the rebound coefficient table per wall. The floor and side
// walls lose energy, the ceiling does not.
type Restitution struct {
	Walls   float64
	Floor   float64
	Ceiling float64
}

// DefaultRestitution returns the 0.7 / 0.7 / 1.0 table.
func DefaultRestitution() Restitution {
	return Restitution{
		Walls:   DefaultDamping,
		Floor:   DefaultDamping,
		Ceiling: CeilingRestitution,
	}
}

// For returns the coefficient applied at wall w.
func (r Restitution) For(w Wall) float64 {
	switch w {
	case WallLeft, WallRight:
		return r.Walls
	case WallFloor:
		return r.Floor
	case WallCeiling:
		return r.Ceiling
	default:
		return 1
	}
}

// Params holds the construction-time tunables of a Body.
type Params struct {
	TimeScale           float64
	Restitution         Restitution
	GravityAccel        float64
	ViewportGain        float64
	BaselineNudge       float64
	MinViewportInterval time.Duration
	// InitialVelocity seeds both the baseline and current velocity.
	InitialVelocity Vector2D
}

// DefaultParams returns the stock tuning: time scale 30, wall damping 0.7.
func DefaultParams() Params {
	return Params{
		TimeScale:           DefaultTimeScale,
		Restitution:         DefaultRestitution(),
		GravityAccel:        DefaultGravityAccel,
		ViewportGain:        DefaultViewportGain,
		BaselineNudge:       DefaultBaselineNudge,
		MinViewportInterval: DefaultMinViewportInterval,
	}
}
