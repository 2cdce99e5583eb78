// pkg/physics/collision.go
package physics

// Wall identifies one side of the viewport box.
type Wall int

const (
	WallNone Wall = iota
	WallLeft
	WallRight
	WallFloor
	WallCeiling
)

// String returns the wall name used in logs and events.
func (w Wall) String() string {
	switch w {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	case WallFloor:
		return "floor"
	case WallCeiling:
		return "ceiling"
	default:
		return "none"
	}
}

// Horizontal reports whether the wall stops motion along x.
func (w Wall) Horizontal() bool {
	return w == WallLeft || w == WallRight
}

// Bounds is the axis-aligned box the disc lives in, centred on the origin.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// NewBounds derives ±width/2, ±height/2 bounds from viewport dimensions.
func NewBounds(width, height float64) Bounds {
	return Bounds{
		MinX: -width / 2,
		MaxX: width / 2,
		MinY: -height / 2,
		MaxY: height / 2,
	}
}

// Width returns the horizontal extent
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether a disc of the given radius centred at p lies
// fully inside the box. Touching a wall counts as inside.
func (b Bounds) Contains(p Vector2D, radius float64) bool {
	return p.X >= b.MinX+radius && p.X <= b.MaxX-radius &&
		p.Y >= b.MinY+radius && p.Y <= b.MaxY-radius
}

// Contact describes one wall hit resolved during a frame.
type Contact struct {
	Wall Wall
	// Position is the clamped coordinate along the wall's axis.
	Position float64
	// Impact is the axis velocity just before the rebound.
	Impact float64
	// Velocity is the axis velocity after rebound and viewport kick.
	Velocity float64
}

// resolveX checks the left and right walls. A moving viewport adds its
// x velocity to the rebound.
func resolveX(x, vx, radius float64, b Bounds, r Restitution, viewportVX float64) (Contact, bool) {
	switch {
	case x+radius > b.MaxX:
		return Contact{
			Wall:     WallRight,
			Position: b.MaxX - radius,
			Impact:   vx,
			Velocity: -r.For(WallRight)*vx + viewportVX,
		}, true
	case x-radius < b.MinX:
		return Contact{
			Wall:     WallLeft,
			Position: b.MinX + radius,
			Impact:   vx,
			Velocity: -r.For(WallLeft)*vx + viewportVX,
		}, true
	default:
		return Contact{}, false
	}
}

// resolveY checks the ceiling before the floor. The viewport's y velocity
// is subtracted because screen y grows downward.
func resolveY(y, vy, radius float64, b Bounds, r Restitution, viewportVY float64) (Contact, bool) {
	switch {
	case y+radius > b.MaxY:
		return Contact{
			Wall:     WallCeiling,
			Position: b.MaxY - radius,
			Impact:   vy,
			Velocity: -r.For(WallCeiling)*vy - viewportVY,
		}, true
	case y-radius < b.MinY:
		return Contact{
			Wall:     WallFloor,
			Position: b.MinY + radius,
			Impact:   vy,
			Velocity: -r.For(WallFloor)*vy - viewportVY,
		}, true
	default:
		return Contact{}, false
	}
}
