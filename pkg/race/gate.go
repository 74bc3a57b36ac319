package race

import (
	"errors"
	"fmt"
	"math"

	"github.com/Manikatlantis/TronBlazer/pkg/geom"
)

var (
	ErrTooFewGatePoints = errors.New("gate needs at least two measured points")
	ErrDegenerateGate   = errors.New("gate points do not define a direction")
)

// Crossing is the outcome of observing the vehicle near the gate.
type Crossing int

const (
	NoCrossing Crossing = iota
	// CrossedForward is an accepted lap crossing
	CrossedForward
	// CrossedBackward is a crossing rejected for heading the wrong way
	CrossedBackward
)

// GateSettings tunes the crossing detector.
type GateSettings struct {
	MarginX    float64 // bounding box padding along X
	MarginZ    float64 // bounding box padding along Z
	Cooldown   float64 // seconds between accepted crossings
	ForwardDot float64 // minimum heading alignment with the lap direction
}

// Gate detects the vehicle passing through the start/finish plane.
type Gate struct {
	planePoint  geom.Vec2
	planeNormal geom.Vec2
	min, max    geom.Vec2 // measured bounds before margins
	lapForward  geom.Vec2
	settings    GateSettings

	lastSide      int // -1, +1, or 0 when unset
	lastCrossTime float64
}

// NewGate derives the gate plane from a measured polyline across the track.
// The plane passes through the centre of the points' bounding box; its normal
// is horizontal and perpendicular to the first→last direction. lapForward is
// the track's canonical direction of travel.
func NewGate(points []geom.Vec2, lapForward geom.Vec2, s GateSettings) (*Gate, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewGatePoints, len(points))
	}

	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}

	dir := points[len(points)-1].Sub(points[0]).Normalize()
	if dir == (geom.Vec2{}) {
		return nil, ErrDegenerateGate
	}

	return &Gate{
		planePoint:  min.Add(max).Scale(0.5),
		planeNormal: geom.Vec2{X: -dir.Y, Y: dir.X},
		min:         min,
		max:         max,
		lapForward:  lapForward.Normalize(),
		settings:    s,
	}, nil
}

// Near is the coarse filter: whether p lies in the margin-expanded box.
func (g *Gate) Near(p geom.Vec2) bool {
	return p.X >= g.min.X-g.settings.MarginX &&
		p.X <= g.max.X+g.settings.MarginX &&
		p.Y >= g.min.Y-g.settings.MarginZ &&
		p.Y <= g.max.Y+g.settings.MarginZ
}

// Side is which half-space of the plane p is in. Ties resolve to +1.
func (g *Gate) Side(p geom.Vec2) int {
	if p.Sub(g.planePoint).Dot(g.planeNormal) >= 0 {
		return 1
	}
	return -1
}

// Observe evaluates one frame. pos is the vehicle's horizontal position,
// forward its horizontal heading and now the simulation clock. Far from the
// gate nothing is evaluated and the recorded side is left untouched.
func (g *Gate) Observe(pos, forward geom.Vec2, now float64) Crossing {
	if !g.Near(pos) {
		return NoCrossing
	}

	side := g.Side(pos)
	if g.lastSide == 0 {
		g.lastSide = side
		return NoCrossing
	}

	result := NoCrossing
	if side != g.lastSide && now-g.lastCrossTime > g.settings.Cooldown {
		if forward.Normalize().Dot(g.lapForward) > g.settings.ForwardDot {
			g.lastCrossTime = now
			result = CrossedForward
		} else {
			result = CrossedBackward
		}
	}

	g.lastSide = side
	return result
}

// Reset forgets the recorded side and cooldown
func (g *Gate) Reset() {
	g.lastSide = 0
	g.lastCrossTime = 0
}

func (g *Gate) PlanePoint() geom.Vec2 { return g.planePoint }
func (g *Gate) PlaneNormal() geom.Vec2 { return g.planeNormal }

// Bounds returns the measured box expanded by the margins.
func (g *Gate) Bounds() (min, max geom.Vec2) {
	return geom.Vec2{X: g.min.X - g.settings.MarginX, Y: g.min.Y - g.settings.MarginZ},
		geom.Vec2{X: g.max.X + g.settings.MarginX, Y: g.max.Y + g.settings.MarginZ}
}
