package trail

import (
	"math"

	"github.com/Manikatlantis/TronBlazer/pkg/geom"
)

// Segment3D is one straight piece of a trail between two samples
type Segment3D struct {
	Start, End geom.Vec3
}

// Settings controls sampling and collision for a tracer.
type Settings struct {
	MaxPoints    int     // capacity of both the point and segment buffers
	BackOffset   float64 // distance behind the body along -forward
	HeightOffset float64 // height above the body's base (hover-free) height
	Radius       float64 // visible tube radius
	SkipLast     int     // newest segments ignored by the collision test
}

// Tolerance scales the trail radius into the collision threshold.
const Tolerance = 0.9

// Tracer records the recent path of one entity as a tube of segments.
type Tracer struct {
	settings Settings
	points   *Ring[geom.Vec3]
	segments *Ring[Segment3D]
}

func NewTracer(s Settings) *Tracer {
	return &Tracer{
		settings: s,
		points:   NewRing[geom.Vec3](s.MaxPoints),
		segments: NewRing[Segment3D](s.MaxPoints),
	}
}

// SamplePoint is where the tube is anchored for a body at pos facing forward
// (a horizontal unit vector). The height is taken from baseY so the trail
// stays a flat ribbon while the body leans and bobs.
func (t *Tracer) SamplePoint(pos geom.Vec3, forward geom.Vec2, baseY float64) geom.Vec3 {
	behind := pos.XZ().Sub(forward.Scale(t.settings.BackOffset))
	return geom.OnGround(behind, baseY+t.settings.HeightOffset)
}

// Add appends a sample and, once two samples exist, the segment joining the
// previous sample to this one.
func (t *Tracer) Add(p geom.Vec3) {
	prev, ok := t.points.Last()
	t.points.Push(p)
	if ok {
		t.segments.Push(Segment3D{Start: prev, End: p})
	}
}

// Collides reports whether pos is within the tolerance of any segment other
// than the newest SkipLast ones. Returns the closest distance found.
func (t *Tracer) Collides(pos geom.Vec3) (hit bool, minDist float64) {
	minDist = math.Inf(1)
	n := t.segments.Len()
	if n < 2 {
		return false, minDist
	}

	limit := n - t.settings.SkipLast
	threshold := t.settings.Radius * Tolerance
	for i := 0; i < limit; i++ {
		seg := t.segments.At(i)
		d := geom.DistancePointToSegment3(pos, seg.Start, seg.End)
		if d < minDist {
			minDist = d
		}
	}
	return minDist < threshold, minDist
}

// Points returns the samples, oldest first.
func (t *Tracer) Points() []geom.Vec3 { return t.points.Slice() }

// Segments returns the segments, oldest first.
func (t *Tracer) Segments() []Segment3D { return t.segments.Slice() }

func (t *Tracer) Len() int { return t.points.Len() }

func (t *Tracer) Reset() {
	t.points.Clear()
	t.segments.Clear()
}
