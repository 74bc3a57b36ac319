package road

import (
	"math"

	"github.com/Manikatlantis/TronBlazer/pkg/geom"
)

// minSegmentLengthSq drops centerline steps too short to project onto.
const minSegmentLengthSq = 0.0001

// Segment is one usable step of the centerline in the XZ plane
type Segment struct {
	Start     geom.Vec2
	End       geom.Vec2
	Direction geom.Vec2 // End - Start, not normalized
	LengthSq  float64
}

// Track is the immutable centerline of a circuit plus its lane half-width.
type Track struct {
	points    []geom.Vec2
	segments  []Segment
	cumLength []float64 // cumLength[i] is the distance along the track where segment i starts
	total     float64
	halfWidth float64
}

// NewTrack builds a track from ordered centerline points (circuit order, not
// closed). Degenerate steps are dropped, so fewer than two distinct points
// yields a track without segments whose queries are all no-ops.
func NewTrack(points []geom.Vec2, halfWidth float64) *Track {
	t := &Track{
		points:    append([]geom.Vec2(nil), points...),
		segments:  make([]Segment, 0, len(points)),
		halfWidth: halfWidth,
	}

	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		ab := b.Sub(a)
		lenSq := ab.LengthSq()
		if lenSq <= minSegmentLengthSq {
			continue
		}
		t.segments = append(t.segments, Segment{Start: a, End: b, Direction: ab, LengthSq: lenSq})
		t.cumLength = append(t.cumLength, t.total)
		t.total += math.Sqrt(lenSq)
	}

	return t
}

// HalfWidth returns the lane half-width
func (t *Track) HalfWidth() float64 { return t.halfWidth }

// Points returns a copy of the centerline
func (t *Track) Points() []geom.Vec2 { return append([]geom.Vec2(nil), t.points...) }

// Segments returns a copy of the usable segments
func (t *Track) Segments() []Segment { return append([]Segment(nil), t.segments...) }

// Length is the total centerline length over usable segments.
func (t *Track) Length() float64 { return t.total }

// Forward is the canonical lap direction: the unit direction of the first
// usable segment. Zero when the track has no segments.
func (t *Track) Forward() geom.Vec2 {
	if len(t.segments) == 0 {
		return geom.Vec2{}
	}
	return t.segments[0].Direction.Normalize()
}

// Closest finds the closest point on the centerline to p. ok is false when the
// track has no usable segments.
func (t *Track) Closest(p geom.Vec2) (closest geom.Vec2, dist float64, ok bool) {
	dist = math.Inf(1)
	for _, seg := range t.segments {
		c := geom.ClosestOnSegment2(p, seg.Start, seg.End)
		if d := p.DistanceTo(c); d < dist {
			dist = d
			closest = c
			ok = true
		}
	}
	return closest, dist, ok
}

// Bounce pushes p back inside the lane when it has drifted further than the
// half-width from the centerline. The push is proportional to the overshoot,
// scaled by (1 + strength) so the corrected point lands slightly inside the
// boundary. bounced is false when no correction was needed.
func (t *Track) Bounce(p geom.Vec2, strength float64) (corrected geom.Vec2, bounced bool) {
	closest, minDist, ok := t.Closest(p)
	if !ok || minDist <= t.halfWidth {
		return p, false
	}

	overshoot := minDist - t.halfWidth
	pushDir := p.Sub(closest).Normalize()
	return p.Sub(pushDir.Scale(overshoot * (1 + strength))), true
}

// PointAt returns the centerline position at distance d along the track and
// the unit direction of the segment containing it. d is clamped to [0, Length].
func (t *Track) PointAt(d float64) (pos, dir geom.Vec2, ok bool) {
	if len(t.segments) == 0 {
		return geom.Vec2{}, geom.Vec2{}, false
	}
	d = geom.Clamp(d, 0, t.total)

	i := len(t.segments) - 1
	for j := range t.segments {
		segLen := math.Sqrt(t.segments[j].LengthSq)
		if d <= t.cumLength[j]+segLen {
			i = j
			break
		}
	}

	seg := t.segments[i]
	segLen := math.Sqrt(seg.LengthSq)
	u := geom.Clamp((d-t.cumLength[i])/segLen, 0, 1)
	return seg.Start.Lerp(seg.End, u), seg.Direction.Scale(1 / segLen), true
}

// Bounds is the axis-aligned box of the centerline points.
func (t *Track) Bounds() (min, max geom.Vec2) {
	if len(t.points) == 0 {
		return geom.Vec2{}, geom.Vec2{}
	}
	min, max = t.points[0], t.points[0]
	for _, p := range t.points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Arena is the axis-aligned wall region the vehicle must stay inside.
type Arena struct {
	Min, Max geom.Vec2
}

// ArenaAround derives the arena walls from the track's extent, pushed out by
// the lane half-width plus margin.
func ArenaAround(t *Track, margin float64) Arena {
	min, max := t.Bounds()
	pad := t.halfWidth + margin
	return Arena{
		Min: geom.Vec2{X: min.X - pad, Y: min.Y - pad},
		Max: geom.Vec2{X: max.X + pad, Y: max.Y + pad},
	}
}

// Contains reports whether p is inside the walls.
func (a Arena) Contains(p geom.Vec2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}
