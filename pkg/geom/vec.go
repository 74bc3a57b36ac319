package geom

import "math"

// Vec2 is a point or direction in the horizontal plane.
// Y holds the world Z coordinate.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a point or direction in world space (Y is up)
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }
func (a Vec2) LengthSq() float64 { return a.Dot(a) }
func (a Vec2) Length() float64 { return math.Sqrt(a.LengthSq()) }
func (a Vec2) DistanceTo(b Vec2) float64 { return a.Sub(b).Length() }

// Perp returns a rotated 90 degrees counter-clockwise.
func (a Vec2) Perp() Vec2 { return Vec2{-a.Y, a.X} }

// Normalize returns a unit vector, or the zero vector when a has no length.
func (a Vec2) Normalize() Vec2 {
	l := a.Length()
	if l == 0 {
		return Vec2{}
	}
	return a.Scale(1 / l)
}

// Lerp interpolates from a to b by t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) LengthSq() float64 { return a.Dot(a) }
func (a Vec3) Length() float64 { return math.Sqrt(a.LengthSq()) }

func (a Vec3) DistanceTo(b Vec3) float64 { return a.Sub(b).Length() }

// XZ drops the vertical component.
func (a Vec3) XZ() Vec2 { return Vec2{a.X, a.Z} }

// Lerp interpolates from a to b by t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t), Lerp(a.Z, b.Z, t)}
}

// OnGround lifts a horizontal point to height y.
func OnGround(p Vec2, y float64) Vec3 { return Vec3{p.X, y, p.Y} }

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ClosestOnSegment2 projects p onto segment ab, clamped to its end points.
func ClosestOnSegment2(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return a
	}
	t := Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return a.Add(ab.Scale(t))
}

// DistancePointToSegment3 is the distance from p to the closest point of ab.
// A zero-length segment degrades to point-to-point distance.
func DistancePointToSegment3(p, a, b Vec3) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return ap.Length()
	}
	t := Clamp(ap.Dot(ab)/lenSq, 0, 1)
	return a.Add(ab.Scale(t)).DistanceTo(p)
}
