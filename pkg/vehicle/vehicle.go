package vehicle

import (
	"math"

	"github.com/Manikatlantis/TronBlazer/pkg/geom"
)

// ForwardAxis is the model-space direction a body faces at yaw 0.
var ForwardAxis = geom.Vec3{X: 0, Y: 0, Z: -1}

// Forward rotates ForwardAxis about the vertical axis by yaw and returns the
// horizontal world direction. Every heading-to-direction conversion goes
// through here.
func Forward(yaw float64) geom.Vec2 {
	sin, cos := math.Sincos(yaw)
	return geom.Vec2{
		X: ForwardAxis.X*cos + ForwardAxis.Z*sin,
		Y: -ForwardAxis.X*sin + ForwardAxis.Z*cos,
	}
}

// Pose is the read-only view of a body that renderers consume
type Pose struct {
	Position geom.Vec3
	Yaw      float64 // heading around the vertical axis
	Roll     float64 // lean
}

// Forward is the horizontal unit direction the pose faces.
func (p Pose) Forward() geom.Vec2 { return Forward(p.Yaw) }
