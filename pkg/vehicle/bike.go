package vehicle

import (
	"math"

	"github.com/Manikatlantis/TronBlazer/pkg/geom"
)

// Handling holds the bike's steering and hover parameters
type Handling struct {
	TurnSpeed      float64 // radians per second
	MaxLean        float64 // radians
	LeanSmooth     float64 // per-frame lerp factor towards the target lean
	HoverBaseY     float64
	HoverAmplitude float64
	HoverFrequency float64 // radians per second of sim time
}

// Bike is the player-controlled light cycle
type Bike struct {
	Position geom.Vec3
	Yaw      float64
	Roll     float64
	Speed    float64 // current forward speed, units per second

	handling Handling
}

func NewBike(h Handling) *Bike {
	return &Bike{handling: h, Position: geom.Vec3{Y: h.HoverBaseY}}
}

// Place puts the bike at a spawn pose with no lean
func (b *Bike) Place(pos geom.Vec3, yaw float64) {
	b.Position = pos
	b.Yaw = yaw
	b.Roll = 0
}

// Steer turns the bike. Left increases yaw.
func (b *Bike) Steer(left, right bool, dt float64) {
	turn := 0.0
	if left {
		turn += b.handling.TurnSpeed * dt
	}
	if right {
		turn -= b.handling.TurnSpeed * dt
	}
	b.Yaw += turn
}

// Lean eases the roll towards the steering direction, bounded to ±MaxLean.
func (b *Bike) Lean(left, right bool) {
	target := 0.0
	if left {
		target = b.handling.MaxLean
	}
	if right {
		target = -b.handling.MaxLean
	}
	b.Roll = geom.Clamp(geom.Lerp(b.Roll, target, b.handling.LeanSmooth), -b.handling.MaxLean, b.handling.MaxLean)
}

// Advance moves the bike along its heading at its current speed.
func (b *Bike) Advance(dt float64) {
	step := b.Forward().Scale(b.Speed * dt)
	b.Position.X += step.X
	b.Position.Z += step.Y
}

// Hover sets the idle bobbing height for sim time t.
func (b *Bike) Hover(t float64) {
	b.Position.Y = b.handling.HoverBaseY + math.Sin(t*b.handling.HoverFrequency)*b.handling.HoverAmplitude
}

// BaseY is the hover-free ride height.
func (b *Bike) BaseY() float64 { return b.handling.HoverBaseY }

func (b *Bike) Forward() geom.Vec2 { return Forward(b.Yaw) }

// SetGround overwrites the horizontal position, keeping the height
func (b *Bike) SetGround(p geom.Vec2) {
	b.Position.X = p.X
	b.Position.Z = p.Y
}

func (b *Bike) Pose() Pose {
	return Pose{Position: b.Position, Yaw: b.Yaw, Roll: b.Roll}
}
