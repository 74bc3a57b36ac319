package vehicle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func testHandling() Handling {
	return Handling{TurnSpeed: math.Pi / 2, MaxLean: 0.5, LeanSmooth: 0.04, HoverBaseY: 0.7, HoverAmplitude: 0.05, HoverFrequency: 2}
}

func TestForwardConvention(t *testing.T) {
	f := Forward(0)
	assert.InDelta(t, 0.0, f.X, 1e-12)
	assert.InDelta(t, -1.0, f.Y, 1e-12)

	f = Forward(math.Pi / 2)
	assert.InDelta(t, -1.0, f.X, 1e-12)
	assert.InDelta(t, 0.0, f.Y, 1e-12)
}

func TestSteerLeftIncreasesYaw(t *testing.T) {
	b := NewBike(testHandling())
	b.Steer(true, false, 1)
	assert.InDelta(t, math.Pi/2, b.Yaw, 1e-12)
	b.Steer(true, true, 1)
	assert.InDelta(t, math.Pi/2, b.Yaw, 1e-12)
	b.Steer(false, true, 0.5)
	assert.InDelta(t, math.Pi/4, b.Yaw, 1e-12)
}

func TestAdvanceFollowsHeading(t *testing.T) {
	b := NewBike(testHandling())
	b.Place(b.Position, math.Pi/2)
	b.Speed = 120
	b.Advance(0.5)
	assert.InDelta(t, -60.0, b.Position.X, 1e-9)
	assert.InDelta(t, 0.0, b.Position.Z, 1e-9)
}

func TestLeanStaysBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		b := NewBike(testHandling())
		steps := rapid.SliceOf(rapid.IntRange(0, 2)).Draw(rt, "steps")
		for _, s := range steps {
			b.Lean(s == 1, s == 2)
			if math.Abs(b.Roll) > 0.5 {
				rt.Fatalf("roll %v out of bounds", b.Roll)
			}
		}
	})
}

func TestHoverBobsAroundBase(t *testing.T) {
	b := NewBike(testHandling())
	b.Hover(math.Pi / 4)
	assert.InDelta(t, 0.75, b.Position.Y, 1e-12)
	b.Hover(0)
	assert.InDelta(t, 0.7, b.Position.Y, 1e-12)
}
