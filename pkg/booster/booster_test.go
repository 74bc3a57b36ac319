package booster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Manikatlantis/TronBlazer/pkg/geom"
	"github.com/Manikatlantis/TronBlazer/pkg/road"
)

func testSettings() Settings {
	return Settings{Count: 8, PickupRadius: 2.2, NitroGain: 35, RespawnSeconds: 8, LateralSpread: 0.75}
}

func TestPickupAndRespawn(t *testing.T) {
	f := NewField(testSettings())
	f.boosters = []Booster{{Position: geom.Vec2{X: 10, Y: 10}, Active: true}}
	nitro := NewNitro(100)

	picked := f.Update(geom.Vec2{X: 11, Y: 10}, 5, nitro)
	assert.Equal(t, []int{0}, picked)
	assert.Equal(t, 35.0, nitro.Amount())
	assert.False(t, f.Boosters()[0].Active)

	// an inactive booster is not picked again
	assert.Empty(t, f.Update(geom.Vec2{X: 11, Y: 10}, 6, nitro))
	assert.Equal(t, 35.0, nitro.Amount())

	f.Update(geom.Vec2{X: 100}, 5+8-0.01, nitro)
	assert.False(t, f.Boosters()[0].Active)

	f.Update(geom.Vec2{X: 100}, 5+8+0.01, nitro)
	assert.True(t, f.Boosters()[0].Active)
}

func TestPickupOutsideRadius(t *testing.T) {
	b := Booster{Position: geom.Vec2{}, Active: true}
	assert.False(t, b.Collect(geom.Vec2{X: 2.3}, 0, 2.2, 8))
	assert.True(t, b.Active)
	assert.True(t, b.Collect(geom.Vec2{X: 2.2}, 0, 2.2, 8))
}

func TestScatterStaysOnTrack(t *testing.T) {
	track := road.NewTrack([]geom.Vec2{{X: 0, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}}, 5)
	f := NewField(testSettings())
	f.Scatter(track, rand.New(rand.NewSource(7)))

	bs := f.Boosters()
	require.Len(t, bs, 8)
	for _, b := range bs {
		assert.True(t, b.Active)
		_, dist, ok := track.Closest(b.Position)
		require.True(t, ok)
		assert.LessOrEqual(t, dist, 0.75*5+1e-9)
	}
}

func TestPlaceOnEmptyTrack(t *testing.T) {
	track := road.NewTrack(nil, 5)
	assert.Equal(t, geom.Vec2{}, Place(track, 0.75, rand.New(rand.NewSource(1))))
}

func TestNitroStaysInBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := NewNitro(100)
		ops := rapid.SliceOf(rapid.Float64Range(-200, 200)).Draw(rt, "ops")
		for _, v := range ops {
			if v >= 0 {
				n.Grant(v)
			} else {
				n.Drain(-v)
			}
			if n.Amount() < 0 || n.Amount() > 100 {
				rt.Fatalf("nitro %v out of bounds", n.Amount())
			}
		}
	})
}

func TestNitroBurn(t *testing.T) {
	n := NewNitro(100)
	assert.False(t, n.Burn(30, 1))

	n.Grant(10)
	assert.True(t, n.Burn(30, 0.5))
	assert.Equal(t, 0.0, n.Amount())
	assert.Equal(t, 0.0, n.Percent())

	n.Grant(150)
	assert.Equal(t, 100.0, n.Percent())
	n.Reset()
	assert.Equal(t, 0.0, n.Amount())
}
