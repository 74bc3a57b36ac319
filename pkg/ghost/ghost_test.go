package ghost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Manikatlantis/TronBlazer/pkg/geom"
)

func straightLap() []Frame {
	return []Frame{
		{T: 0, Pos: geom.Vec3{X: 0, Y: 0.7, Z: 0}, Yaw: 0},
		{T: 1, Pos: geom.Vec3{X: 0, Y: 0.7, Z: -10}, Yaw: 0.5},
		{T: 2, Pos: geom.Vec3{X: 0, Y: 0.7, Z: -20}, Yaw: 1},
	}
}

func TestRecorderSamplesAtInterval(t *testing.T) {
	r := NewRecorder(0.05)
	kept := 0
	for i := 0; i <= 60; i++ {
		if r.Sample(float64(i)/60, geom.Vec3{Z: float64(-i)}, 0) {
			kept++
		}
	}
	assert.Equal(t, r.Len(), kept)
	assert.Less(t, kept, 61)

	frames := r.Frames()
	require.NotEmpty(t, frames)
	assert.Equal(t, 0.0, frames[0].T)
	for i := 1; i < len(frames); i++ {
		assert.GreaterOrEqual(t, frames[i].T-frames[i-1].T, 0.05-1e-9)
	}
}

func TestRecorderBeginLapClears(t *testing.T) {
	r := NewRecorder(0.05)
	r.Sample(0, geom.Vec3{}, 0)
	r.Sample(0.1, geom.Vec3{}, 0)
	r.BeginLap()
	assert.Equal(t, 0, r.Len())
	assert.True(t, r.Sample(0, geom.Vec3{}, 0))
}

func TestPromoteNeedsTwoFrames(t *testing.T) {
	p := NewPlayer()
	assert.False(t, p.Promote(straightLap()[:1]))
	assert.False(t, p.Active())

	assert.True(t, p.Promote(straightLap()))
	assert.True(t, p.Active())

	assert.False(t, p.Promote(nil))
	assert.True(t, p.Active(), "a short lap keeps the previous ghost")
	assert.Equal(t, 2.0, p.Duration())
}

func TestPlaybackStartsAtFirstFrame(t *testing.T) {
	p := NewPlayer()
	p.Promote(straightLap())

	f, ok := p.At(0)
	require.True(t, ok)
	assert.Equal(t, straightLap()[0].Pos, f.Pos)
	assert.Equal(t, 0.0, f.Yaw)
}

func TestPlaybackInterpolates(t *testing.T) {
	p := NewPlayer()
	p.Promote(straightLap())

	f, ok := p.At(1.5)
	require.True(t, ok)
	assert.InDelta(t, -15.0, f.Pos.Z, 1e-9)
	assert.InDelta(t, 0.75, f.Yaw, 1e-9)

	// time going backwards after a rewind still brackets correctly
	p.Rewind()
	f, ok = p.At(0.5)
	require.True(t, ok)
	assert.InDelta(t, -5.0, f.Pos.Z, 1e-9)
}

func TestPlaybackHiddenAfterLastFrame(t *testing.T) {
	p := NewPlayer()
	p.Promote(straightLap())

	_, ok := p.At(2)
	assert.False(t, ok)
	_, ok = p.At(5)
	assert.False(t, ok)

	p.Clear()
	_, ok = p.At(0)
	assert.False(t, ok)
}

func TestPlaybackStaysOnRecordedPath(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := NewPlayer()
		p.Promote(straightLap())

		times := rapid.SliceOf(rapid.Float64Range(0, 1.999)).Draw(rt, "times")
		for _, at := range times {
			f, ok := p.At(at)
			if !ok {
				rt.Fatalf("ghost hidden at %v", at)
			}
			if f.Pos.Z > 0 || f.Pos.Z < -20 {
				rt.Fatalf("ghost left the lap at %v: %v", at, f.Pos)
			}
			if diff := f.Pos.Z + 10*at; diff > 1e-6 || diff < -1e-6 {
				rt.Fatalf("ghost at %v is at z=%v", at, f.Pos.Z)
			}
		}
	})
}
