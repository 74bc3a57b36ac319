package race

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Manikatlantis/TronBlazer/pkg/geom"
)

var testGateSettings = GateSettings{MarginX: 10, MarginZ: 10, Cooldown: 0.8, ForwardDot: 0.1}

// gate across the track at x=0, laps run towards -x
func testGate(t require.TestingT) *Gate {
	pts := []geom.Vec2{{X: 0, Y: -10}, {X: 0.1, Y: 0}, {X: 0, Y: 10}}
	g, err := NewGate(pts, geom.Vec2{X: -1}, testGateSettings)
	require.NoError(t, err)
	return g
}

func TestNewGateRejectsBadPoints(t *testing.T) {
	_, err := NewGate([]geom.Vec2{{X: 1}}, geom.Vec2{X: -1}, testGateSettings)
	assert.ErrorIs(t, err, ErrTooFewGatePoints)

	_, err = NewGate([]geom.Vec2{{X: 1, Y: 1}, {X: 1, Y: 1}}, geom.Vec2{X: -1}, testGateSettings)
	assert.ErrorIs(t, err, ErrDegenerateGate)
}

func TestGatePlane(t *testing.T) {
	g := testGate(t)
	assert.InDelta(t, 0.05, g.PlanePoint().X, 1e-12)
	assert.InDelta(t, 0.0, g.PlanePoint().Y, 1e-12)
	assert.InDelta(t, -1.0, g.PlaneNormal().X, 1e-12)
	assert.Equal(t, 1, g.Side(g.PlanePoint()))

	assert.True(t, g.Near(geom.Vec2{X: 9, Y: 19}))
	assert.False(t, g.Near(geom.Vec2{X: 11, Y: 0}))
}

func TestGateFirstObservationOnlyRecordsSide(t *testing.T) {
	g := testGate(t)
	fwd := geom.Vec2{X: -1}
	assert.Equal(t, NoCrossing, g.Observe(geom.Vec2{X: -1}, fwd, 5))
	assert.Equal(t, NoCrossing, g.Observe(geom.Vec2{X: -2}, fwd, 6))
}

func TestGateCooldownAllowsOneLap(t *testing.T) {
	g := testGate(t)
	fwd := geom.Vec2{X: -1}

	laps := 0
	obs := []struct {
		x, t float64
	}{{1, 0}, {-1, 1}, {1, 1.2}, {-1, 1.4}}
	for _, o := range obs {
		if g.Observe(geom.Vec2{X: o.x}, fwd, o.t) == CrossedForward {
			laps++
		}
	}
	assert.Equal(t, 1, laps)
}

func TestGateIgnoresFarAway(t *testing.T) {
	g := testGate(t)
	fwd := geom.Vec2{X: -1}
	g.Observe(geom.Vec2{X: 1}, fwd, 0)
	assert.Equal(t, NoCrossing, g.Observe(geom.Vec2{X: -50}, fwd, 2))
	assert.Equal(t, CrossedForward, g.Observe(geom.Vec2{X: -1}, fwd, 3))
}

func TestGateBackwardNeverCounts(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := testGate(rt)
		angle := rapid.Float64Range(0, 2*math.Pi).Draw(rt, "angle")
		fwd := geom.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
		if fwd.Dot(geom.Vec2{X: -1}) > 0.1 {
			rt.Skip("heading is aligned with the lap direction")
		}

		n := rapid.IntRange(1, 20).Draw(rt, "crossings")
		x := 1.0
		for i := 0; i <= n; i++ {
			if g.Observe(geom.Vec2{X: x}, fwd, float64(i)*2) == CrossedForward {
				rt.Fatalf("crossing %d counted with heading %v", i, fwd)
			}
			x = -x
		}
	})
}

func TestGateReset(t *testing.T) {
	g := testGate(t)
	fwd := geom.Vec2{X: -1}
	g.Observe(geom.Vec2{X: 1}, fwd, 0)
	g.Reset()
	assert.Equal(t, NoCrossing, g.Observe(geom.Vec2{X: -1}, fwd, 1))
}

func TestLapTimerFirstCrossingStartsTiming(t *testing.T) {
	l := NewLapTimer(10)
	res := l.Complete(3)
	assert.Equal(t, 1, res.Lap)
	assert.False(t, res.Timed)

	start, ok := l.Timing()
	assert.True(t, ok)
	assert.Equal(t, 3.0, start)
}

func TestLapTimerDiscardsShortLaps(t *testing.T) {
	l := NewLapTimer(10)
	l.Start(0)
	res := l.Complete(4)
	assert.True(t, res.Timed)
	assert.False(t, res.Valid)
	_, ok := l.Best()
	assert.False(t, ok)

	res = l.Complete(16)
	assert.True(t, res.Valid)
	assert.True(t, res.Record)
	best, ok := l.Best()
	assert.True(t, ok)
	assert.Equal(t, 12.0, best)

	res = l.Complete(30)
	assert.True(t, res.Valid)
	assert.False(t, res.Record)
	last, _ := l.Last()
	assert.Equal(t, 14.0, last)
}

func TestLapTimerResetKeepsBest(t *testing.T) {
	l := NewLapTimer(10)
	l.Start(0)
	l.Complete(11)
	l.Reset()

	assert.Equal(t, 0, l.Count())
	_, timing := l.Timing()
	assert.False(t, timing)
	best, ok := l.Best()
	assert.True(t, ok)
	assert.Equal(t, 11.0, best)
}

func TestBestLapNonIncreasing(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		l := NewLapTimer(10)
		l.Start(0)
		durations := rapid.SliceOfN(rapid.Float64Range(0.5, 60), 1, 30).Draw(rt, "durations")

		now := 0.0
		prev, hadPrev := math.Inf(1), false
		for _, d := range durations {
			now += d
			res := l.Complete(now)
			best, ok := l.Best()
			if res.Record && res.Duration < 10 {
				rt.Fatalf("lap of %v set a record", res.Duration)
			}
			if hadPrev && !ok {
				rt.Fatalf("best lap disappeared")
			}
			if ok {
				if best > prev {
					rt.Fatalf("best lap grew from %v to %v", prev, best)
				}
				if best < 10 {
					rt.Fatalf("best lap %v below minimum", best)
				}
				prev, hadPrev = best, true
			}
		}
	})
}

func TestFormatLapTime(t *testing.T) {
	assert.Equal(t, "1:05.43", FormatLapTime(65.432))
	assert.Equal(t, "9.50", FormatLapTime(9.5))
	assert.Equal(t, "0.00", FormatLapTime(0))
	assert.Equal(t, "--.--", FormatLapTime(-1))
	assert.Equal(t, "--.--", FormatLapTime(math.NaN()))
	assert.Equal(t, "--.--", FormatBestLap(12, false))
	assert.Equal(t, "12.00", FormatBestLap(12, true))
}

func TestCountdownSequence(t *testing.T) {
	c := NewCountdown(nil, 0.85)
	c.Begin()

	var labels []string
	goAt := -1.0
	now := 0.0
	for i := 0; i < 7; i++ {
		now += 0.5
		tick := c.Advance(0.5)
		if tick.StepChanged {
			labels = append(labels, c.Label())
		}
		if tick.Go {
			goAt = now
		}
		if tick.Done {
			assert.Equal(t, 3.5, now)
		}
	}

	assert.Equal(t, []string{"3", "2", "1", "GO"}, labels)
	assert.Equal(t, 3.0, goAt)
	assert.False(t, c.Running())
	assert.Equal(t, "", c.Label())
}

func TestCountdownStepClampsToLast(t *testing.T) {
	c := NewCountdown([]string{"A", "B"}, 1)
	c.Begin()
	tick := c.Advance(5)
	assert.True(t, tick.Go)
	assert.True(t, tick.Done)
	assert.Equal(t, 1, c.Step())
}

func TestCountdownPulseStaysInRange(t *testing.T) {
	c := NewCountdown(nil, 0.85)
	c.Begin()
	for i := 0; i < 100; i++ {
		c.Advance(1.0 / 60)
		scale, opacity := c.Pulse()
		assert.InDelta(t, 1.0, scale, 0.18+1e-9)
		assert.InDelta(t, 0.8, opacity, 0.2+1e-9)
	}
}

func TestStateFlags(t *testing.T) {
	assert.True(t, StatePlaying.Drivable())
	assert.True(t, StateTutorial.Drivable())
	assert.False(t, StateCountdown.Drivable())
	assert.True(t, StatePlaying.Racing())
	assert.False(t, StateTutorial.Racing())
	assert.Equal(t, "CRASHED", StateCrashed.String())
}
