package road

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/Manikatlantis/TronBlazer/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func straightTrack() *Track {
	return NewTrack([]geom.Vec2{{X: 0, Y: 0}, {X: 0, Y: 100}}, 5)
}

func TestNewTrackDropsDegenerateSegments(t *testing.T) {
	tr := NewTrack([]geom.Vec2{{X: 0, Y: 0}, {X: 0, Y: 0.001}, {X: 10, Y: 0}, {X: 10, Y: 0}}, 2)
	segs := tr.Segments()
	require.Len(t, segs, 1)
	assert.Equal(t, geom.Vec2{X: 0, Y: 0.001}, segs[0].Start)
	assert.InDelta(t, 10.0, tr.Length(), 1e-3)
}

func TestEmptyTrackIsNoOp(t *testing.T) {
	for _, pts := range [][]geom.Vec2{nil, {{X: 3, Y: 4}}} {
		tr := NewTrack(pts, 5)
		p := geom.Vec2{X: 100, Y: -50}
		got, bounced := tr.Bounce(p, 0.3)
		assert.False(t, bounced)
		assert.Equal(t, p, got)
		assert.Equal(t, geom.Vec2{}, tr.Forward())
		_, _, ok := tr.PointAt(1)
		assert.False(t, ok)
	}
}

func TestBounceStraightTrackScenario(t *testing.T) {
	tr := straightTrack()
	got, bounced := tr.Bounce(geom.Vec2{X: 8, Y: 50}, 0.3)
	require.True(t, bounced)
	assert.Less(t, got.X, 8.0)
	assert.GreaterOrEqual(t, got.X, -5.0)
	assert.LessOrEqual(t, got.X, 5.0)
	assert.InDelta(t, 50.0, got.Y, 1e-9)
	// overshoot 3 pushed back by 3 * 1.3
	assert.InDelta(t, 4.1, got.X, 1e-9)
}

func TestBounceUsesClampedProjection(t *testing.T) {
	tr := straightTrack()
	// beyond the end cap: closest point is the end point, not the infinite line
	got, bounced := tr.Bounce(geom.Vec2{X: 0, Y: 110}, 0)
	require.True(t, bounced)
	assert.InDelta(t, 105.0, got.Y, 1e-9)
}

func TestBounceInsideLaneIsUnchanged(t *testing.T) {
	tr := straightTrack()
	rapid.Check(t, func(rt *rapid.T) {
		p := geom.Vec2{
			X: rapid.Float64Range(-4.999, 4.999).Draw(rt, "x"),
			Y: rapid.Float64Range(0, 100).Draw(rt, "y"),
		}
		got, bounced := tr.Bounce(p, 0.3)
		if bounced || got != p {
			rt.Fatalf("point %v inside lane moved to %v", p, got)
		}
	})
}

func TestBounceReducesOvershootInward(t *testing.T) {
	tr := straightTrack()
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.Float64Range(0.001, 50).Draw(rt, "d")
		side := rapid.SampledFrom([]float64{-1, 1}).Draw(rt, "side")
		y := rapid.Float64Range(0, 100).Draw(rt, "y")
		p := geom.Vec2{X: side * (5 + d), Y: y}

		got, _ := tr.Bounce(p, 0.3)
		_, dist, _ := tr.Closest(got)
		if dist-5 >= d {
			rt.Fatalf("overshoot not reduced: before %v after %v", d, dist-5)
		}
		if got.X*side >= p.X*side {
			rt.Fatalf("corrected point %v not inward of %v", got, p)
		}
	})
}

func TestPointAtWalksSegments(t *testing.T) {
	tr := NewTrack([]geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, 1)
	require.InDelta(t, 20.0, tr.Length(), 1e-9)

	pos, dir, ok := tr.PointAt(15)
	require.True(t, ok)
	assert.InDelta(t, 10.0, pos.X, 1e-9)
	assert.InDelta(t, 5.0, pos.Y, 1e-9)
	assert.InDelta(t, 1.0, dir.Y, 1e-9)

	pos, _, _ = tr.PointAt(-3)
	assert.Equal(t, geom.Vec2{}, pos)
	pos, _, _ = tr.PointAt(99)
	assert.InDelta(t, 10.0, pos.Y, 1e-9)
}

func TestArenaAround(t *testing.T) {
	tr := straightTrack()
	a := ArenaAround(tr, 10)
	assert.True(t, a.Contains(geom.Vec2{X: 14, Y: 50}))
	assert.False(t, a.Contains(geom.Vec2{X: 16, Y: 50}))
	assert.False(t, a.Contains(geom.Vec2{X: 0, Y: -16}))
}

func TestArena1Definition(t *testing.T) {
	def := Arena1()
	require.NoError(t, def.Validate())

	tr := def.Track()
	fwd := tr.Forward()
	assert.InDelta(t, -1.0, fwd.X, 1e-9)
	// start and end meet so the circuit is closed
	first, last := def.Points[0], def.Points[len(def.Points)-1]
	assert.InDelta(t, first[0], last[0], 1e-9)
	assert.InDelta(t, first[1], last[1], 1e-9)
	assert.InDelta(t, 600+2*math.Pi*200, tr.Length(), 5)

	// the spawn sits on the centerline
	_, dist, ok := tr.Closest(geom.Vec2{X: def.Spawn.X, Y: def.Spawn.Z})
	require.True(t, ok)
	assert.InDelta(t, 0.0, dist, 1e-9)
}

func TestDefinitionFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.json")
	def := Arena1()
	require.NoError(t, def.SaveToFile(path))

	loaded, err := LoadDefinitionFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, def.Name, loaded.Name)
	assert.Len(t, loaded.Points, len(def.Points))
}

func TestLoadDefinitionRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	bad := &Definition{Name: "bad", HalfWidth: 5, GatePoints: []Point{{0, 0}}}
	require.NoError(t, bad.SaveToFile(path))

	_, err := LoadDefinitionFromFile(path)
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = LoadDefinitionFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestShippedArenaFileMatchesBuiltin(t *testing.T) {
	loaded, err := LoadDefinitionFromFile(filepath.Join("..", "..", "assets", "track", "arena1.json"))
	require.NoError(t, err)
	builtin := Arena1()
	require.Len(t, loaded.Points, len(builtin.Points))
	for i := range builtin.Points {
		assert.InDelta(t, builtin.Points[i][0], loaded.Points[i][0], 1e-2)
		assert.InDelta(t, builtin.Points[i][1], loaded.Points[i][1], 1e-2)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()

	a := Arena1()
	require.NoError(t, a.SaveToFile(filepath.Join(dir, "b_arena.json")))

	unnamed := Arena1()
	unnamed.Name = ""
	require.NoError(t, unnamed.SaveToFile(filepath.Join(dir, "a_loop.json")))

	defs, err := LoadCatalog(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "a_loop", defs[0].Name)
	assert.Equal(t, "arena1", defs[1].Name)

	none, err := LoadCatalog(filepath.Join(dir, "*.track"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLoadCatalogFailsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	bad := Arena1()
	bad.HalfWidth = 0
	require.NoError(t, bad.SaveToFile(filepath.Join(dir, "bad.json")))

	_, err := LoadCatalog(filepath.Join(dir, "*.json"))
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = LoadCatalog("[")
	assert.Error(t, err)
}
