package booster

import (
	"math/rand"

	"github.com/Manikatlantis/TronBlazer/pkg/geom"
	"github.com/Manikatlantis/TronBlazer/pkg/road"
)

// Settings tunes booster placement and pickup.
type Settings struct {
	Count          int
	PickupRadius   float64
	NitroGain      float64
	RespawnSeconds float64
	LateralSpread  float64 // fraction of the half width a booster may sit off the centerline
}

// Booster is a pickup lying on the track.
type Booster struct {
	Position  geom.Vec2
	Active    bool
	RespawnAt float64
}

// Refresh reactivates a picked booster whose respawn time has come.
func (b *Booster) Refresh(now float64) bool {
	if b.Active || now < b.RespawnAt {
		return false
	}
	b.Active = true
	return true
}

// Collect picks the booster up when pos is within radius. A collected
// booster goes inactive until now+respawn.
func (b *Booster) Collect(pos geom.Vec2, now, radius, respawn float64) bool {
	if !b.Active || pos.DistanceTo(b.Position) > radius {
		return false
	}
	b.Active = false
	b.RespawnAt = now + respawn
	return true
}

// Place picks a uniformly random spot along the centerline, pushed sideways
// by up to spread*halfWidth. An empty track yields the origin.
func Place(track *road.Track, spread float64, rng *rand.Rand) geom.Vec2 {
	d := rng.Float64() * track.Length()
	pos, dir, ok := track.PointAt(d)
	if !ok {
		return geom.Vec2{}
	}
	lateral := (rng.Float64()*2 - 1) * spread * track.HalfWidth()
	return pos.Add(dir.Perp().Scale(lateral))
}

// Field is the set of boosters scattered over a track.
type Field struct {
	settings Settings
	boosters []Booster
}

func NewField(s Settings) *Field {
	return &Field{settings: s}
}

// Scatter replaces every booster with a fresh, active one placed on track.
func (f *Field) Scatter(track *road.Track, rng *rand.Rand) {
	f.boosters = f.boosters[:0]
	for i := 0; i < f.settings.Count; i++ {
		f.boosters = append(f.boosters, Booster{
			Position: Place(track, f.settings.LateralSpread, rng),
			Active:   true,
		})
	}
}

// Update respawns due boosters, then collects every active booster within
// reach of pos into nitro. It returns the indices picked this frame.
func (f *Field) Update(pos geom.Vec2, now float64, nitro *Nitro) []int {
	var picked []int
	for i := range f.boosters {
		b := &f.boosters[i]
		b.Refresh(now)
		if b.Collect(pos, now, f.settings.PickupRadius, f.settings.RespawnSeconds) {
			nitro.Grant(f.settings.NitroGain)
			picked = append(picked, i)
		}
	}
	return picked
}

// Boosters returns a snapshot for rendering.
func (f *Field) Boosters() []Booster {
	return append([]Booster(nil), f.boosters...)
}

func (f *Field) Settings() Settings { return f.settings }

func (f *Field) Clear() { f.boosters = f.boosters[:0] }
