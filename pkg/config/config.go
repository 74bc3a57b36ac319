package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Manikatlantis/TronBlazer/pkg/booster"
	"github.com/Manikatlantis/TronBlazer/pkg/race"
	"github.com/Manikatlantis/TronBlazer/pkg/trail"
	"github.com/Manikatlantis/TronBlazer/pkg/vehicle"
)

var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds every gameplay constant. Keys missing from a tuning file keep
// their Default() values.
type Tuning struct {
	// Bike
	BaseSpeed       float64 `json:"base_speed"`
	NitroSpeedBonus float64 `json:"nitro_speed_bonus"`
	TurnSpeed       float64 `json:"turn_speed"`
	MaxLean         float64 `json:"max_lean"`
	LeanSmooth      float64 `json:"lean_smooth"`
	HoverBaseY      float64 `json:"hover_base_y"`
	HoverAmplitude  float64 `json:"hover_amplitude"`
	HoverFrequency  float64 `json:"hover_frequency"`
	BounceStrength  float64 `json:"bounce_strength"`
	CrashTimeScale  float64 `json:"crash_time_scale"`
	CrashDrag       float64 `json:"crash_drag"`

	// Trail
	MaxTrailPoints    int     `json:"max_trail_points"`
	TrailRadius       float64 `json:"trail_radius"`
	TrailSkipLast     int     `json:"trail_skip_last"`
	TrailBackOffset   float64 `json:"trail_back_offset"`
	TrailHeightOffset float64 `json:"trail_height_offset"`

	// Gate and laps
	GateMarginX      float64 `json:"gate_margin_x"`
	GateMarginZ      float64 `json:"gate_margin_z"`
	GateForwardDot   float64 `json:"gate_forward_dot"`
	GateVisualOffset float64 `json:"gate_visual_offset"`
	LapCooldown      float64 `json:"lap_cooldown"`
	MinValidLapTime  float64 `json:"min_valid_lap_time"`

	GhostSampleInterval float64 `json:"ghost_sample_interval"`

	// Boosters and nitro
	BoosterCount          int     `json:"booster_count"`
	PickupRadius          float64 `json:"pickup_radius"`
	BoosterNitroGain      float64 `json:"booster_nitro_gain"`
	BoosterRespawnSeconds float64 `json:"booster_respawn_seconds"`
	BoosterLateralSpread  float64 `json:"booster_lateral_spread"`
	NitroMax              float64 `json:"nitro_max"`
	NitroDrainRate        float64 `json:"nitro_drain_rate"`

	// Flow
	TutorialEnabled       bool     `json:"tutorial_enabled"`
	TutorialBoosterAhead  float64  `json:"tutorial_booster_ahead"`
	CountdownSteps        []string `json:"countdown_steps"`
	CountdownStepDuration float64  `json:"countdown_step_duration"`

	// Effects, in simulation seconds
	GateFlashSeconds    float64 `json:"gate_flash_seconds"`
	RecordFlashSeconds  float64 `json:"record_flash_seconds"`
	TutorialFadeSeconds float64 `json:"tutorial_fade_seconds"`

	ArenaMargin float64 `json:"arena_margin"`
}

// Default returns the shipped tuning.
func Default() Tuning {
	return Tuning{
		BaseSpeed:       120,
		NitroSpeedBonus: 80,
		TurnSpeed:       math.Pi * 0.5,
		MaxLean:         0.5,
		LeanSmooth:      0.04,
		HoverBaseY:      0.7,
		HoverAmplitude:  0.05,
		HoverFrequency:  2,
		BounceStrength:  0.3,
		CrashTimeScale:  0.25,
		CrashDrag:       1.5,

		MaxTrailPoints:    200,
		TrailRadius:       0.9,
		TrailSkipLast:     10,
		TrailBackOffset:   2.5,
		TrailHeightOffset: 0.4,

		GateMarginX:      10,
		GateMarginZ:      10,
		GateForwardDot:   0.1,
		GateVisualOffset: 10,
		LapCooldown:      0.8,
		MinValidLapTime:  10,

		GhostSampleInterval: 0.05,

		BoosterCount:          8,
		PickupRadius:          2.2,
		BoosterNitroGain:      35,
		BoosterRespawnSeconds: 8,
		BoosterLateralSpread:  0.75,
		NitroMax:              100,
		NitroDrainRate:        30,

		TutorialEnabled:       true,
		TutorialBoosterAhead:  60,
		CountdownSteps:        append([]string(nil), race.DefaultCountdownSteps...),
		CountdownStepDuration: 0.85,

		GateFlashSeconds:    0.2,
		RecordFlashSeconds:  1.2,
		TutorialFadeSeconds: 0.6,

		ArenaMargin: 40,
	}
}

// LoadFromFile decodes a JSON tuning file over the defaults and validates it
func LoadFromFile(filename string) (Tuning, error) {
	t := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return t, fmt.Errorf("failed to read tuning file: %w", err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("failed to parse tuning file %s: %w", filename, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning file %s: %w", filename, err)
	}
	return t, nil
}

// Validate rejects values the simulation cannot run with.
func (t Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"base_speed", t.BaseSpeed},
		{"trail_radius", t.TrailRadius},
		{"ghost_sample_interval", t.GhostSampleInterval},
		{"pickup_radius", t.PickupRadius},
		{"nitro_max", t.NitroMax},
		{"countdown_step_duration", t.CountdownStepDuration},
		{"crash_time_scale", t.CrashTimeScale},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, p.name, p.v)
		}
	}

	if t.MaxTrailPoints < 2 {
		return fmt.Errorf("%w: max_trail_points must be at least 2, got %d", ErrInvalidTuning, t.MaxTrailPoints)
	}
	if t.TrailSkipLast < 0 {
		return fmt.Errorf("%w: trail_skip_last must not be negative", ErrInvalidTuning)
	}
	if t.BoosterCount < 0 {
		return fmt.Errorf("%w: booster_count must not be negative", ErrInvalidTuning)
	}
	if t.LeanSmooth < 0 || t.LeanSmooth > 1 {
		return fmt.Errorf("%w: lean_smooth must be within [0, 1], got %v", ErrInvalidTuning, t.LeanSmooth)
	}
	if len(t.CountdownSteps) == 0 {
		return fmt.Errorf("%w: countdown_steps must not be empty", ErrInvalidTuning)
	}
	return nil
}

func (t Tuning) Handling() vehicle.Handling {
	return vehicle.Handling{
		TurnSpeed:      t.TurnSpeed,
		MaxLean:        t.MaxLean,
		LeanSmooth:     t.LeanSmooth,
		HoverBaseY:     t.HoverBaseY,
		HoverAmplitude: t.HoverAmplitude,
		HoverFrequency: t.HoverFrequency,
	}
}

func (t Tuning) Trail() trail.Settings {
	return trail.Settings{
		MaxPoints:    t.MaxTrailPoints,
		BackOffset:   t.TrailBackOffset,
		HeightOffset: t.TrailHeightOffset,
		Radius:       t.TrailRadius,
		SkipLast:     t.TrailSkipLast,
	}
}

func (t Tuning) Gate() race.GateSettings {
	return race.GateSettings{
		MarginX:    t.GateMarginX,
		MarginZ:    t.GateMarginZ,
		Cooldown:   t.LapCooldown,
		ForwardDot: t.GateForwardDot,
	}
}

func (t Tuning) Boosters() booster.Settings {
	return booster.Settings{
		Count:          t.BoosterCount,
		PickupRadius:   t.PickupRadius,
		NitroGain:      t.BoosterNitroGain,
		RespawnSeconds: t.BoosterRespawnSeconds,
		LateralSpread:  t.BoosterLateralSpread,
	}
}
