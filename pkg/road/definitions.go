package road

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Manikatlantis/TronBlazer/pkg/geom"
)

var ErrInvalidDefinition = errors.New("invalid track definition")

// Point is an [x, z] pair as stored in track files
type Point [2]float64

func (p Point) Vec() geom.Vec2 { return geom.Vec2{X: p[0], Y: p[1]} }

// Spawn is where the bike is placed on reset
type Spawn struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Z   float64 `json:"z"`
	Yaw float64 `json:"yaw"`
}

// Definition describes a circuit: the centerline, lane half-width, the
// measured start/finish gate polyline and the spawn pose.
type Definition struct {
	Name       string  `json:"name"`
	HalfWidth  float64 `json:"half_width"`
	Points     []Point `json:"points"`
	GatePoints []Point `json:"gate_points"`
	Spawn      Spawn   `json:"spawn"`
}

// Track builds the immutable track model.
func (d *Definition) Track() *Track {
	pts := make([]geom.Vec2, len(d.Points))
	for i, p := range d.Points {
		pts[i] = p.Vec()
	}
	return NewTrack(pts, d.HalfWidth)
}

// Gate returns the measured gate polyline in the XZ plane.
func (d *Definition) Gate() []geom.Vec2 {
	pts := make([]geom.Vec2, len(d.GatePoints))
	for i, p := range d.GatePoints {
		pts[i] = p.Vec()
	}
	return pts
}

// Validate rejects definitions the session cannot be built from.
func (d *Definition) Validate() error {
	if d.HalfWidth <= 0 {
		return fmt.Errorf("%w: half_width must be positive, got %v", ErrInvalidDefinition, d.HalfWidth)
	}
	if len(d.GatePoints) < 2 {
		return fmt.Errorf("%w: need at least 2 gate points, got %d", ErrInvalidDefinition, len(d.GatePoints))
	}
	return nil
}

// LoadDefinitionFromFile loads a track definition from a JSON file
func LoadDefinitionFromFile(filename string) (*Definition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read track file: %w", err)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse track file %s: %w", filename, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("track file %s: %w", filename, err)
	}

	return &def, nil
}

// SaveToFile writes the definition as indented JSON.
func (d *Definition) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// Arena1 is the built-in stadium circuit. The start straight runs along
// z=2500 towards -x; the gate is measured across it at x≈-36.
func Arena1() *Definition {
	const (
		startZ   = 2500.0
		radius   = 200.0
		straight = 150.0 // half length of each straight
		arcSteps = 16
	)
	cz := startZ - radius

	var pts []Point
	for x := 0.0; x > -straight; x -= 50 {
		pts = append(pts, Point{x, startZ})
	}
	// left turn, sweeping from the start straight over to the back straight
	for i := 0; i <= arcSteps; i++ {
		phi := math.Pi * float64(i) / arcSteps
		pts = append(pts, Point{-straight - radius*math.Sin(phi), cz + radius*math.Cos(phi)})
	}
	for x := -straight + 50; x < straight; x += 50 {
		pts = append(pts, Point{x, cz - radius})
	}
	for i := 0; i <= arcSteps; i++ {
		phi := math.Pi * float64(i) / arcSteps
		pts = append(pts, Point{straight + radius*math.Sin(phi), cz - radius*math.Cos(phi)})
	}
	for x := straight - 50; x >= 0; x -= 50 {
		pts = append(pts, Point{x, startZ})
	}

	return &Definition{
		Name:      "arena1",
		HalfWidth: 45,
		Points:    pts,
		GatePoints: []Point{
			{-36.8, 2452.3},
			{-36.7, 2460.3},
			{-36.7, 2470.3},
			{-36.6, 2478.2},
			{-36.5, 2488.6},
			{-36.5, 2499.5},
			{-36.4, 2510.7},
			{-36.3, 2522.4},
			{-36.2, 2534.1},
			{-36.1, 2545.7},
			{-36.1, 2556.2},
		},
		Spawn: Spawn{X: 0, Y: 0.9, Z: startZ, Yaw: math.Pi * 0.5},
	}
}
