package background

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
)

// Generator creates arena floor textures
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a new background generator
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// GenerateGrid creates one tile of the arena floor: a dark speckled base with
// a glowing grid line along the top and left edges, so tiles repeat seamlessly.
func (g *Generator) GenerateGrid(seed int64, line color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(g.Width, g.Height)
	rng := rand.New(rand.NewSource(seed))

	img.Fill(color.RGBA{8, 10, 18, 255})

	// Floor speckle
	for i := 0; i < g.Width*g.Height/12; i++ {
		x := rng.Intn(g.Width)
		y := rng.Intn(g.Height)
		shade := uint8(12 + rng.Intn(14))
		img.Set(x, y, color.RGBA{shade, shade, shade + 8, 255})
	}

	glow := color.RGBA{line.R / 3, line.G / 3, line.B / 3, 255}
	for x := 0; x < g.Width; x++ {
		img.Set(x, 0, line)
		img.Set(x, 1, glow)
	}
	for y := 0; y < g.Height; y++ {
		img.Set(0, y, line)
		img.Set(1, y, glow)
	}

	return img
}
