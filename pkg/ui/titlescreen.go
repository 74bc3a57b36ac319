package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TitleScreen represents the main title screen
type TitleScreen struct {
	startTime      time.Time
	bestLap        string
	onStartPressed func() // Callback when user presses to start
}

// NewTitleScreen creates a new title screen. bestLap is shown under the
// subtitle when non-empty.
func NewTitleScreen(bestLap string, onStartPressed func()) *TitleScreen {
	return &TitleScreen{
		startTime:      time.Now(),
		bestLap:        bestLap,
		onStartPressed: onStartPressed,
	}
}

// Update handles input for the title screen
func (ts *TitleScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ts.onStartPressed != nil {
			ts.onStartPressed()
		}
	}
	return nil
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{6, 8, 16, 255})

	elapsed := time.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2
	centerY := float64(height) / 3

	drawHorizon(screen, width, height, elapsed)

	// Pulsing title (1.0 to 1.1)
	pulse := 1.0 + 0.1*math.Sin(elapsed*2.0)
	glow := 0.8 + 0.2*math.Sin(elapsed*1.5)
	titleColor := color.RGBA{
		uint8(60 * glow),
		uint8(230 * glow),
		uint8(255 * glow),
		255,
	}
	DrawText(screen, "TRONBLAZER", centerX, centerY, 96*pulse, titleColor)

	DrawText(screen, "Light Cycle Time Trial", centerX, centerY+90, 32, color.RGBA{180, 180, 200, 255})
	if ts.bestLap != "" {
		DrawText(screen, "BEST LAP "+ts.bestLap, centerX, centerY+130, 24, color.RGBA{255, 200, 50, 255})
	}

	// Blink every 0.5 seconds
	if int(elapsed*2)%2 == 0 {
		DrawText(screen, "Press ENTER or SPACE to Start", centerX, float64(height)-100, 24, color.RGBA{150, 200, 255, 255})
	}
}

// drawHorizon draws a receding floor grid under the title
func drawHorizon(screen *ebiten.Image, width, height int, elapsed float64) {
	w, h := float32(width), float32(height)
	horizon := h * 0.6
	lineColor := color.RGBA{0, 120, 160, 120}

	vector.StrokeLine(screen, 0, horizon, w, horizon, 2, color.RGBA{0, 200, 255, 200}, true)

	// Horizontal lines scroll towards the viewer
	shift := float32(math.Mod(elapsed*0.5, 1))
	for i := 0; i < 8; i++ {
		t := (float32(i) + shift) / 8
		y := horizon + (h-horizon)*t*t
		vector.StrokeLine(screen, 0, y, w, y, 1, lineColor, true)
	}
	for i := -8; i <= 8; i++ {
		x := w/2 + float32(i)*w/16
		vector.StrokeLine(screen, w/2+float32(i)*8, horizon, x+float32(i)*w/8, h, 1, lineColor, true)
	}
}
