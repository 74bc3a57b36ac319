package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TrackOption is one entry in the track menu
type TrackOption struct {
	Name   string
	Length float64
}

// TrackSelectScreen lets the player pick a circuit
type TrackSelectScreen struct {
	options         []TrackOption
	selectedOption  int
	onTrackSelected func(index int)
	onBack          func()
}

// NewTrackSelectScreen creates the track menu. onBack may be nil.
func NewTrackSelectScreen(options []TrackOption, onTrackSelected func(index int), onBack func()) *TrackSelectScreen {
	return &TrackSelectScreen{
		options:         options,
		onTrackSelected: onTrackSelected,
		onBack:          onBack,
	}
}

// Selected is the highlighted menu index
func (ts *TrackSelectScreen) Selected() int { return ts.selectedOption }

// Update handles input for the track menu
func (ts *TrackSelectScreen) Update() error {
	n := len(ts.options)
	if n == 0 {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		ts.selectedOption = (ts.selectedOption + n - 1) % n
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		ts.selectedOption = (ts.selectedOption + 1) % n
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if ts.onTrackSelected != nil {
			ts.onTrackSelected(ts.selectedOption)
		}
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && ts.onBack != nil {
		ts.onBack()
	}
	return nil
}

// Draw renders the track menu
func (ts *TrackSelectScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{10, 12, 22, 255})

	centerX := float64(width) / 2
	DrawText(screen, "SELECT TRACK", centerX, float64(height)/5, 64, color.RGBA{60, 230, 255, 255})

	buttonWidth := 360.0
	buttonHeight := 50.0
	optionSpacing := 70.0
	buttonX := centerX - buttonWidth/2
	optionY := float64(height) / 3

	for i, opt := range ts.options {
		bg := color.RGBA{30, 34, 50, 255}
		fg := color.RGBA{220, 220, 230, 255}
		if i == ts.selectedOption {
			bg = color.RGBA{20, 90, 120, 255}
			fg = color.RGBA{200, 250, 255, 255}
		}
		label := fmt.Sprintf("%s  (%.0fm)", opt.Name, opt.Length)
		DrawButton(screen, label, buttonX, optionY+float64(i)*optionSpacing, buttonWidth, buttonHeight, bg, fg)
	}

	DrawText(screen, "Arrow Keys: Navigate | Enter: Race | Esc: Back", centerX, float64(height)-50, 20, color.RGBA{150, 150, 150, 255})
}
