package ui

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// glyphHeight is the bitmap font's natural line height in pixels
const glyphHeight = 16.0

var face = text.NewGoXFace(bitmapfont.Face)

// Face is the shared HUD and menu font.
func Face() text.Face { return face }

// TextWidth returns the width of str drawn at the given pixel size.
func TextWidth(str string, size float64) float64 {
	return text.Advance(str, face) * size / glyphHeight
}

// DrawText draws str centered on (centerX, centerY) at the given pixel size.
func DrawText(screen *ebiten.Image, str string, centerX, centerY, size float64, clr color.Color) {
	scale := size / glyphHeight
	x := centerX - TextWidth(str, size)/2
	y := centerY - size/2

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// DrawTextAt draws str with its top-left corner at (x, y).
func DrawTextAt(screen *ebiten.Image, str string, x, y, size float64, clr color.Color) {
	scale := size / glyphHeight

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// DrawButton draws a bordered box with a centered label
func DrawButton(screen *ebiten.Image, label string, x, y, width, height float64, bgColor, textColor color.Color) {
	DrawPanel(screen, x, y, width, height, bgColor, color.RGBA{80, 80, 100, 255})
	DrawText(screen, label, x+width/2, y+height/2, glyphHeight, textColor)
}

// DrawPanel fills a rectangle and strokes a 2px border around it.
func DrawPanel(screen *ebiten.Image, x, y, width, height float64, fill, border color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), fill, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 2, border, false)
}
