package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Manikatlantis/TronBlazer/pkg/race"
	"github.com/Manikatlantis/TronBlazer/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	panelColor  = color.RGBA{10, 14, 26, 200}
	borderColor = color.RGBA{60, 110, 160, 255}
	labelColor  = color.RGBA{170, 180, 200, 255}
	valueColor  = color.RGBA{230, 240, 255, 255}
	recordColor = color.RGBA{255, 200, 50, 255}
	promptColor = color.RGBA{150, 200, 255, 255}
)

// drawHUD renders the overlay for the latest frame
func (rs *RaceScreen) drawHUD(screen *ebiten.Image) {
	rs.drawSpeedometer(screen)
	rs.drawLapPanel(screen)
	rs.drawCountdown(screen)
	rs.drawBanner(screen)
	rs.drawPrompt(screen)

	f := rs.frame
	debug := fmt.Sprintf("TPS %.0f  %s  x%.2f  run %s", ebiten.ActualTPS(), f.State, f.TimeScale, shortRunID(f.RunID))
	ebitenutil.DebugPrintAt(screen, debug, 10, ScreenHeight-20)
}

// drawSpeedometer draws speed and the nitro gauge in the top-left corner
func (rs *RaceScreen) drawSpeedometer(screen *ebiten.Image) {
	x, y := 20.0, 20.0
	width, height := 180.0, 120.0
	ui.DrawPanel(screen, x, y, width, height, panelColor, borderColor)

	speedColor := valueColor
	if rs.frame.Boosting {
		speedColor = recordColor
	}
	ui.DrawText(screen, fmt.Sprintf("%.0f", rs.frame.Speed), x+width/2, y+40, 48, speedColor)
	ui.DrawText(screen, "SPEED", x+width/2, y+72, 16, labelColor)

	rs.drawNitroGauge(screen, x+10, y+height-25, width-20, 15)
}

// drawNitroGauge draws a horizontal bar showing the nitro reserve
func (rs *RaceScreen) drawNitroGauge(screen *ebiten.Image, x, y, width, height float64) {
	percent := math.Min(math.Max(rs.frame.NitroPercent/100, 0), 1)
	ui.DrawPanel(screen, x, y, width, height, color.RGBA{40, 40, 40, 255}, color.RGBA{150, 150, 150, 255})

	filled := width * percent
	if filled <= 4 {
		return
	}

	// Cyan when full, fading to magenta as it runs out
	barColor := color.RGBA{
		uint8(255 - percent*255),
		uint8(60 + percent*160),
		255,
		255,
	}
	vector.DrawFilledRect(screen, float32(x+2), float32(y+2), float32(filled-4), float32(height-4), barColor, false)
}

// drawLapPanel shows lap count and times in the top-right corner
func (rs *RaceScreen) drawLapPanel(screen *ebiten.Image) {
	f := rs.frame
	width, height := 220.0, 120.0
	x, y := ScreenWidth-width-20, 20.0
	ui.DrawPanel(screen, x, y, width, height, panelColor, borderColor)

	rows := []struct {
		label string
		value string
	}{
		{"LAP", fmt.Sprintf("%d", f.Lap)},
		{"TIME", race.FormatLapTime(f.CurrentLapTime)},
		{"BEST", race.FormatBestLap(f.BestLapTime, f.HasBestLap)},
		{"LAST", race.FormatBestLap(f.LastLapTime, f.HasLastLap)},
	}
	for i, row := range rows {
		rowY := y + 12 + float64(i)*26
		ui.DrawTextAt(screen, row.label, x+14, rowY, 16, labelColor)

		clr := valueColor
		if row.label == "BEST" && f.RecordFlash {
			clr = recordColor
		}
		ui.DrawTextAt(screen, row.value, x+width-14-ui.TextWidth(row.value, 20), rowY-2, 20, clr)
	}
}

// drawCountdown draws the pulsing countdown label
func (rs *RaceScreen) drawCountdown(screen *ebiten.Image) {
	f := rs.frame
	if f.Countdown == "" {
		return
	}
	clr := fade(color.RGBA{60, 230, 255, 255}, f.CountdownOpacity)
	steps := rs.session.Tuning().CountdownSteps
	if len(steps) > 0 && f.Countdown == steps[len(steps)-1] {
		clr = fade(color.RGBA{80, 255, 160, 255}, f.CountdownOpacity)
	}
	ui.DrawText(screen, f.Countdown, ScreenWidth/2, ScreenHeight/3, 128*f.CountdownScale, clr)
}

// drawBanner shows the latest event message for a short while
func (rs *RaceScreen) drawBanner(screen *ebiten.Image) {
	if rs.message == "" || rs.frame.Time-rs.messageAt > messageTime {
		return
	}
	clr := valueColor
	if rs.frame.RecordFlash {
		clr = recordColor
	}
	ui.DrawText(screen, rs.message, ScreenWidth/2, ScreenHeight/2-80, 40, clr)
}

// drawPrompt tells the player what the current state expects
func (rs *RaceScreen) drawPrompt(screen *ebiten.Image) {
	var prompt string
	switch rs.frame.State {
	case race.StateWaiting:
		prompt = "Press ENTER to start"
	case race.StateTutorial:
		prompt = "Steer with A/D, grab the booster, ENTER to race"
	case race.StateCrashed:
		prompt = "ENTER to restart | R to reset | ESC for title"
	default:
		return
	}
	ui.DrawText(screen, prompt, ScreenWidth/2, ScreenHeight-80, 24, promptColor)
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}
