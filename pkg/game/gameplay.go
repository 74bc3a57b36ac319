package game

import (
	"image/color"
	"math"

	"github.com/Manikatlantis/TronBlazer/pkg/background"
	"github.com/Manikatlantis/TronBlazer/pkg/geom"
	"github.com/Manikatlantis/TronBlazer/pkg/session"
	"github.com/Manikatlantis/TronBlazer/pkg/vehicle"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	pixelsPerUnit = 1.4
	cameraFollow  = 0.1 // fraction of the gap closed per frame
	floorTileSize = 64
	messageTime   = 1.5 // seconds a banner stays up
)

var (
	trackColor      = color.RGBA{18, 24, 44, 255}
	centerlineColor = color.RGBA{40, 60, 100, 255}
	wallColor       = color.RGBA{255, 60, 120, 255}
	gateColor       = color.RGBA{200, 200, 200, 200}
	gateFlashColor  = color.RGBA{80, 255, 160, 255}
	trailColor      = color.RGBA{0, 220, 255, 255}
	ghostColor      = color.RGBA{110, 73, 17, 110}
	bikeColor       = color.RGBA{200, 250, 255, 255}
	boosterColor    = color.RGBA{255, 220, 0, 255}
)

// camera is a top-down view centered on a world point
type camera struct {
	X, Z  float64
	Scale float64
}

// toScreen maps a world XZ position onto the screen
func (c camera) toScreen(p geom.Vec2) (float32, float32) {
	x := (p.X-c.X)*c.Scale + ScreenWidth/2
	y := (p.Y-c.Z)*c.Scale + ScreenHeight/2
	return float32(x), float32(y)
}

// follow moves the camera part of the way towards target
func (c *camera) follow(target geom.Vec2) {
	c.X += (target.X - c.X) * cameraFollow
	c.Z += (target.Y - c.Z) * cameraFollow
}

// RaceScreen drives a session and renders it top-down
type RaceScreen struct {
	session   *session.Session
	frame     session.Frame
	camera    camera
	floor     *ebiten.Image
	message   string
	messageAt float64
	onExit    func(best float64, ok bool) // Callback when the player leaves
}

// NewRaceScreen creates the race screen for s
func NewRaceScreen(s *session.Session, onExit func(best float64, ok bool)) *RaceScreen {
	rs := &RaceScreen{
		session: s,
		onExit:  onExit,
		floor:   background.NewGenerator(floorTileSize, floorTileSize).GenerateGrid(1, color.RGBA{0, 90, 140, 255}),
	}

	// Settle on the spawn with an idle tick so the first Draw has a frame
	rs.frame = s.Tick(0, session.Input{})
	pos := rs.frame.Pose.Position.XZ()
	rs.camera = camera{X: pos.X, Z: pos.Y, Scale: pixelsPerUnit}
	return rs
}

// readInput samples the keyboard for one frame
func readInput() session.Input {
	boost := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) ||
		ebiten.IsKeyPressed(ebiten.KeyShiftRight) ||
		ebiten.IsKeyPressed(ebiten.KeySpace)

	return session.Input{
		TurnLeft:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		TurnRight: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Boost:     boost,
		Start:     inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Reset:     inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}

// Update advances the race by one tick
func (rs *RaceScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if rs.onExit != nil {
			rs.onExit(rs.frame.BestLapTime, rs.frame.HasBestLap)
		}
		return nil
	}

	rs.frame = rs.session.Tick(1/float64(ebiten.TPS()), readInput())
	rs.handleEvents()
	rs.camera.follow(rs.frame.Pose.Position.XZ())
	return nil
}

// handleEvents turns one-shot events into banners
func (rs *RaceScreen) handleEvents() {
	for _, e := range rs.frame.Events {
		switch e.Kind {
		case session.EventRecordSet:
			rs.showMessage("NEW RECORD!")
		case session.EventLapDiscarded:
			rs.showMessage("LAP TOO SHORT")
		case session.EventWrongWay:
			rs.showMessage("WRONG WAY")
		case session.EventTutorialPickup:
			rs.showMessage("NITRO! HOLD SHIFT TO BOOST")
		case session.EventCrash:
			if e.Cause == session.CrashWall {
				rs.showMessage("HIT THE WALL")
			} else {
				rs.showMessage("DEREZZED")
			}
		}
	}
}

func (rs *RaceScreen) showMessage(msg string) {
	rs.message = msg
	rs.messageAt = rs.frame.Time
}

// Draw renders the race screen
func (rs *RaceScreen) Draw(screen *ebiten.Image) {
	rs.drawFloor(screen)
	rs.drawArena(screen)
	rs.drawTrack(screen)
	rs.drawGate(screen)
	rs.drawBoosters(screen)

	rs.drawTrail(screen, rs.session.GhostTrail(), ghostColor)
	if rs.frame.GhostVisible {
		rs.drawBike(screen, rs.frame.Ghost, ghostColor)
	}
	rs.drawTrail(screen, rs.session.Trail(), trailColor)
	rs.drawBike(screen, rs.frame.Pose, bikeColor)

	rs.drawHUD(screen)
}

// drawFloor tiles the grid texture so it scrolls with the camera
func (rs *RaceScreen) drawFloor(screen *ebiten.Image) {
	offX := -math.Mod(rs.camera.X*rs.camera.Scale, floorTileSize)
	offY := -math.Mod(rs.camera.Z*rs.camera.Scale, floorTileSize)
	if offX > 0 {
		offX -= floorTileSize
	}
	if offY > 0 {
		offY -= floorTileSize
	}

	for y := offY; y < ScreenHeight; y += floorTileSize {
		for x := offX; x < ScreenWidth; x += floorTileSize {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(x, y)
			screen.DrawImage(rs.floor, op)
		}
	}
}

func (rs *RaceScreen) drawArena(screen *ebiten.Image) {
	arena := rs.session.Arena()
	x0, y0 := rs.camera.toScreen(arena.Min)
	x1, y1 := rs.camera.toScreen(arena.Max)
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 4, wallColor, true)
}

// drawTrack paints the lane as thick segments with round joints
func (rs *RaceScreen) drawTrack(screen *ebiten.Image) {
	track := rs.session.Track()
	width := float32(2 * track.HalfWidth() * rs.camera.Scale)
	radius := width / 2

	for _, seg := range track.Segments() {
		x0, y0 := rs.camera.toScreen(seg.Start)
		x1, y1 := rs.camera.toScreen(seg.End)
		vector.StrokeLine(screen, x0, y0, x1, y1, width, trackColor, true)
		vector.DrawFilledCircle(screen, x0, y0, radius, trackColor, true)
		vector.DrawFilledCircle(screen, x1, y1, radius, trackColor, true)
	}
	for _, seg := range track.Segments() {
		x0, y0 := rs.camera.toScreen(seg.Start)
		x1, y1 := rs.camera.toScreen(seg.End)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, centerlineColor, true)
	}
}

func (rs *RaceScreen) drawGate(screen *ebiten.Image) {
	track := rs.session.Track()
	marker := rs.session.StartMarker()
	across := track.Forward().Perp().Scale(track.HalfWidth())

	clr := gateColor
	width := float32(3)
	if rs.frame.GateFlash {
		clr = gateFlashColor
		width = 6
	}
	x0, y0 := rs.camera.toScreen(marker.Add(across))
	x1, y1 := rs.camera.toScreen(marker.Sub(across))
	vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
}

func (rs *RaceScreen) drawBoosters(screen *ebiten.Image) {
	r := float32(rs.session.Tuning().PickupRadius * rs.camera.Scale * 1.5)
	pulse := float32(1 + 0.2*math.Sin(rs.frame.Time*6))

	for _, b := range rs.session.Boosters() {
		if !b.Active {
			continue
		}
		x, y := rs.camera.toScreen(b.Position)
		vector.DrawFilledCircle(screen, x, y, r*pulse, boosterColor, true)
	}

	if rs.frame.TutorialBoosterVisible {
		x, y := rs.camera.toScreen(rs.frame.TutorialBooster)
		clr := fade(boosterColor, rs.frame.TutorialBoosterOpacity)
		vector.DrawFilledCircle(screen, x, y, r*pulse*1.5, clr, true)
		vector.StrokeCircle(screen, x, y, r*pulse*2.5, 2, clr, true)
	}
}

// drawTrail connects consecutive trail samples
func (rs *RaceScreen) drawTrail(screen *ebiten.Image, points []geom.Vec3, clr color.RGBA) {
	width := float32(2 * rs.session.Tuning().TrailRadius * rs.camera.Scale)
	for i := 1; i < len(points); i++ {
		x0, y0 := rs.camera.toScreen(points[i-1].XZ())
		x1, y1 := rs.camera.toScreen(points[i].XZ())
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
}

// drawBike draws a wedge pointing along the pose's heading
func (rs *RaceScreen) drawBike(screen *ebiten.Image, pose vehicle.Pose, clr color.RGBA) {
	pos := pose.Position.XZ()
	fwd := pose.Forward()
	side := fwd.Perp()

	nose := pos.Add(fwd.Scale(6))
	left := pos.Sub(fwd.Scale(4)).Add(side.Scale(3))
	right := pos.Sub(fwd.Scale(4)).Sub(side.Scale(3))

	nx, ny := rs.camera.toScreen(nose)
	lx, ly := rs.camera.toScreen(left)
	rx, ry := rs.camera.toScreen(right)
	vector.StrokeLine(screen, nx, ny, lx, ly, 2, clr, true)
	vector.StrokeLine(screen, lx, ly, rx, ry, 2, clr, true)
	vector.StrokeLine(screen, rx, ry, nx, ny, 2, clr, true)

	cx, cy := rs.camera.toScreen(pos)
	vector.DrawFilledCircle(screen, cx, cy, 2, clr, true)
}

// fade scales a color's alpha by opacity in [0, 1]
func fade(c color.RGBA, opacity float64) color.RGBA {
	o := geom.Clamp(opacity, 0, 1)
	// premultiplied alpha
	return color.RGBA{
		uint8(float64(c.R) * o),
		uint8(float64(c.G) * o),
		uint8(float64(c.B) * o),
		uint8(float64(c.A) * o),
	}
}
