package game

import (
	"log"
	"log/slog"

	"github.com/Manikatlantis/TronBlazer/pkg/config"
	"github.com/Manikatlantis/TronBlazer/pkg/race"
	"github.com/Manikatlantis/TronBlazer/pkg/road"
	"github.com/Manikatlantis/TronBlazer/pkg/session"
	"github.com/Manikatlantis/TronBlazer/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	ScreenWidth  = 1024
	ScreenHeight = 600

	trackPattern = "assets/track/*.json"
	tuningFile   = "assets/tuning/default.json"
)

// GameLogic holds the loaded circuits and tuning shared by every race
type GameLogic struct {
	tracks []*road.Definition
	tuning config.Tuning
}

func (g *GameLogic) Tracks() []*road.Definition {
	return g.tracks
}

func (g *GameLogic) Tuning() config.Tuning {
	return g.tuning
}

// LoadTracks loads every track file matching pattern. The built-in arena is
// used when nothing loads, so the returned error is informational.
func (game *GameLogic) LoadTracks(pattern string) error {
	defs, err := road.LoadCatalog(pattern)
	if err != nil || len(defs) == 0 {
		game.tracks = []*road.Definition{road.Arena1()}
		return err
	}
	game.tracks = defs
	return nil
}

// LoadTuning loads the tuning file, keeping the defaults if it is unusable.
func (game *GameLogic) LoadTuning(filename string) error {
	t, err := config.LoadFromFile(filename)
	if err != nil {
		game.tuning = config.Default()
		return err
	}
	game.tuning = t
	return nil
}

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	gameLogic     *GameLogic
	currentScreen Screen
	logger        *slog.Logger
	bestLap       string
}

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// NewGame creates a new game instance. Sessions log through logger.
func NewGame(logger *slog.Logger) *Game {
	game := &Game{
		gameLogic: &GameLogic{},
		logger:    logger,
	}

	if err := game.gameLogic.LoadTuning(tuningFile); err != nil {
		log.Printf("Failed to load tuning, using defaults: %v", err)
	}
	if err := game.gameLogic.LoadTracks(trackPattern); err != nil {
		log.Printf("Failed to load tracks, using built-in arena: %v", err)
	}

	game.showTitle()
	return game
}

// Update handles game logic updates
func (g *Game) Update() error {
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the game's screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth, ScreenHeight
}

func (g *Game) showTitle() {
	g.currentScreen = ui.NewTitleScreen(g.bestLap, g.showTrackSelect)
}

func (g *Game) showTrackSelect() {
	tracks := g.gameLogic.Tracks()
	if len(tracks) == 1 {
		g.startRace(tracks[0])
		return
	}

	options := make([]ui.TrackOption, len(tracks))
	for i, def := range tracks {
		options[i] = ui.TrackOption{Name: def.Name, Length: def.Track().Length()}
	}
	g.currentScreen = ui.NewTrackSelectScreen(options, func(index int) {
		g.startRace(tracks[index])
	}, g.showTitle)
}

// startRace transitions to the race on the given circuit
func (g *Game) startRace(def *road.Definition) {
	s, err := session.New(def, g.gameLogic.Tuning(), g.logger, nil)
	if err != nil {
		log.Printf("Failed to start race on %s: %v", def.Name, err)
		g.showTitle()
		return
	}

	g.currentScreen = NewRaceScreen(s, func(best float64, ok bool) {
		// When the player leaves, go back to title showing the session best
		if ok {
			g.bestLap = race.FormatLapTime(best)
		}
		g.showTitle()
	})
}
