package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/Manikatlantis/TronBlazer/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("TRONBLAZER_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	g := game.NewGame(logger)

	ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
	ebiten.SetWindowTitle("TronBlazer")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
