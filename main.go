package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/gridhunt/ai"
)

func main() {
	levelName := flag.String("level", "arena", "level name in levels/ (basename, .json optional)")
	debug := flag.Bool("debug", false, "log AI state changes and draw physics shapes")
	watch := flag.Bool("watch", false, "hot reload prefabs/ from disk")
	scale := flag.Int("scale", 2, "window scale")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	ai.EnableDebugLogging(*debug)

	game, err := NewGame(*levelName, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.Size()
	ebiten.SetWindowSize(w**scale, h**scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("gridhunt")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
