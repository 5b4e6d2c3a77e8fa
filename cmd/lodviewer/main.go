package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"terralod/internal/config"
)

func main() {
	seed := flag.Int64("seed", 42, "terrain seed")
	radius := flag.Int("radius", 12, "resident chunk radius around the observer")
	adaptive := flag.Bool("adaptive", true, "enable framerate-adaptive quality")
	target := flag.Float64("target-fps", 60, "target framerate for adaptive quality")
	flag.Parse()

	config.SetViewRadius(*radius)

	game, err := newGame(*seed, *adaptive, *target)
	if err != nil {
		log.Fatalf("setup failed: %v", err)
	}
	defer game.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("terralod viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
