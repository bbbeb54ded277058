package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/princeguard/prefabs"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "RNG seed for the first run")
	prefabDir := flag.String("prefabs", "prefabs", "directory of prefab overrides (empty to use the embedded copies)")
	assetsDir := flag.String("assets", "assets", "directory of sound files")
	watch := flag.Bool("watch", true, "reload edited prefabs on reset")
	scale := flag.Float64("scale", 1, "window scale")
	debug := flag.Bool("debug", false, "outline collision surfaces (toggle with F3)")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	prefabs.SetDiskDir(*prefabDir)
	if *prefabDir == "" {
		*watch = false
	}

	game, err := NewGame(*seed, *assetsDir, *watch, *debug, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w := float64(game.cfg.Camera.ScreenWidth) * *scale
	h := float64(game.cfg.Camera.ScreenHeight) * *scale
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("prince guard")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
