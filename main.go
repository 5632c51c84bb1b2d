package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlays and tuning hot reload")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	seed := flag.Uint64("seed", 0, "override the tuning seed (0 keeps game.yaml)")
	dbPath := flag.String("db", "unstable.db", "sqlite file for run history; empty disables it")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory checked for tuning overrides before the embedded copy")
	flag.Parse()

	prefabs.Dir = *prefabDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.ScreenWidth, common.ScreenHeight)
	ebiten.SetWindowTitle("unstable")
	// Update runs once per frame; the game steps physics itself
	ebiten.SetTPS(ebiten.SyncWithFPS)

	game, err := NewGame(Config{Debug: *debug, Seed: *seed, DBPath: *dbPath})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetCursorShape(ebiten.CursorShapeCrosshair)

	runErr := ebiten.RunGame(game)
	if err := game.Close(); err != nil {
		log.Printf("game: close: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}
