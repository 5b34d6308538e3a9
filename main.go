package main

import (
	"flag"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/logging"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/tuning"
)

func main() {
	configPath := flag.String("config", "", "smoke tuning file (.yaml or .toml); embedded defaults when empty")
	debug := flag.Bool("debug", false, "enable debug logging and the HUD")
	reduced := flag.Bool("reduced-motion", false, "disable the animation")
	seed := flag.Uint64("seed", 0, "fixed random seed (0 picks one)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	interactive := flag.Bool("interactive", false, "let the window receive mouse input instead of passing it through")
	flag.Parse()

	logger := logging.New(os.Stderr, logging.Level(*debug))

	cfg, err := tuning.Load(*configPath)
	if err != nil {
		logger.Fatal("load tuning", "err", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetWindowTitle("smoketrail")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(!*interactive)
	ebiten.SetWindowClosingHandled(true)

	game, err := NewGame(Options{
		ConfigPath:    *configPath,
		Config:        cfg,
		Debug:         *debug,
		ReducedMotion: tuning.ReducedMotion(*reduced, cfg, os.Getenv),
		Width:         w,
		Height:        h,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("start overlay", "err", err)
	}
	defer game.Close()

	logger.Info("smoketrail running", "size", [2]int{w, h}, "seed", cfg.Seed, "passthrough", !*interactive)
	if err := ebiten.RunGameWithOptions(game, &ebiten.RunGameOptions{ScreenTransparent: true}); err != nil {
		logger.Error("run", "err", err)
		game.Close()
		os.Exit(1)
	}
}
