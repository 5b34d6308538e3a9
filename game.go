package main

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/event"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/frame"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/input"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/logging"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/overlay"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/render"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/script"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/smoke"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/tuning"
)

type Options struct {
	ConfigPath    string
	Config        tuning.Config
	Debug         bool
	ReducedMotion bool
	Width, Height int
	Logger        *log.Logger
}

// Game is the ebiten host: it feeds viewport and cursor changes to the bus,
// runs queued frame callbacks once per Draw and composites the smoke layer.
type Game struct {
	bus     *event.Bus
	queue   *frame.Queue
	poller  *input.Poller
	surface *render.Offscreen
	overlay *overlay.Overlay
	watcher *tuning.Watcher
	hud     *HUD
	logger  *log.Logger

	configPath string
	width      int
	height     int
	closed     bool
}

func NewGame(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	settings, err := opts.Config.Settings()
	if err != nil {
		return nil, err
	}

	g := &Game{
		bus:        event.NewBus(),
		queue:      frame.NewQueue(),
		surface:    render.NewOffscreen(),
		logger:     logger,
		configPath: opts.ConfigPath,
		width:      opts.Width,
		height:     opts.Height,
	}
	g.poller = input.NewPoller(g.bus, ebiten.CursorPosition, g.viewport)

	tracker := input.NewTracker()
	rng := rand.New(rand.NewPCG(opts.Config.Seed, opts.Config.Seed^0x9e3779b97f4a7c15))
	renderer := smoke.NewRenderer(settings, g.queue, tracker.Snapshot,
		smoke.WithRand(rng),
		smoke.WithDrift(script.ForConfig(opts.Config, opts.ConfigPath, logger)),
		smoke.WithLogger(logger),
	)

	g.overlay, err = overlay.Mount(overlay.Options{
		Bus:           g.bus,
		Tracker:       tracker,
		Surface:       g.surface,
		Renderer:      renderer,
		Width:         opts.Width,
		Height:        opts.Height,
		ReducedMotion: opts.ReducedMotion,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	if opts.ConfigPath != "" {
		files := []string{opts.ConfigPath}
		if p := script.ScriptPath(opts.Config, opts.ConfigPath); p != "" {
			files = append(files, p)
		}
		g.watcher, err = tuning.NewWatcher(files...)
		if err != nil {
			logger.Warn("hot reload disabled", "err", err)
			g.watcher = nil
		}
	}

	if opts.Debug {
		g.hud = NewHUD()
	}
	return g, nil
}

func (g *Game) viewport() (int, int) {
	return g.width, g.height
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.Close()
		return ebiten.Termination
	}

	g.poller.Poll()
	g.drainReloads()

	if g.hud != nil {
		r := g.overlay.Renderer()
		g.hud.Set(ebiten.ActualFPS(), r.Len(), r.Settings().Cap, r.Running())
		g.hud.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.queue.Flush()
	g.surface.DrawTo(screen)

	if g.hud != nil {
		g.hud.Draw(screen)
	}
}

// Layout keeps the logical screen at the window size and reports changes as
// resize events.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.bus.EmitResize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Debug("tuning changed", "file", name)
			g.reload()
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watch", "err", err)
		default:
			return
		}
	}
}

// reload applies the tuning file again. A broken file is logged and the
// running configuration is kept.
func (g *Game) reload() {
	cfg, err := tuning.Load(g.configPath)
	if err != nil {
		g.logger.Warn("reload rejected", "err", err)
		return
	}
	settings, err := cfg.Settings()
	if err != nil {
		g.logger.Warn("reload rejected", "err", err)
		return
	}
	g.overlay.Reconfigure(settings, script.ForConfig(cfg, g.configPath, g.logger))
}

func (g *Game) Close() {
	if g == nil || g.closed {
		return
	}
	g.closed = true
	g.overlay.Close()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.logger.Debug("close watcher", "err", err)
		}
		g.watcher = nil
	}
}
