package main

import (
	"context"
	"image"
	"math/rand/v2"

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

type shot struct {
	config     tuning.Config
	configPath string
	frames     int
	width      int
	height     int
	seed       uint64
	path       pointerPath
}

type shotResult struct {
	image     *image.RGBA
	frames    uint64
	particles int
}

// shoot runs the same bus, queue and overlay wiring as the desktop host
// against a CPU raster, one queue flush per simulated frame.
func shoot(ctx context.Context, s shot) (shotResult, error) {
	logger := logging.FromContext(ctx)
	settings, err := s.config.Settings()
	if err != nil {
		return shotResult{}, err
	}

	bus := event.NewBus()
	queue := frame.NewQueue()
	tracker := input.NewTracker()
	raster := render.NewRaster(0, 0)

	renderer := smoke.NewRenderer(settings, queue, tracker.Snapshot,
		smoke.WithRand(rand.New(rand.NewPCG(s.seed, s.seed))),
		smoke.WithDrift(script.ForConfig(s.config, s.configPath, logger)),
		smoke.WithLogger(logger),
	)

	ov, err := overlay.Mount(overlay.Options{
		Bus:      bus,
		Tracker:  tracker,
		Surface:  raster,
		Renderer: renderer,
		Width:    s.width,
		Height:   s.height,
		Logger:   logger,
	})
	if err != nil {
		return shotResult{}, err
	}
	defer ov.Close()

	f := 0
	poller := input.NewPoller(bus,
		func() (int, int) { return s.path(f, s.frames, s.width, s.height) },
		func() (int, int) { return s.width, s.height },
	)

	for f = 0; f < s.frames; f++ {
		if err := ctx.Err(); err != nil {
			return shotResult{}, err
		}
		poller.Poll()
		queue.Flush()
	}

	logger.Debug("simulation done", "frames", renderer.Frames(), "live", renderer.Len(), "time", renderer.Time())
	return shotResult{
		image:     raster.Image(),
		frames:    renderer.Frames(),
		particles: renderer.Len(),
	}, nil
}
