package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/logging"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/tuning"
)

const (
	defaultFrames = 120
	defaultWidth  = 800
	defaultHeight = 600
	defaultOut    = "smoke.png"
)

type shotOpts struct {
	config  string
	frames  int
	width   int
	height  int
	seed    uint64
	out     string
	path    string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := shotOpts{
		frames: defaultFrames,
		width:  defaultWidth,
		height: defaultHeight,
		out:    defaultOut,
		path:   pathCircle,
	}

	cmd := &cobra.Command{
		Use:          "smokeshot",
		Short:        "Render the smoke trail to a PNG",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShot(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.config, "config", "c", "", "smoke tuning file (.yaml or .toml)")
	f.IntVarP(&opts.frames, "frames", "n", opts.frames, "number of frames to simulate")
	f.IntVar(&opts.width, "width", opts.width, "image width in pixels")
	f.IntVar(&opts.height, "height", opts.height, "image height in pixels")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed (0 uses the config seed, then 1)")
	f.StringVarP(&opts.out, "out", "o", opts.out, "output PNG path")
	f.StringVar(&opts.path, "path", opts.path, "pointer path: circle, line or idle")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	return cmd
}

func runShot(cmd *cobra.Command, opts shotOpts) error {
	logger := logging.New(cmd.ErrOrStderr(), logging.Level(opts.verbose))

	if opts.frames < 1 {
		return fmt.Errorf("--frames must be at least 1, got %d", opts.frames)
	}
	if opts.width < 1 || opts.height < 1 {
		return fmt.Errorf("--width and --height must be positive, got %dx%d", opts.width, opts.height)
	}
	path, err := parsePath(opts.path)
	if err != nil {
		return err
	}

	cfg, err := tuning.Load(opts.config)
	if err != nil {
		return err
	}
	seed := opts.seed
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = 1
	}

	res, err := shoot(logging.WithLogger(cmd.Context(), logger), shot{
		config:     cfg,
		configPath: opts.config,
		frames:     opts.frames,
		width:      opts.width,
		height:     opts.height,
		seed:       seed,
		path:       path,
	})
	if err != nil {
		return err
	}

	file, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.out, err)
	}
	if err := png.Encode(file, res.image); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode %s: %w", opts.out, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opts.out, err)
	}

	logger.Info("snapshot written", "out", opts.out, "frames", res.frames, "particles", res.particles, "seed", seed)
	return nil
}
