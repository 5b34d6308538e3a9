package script

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/logging"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/smoke"
)

// runBudget bounds a single script evaluation. A runaway loop is aborted and
// counts as a runtime error.
const runBudget = 50 * time.Millisecond

// Drift evaluates a tengo program per particle. The program reads t (elapsed
// time) and i (particle index) and assigns dx and dy:
//
//	math := import("math")
//	dx = math.sin(t + i) * 0.5
//	dy = math.cos(t + i * 0.7) * 0.3
//
// After the first runtime error the drift switches to its fallback for good.
type Drift struct {
	compiled *tengo.Compiled
	fallback smoke.Drift
	logger   *log.Logger
	failed   bool
}

// Compile builds a Drift from source. fallback is used after a runtime
// failure and must not be nil.
func Compile(src []byte, fallback smoke.Drift, logger *log.Logger) (*Drift, error) {
	if fallback == nil {
		fallback = smoke.DefaultDrift()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := tengo.NewScript(src)
	_ = s.Add("t", 0.0)
	_ = s.Add("i", 0)
	_ = s.Add("dx", 0.0)
	_ = s.Add("dy", 0.0)
	s.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile drift: %w", err)
	}
	return &Drift{compiled: compiled, fallback: fallback, logger: logger}, nil
}

// Load compiles the drift program stored at path.
func Load(path string, fallback smoke.Drift, logger *log.Logger) (*Drift, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	d, err := Compile(src, fallback, logger)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", path, err)
	}
	return d, nil
}

// Failed reports whether the drift has fallen back after a runtime error.
func (d *Drift) Failed() bool {
	return d.failed
}

func (d *Drift) Offset(t float64, i int) (float64, float64) {
	if d.failed {
		return d.fallback.Offset(t, i)
	}

	dx, dy, err := d.eval(t, i)
	if err != nil {
		d.failed = true
		d.logger.Warn("script: drift failed, using native drift", "err", err)
		return d.fallback.Offset(t, i)
	}
	return dx, dy
}

func (d *Drift) eval(t float64, i int) (float64, float64, error) {
	if err := d.compiled.Set("t", t); err != nil {
		return 0, 0, err
	}
	if err := d.compiled.Set("i", i); err != nil {
		return 0, 0, err
	}
	if err := d.compiled.Set("dx", 0.0); err != nil {
		return 0, 0, err
	}
	if err := d.compiled.Set("dy", 0.0); err != nil {
		return 0, 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runBudget)
	defer cancel()
	if err := d.compiled.RunContext(ctx); err != nil {
		return 0, 0, err
	}
	return d.compiled.Get("dx").Float(), d.compiled.Get("dy").Float(), nil
}
