// Package overlay binds the smoke renderer to a host: it registers viewport
// and pointer listeners, sizes the drawing surface and starts the frame loop,
// and releases all of it together on Close.
package overlay

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/event"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/input"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/logging"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/smoke"
)

var ErrIncomplete = errors.New("overlay: bus, tracker, surface and renderer are required")

type Options struct {
	Bus      *event.Bus
	Tracker  *input.Tracker
	Surface  smoke.Surface
	Renderer *smoke.Renderer

	// Width and Height are the viewport size at mount time.
	Width, Height int

	// ReducedMotion keeps the renderer from ever starting.
	ReducedMotion bool

	Logger *log.Logger
}

type Overlay struct {
	bus      *event.Bus
	tracker  *input.Tracker
	surface  smoke.Surface
	renderer *smoke.Renderer
	logger   *log.Logger

	reduced bool
	width   int
	height  int

	release []func()
	mounted bool
	closed  bool
}

// Mount wires the listeners, applies the initial viewport size and starts
// the renderer unless reduced motion is requested.
func Mount(opts Options) (*Overlay, error) {
	if opts.Bus == nil || opts.Tracker == nil || opts.Surface == nil || opts.Renderer == nil {
		return nil, ErrIncomplete
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	o := &Overlay{
		bus:      opts.Bus,
		tracker:  opts.Tracker,
		surface:  opts.Surface,
		renderer: opts.Renderer,
		logger:   logger,
		reduced:  opts.ReducedMotion,
	}

	o.release = append(o.release,
		o.bus.OnResize(o.resize),
		o.bus.OnPointerMove(o.tracker.Move),
		o.bus.OnPointerEnter(o.tracker.Enter),
		o.bus.OnPointerLeave(o.tracker.Leave),
	)

	if opts.Width > 0 && opts.Height > 0 {
		o.resize(opts.Width, opts.Height)
	}

	o.mounted = true
	if o.reduced {
		o.logger.Info("overlay: reduced motion requested, animation disabled")
		return o, nil
	}
	o.renderer.Start(o.surface)
	return o, nil
}

// Close unregisters every listener and stops the renderer. It is safe to
// call more than once.
func (o *Overlay) Close() {
	if o == nil || o.closed {
		return
	}
	o.closed = true
	for _, release := range o.release {
		release()
	}
	o.release = nil
	o.renderer.Stop()
	o.logger.Debug("overlay: closed")
}

// Reconfigure applies new settings by restarting the renderer. Live
// particles are not carried over.
func (o *Overlay) Reconfigure(s smoke.Settings, drift smoke.Drift) {
	if o == nil || o.closed {
		return
	}
	o.renderer.Stop()
	o.renderer.SetSettings(s)
	o.renderer.SetDrift(drift)
	if o.reduced {
		return
	}
	o.renderer.Start(o.surface)
	o.logger.Info("overlay: tuning reloaded", "cap", s.Cap, "composite", s.Composite)
}

// Viewport is the last size seen from the host.
func (o *Overlay) Viewport() (int, int) {
	return o.width, o.height
}

func (o *Overlay) Closed() bool {
	return o == nil || o.closed
}

func (o *Overlay) ReducedMotion() bool {
	return o != nil && o.reduced
}

func (o *Overlay) Renderer() *smoke.Renderer {
	if o == nil {
		return nil
	}
	return o.renderer
}

// resize follows the viewport. A loop that halted on an unusable surface
// (for example a minimised window) is started again once the surface has a
// size.
func (o *Overlay) resize(w, h int) {
	o.width, o.height = w, h
	o.surface.Resize(w, h)
	if !o.mounted || o.closed || o.reduced || o.renderer.Running() || w <= 0 || h <= 0 {
		return
	}
	o.renderer.Start(o.surface)
}
