package smoke

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/frame"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/input"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/logging"
)

var white = Color{R: 1, G: 1, B: 1, A: 1}

// Renderer owns the live particle set and drives the per-frame
// spawn/update/draw pass through a frame.Scheduler.
type Renderer struct {
	settings Settings
	sched    frame.Scheduler
	snapshot func() input.State
	drift    Drift
	rng      *rand.Rand
	spawner  *Spawner
	logger   *log.Logger

	surface Surface
	handle  frame.Handle
	running bool
	tick    func()

	time      float64
	frames    uint64
	particles []Particle
	stops     []Stop
}

type Option func(*Renderer)

// WithRand replaces the random source. Tests pass a fixed seed.
func WithRand(rng *rand.Rand) Option {
	return func(r *Renderer) {
		if rng != nil {
			r.rng = rng
		}
	}
}

func WithDrift(d Drift) Option {
	return func(r *Renderer) {
		if d != nil {
			r.drift = d
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer builds a stopped renderer. snapshot is read once per frame.
func NewRenderer(settings Settings, sched frame.Scheduler, snapshot func() input.State, opts ...Option) *Renderer {
	r := &Renderer{
		settings: settings,
		sched:    sched,
		snapshot: snapshot,
		drift:    DefaultDrift(),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.snapshot == nil {
		r.snapshot = func() input.State { return input.Idle }
	}
	if r.settings.Cap < 0 {
		r.settings.Cap = 0
	}
	r.spawner = NewSpawner(r.rng, &r.settings)
	r.particles = make([]Particle, 0, r.settings.Cap)
	r.tick = r.frame
	return r
}

// Start begins the frame loop against surface with an empty particle set.
// Starting a running renderer restarts it.
func (r *Renderer) Start(surface Surface) {
	if r == nil {
		return
	}
	r.Stop()

	r.surface = surface
	r.particles = r.particles[:0]
	r.time = 0
	r.running = true
	r.schedule()
	r.logger.Debug("smoke: started", "cap", r.settings.Cap, "composite", r.settings.Composite)
}

// Stop cancels the pending frame. It is safe to call at any time, any number
// of times. A frame already executing is not interrupted.
func (r *Renderer) Stop() {
	if r == nil {
		return
	}
	if r.handle != 0 && r.sched != nil {
		r.sched.Cancel(r.handle)
	}
	r.handle = 0
	if r.running {
		r.logger.Debug("smoke: stopped", "frames", r.frames, "live", len(r.particles))
	}
	r.running = false
}

// SetSettings swaps the tuning. Callers restart the renderer to apply it to
// a fresh particle set.
func (r *Renderer) SetSettings(s Settings) {
	if r == nil {
		return
	}
	if s.Cap < 0 {
		s.Cap = 0
	}
	r.settings = s
	if len(r.particles) > s.Cap {
		r.particles = r.particles[:s.Cap]
	}
}

// SetDrift swaps the oscillation term. A nil drift is ignored.
func (r *Renderer) SetDrift(d Drift) {
	if r == nil || d == nil {
		return
	}
	r.drift = d
}

func (r *Renderer) Settings() Settings {
	return r.settings
}

func (r *Renderer) Running() bool {
	return r != nil && r.running
}

// Pending reports whether a frame callback is scheduled.
func (r *Renderer) Pending() bool {
	return r != nil && r.handle != 0
}

func (r *Renderer) Len() int {
	if r == nil {
		return 0
	}
	return len(r.particles)
}

// Particles returns a copy of the live set in insertion order.
func (r *Renderer) Particles() []Particle {
	if r == nil {
		return nil
	}
	return append([]Particle(nil), r.particles...)
}

// Time is the elapsed-time counter.
func (r *Renderer) Time() float64 {
	return r.time
}

// Frames counts frames that ran to completion since construction.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Inject appends p to the live set. It reports false when the set is full.
func (r *Renderer) Inject(p Particle) bool {
	if r == nil || len(r.particles) >= r.settings.Cap {
		return false
	}
	r.particles = append(r.particles, p)
	return true
}

func (r *Renderer) schedule() {
	if r.sched == nil {
		r.running = false
		return
	}
	r.handle = r.sched.Request(r.tick)
}

func (r *Renderer) frame() {
	r.handle = 0
	if !r.running {
		return
	}

	var cv Canvas
	ok := false
	if r.surface != nil {
		cv, ok = r.surface.Canvas()
	}
	if !ok || cv == nil {
		// Nothing to draw on. Stay stopped until Start is called again.
		r.running = false
		r.logger.Debug("smoke: surface unavailable, loop halted")
		return
	}

	r.time += r.settings.TimeStep
	cv.Clear()

	in := r.snapshot()
	if in.Active && len(r.particles) < r.settings.Cap {
		r.particles = append(r.particles, r.spawner.Spawn(in.X, in.Y))
	}

	r.step()
	r.draw(cv, in)

	r.frames++
	if r.running {
		r.schedule()
	}
}

// step advances every particle and compacts the faded ones out in place,
// keeping insertion order. The drift index is the particle's index at the
// start of the pass.
func (r *Renderer) step() {
	live := r.particles[:0]
	for i := range r.particles {
		p := r.particles[i]
		dx, dy := r.drift.Offset(r.time, i)
		p.X += p.VX + dx
		p.Y += p.VY + dy
		p.Alpha -= p.Decay
		p.Radius += r.settings.Growth
		if p.Alpha <= 0 {
			continue
		}
		live = append(live, p)
	}
	r.particles = live
}

func (r *Renderer) draw(cv Canvas, in input.State) {
	cv.SetComposite(r.settings.Composite)

	for i := range r.particles {
		p := &r.particles[i]
		r.drawBlob(cv, p)
		if p.Alpha > r.settings.CoreThreshold {
			r.drawCore(cv, p)
		}
	}

	if in.Active && r.settings.GlowRadius > 0 && len(r.settings.GlowStops) > 0 {
		cv.FillRadial(Radial{X: in.X, Y: in.Y, Radius: r.settings.GlowRadius, Stops: r.settings.GlowStops})
	}

	cv.SetComposite(SourceOver)
}

func (r *Renderer) drawBlob(cv Canvas, p *Particle) {
	r.stops = r.stops[:0]
	for _, ramp := range r.settings.BlobStops {
		r.stops = append(r.stops, Stop{Offset: ramp.Offset, Color: p.Color.WithAlpha(p.Alpha * ramp.Scale)})
	}
	cv.FillRadial(Radial{X: p.X, Y: p.Y, Radius: p.Radius, Stops: r.stops})
}

func (r *Renderer) drawCore(cv Canvas, p *Particle) {
	r.stops = append(r.stops[:0],
		Stop{Offset: 0, Color: white.WithAlpha(p.Alpha * r.settings.CoreStart)},
		Stop{Offset: 1, Color: p.Color.WithAlpha(0)},
	)
	cv.FillRadial(Radial{X: p.X, Y: p.Y, Radius: p.Radius * r.settings.CoreScale, Stops: r.stops})
}
