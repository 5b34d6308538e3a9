package smoke

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/frame"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/input"
)

type fill struct {
	radial    Radial
	composite Composite
}

type recordCanvas struct {
	w, h      int
	clears    int
	composite Composite
	fills     []fill
}

func (c *recordCanvas) Size() (int, int)         { return c.w, c.h }
func (c *recordCanvas) SetComposite(m Composite) { c.composite = m }
func (c *recordCanvas) Clear()                   { c.clears++; c.fills = c.fills[:0] }
func (c *recordCanvas) FillRadial(g Radial) {
	g.Stops = append([]Stop(nil), g.Stops...)
	c.fills = append(c.fills, fill{radial: g, composite: c.composite})
}

type fakeSurface struct {
	canvas    *recordCanvas
	available bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{canvas: &recordCanvas{w: 800, h: 600}, available: true}
}

func (s *fakeSurface) Canvas() (Canvas, bool) {
	if !s.available {
		return nil, false
	}
	return s.canvas, true
}

func (s *fakeSurface) Resize(w, h int) {
	s.canvas.w, s.canvas.h = w, h
}

type harness struct {
	queue    *frame.Queue
	tracker  *input.Tracker
	surface  *fakeSurface
	renderer *Renderer
}

func newHarness(t *testing.T, settings Settings, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		queue:   frame.NewQueue(),
		tracker: input.NewTracker(),
		surface: newFakeSurface(),
	}
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	h.renderer = NewRenderer(settings, h.queue, h.tracker.Snapshot, opts...)
	return h
}

func (h *harness) frames(n int, each func(frame int)) {
	for i := 0; i < n; i++ {
		h.queue.Flush()
		if each != nil {
			each(i)
		}
	}
}

func TestRendererNeverExceedsCap(t *testing.T) {
	s := DefaultSettings()
	s.Decay = Range{Min: 0.0001, Max: 0.0002}
	h := newHarness(t, s)
	h.tracker.Move(400, 300)
	h.renderer.Start(h.surface)

	h.frames(120, func(frame int) {
		if n := h.renderer.Len(); n > s.Cap {
			t.Fatalf("frame %d: %d live particles exceeds cap %d", frame, n, s.Cap)
		}
	})

	if h.renderer.Len() != s.Cap {
		t.Fatalf("expected the live set to fill up to %d, got %d", s.Cap, h.renderer.Len())
	}
}

func TestRendererSpawnsOnePerFrameWhileActive(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.tracker.Move(100, 100)
	h.renderer.Start(h.surface)

	h.frames(10, func(frame int) {
		if got := h.renderer.Len(); got != frame+1 {
			t.Fatalf("frame %d: expected %d particles, got %d", frame, frame+1, got)
		}
	})
}

func TestRendererAlphaDecreasesRadiusGrows(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.renderer.Start(h.surface)
	for _, a := range []float64{0.3, 0.5, 0.7} {
		h.renderer.Inject(Particle{X: 10, Y: 10, Radius: 50, Color: RGB(0, 255, 240), Alpha: a, Decay: 0.05})
	}

	prev := h.renderer.Particles()
	h.frames(20, func(frame int) {
		cur := h.renderer.Particles()
		defer func() { prev = cur }()
		if len(cur) != len(prev) {
			return
		}
		for i := range cur {
			if cur[i].Alpha >= prev[i].Alpha {
				t.Fatalf("frame %d particle %d: alpha %f did not decrease from %f", frame, i, cur[i].Alpha, prev[i].Alpha)
			}
			if cur[i].Radius < prev[i].Radius {
				t.Fatalf("frame %d particle %d: radius shrank %f -> %f", frame, i, prev[i].Radius, cur[i].Radius)
			}
		}
	})

	for _, p := range h.renderer.Particles() {
		if p.Alpha <= 0 {
			t.Fatalf("particle with alpha %f left in the live set", p.Alpha)
		}
	}
}

func TestRendererDrainsWhenInactive(t *testing.T) {
	s := DefaultSettings()
	h := newHarness(t, s)
	h.tracker.Move(200, 200)
	h.renderer.Start(h.surface)
	h.frames(30, nil)

	if h.renderer.Len() == 0 {
		t.Fatalf("expected particles after 30 active frames")
	}

	h.tracker.Leave()
	prev := h.renderer.Len()
	bound := s.MaxLifetime()
	drained := -1
	h.frames(bound, func(frame int) {
		n := h.renderer.Len()
		if n > prev {
			t.Fatalf("frame %d: particle count grew from %d to %d while inactive", frame, prev, n)
		}
		prev = n
		if n == 0 && drained < 0 {
			drained = frame
		}
	})

	if drained < 0 {
		t.Fatalf("live set did not drain within %d frames, %d left", bound, h.renderer.Len())
	}
}

func TestRendererSingleParticleScenario(t *testing.T) {
	h := newHarness(t, DefaultSettings(), WithDrift(DriftFunc(func(float64, int) (float64, float64) { return 0, 0 })))
	h.renderer.Start(h.surface)
	h.renderer.Inject(Particle{X: 100, Y: 100, Radius: 10, Color: RGB(79, 195, 247), Alpha: 0.5, Decay: 0.1})

	h.frames(5, nil)
	if h.renderer.Len() > 1 {
		t.Fatalf("no spawns expected, got %d particles", h.renderer.Len())
	}
	if h.renderer.Len() == 1 {
		if a := h.renderer.Particles()[0].Alpha; math.Abs(a) > 1e-9 {
			t.Fatalf("after 5 frames alpha = %g, want ~0", a)
		}
	}

	h.frames(1, nil)
	if h.renderer.Len() != 0 {
		t.Fatalf("particle should be gone on frame 6, %d left", h.renderer.Len())
	}
	if got := len(h.surface.canvas.fills); got != 0 {
		t.Fatalf("frame 6 should paint nothing, got %d fills", got)
	}
}

func TestRendererIdleFramesOnlyClear(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.renderer.Start(h.surface)

	const n = 25
	h.frames(n, func(frame int) {
		if len(h.surface.canvas.fills) != 0 {
			t.Fatalf("frame %d: idle renderer painted %d fills", frame, len(h.surface.canvas.fills))
		}
	})

	if h.renderer.Len() != 0 {
		t.Fatalf("idle renderer spawned %d particles", h.renderer.Len())
	}
	if h.surface.canvas.clears != n {
		t.Fatalf("expected %d clears, got %d", n, h.surface.canvas.clears)
	}
}

func TestRendererStopIdempotent(t *testing.T) {
	cases := []struct {
		name  string
		start bool
		stops int
	}{
		{"never_started", false, 1},
		{"never_started_twice", false, 2},
		{"started_once", true, 1},
		{"started_twice", true, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, DefaultSettings())
			if c.start {
				h.renderer.Start(h.surface)
				h.frames(2, nil)
			}
			for i := 0; i < c.stops; i++ {
				h.renderer.Stop()
			}
			if h.renderer.Running() || h.renderer.Pending() {
				t.Fatalf("renderer should be stopped with nothing pending")
			}
			if h.queue.Pending() != 0 {
				t.Fatalf("scheduler still has %d callbacks", h.queue.Pending())
			}
			frames := h.renderer.Frames()
			h.frames(3, nil)
			if h.renderer.Frames() != frames {
				t.Fatalf("frames ran after stop")
			}
		})
	}
}

func TestRendererSurfaceUnavailable(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.surface.available = false
	h.tracker.Move(10, 10)
	h.renderer.Start(h.surface)

	h.frames(3, nil)

	if h.renderer.Running() {
		t.Fatalf("renderer should halt on an unavailable surface")
	}
	if h.queue.Pending() != 0 {
		t.Fatalf("no frame should be rescheduled, %d pending", h.queue.Pending())
	}
	if h.surface.canvas.clears != 0 || h.renderer.Len() != 0 {
		t.Fatalf("unavailable surface must not be touched")
	}

	h.surface.available = true
	h.renderer.Start(h.surface)
	h.frames(3, nil)
	if h.renderer.Len() != 3 {
		t.Fatalf("restart should resume spawning, got %d particles", h.renderer.Len())
	}
}

func TestRendererNilSurface(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.renderer.Start(nil)
	h.frames(1, nil)
	if h.renderer.Running() {
		t.Fatalf("nil surface should halt the loop")
	}
}

func TestRendererCompositing(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.tracker.Move(300, 300)
	h.renderer.Start(h.surface)
	h.frames(1, nil)

	cv := h.surface.canvas
	if cv.composite != SourceOver {
		t.Fatalf("composite not restored, got %v", cv.composite)
	}
	if len(cv.fills) == 0 {
		t.Fatalf("expected fills while active")
	}
	for i, f := range cv.fills {
		if f.composite != Screen {
			t.Fatalf("fill %d used %v, want screen", i, f.composite)
		}
	}
}

func TestRendererLayers(t *testing.T) {
	tests := []struct {
		name      string
		alpha     float64
		active    bool
		wantCore  bool
		wantFills int
	}{
		{"blob_and_core", 0.5, false, true, 2},
		{"blob_only_below_threshold", 0.15, false, false, 1},
		{"threshold_is_exclusive", 0.21, false, false, 1},
		{"with_cursor_glow", 0.15, true, false, 2},
		{"core_and_cursor_glow", 0.5, true, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.Cap = 1
			h := newHarness(t, s, WithDrift(DriftFunc(func(float64, int) (float64, float64) { return 0, 0 })))
			h.renderer.Start(h.surface)
			h.renderer.Inject(Particle{X: 50, Y: 60, Radius: 100, Color: RGB(0, 255, 136), Alpha: tt.alpha, Decay: 0.01})
			if tt.active {
				h.tracker.Move(5, 5)
			}

			h.frames(1, nil)

			fills := h.surface.canvas.fills
			if len(fills) != tt.wantFills {
				t.Fatalf("got %d fills, want %d", len(fills), tt.wantFills)
			}

			blob := fills[0].radial
			if blob.Radius != 100.5 || len(blob.Stops) != 4 {
				t.Fatalf("unexpected blob %+v", blob)
			}
			a := tt.alpha - 0.01
			wantAlphas := []float64{a * 0.8, a * 0.5, a * 0.2, 0}
			for i, st := range blob.Stops {
				if math.Abs(st.Color.A-wantAlphas[i]) > 1e-12 {
					t.Fatalf("blob stop %d alpha %f, want %f", i, st.Color.A, wantAlphas[i])
				}
			}

			if tt.wantCore {
				core := fills[1].radial
				if math.Abs(core.Radius-100.5*0.2) > 1e-9 {
					t.Fatalf("core radius %f", core.Radius)
				}
				if core.Stops[0].Color.R != 1 || math.Abs(core.Stops[0].Color.A-a*0.4) > 1e-12 {
					t.Fatalf("core should start white at alpha*0.4, got %+v", core.Stops[0].Color)
				}
			}

			if tt.active {
				glow := fills[len(fills)-1].radial
				if glow.X != 5 || glow.Y != 5 || glow.Radius != 200 || len(glow.Stops) != 3 {
					t.Fatalf("unexpected cursor glow %+v", glow)
				}
			}
		})
	}
}

func TestRendererDriftUsesElapsedTimeAndIndex(t *testing.T) {
	type call struct {
		t float64
		i int
	}
	var calls []call
	d := DriftFunc(func(t float64, i int) (float64, float64) {
		calls = append(calls, call{t, i})
		return 1, -1
	})

	h := newHarness(t, DefaultSettings(), WithDrift(d))
	h.renderer.Start(h.surface)
	h.renderer.Inject(Particle{X: 0, Y: 0, Radius: 1, Alpha: 0.5, Decay: 0.01})
	h.renderer.Inject(Particle{X: 0, Y: 0, Radius: 1, Alpha: 0.5, Decay: 0.01, VX: 2})

	h.frames(2, nil)

	if len(calls) != 4 {
		t.Fatalf("expected 4 drift calls, got %d", len(calls))
	}
	if calls[0].i != 0 || calls[1].i != 1 {
		t.Fatalf("drift indices out of order: %+v", calls)
	}
	if math.Abs(calls[0].t-0.01) > 1e-12 || math.Abs(calls[2].t-0.02) > 1e-12 {
		t.Fatalf("drift time not advanced by the fixed step: %+v", calls)
	}

	ps := h.renderer.Particles()
	if ps[0].X != 2 || ps[0].Y != -2 || ps[1].X != 6 {
		t.Fatalf("unexpected positions %+v", ps)
	}
}

func TestRendererRestartClearsParticles(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.tracker.Move(100, 100)
	h.renderer.Start(h.surface)
	h.frames(5, nil)

	h.renderer.Stop()
	h.tracker.Leave()
	h.renderer.Start(h.surface)

	if h.renderer.Len() != 0 || h.renderer.Time() != 0 {
		t.Fatalf("restart should reset state, got %d particles at t=%f", h.renderer.Len(), h.renderer.Time())
	}
	if h.queue.Pending() != 1 {
		t.Fatalf("restart should schedule exactly one frame, got %d", h.queue.Pending())
	}
}

func TestRendererStartWhileRunningReschedulesOnce(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	h.renderer.Start(h.surface)
	h.renderer.Start(h.surface)
	if h.queue.Pending() != 1 {
		t.Fatalf("expected one pending frame, got %d", h.queue.Pending())
	}
}

func TestRendererSeededRunsMatch(t *testing.T) {
	run := func() []Particle {
		h := newHarness(t, DefaultSettings())
		h.tracker.Move(320, 240)
		h.renderer.Start(h.surface)
		h.frames(15, nil)
		return h.renderer.Particles()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("seeded runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
