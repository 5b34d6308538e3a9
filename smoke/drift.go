package smoke

import "math"

// Drift produces the per-frame oscillation added to a particle's velocity.
// t is the renderer's elapsed-time counter and i the particle's index in the
// live set.
type Drift interface {
	Offset(t float64, i int) (dx, dy float64)
}

// WaveDrift sways particles on out-of-phase sine/cosine waves.
type WaveDrift struct {
	AmpX   float64
	AmpY   float64
	PhaseY float64
}

func DefaultDrift() WaveDrift {
	return WaveDrift{AmpX: 0.5, AmpY: 0.3, PhaseY: 0.7}
}

func (d WaveDrift) Offset(t float64, i int) (float64, float64) {
	fi := float64(i)
	return math.Sin(t+fi) * d.AmpX, math.Cos(t+fi*d.PhaseY) * d.AmpY
}

// DriftFunc adapts a plain function to Drift.
type DriftFunc func(t float64, i int) (float64, float64)

func (f DriftFunc) Offset(t float64, i int) (float64, float64) {
	return f(t, i)
}
