package smoke

import (
	"math/rand/v2"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/common"
)

// Particle is one decaying, drifting glow blob. Particles are plain values
// owned by the renderer; nothing else holds a reference to one.
type Particle struct {
	X, Y   float64
	Radius float64
	Color  Color
	Alpha  float64
	Decay  float64
	VX, VY float64
}

// Spawner draws new particles from the randomized ranges in Settings.
type Spawner struct {
	rng      *rand.Rand
	settings *Settings
}

func NewSpawner(rng *rand.Rand, settings *Settings) *Spawner {
	return &Spawner{rng: rng, settings: settings}
}

// Spawn creates a particle jittered around (x, y).
func (s *Spawner) Spawn(x, y float64) Particle {
	set := s.settings
	palette := set.Palette
	if len(palette) == 0 {
		palette = DefaultPalette()
	}

	return Particle{
		X:      x + (s.rng.Float64()-0.5)*set.Jitter,
		Y:      y + (s.rng.Float64()-0.5)*set.Jitter,
		Radius: s.sample(set.Radius),
		Color:  palette[s.rng.IntN(len(palette))],
		Alpha:  s.sample(set.Alpha),
		Decay:  s.sample(set.Decay),
		VX:     s.sample(set.VX),
		VY:     s.sample(set.VY),
	}
}

func (s *Spawner) sample(r Range) float64 {
	return common.Lerp(r.Min, r.Max, s.rng.Float64())
}
