package smoke

// Range is a closed interval sampled uniformly at spawn time.
type Range struct {
	Min, Max float64
}

// Ramp scales the particle alpha at a gradient offset.
type Ramp struct {
	Offset float64
	Scale  float64
}

// Settings holds every tunable of the smoke simulation.
type Settings struct {
	// Cap is the maximum number of live particles.
	Cap int
	// TimeStep is added to the elapsed-time counter every frame.
	TimeStep float64
	// Growth is added to every particle radius every frame.
	Growth float64
	// Jitter is the full width of the square around the pointer new
	// particles are placed in.
	Jitter float64

	Radius Range
	Alpha  Range
	Decay  Range
	VX     Range
	VY     Range

	Palette []Color

	BlobStops     []Ramp
	CoreScale     float64
	CoreStart     float64
	CoreThreshold float64

	GlowRadius float64
	GlowStops  []Stop

	Composite Composite
}

// DefaultPalette is the cyan/green smoke palette.
func DefaultPalette() []Color {
	return []Color{
		RGB(0, 255, 240),   // electric cyan
		RGB(79, 195, 247),  // sky blue
		RGB(0, 255, 200),   // cyan green
		RGB(0, 255, 136),   // neon green
		RGB(100, 220, 255), // light blue
	}
}

func DefaultSettings() Settings {
	return Settings{
		Cap:      50,
		TimeStep: 0.01,
		Growth:   0.5,
		Jitter:   100,

		Radius: Range{Min: 80, Max: 230},
		Alpha:  Range{Min: 0.4, Max: 0.7},
		Decay:  Range{Min: 0.008, Max: 0.016},
		VX:     Range{Min: -1, Max: 1},
		VY:     Range{Min: -2, Max: 0},

		Palette: DefaultPalette(),

		BlobStops: []Ramp{
			{Offset: 0, Scale: 0.8},
			{Offset: 0.3, Scale: 0.5},
			{Offset: 0.6, Scale: 0.2},
			{Offset: 1, Scale: 0},
		},
		CoreScale:     0.2,
		CoreStart:     0.4,
		CoreThreshold: 0.2,

		GlowRadius: 200,
		GlowStops: []Stop{
			{Offset: 0, Color: RGB(0, 255, 240).WithAlpha(0.15)},
			{Offset: 0.5, Color: RGB(79, 195, 247).WithAlpha(0.08)},
			{Offset: 1, Color: RGB(0, 255, 240).WithAlpha(0)},
		},

		Composite: Screen,
	}
}

// MaxLifetime is the number of frames after which every particle spawned
// under s is guaranteed to be gone. Zero means particles may live forever.
func (s Settings) MaxLifetime() int {
	if s.Decay.Min <= 0 {
		return 0
	}
	return int(s.Alpha.Max/s.Decay.Min) + 1
}
