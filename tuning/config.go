package tuning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/smoke"
)

var (
	ErrInvalidCap       = errors.New("tuning: cap must be positive")
	ErrInvalidRange     = errors.New("tuning: invalid range")
	ErrInvalidPalette   = errors.New("tuning: invalid palette")
	ErrInvalidStops     = errors.New("tuning: invalid gradient stops")
	ErrInvalidComposite = errors.New("tuning: unknown composite")
)

type RangeSpec struct {
	Min float64 `yaml:"min" toml:"min"`
	Max float64 `yaml:"max" toml:"max"`
}

type RampSpec struct {
	Offset float64 `yaml:"offset" toml:"offset"`
	Scale  float64 `yaml:"scale" toml:"scale"`
}

type StopSpec struct {
	Offset float64 `yaml:"offset" toml:"offset"`
	Color  string  `yaml:"color" toml:"color"`
	Alpha  float64 `yaml:"alpha" toml:"alpha"`
}

type CoreSpec struct {
	Scale     float64 `yaml:"scale" toml:"scale"`
	Start     float64 `yaml:"start" toml:"start"`
	Threshold float64 `yaml:"threshold" toml:"threshold"`
}

type GlowSpec struct {
	Radius float64    `yaml:"radius" toml:"radius"`
	Stops  []StopSpec `yaml:"stops" toml:"stops"`
}

type DriftSpec struct {
	AmpX   float64 `yaml:"amp_x" toml:"amp_x"`
	AmpY   float64 `yaml:"amp_y" toml:"amp_y"`
	PhaseY float64 `yaml:"phase_y" toml:"phase_y"`
	// Script is an optional tengo file computing dx, dy from t and i.
	Script string `yaml:"script" toml:"script"`
}

// Config is the on-disk smoke tuning.
type Config struct {
	Cap      int     `yaml:"cap" toml:"cap"`
	TimeStep float64 `yaml:"time_step" toml:"time_step"`
	Growth   float64 `yaml:"growth" toml:"growth"`
	Jitter   float64 `yaml:"jitter" toml:"jitter"`

	Radius RangeSpec `yaml:"radius" toml:"radius"`
	Alpha  RangeSpec `yaml:"alpha" toml:"alpha"`
	Decay  RangeSpec `yaml:"decay" toml:"decay"`
	VX     RangeSpec `yaml:"vx" toml:"vx"`
	VY     RangeSpec `yaml:"vy" toml:"vy"`

	Palette   []string   `yaml:"palette" toml:"palette"`
	BlobStops []RampSpec `yaml:"blob_stops" toml:"blob_stops"`
	Core      CoreSpec   `yaml:"core" toml:"core"`
	Glow      GlowSpec   `yaml:"glow" toml:"glow"`
	Composite string     `yaml:"composite" toml:"composite"`
	Drift     DriftSpec  `yaml:"drift" toml:"drift"`

	// Seed fixes the random source when non-zero.
	Seed          uint64 `yaml:"seed" toml:"seed"`
	ReducedMotion bool   `yaml:"reduced_motion" toml:"reduced_motion"`
}

// Default returns the embedded tuning.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(mustDefaults(), &cfg); err != nil {
		panic(fmt.Sprintf("tuning: unmarshal embedded %s: %v", DefaultFile, err))
	}
	return cfg
}

// Load reads name over the defaults, so missing fields keep their default
// values. An empty name returns the defaults. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func Load(name string) (Config, error) {
	cfg := Default()
	if name == "" {
		return cfg, nil
	}

	data, err := read(name)
	if err != nil {
		return Config{}, fmt.Errorf("tuning: load %s: %w", name, err)
	}

	if isTOML(name) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("tuning: decode %s: %w", name, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tuning: unmarshal %s: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("tuning: %s: %w", name, err)
	}
	return cfg, nil
}

// Validate checks the config can produce sane settings.
func (c Config) Validate() error {
	if c.Cap < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidCap, c.Cap)
	}

	ranges := []struct {
		name string
		r    RangeSpec
	}{
		{"radius", c.Radius},
		{"alpha", c.Alpha},
		{"decay", c.Decay},
		{"vx", c.VX},
		{"vy", c.VY},
	}
	for _, r := range ranges {
		if r.r.Min > r.r.Max {
			return fmt.Errorf("%w: %s min %g > max %g", ErrInvalidRange, r.name, r.r.Min, r.r.Max)
		}
	}
	if c.Radius.Min <= 0 {
		return fmt.Errorf("%w: radius must be positive", ErrInvalidRange)
	}
	if c.Alpha.Min <= 0 || c.Alpha.Max > 1 {
		return fmt.Errorf("%w: alpha must lie in (0, 1]", ErrInvalidRange)
	}
	if c.Decay.Min <= 0 {
		return fmt.Errorf("%w: decay must be positive", ErrInvalidRange)
	}
	if c.Growth < 0 || c.TimeStep < 0 {
		return fmt.Errorf("%w: growth and time_step must not be negative", ErrInvalidRange)
	}

	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPalette)
	}
	for _, hex := range c.Palette {
		if _, err := parseHex(hex); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidPalette, hex, err)
		}
	}

	if len(c.BlobStops) == 0 {
		return fmt.Errorf("%w: blob_stops empty", ErrInvalidStops)
	}
	for _, s := range c.Glow.Stops {
		if _, err := parseHex(s.Color); err != nil {
			return fmt.Errorf("%w: glow colour %q: %v", ErrInvalidStops, s.Color, err)
		}
	}

	if _, err := ParseComposite(c.Composite); err != nil {
		return err
	}
	return nil
}

// Settings converts the config into renderer settings.
func (c Config) Settings() (smoke.Settings, error) {
	if err := c.Validate(); err != nil {
		return smoke.Settings{}, err
	}

	s := smoke.Settings{
		Cap:      c.Cap,
		TimeStep: c.TimeStep,
		Growth:   c.Growth,
		Jitter:   c.Jitter,

		Radius: smoke.Range(c.Radius),
		Alpha:  smoke.Range(c.Alpha),
		Decay:  smoke.Range(c.Decay),
		VX:     smoke.Range(c.VX),
		VY:     smoke.Range(c.VY),

		CoreScale:     c.Core.Scale,
		CoreStart:     c.Core.Start,
		CoreThreshold: c.Core.Threshold,
		GlowRadius:    c.Glow.Radius,
	}

	for _, hex := range c.Palette {
		col, _ := parseHex(hex)
		s.Palette = append(s.Palette, col)
	}
	for _, r := range c.BlobStops {
		s.BlobStops = append(s.BlobStops, smoke.Ramp(r))
	}
	for _, st := range c.Glow.Stops {
		col, _ := parseHex(st.Color)
		s.GlowStops = append(s.GlowStops, smoke.Stop{Offset: st.Offset, Color: col.WithAlpha(st.Alpha)})
	}
	s.Composite, _ = ParseComposite(c.Composite)
	return s, nil
}

// WaveDrift returns the native drift described by the config.
func (c Config) WaveDrift() smoke.WaveDrift {
	return smoke.WaveDrift{AmpX: c.Drift.AmpX, AmpY: c.Drift.AmpY, PhaseY: c.Drift.PhaseY}
}

// ParseComposite maps a composite name to its mode. Empty means screen.
func ParseComposite(name string) (smoke.Composite, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "screen":
		return smoke.Screen, nil
	case "lighter", "additive":
		return smoke.Lighter, nil
	case "source-over", "normal":
		return smoke.SourceOver, nil
	}
	return smoke.SourceOver, fmt.Errorf("%w: %q", ErrInvalidComposite, name)
}

func parseHex(s string) (smoke.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return smoke.Color{}, err
	}
	return smoke.Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}
