package smoke

// Composite selects how painted pixels combine with what is already on the canvas.
type Composite int

const (
	// SourceOver is normal alpha compositing.
	SourceOver Composite = iota
	// Screen brightens: 1-(1-s)(1-d).
	Screen
	// Lighter adds source to destination, saturating.
	Lighter
)

func (c Composite) String() string {
	switch c {
	case SourceOver:
		return "source-over"
	case Screen:
		return "screen"
	case Lighter:
		return "lighter"
	}
	return "unknown"
}

// Color is a straight (non-premultiplied) colour with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB builds an opaque colour from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Stop is one colour stop of a radial gradient. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  Color
}

// Radial is a filled disc centred at (X, Y) whose colour runs through Stops
// from the centre (offset 0) to the rim (offset 1).
type Radial struct {
	X, Y   float64
	Radius float64
	Stops  []Stop
}

// Canvas is a 2D drawing context.
type Canvas interface {
	Size() (w, h int)
	Clear()
	SetComposite(c Composite)
	FillRadial(g Radial)
}

// Surface is a drawing element sized to the viewport. Canvas reports false
// while no context can be obtained (not mounted, zero size, disposed).
type Surface interface {
	Canvas() (Canvas, bool)
	Resize(w, h int)
}
