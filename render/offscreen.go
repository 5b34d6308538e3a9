package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/smoke"
)

const defaultSegments = 48

// BlendScreen is the "screen" composite: out = src + dst*(1-src).
var BlendScreen = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// BlendFor maps a composite to the ebiten blend that implements it.
func BlendFor(c smoke.Composite) ebiten.Blend {
	switch c {
	case smoke.Screen:
		return BlendScreen
	case smoke.Lighter:
		return ebiten.BlendLighter
	}
	return ebiten.BlendSourceOver
}

// Offscreen is the GPU drawing surface: an ebiten image the size of the
// viewport, composited over the window by DrawTo.
type Offscreen struct {
	img      *ebiten.Image
	white    *ebiten.Image
	blend    ebiten.Blend
	segments int

	vertices []ebiten.Vertex
	indices  []uint16
	stops    []smoke.Stop
}

func NewOffscreen() *Offscreen {
	return &Offscreen{blend: ebiten.BlendSourceOver, segments: defaultSegments}
}

// Canvas reports false until the surface has been given a non-zero size.
func (o *Offscreen) Canvas() (smoke.Canvas, bool) {
	if o == nil || o.img == nil {
		return nil, false
	}
	return o, true
}

// Resize reallocates the backing image when the viewport size changes.
// Content is dropped; particles keep their absolute coordinates.
func (o *Offscreen) Resize(w, h int) {
	if o == nil {
		return
	}
	if o.img != nil {
		if b := o.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		o.img.Deallocate()
		o.img = nil
	}
	if w <= 0 || h <= 0 {
		return
	}
	o.img = ebiten.NewImage(w, h)
	if o.white == nil {
		base := ebiten.NewImage(3, 3)
		base.Fill(color.White)
		o.white = base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
}

func (o *Offscreen) Size() (int, int) {
	if o.img == nil {
		return 0, 0
	}
	b := o.img.Bounds()
	return b.Dx(), b.Dy()
}

func (o *Offscreen) Clear() {
	if o.img != nil {
		o.img.Clear()
	}
}

func (o *Offscreen) SetComposite(c smoke.Composite) {
	o.blend = BlendFor(c)
}

func (o *Offscreen) FillRadial(g smoke.Radial) {
	if o.img == nil || g.Radius <= 0 || len(g.Stops) == 0 {
		return
	}
	o.stops = normalizeStops(g.Stops, o.stops)
	o.vertices, o.indices = tessellate(g.X, g.Y, g.Radius, o.stops, o.segments, o.vertices[:0], o.indices[:0])
	op := &ebiten.DrawTrianglesOptions{Blend: o.blend}
	o.img.DrawTriangles(o.vertices, o.indices, o.white, op)
}

// DrawTo composites the surface over screen.
func (o *Offscreen) DrawTo(screen *ebiten.Image) {
	if o == nil || o.img == nil || screen == nil {
		return
	}
	screen.DrawImage(o.img, nil)
}

// tessellate builds a triangle fan for the first stop band and quad rings for
// the rest. Vertex colours are premultiplied so the linear interpolation
// across each ring matches a premultiplied canvas gradient.
func tessellate(cx, cy, radius float64, stops []smoke.Stop, segments int, vs []ebiten.Vertex, is []uint16) ([]ebiten.Vertex, []uint16) {
	if len(stops) < 2 || segments < 3 {
		return vs, is
	}

	vs = append(vs, vertex(cx, cy, stops[0].Color))

	for ring := 1; ring < len(stops); ring++ {
		rr := radius * stops[ring].Offset
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			vs = append(vs, vertex(cx+rr*math.Cos(theta), cy+rr*math.Sin(theta), stops[ring].Color))
		}
	}

	// Center fan to the first ring.
	for s := 0; s < segments; s++ {
		a := uint16(1 + s)
		b := uint16(1 + (s+1)%segments)
		is = append(is, 0, a, b)
	}

	for ring := 1; ring < len(stops)-1; ring++ {
		inner := 1 + (ring-1)*segments
		outer := inner + segments
		for s := 0; s < segments; s++ {
			n := (s + 1) % segments
			i0, i1 := uint16(inner+s), uint16(inner+n)
			o0, o1 := uint16(outer+s), uint16(outer+n)
			is = append(is, i0, o0, o1, i0, o1, i1)
		}
	}
	return vs, is
}

func vertex(x, y float64, c smoke.Color) ebiten.Vertex {
	a := float32(c.A)
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) * a,
		ColorG: float32(c.G) * a,
		ColorB: float32(c.B) * a,
		ColorA: a,
	}
}
