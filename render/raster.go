package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/common"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/smoke"
)

// Raster is a CPU drawing surface backed by an *image.RGBA (premultiplied).
// It is used for headless snapshots and pixel-level tests.
type Raster struct {
	img       *image.RGBA
	composite smoke.Composite
	stops     []smoke.Stop
}

func NewRaster(w, h int) *Raster {
	r := &Raster{}
	r.Resize(w, h)
	return r
}

// Canvas reports false while the raster has no pixels.
func (r *Raster) Canvas() (smoke.Canvas, bool) {
	if r == nil || r.img == nil {
		return nil, false
	}
	return r, true
}

// Resize reallocates the pixel buffer. Existing content is discarded.
func (r *Raster) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		r.img = nil
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (r *Raster) Size() (int, int) {
	if r.img == nil {
		return 0, 0
	}
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing image, or nil while unsized.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Clear() {
	if r.img == nil {
		return
	}
	clear(r.img.Pix)
}

func (r *Raster) SetComposite(c smoke.Composite) {
	r.composite = c
}

// FillRadial paints the disc of g, evaluating the gradient with gg and
// combining each pixel with the current composite.
func (r *Raster) FillRadial(g smoke.Radial) {
	if r.img == nil || g.Radius <= 0 || len(g.Stops) == 0 {
		return
	}

	grad := gg.NewRadialGradient(g.X, g.Y, 0, g.X, g.Y, g.Radius)
	r.stops = normalizeStops(g.Stops, r.stops)
	for _, s := range r.stops {
		grad.AddColorStop(s.Offset, nrgba(s.Color))
	}

	bounds := r.img.Bounds()
	x0 := max(bounds.Min.X, int(math.Floor(g.X-g.Radius)))
	y0 := max(bounds.Min.Y, int(math.Floor(g.Y-g.Radius)))
	x1 := min(bounds.Max.X, int(math.Ceil(g.X+g.Radius)))
	y1 := min(bounds.Max.Y, int(math.Ceil(g.Y+g.Radius)))
	r2 := g.Radius * g.Radius

	for y := y0; y < y1; y++ {
		dy := float64(y) + 0.5 - g.Y
		for x := x0; x < x1; x++ {
			dx := float64(x) + 0.5 - g.X
			if dx*dx+dy*dy > r2 {
				continue
			}
			sr, sg, sb, sa := grad.ColorAt(x, y).RGBA()
			if sa == 0 {
				continue
			}
			r.blend(r.img.PixOffset(x, y), sr, sg, sb, sa)
		}
	}
}

func (r *Raster) blend(off int, sr, sg, sb, sa uint32) {
	pix := r.img.Pix[off : off+4 : off+4]
	src := [4]float64{
		float64(sr) / 0xffff,
		float64(sg) / 0xffff,
		float64(sb) / 0xffff,
		float64(sa) / 0xffff,
	}
	srcA := src[3]
	for i := 0; i < 4; i++ {
		d := float64(pix[i]) / 0xff
		s := src[i]
		var o float64
		switch r.composite {
		case smoke.Screen:
			o = s + d - s*d
		case smoke.Lighter:
			o = s + d
		default:
			o = s + d*(1-srcA)
		}
		pix[i] = uint8(common.Clamp01(o)*0xff + 0.5)
	}
}
