package render

import (
	"image/color"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/common"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/smoke"
)

// nrgba converts a straight float colour to 8-bit straight alpha.
func nrgba(c smoke.Color) color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

func to8(v float64) uint8 {
	return uint8(common.Clamp01(v)*255 + 0.5)
}

// normalizeStops pads stops to cover [0, 1] the way canvas gradients do:
// before the first stop the first colour holds, after the last the last does.
func normalizeStops(stops []smoke.Stop, dst []smoke.Stop) []smoke.Stop {
	dst = dst[:0]
	if len(stops) == 0 {
		return dst
	}
	if first := stops[0]; first.Offset > 0 {
		dst = append(dst, smoke.Stop{Offset: 0, Color: first.Color})
	}
	for _, s := range stops {
		s.Offset = common.Clamp01(s.Offset)
		if n := len(dst); n > 0 && s.Offset < dst[n-1].Offset {
			s.Offset = dst[n-1].Offset
		}
		dst = append(dst, s)
	}
	if last := dst[len(dst)-1]; last.Offset < 1 {
		dst = append(dst, smoke.Stop{Offset: 1, Color: last.Color})
	}
	return dst
}
