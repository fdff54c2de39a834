package transform

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-fx-mcp/internal/raster"
)

// truncEpsilon absorbs the representation error of v/255*255 so that exact
// channel values survive an RGB -> HSV -> RGB round trip before truncation.
const truncEpsilon = 1e-9

// toHSV converts 8-bit RGB to hue in [0,360) degrees and saturation/value in
// [0,1]. Achromatic colors have hue 0.
func toHSV(r, g, b uint8) (h, s, v float64) {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hsv()
}

// fromHSV converts back to 8-bit RGB, truncating each channel. Hue is taken
// modulo 360.
func fromHSV(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsv(h, s, v)
	return channel(c.R), channel(c.G), channel(c.B)
}

func channel(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + truncEpsilon)
}

// mapHSV rewrites bands 0..2 of every pixel through fn.
func mapHSV(r *raster.Raster, fn func(x, y int, h, s, v float64) (float64, float64, float64)) {
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			h, s, v := toHSV(r.At(x, y, 0), r.At(x, y, 1), r.At(x, y, 2))
			h, s, v = fn(x, y, h, s, v)
			cr, cg, cb := fromHSV(h, s, v)
			r.Set(x, y, 0, cr)
			r.Set(x, y, 1, cg)
			r.Set(x, y, 2, cb)
		}
	}
}
