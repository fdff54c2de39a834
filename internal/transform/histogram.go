package transform

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/histogram"

	"github.com/ironsheep/image-fx-mcp/internal/raster"
)

func runEqualize(in, _ *raster.Raster, a args) error {
	canal, err := a.OneOf("canal", "SV")
	if err != nil {
		return err
	}
	if in.Bands() < 3 {
		equalizeGray(in)
		return nil
	}
	equalizeHSV(in, canal)
	return nil
}

// equalizeGray applies standard histogram equalization to band 0:
// v' = cumulative(v) * 255 / pixels.
func equalizeGray(r *raster.Raster) {
	total := r.Width() * r.Height()
	if total == 0 {
		return
	}
	band := r.Band(0)
	gray := &image.Gray{Pix: band, Stride: r.Width(), Rect: image.Rect(0, 0, r.Width(), r.Height())}
	cum := histogram.NewRGBAHistogram(gray).R.Cumulative()

	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(cum.Bins[i] * 255 / total)
	}
	for i, v := range band {
		band[i] = lut[v]
	}
}

// equalizeHSV equalizes the S or V channel of an RGB image. Each pixel's
// channel is quantized to [0,255] by rounding, remapped through the normalized
// cumulative histogram and converted back to RGB.
func equalizeHSV(r *raster.Raster, canal rune) {
	total := r.Width() * r.Height()
	if total == 0 {
		return
	}
	pick := func(s, v float64) float64 {
		if canal == 'S' {
			return s
		}
		return v
	}

	bins := make([]int, 256)
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			_, s, v := toHSV(r.At(x, y, 0), r.At(x, y, 1), r.At(x, y, 2))
			bins[quantize(pick(s, v))]++
		}
	}
	hist := histogram.Histogram{Bins: bins}
	cum := hist.Cumulative()

	var curve [256]float64
	for i := range curve {
		curve[i] = math.Min(1, float64(cum.Bins[i])/float64(total))
	}

	mapHSV(r, func(_, _ int, h, s, v float64) (float64, float64, float64) {
		if canal == 'S' {
			return h, curve[quantize(s)], v
		}
		return h, s, curve[quantize(v)]
	})
}

// quantize maps a [0,1] channel to the nearest of 256 levels.
func quantize(f float64) int {
	return min(255, max(0, int(math.Floor(f*255+0.5))))
}
