package transform

import (
	"math"

	"github.com/ironsheep/image-fx-mcp/internal/raster"
)

// colorBands is the number of leading bands treated as color: at most three,
// at least one.
func colorBands(r *raster.Raster) int {
	return max(1, min(r.Bands(), 3))
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func runAddLuminosity(in, _ *raster.Raster, a args) error {
	gain, err := a.Int("gain")
	if err != nil {
		return err
	}
	addLuminosity(in, gain)
	return nil
}

// addLuminosity adds gain to every color band, clamping to [0,255].
func addLuminosity(r *raster.Raster, gain int) {
	for b := 0; b < colorBands(r); b++ {
		band := r.Band(b)
		for i, v := range band {
			band[i] = clampByte(int(v) + gain)
		}
	}
}

func runNegative(in, _ *raster.Raster, _ args) error {
	negative(in)
	return nil
}

// negative replaces every color band value v by 255-v. Alpha is untouched.
func negative(r *raster.Raster) {
	for b := 0; b < colorBands(r); b++ {
		band := r.Band(b)
		for i, v := range band {
			band[i] = 255 - v
		}
	}
}

var sepiaMatrix = [3][3]float64{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

func runSepia(in, _ *raster.Raster, _ args) error {
	sepia(in)
	return nil
}

// sepia applies the fixed sepia matrix to R, G, B. Images with fewer than three
// bands are left unchanged.
func sepia(r *raster.Raster) {
	if r.Bands() < 3 {
		return
	}
	R, G, B := r.Band(0), r.Band(1), r.Band(2)
	for i := range R {
		old := [3]float64{float64(R[i]), float64(G[i]), float64(B[i])}
		var out [3]uint8
		for c := 0; c < 3; c++ {
			v := sepiaMatrix[c][0]*old[0] + sepiaMatrix[c][1]*old[1] + sepiaMatrix[c][2]*old[2]
			out[c] = uint8(math.Min(v, 255))
		}
		R[i], G[i], B[i] = out[0], out[1], out[2]
	}
}

func runHueFilter(in, _ *raster.Raster, a args) error {
	hue, err := a.IntRange("hue", 0, 360)
	if err != nil {
		return err
	}
	if err := needBands(a.algorithm, in.Bands(), 3); err != nil {
		return err
	}
	mapHSV(in, func(_, _ int, _, s, v float64) (float64, float64, float64) {
		return float64(hue), s, v
	})
	return nil
}

func runReverseHue(in, _ *raster.Raster, a args) error {
	if err := needBands(a.algorithm, in.Bands(), 3); err != nil {
		return err
	}
	mapHSV(in, func(_, _ int, h, s, v float64) (float64, float64, float64) {
		return math.Mod(h+180, 360), s, v
	})
	return nil
}

func runHueSelector(in, _ *raster.Raster, a args) error {
	lo, err := a.IntRange("min", 0, 360)
	if err != nil {
		return err
	}
	hi, err := a.IntRange("max", 0, 360)
	if err != nil {
		return err
	}
	if err := needBands(a.algorithm, in.Bands(), 3); err != nil {
		return err
	}
	hueSelector(in, float64(lo), float64(hi))
	return nil
}

// hueSelector desaturates every pixel whose hue lies outside [lo, hi]. When
// lo > hi the selection wraps around 0 and pixels with hue in [hi, lo] are
// desaturated instead.
func hueSelector(r *raster.Raster, lo, hi float64) {
	mapHSV(r, func(_, _ int, h, s, v float64) (float64, float64, float64) {
		if lo > hi {
			if h <= lo && h >= hi {
				s = 0
			}
		} else if h < lo || h > hi {
			s = 0
		}
		return h, s, v
	})
}

func runRainbow(in, _ *raster.Raster, a args) error {
	dir, err := a.OneOf("direction", "HVC")
	if err != nil {
		return err
	}
	if err := needBands(a.algorithm, in.Bands(), 3); err != nil {
		return err
	}
	rainbow(in, dir)
	return nil
}

// rainbow forces the hue of each pixel to one of twelve 30° steps, from 330°
// down to 0°, banded by row (H), column (V) or distance from the center (C).
func rainbow(r *raster.Raster, dir rune) {
	w, h := r.Width(), r.Height()
	xc, yc := w/2, h/2
	dMax := math.Sqrt(float64(xc*xc + yc*yc))
	rowStep := max(1, h/12)
	colStep := max(1, w/12)
	ringStep := max(1, int(dMax)/12)

	mapHSV(r, func(x, y int, _, s, v float64) (float64, float64, float64) {
		var band int
		switch dir {
		case 'H':
			band = y / rowStep
		case 'V':
			band = x / colStep
		default:
			dx, dy := float64(xc-x), float64(yc-y)
			band = int(math.Sqrt(dx*dx+dy*dy)) / ringStep
		}
		return float64(max(0, 330-band*30)), s, v
	})
}

// toGray replaces R, G and B by 0.3R + 0.59G + 0.11B, truncated. The raster
// must have at least three bands.
func toGray(r *raster.Raster) {
	R, G, B := r.Band(0), r.Band(1), r.Band(2)
	for i := range R {
		v := grayValue(R[i], G[i], B[i])
		R[i], G[i], B[i] = v, v, v
	}
}

func grayValue(r, g, b uint8) uint8 {
	return uint8((30*int(r) + 59*int(g) + 11*int(b)) / 100)
}
