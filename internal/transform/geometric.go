package transform

import (
	"math"

	"github.com/ironsheep/image-fx-mcp/internal/raster"
)

// copyPixel copies every band of src at (sx, sy) to dst at (dx, dy).
func copyPixel(dst *raster.Raster, dx, dy int, src *raster.Raster, sx, sy int) {
	for b := 0; b < src.Bands(); b++ {
		dst.Set(dx, dy, b, src.At(sx, sy, b))
	}
}

func runScale(in, out *raster.Raster, a args) error {
	width, err := a.Int("width")
	if err != nil {
		return err
	}
	height, err := a.Int("height")
	if err != nil {
		return err
	}
	if width <= 0 {
		return invalidValue(a.algorithm, "width", a.params["width"], "must be positive")
	}
	if height <= 0 {
		return invalidValue(a.algorithm, "height", a.params["height"], "must be positive")
	}
	scale(in, out, width, height)
	return nil
}

// scale resamples in to width x height with nearest-neighbor sampling:
// destination (x, y) reads source (floor(x*ratioX), floor(y*ratioY)).
func scale(in, out *raster.Raster, width, height int) {
	out.Reshape(width, height)
	rx := float64(in.Width()) / float64(width)
	ry := float64(in.Height()) / float64(height)
	for y := 0; y < height; y++ {
		sy := int(math.Floor(ry * float64(y)))
		for x := 0; x < width; x++ {
			sx := int(math.Floor(rx * float64(x)))
			if in.InBounds(sx, sy) {
				copyPixel(out, x, y, in, sx, sy)
			}
		}
	}
}

func runFlip(in, _ *raster.Raster, a args) error {
	axis, err := a.OneOf("axis", "HV")
	if err != nil {
		return err
	}
	flip(in, axis)
	return nil
}

// flip mirrors the raster in place: H swaps rows top to bottom, V swaps
// columns left to right.
func flip(r *raster.Raster, axis rune) {
	w, h := r.Width(), r.Height()
	for b := 0; b < r.Bands(); b++ {
		band := r.Band(b)
		if axis == 'H' {
			for y := 0; y < h/2; y++ {
				top := band[y*w : (y+1)*w]
				bottom := band[(h-1-y)*w : (h-y)*w]
				for x := range top {
					top[x], bottom[x] = bottom[x], top[x]
				}
			}
			continue
		}
		for y := 0; y < h; y++ {
			row := band[y*w : (y+1)*w]
			for x := 0; x < w/2; x++ {
				row[x], row[w-1-x] = row[w-1-x], row[x]
			}
		}
	}
}

func runRotate(in, out *raster.Raster, a args) error {
	angle, err := a.Int("angle")
	if err != nil {
		return err
	}
	out.Reshape(in.Width(), in.Height())
	rad := float64(angle) * math.Pi / 180
	inverseMap(in, out, func(_, _ float64) float64 { return rad })
	return nil
}

// inverseMap fills out by rotating each destination pixel about the image
// center by angleAt(x, y) radians and reading the source there. Destination
// pixels whose source falls outside the image are left as they were.
func inverseMap(in, out *raster.Raster, angleAt func(dx, dy float64) float64) {
	w, h := in.Width(), in.Height()
	xc, yc := w/2, h/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x-xc), float64(y-yc)
			theta := angleAt(dx, dy)
			cos, sin := math.Cos(theta), math.Sin(theta)
			xp := int(dx*cos - dy*sin + float64(xc))
			yp := int(dx*sin + dy*cos + float64(yc))
			if in.InBounds(xp, yp) {
				copyPixel(out, x, y, in, xp, yp)
			}
		}
	}
}

func runTwist(in, out *raster.Raster, a args) error {
	maxAngle, err := a.Int("maxAngle")
	if err != nil {
		return err
	}
	out.Reshape(in.Width(), in.Height())
	xc, yc := in.Width()/2, in.Height()/2
	dMax := math.Sqrt(float64(xc*xc + yc*yc))
	peak := float64(maxAngle)
	inverseMap(in, out, func(dx, dy float64) float64 {
		deg := peak
		if dMax > 0 {
			deg = -peak/dMax*math.Sqrt(dx*dx+dy*dy) + peak
		}
		return deg * math.Pi / 180
	})
	return nil
}

func runWave(in, out *raster.Raster, a args) error {
	axis, err := a.OneOf("waveAxis", "HV")
	if err != nil {
		return err
	}
	offset, err := a.Int("waveOffset")
	if err != nil {
		return err
	}
	amplitude, err := a.Int("amplitude")
	if err != nil {
		return err
	}
	length, err := a.Int("waveLength")
	if err != nil {
		return err
	}
	kind, err := a.OneOf("waveType", "CRT")
	if err != nil {
		return err
	}
	if length <= 0 {
		return invalidValue(a.algorithm, "waveLength", a.params["waveLength"], "must be positive")
	}
	out.Reshape(in.Width(), in.Height())
	wave(in, out, axis, offset, amplitude, length, kind)
	return nil
}

// waveShape evaluates the periodic displacement function at pos for a wave of
// half-period half: a sine (C), its sign (R) or a triangle (T), all in [-1,1].
func waveShape(kind rune, pos, half float64) float64 {
	switch kind {
	case 'R':
		if math.Sin(pos*math.Pi/half) > 0 {
			return 1
		}
		return -1
	case 'T':
		return -(2 / half * (pos - half*math.Floor(pos/half+0.5)) * math.Pow(-1, math.Floor(pos/half-0.5)))
	default:
		return math.Sin(pos * math.Pi / half)
	}
}

// wave moves each source pixel along one axis by amplitude*f(p+offset), where
// p is its coordinate on the other axis. Axis V displaces x by row, axis H
// displaces y by column. Pixels pushed outside the image are dropped.
func wave(in, out *raster.Raster, axis rune, offset, amplitude, length int, kind rune) {
	half := float64(length) / 2
	for y := 0; y < in.Height(); y++ {
		for x := 0; x < in.Width(); x++ {
			nx, ny := x, y
			if axis == 'V' {
				nx = int(float64(x) + waveShape(kind, float64(y+offset), half)*float64(amplitude))
			} else {
				ny = int(float64(y) + waveShape(kind, float64(x+offset), half)*float64(amplitude))
			}
			if out.InBounds(nx, ny) {
				copyPixel(out, nx, ny, in, x, y)
			}
		}
	}
}

func runSphere(in, out *raster.Raster, a args) error {
	kind, err := a.OneOf("sphereType", "SE")
	if err != nil {
		return err
	}
	out.Reshape(in.Width(), in.Height())
	sphere(in, out, kind)
	return nil
}

// sphere maps the square grid onto a disc (S) or an ellipse (E) with the
// elliptical grid mapping, forward from source to destination.
func sphere(in, out *raster.Raster, kind rune) {
	xc, yc := in.Width()/2, in.Height()/2
	xs, ys := xc, yc
	if kind == 'S' {
		xs = min(xc, yc)
		ys = xs
	}
	norm := func(d, c int) float64 {
		if c == 0 {
			return 0
		}
		return float64(d) / float64(c)
	}

	for y := 0; y < in.Height(); y++ {
		ny := norm(y-yc, yc)
		for x := 0; x < in.Width(); x++ {
			nx := norm(x-xc, xc)
			xp := int(nx*math.Sqrt(1-ny*ny/2)*float64(xs) + float64(xc))
			yp := int(ny*math.Sqrt(1-nx*nx/2)*float64(ys) + float64(yc))
			if out.InBounds(xp, yp) {
				copyPixel(out, xp, yp, in, x, y)
			}
		}
	}
}

func runMozaic(in, out *raster.Raster, _ args) error {
	out.Reshape(in.Width(), in.Height())
	mozaic(in, out)
	return nil
}

// mozaic splits the image into four half-size copies: each 2x2 block
// contributes its top-left pixel to the top-left quadrant, its top-right pixel
// to the top-right quadrant and so on. Half sizes round up.
func mozaic(in, out *raster.Raster) {
	halfW := (in.Width() + 1) / 2
	halfH := (in.Height() + 1) / 2
	for y := 0; y < in.Height(); y++ {
		ny := y/2 + (y%2)*halfH
		for x := 0; x < in.Width(); x++ {
			nx := x/2 + (x%2)*halfW
			copyPixel(out, nx, ny, in, x, y)
		}
	}
}
