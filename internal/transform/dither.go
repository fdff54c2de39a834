package transform

import (
	"math"

	"github.com/ironsheep/image-fx-mcp/internal/raster"
)

// halftoneAmplitude is the peak of the threshold kernel.
const halftoneAmplitude = 255

func runHalftoning(in, _ *raster.Raster, a args) error {
	spread, err := a.Float("spread")
	if err != nil {
		return err
	}
	size, err := a.Int("dotSize")
	if err != nil {
		return err
	}
	if size < 0 {
		return invalidValue(a.algorithm, "dotSize", a.params["dotSize"], "must not be negative")
	}
	halftone(in, spread, size)
	return nil
}

// gaussKernel builds the size x size threshold kernel: a 2-D Gaussian of the
// given amplitude and spread centered on (size/2, size/2), rounded half up.
func gaussKernel(size, amplitude int, spread float64) [][]int {
	c := size / 2
	k := make([][]int, size)
	for y := range k {
		k[y] = make([]int, size)
		if spread == 0 {
			continue
		}
		for x := range k[y] {
			dx, dy := float64(x-c), float64(y-c)
			e := math.Exp(-(dx*dx/(2*spread*spread) + dy*dy/(2*spread*spread)))
			k[y][x] = int(math.Floor(float64(amplitude)*e + 0.5))
		}
	}
	return k
}

// halftone converts the image to gray and thresholds it block by block against
// a Gaussian kernel: pixels brighter than the kernel value at their offset in
// the block become white, the others black.
func halftone(r *raster.Raster, spread float64, size int) {
	if r.Bands() >= 3 {
		toGray(r)
	}
	if size == 0 {
		return
	}
	kernel := gaussKernel(size, halftoneAmplitude, spread)
	w, h := r.Width(), r.Height()
	for b := 0; b < colorBands(r); b++ {
		band := r.Band(b)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				if kernel[y%size][x%size] < int(band[i]) {
					band[i] = 255
				} else {
					band[i] = 0
				}
			}
		}
	}
}
