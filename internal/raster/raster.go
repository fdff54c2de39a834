package raster

import "fmt"

// Raster is a planar multi-band 8-bit pixel buffer.
type Raster struct {
	width  int
	height int
	bands  [][]uint8
}

// New allocates a zero-filled raster.
//
// Negative dimensions are treated as zero. A band count below one is raised to one.
func New(width, height, bands int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if bands < 1 {
		bands = 1
	}
	r := &Raster{width: width, height: height, bands: make([][]uint8, bands)}
	for i := range r.bands {
		r.bands[i] = make([]uint8, width*height)
	}
	return r
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// Bands returns the number of bands.
func (r *Raster) Bands() int { return len(r.bands) }

// At returns the value of band at (x, y). The caller must ensure InBounds(x, y).
func (r *Raster) At(x, y, band int) uint8 {
	return r.bands[band][y*r.width+x]
}

// Set stores v in band at (x, y). The caller must ensure InBounds(x, y).
func (r *Raster) Set(x, y, band int, v uint8) {
	r.bands[band][y*r.width+x] = v
}

// InBounds reports whether (x, y) addresses a pixel of the raster.
func (r *Raster) InBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// Band returns the plane of the given band, row-major with stride Width().
func (r *Raster) Band(band int) []uint8 {
	return r.bands[band]
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	c := &Raster{width: r.width, height: r.height, bands: make([][]uint8, len(r.bands))}
	for i, b := range r.bands {
		c.bands[i] = append([]uint8(nil), b...)
	}
	return c
}

// SameShape returns a zero-filled raster with the same dimensions and band count.
func (r *Raster) SameShape() *Raster {
	return New(r.width, r.height, len(r.bands))
}

// Reshape changes the dimensions of the raster. When the dimensions differ the
// planes are reallocated zero-filled; otherwise the contents are kept.
func (r *Raster) Reshape(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	*r = *New(width, height, len(r.bands))
}

// CopyBand copies one band of src into the same band of r.
// Both rasters must have identical dimensions.
func (r *Raster) CopyBand(src *Raster, band int) {
	copy(r.bands[band], src.bands[band])
}

// Equal reports whether two rasters have the same shape and identical pixels.
func (r *Raster) Equal(o *Raster) bool {
	if r.width != o.width || r.height != o.height || len(r.bands) != len(o.bands) {
		return false
	}
	for i := range r.bands {
		a, b := r.bands[i], o.bands[i]
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// Reorder permutes the bands so that new band i is old band perm[i].
func (r *Raster) Reorder(perm []int) error {
	if len(perm) != len(r.bands) {
		return fmt.Errorf("permutation of %d bands applied to a %d-band raster", len(perm), len(r.bands))
	}
	seen := make([]bool, len(perm))
	for _, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return fmt.Errorf("invalid band permutation %v", perm)
		}
		seen[p] = true
	}
	bands := make([][]uint8, len(r.bands))
	for i, p := range perm {
		bands[i] = r.bands[p]
	}
	r.bands = bands
	return nil
}

// String returns the size in the "W*H*B" form used by catalog listings.
func (r *Raster) String() string {
	return fmt.Sprintf("%d*%d*%d", r.width, r.height, len(r.bands))
}
