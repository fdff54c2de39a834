package raster

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// BandsFor returns the band count a decoded image maps to: 1 for gray color
// models, 3 for opaque color models and 4 for models carrying alpha. RGBA
// images whose pixels are all opaque map to 3.
func BandsFor(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		if m.(interface{ Opaque() bool }).Opaque() {
			return 3
		}
		return 4
	}
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	}
	return 4
}

// FromImage converts a decoded image into a raster in canonical channel order
// (Gray, RGB or RGBA) with BandsFor(img) bands. Color values are
// non-premultiplied 8-bit.
func FromImage(img image.Image) *Raster {
	return FromImageBands(img, BandsFor(img))
}

// FromImageBands is FromImage with an explicit band count of 1, 3 or 4.
// Gray is taken from the red channel.
func FromImageBands(img image.Image, bands int) *Raster {
	if bands != 1 && bands != 3 {
		bands = 4
	}
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	r := New(w, h, bands)

	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4]
			i := y*w + x
			switch bands {
			case 1:
				r.bands[0][i] = p[0]
			case 3:
				r.bands[0][i], r.bands[1][i], r.bands[2][i] = p[0], p[1], p[2]
			default:
				r.bands[0][i], r.bands[1][i], r.bands[2][i], r.bands[3][i] = p[0], p[1], p[2], p[3]
			}
		}
	}
	return r
}

// ToImage converts a raster in canonical channel order back to an image:
// *image.Gray for one band, *image.NRGBA otherwise (opaque for three bands).
func (r *Raster) ToImage() image.Image {
	rect := image.Rect(0, 0, r.width, r.height)
	if len(r.bands) == 1 {
		g := image.NewGray(rect)
		for y := 0; y < r.height; y++ {
			copy(g.Pix[y*g.Stride:y*g.Stride+r.width], r.bands[0][y*r.width:(y+1)*r.width])
		}
		return g
	}

	dst := image.NewNRGBA(rect)
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			i := y*r.width + x
			o := y*dst.Stride + x*4
			switch len(r.bands) {
			case 2:
				// gray + alpha
				v := r.bands[0][i]
				dst.Pix[o], dst.Pix[o+1], dst.Pix[o+2], dst.Pix[o+3] = v, v, v, r.bands[1][i]
			case 3:
				dst.Pix[o], dst.Pix[o+1], dst.Pix[o+2], dst.Pix[o+3] = r.bands[0][i], r.bands[1][i], r.bands[2][i], 0xff
			default:
				dst.Pix[o], dst.Pix[o+1], dst.Pix[o+2], dst.Pix[o+3] = r.bands[0][i], r.bands[1][i], r.bands[2][i], r.bands[3][i]
			}
		}
	}
	return dst
}
