package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ironsheep/image-fx-mcp/internal/raster"
)

// gifPalette is the 216-color web-safe palette plus one fully transparent
// entry so transparent pixels survive a round trip.
var gifPalette = func() color.Palette {
	p := make(color.Palette, 0, len(palette.WebSafe)+1)
	p = append(p, palette.WebSafe...)
	return append(p, color.Transparent)
}()

// decodeGIF decodes every frame of a GIF into an RGBA raster, compositing each
// one onto the logical screen and honouring the frame disposal methods.
func decodeGIF(r io.Reader) (raster.Sequence, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return raster.Sequence{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(g.Image) == 0 {
		return raster.Sequence{}, fmt.Errorf("%w: gif has no frames", ErrDecode)
	}

	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		screen = image.Rect(0, 0, g.Image[0].Bounds().Max.X, g.Image[0].Bounds().Max.Y)
	}
	canvas := image.NewRGBA(screen)

	seq := raster.Sequence{LoopCount: g.LoopCount, Frames: make([]raster.Frame, 0, len(g.Image))}
	for i, frame := range g.Image {
		bounds := frame.Bounds()
		var previous *image.RGBA
		if disposal(g, i) == gif.DisposalPrevious {
			previous = image.NewRGBA(screen)
			copy(previous.Pix, canvas.Pix)
		}

		draw.Draw(canvas, bounds, frame, bounds.Min, draw.Over)
		seq.Frames = append(seq.Frames, raster.Frame{Raster: raster.FromImageBands(canvas, 4), Delay: delay(g, i)})

		switch disposal(g, i) {
		case gif.DisposalBackground:
			draw.Draw(canvas, bounds, image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return seq, nil
}

func disposal(g *gif.GIF, i int) byte {
	if i < len(g.Disposal) {
		return g.Disposal[i]
	}
	return gif.DisposalNone
}

func delay(g *gif.GIF, i int) int {
	if i < len(g.Delay) {
		return g.Delay[i]
	}
	return 0
}

// encodeGIF writes every frame, quantised to gifPalette with Floyd-Steinberg
// dithering. Each frame covers the whole screen and is disposed to background
// so transparent areas do not show the previous frame.
func encodeGIF(seq raster.Sequence) ([]byte, error) {
	first := seq.First()
	g := &gif.GIF{
		LoopCount: seq.LoopCount,
		Config: image.Config{
			ColorModel: gifPalette,
			Width:      first.Width(),
			Height:     first.Height(),
		},
	}
	for _, fr := range seq.Frames {
		g.Image = append(g.Image, toPaletted(fr.Raster.ToImage()))
		g.Delay = append(g.Delay, fr.Delay)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func toPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	pm := image.NewPaletted(b, gifPalette)
	draw.FloydSteinberg.Draw(pm, b, img, b.Min)
	return pm
}
