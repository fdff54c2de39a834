package transform

import (
	"testing"

	"github.com/ironsheep/image-fx-mcp/internal/raster"
)

func TestEqualize_Gray(t *testing.T) {
	in := grayRaster(t, 2, 2, 0, 0, 1, 1)
	if _, err := Apply(in, nil, "equalize", Params{"canal": "S"}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := []uint8{127, 127, 255, 255}
	for i, v := range in.Band(0) {
		if v != want[i] {
			t.Errorf("value[%d]: got %d, want %d", i, v, want[i])
		}
	}
}

func TestEqualize_GrayIdempotent(t *testing.T) {
	in := grayRaster(t, 4, 3, 3, 3, 7, 9, 9, 9, 40, 41, 41, 100, 100, 200)
	if _, err := Apply(in, nil, "equalize", Params{"canal": "V"}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	once := in.Clone()
	if _, err := Apply(in, nil, "equalize", Params{"canal": "V"}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !in.Equal(once) {
		t.Errorf("second equalize changed the image: %v -> %v", once.Band(0), in.Band(0))
	}
	if got := once.Band(0)[11]; got != 255 {
		t.Errorf("brightest value: got %d, want 255", got)
	}
}

func TestEqualize_Value(t *testing.T) {
	in := rgbRaster(t, 2, 1, [3]uint8{255, 0, 0}, [3]uint8{128, 0, 0})
	if _, err := Apply(in, nil, "equalize", Params{"canal": "V"}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	// Value 128 sits at half of the cumulative distribution.
	assertPixel(t, in, 0, 0, [3]uint8{255, 0, 0})
	assertPixel(t, in, 1, 0, [3]uint8{127, 0, 0})
}

func TestBlur_MeanSizeZeroIdentity(t *testing.T) {
	for _, bands := range []int{1, 3, 4} {
		in := patterned(5, 4, bands)
		res, err := Apply(in, nil, "blur", Params{"size": "0", "type": "M"})
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if !res.InOutput() {
			t.Error("blur should write the output buffer")
		}
		if !res.Raster.Equal(in) {
			t.Errorf("%d bands: blur M size 0 is not the identity", bands)
		}
	}
}

func TestBlur_MeanBorderAware(t *testing.T) {
	in := grayRaster(t, 3, 1, 0, 30, 60)
	res, err := Apply(in, nil, "blur", Params{"size": "1", "type": "M"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := []uint8{15, 30, 45}
	for i, v := range res.Raster.Band(0) {
		if v != want[i] {
			t.Errorf("value[%d]: got %d, want %d", i, v, want[i])
		}
	}
}

func TestBlur_GaussianKeepsAlphaAndShape(t *testing.T) {
	in := patterned(8, 6, 4)
	res, err := Apply(in, nil, "blur", Params{"size": "2", "type": "G"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	out := res.Raster
	if out.Width() != 8 || out.Height() != 6 || out.Bands() != 4 {
		t.Fatalf("shape: got %s, want 8*6*4", out)
	}
	for i, v := range out.Band(3) {
		if v != in.Band(3)[i] {
			t.Fatalf("alpha[%d]: got %d, want %d", i, v, in.Band(3)[i])
		}
	}
}

func TestSobel(t *testing.T) {
	// A vertical edge between the second and third column.
	in := grayRaster(t, 3, 3,
		0, 0, 255,
		0, 0, 255,
		0, 0, 255)
	out := raster.New(3, 3, 1)
	for i := range out.Band(0) {
		out.Band(0)[i] = 7
	}
	orig := in.Clone()

	res, err := Apply(in, out, "gradientImageSobel", nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.Raster != out {
		t.Fatal("result should be the supplied output")
	}
	if got := out.At(1, 1, 0); got != 255 {
		t.Errorf("center: got %d, want 255", got)
	}
	for _, p := range [][2]int{{0, 0}, {2, 0}, {0, 2}, {2, 2}, {1, 0}} {
		if got := out.At(p[0], p[1], 0); got != 7 {
			t.Errorf("border (%d,%d): got %d, want untouched 7", p[0], p[1], got)
		}
	}
	if !in.Equal(orig) {
		t.Error("Sobel modified its input")
	}
}

func TestSobel_ColorInputUntouched(t *testing.T) {
	in := patterned(5, 5, 3)
	orig := in.Clone()
	if _, err := Apply(in, nil, "gradientImageSobel", nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !in.Equal(orig) {
		t.Error("Sobel modified its input")
	}
}

func TestHalftoning(t *testing.T) {
	tests := []struct {
		name   string
		spread string
		size   string
		in     []uint8
		want   []uint8
	}{
		{"gray only", "1", "0", []uint8{0, 5, 200, 0}, []uint8{0, 5, 200, 0}},
		{"zero spread", "0", "2", []uint8{0, 5, 200, 0}, []uint8{0, 255, 255, 0}},
		{"peak kernel", "1", "1", []uint8{0, 5, 200, 255}, []uint8{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := grayRaster(t, 2, 2, tt.in...)
			if _, err := Apply(in, nil, "halftoning", Params{"spread": tt.spread, "dotSize": tt.size}); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			for i, v := range in.Band(0) {
				if v != tt.want[i] {
					t.Errorf("value[%d]: got %d, want %d", i, v, tt.want[i])
				}
			}
		})
	}
}

func TestHalftoning_ColorIsBinary(t *testing.T) {
	in := patterned(9, 9, 3)
	if _, err := Apply(in, nil, "halftoning", Params{"spread": "1.2", "dotSize": "3"}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			r, g, b := in.At(x, y, 0), in.At(x, y, 1), in.At(x, y, 2)
			if r != g || g != b || (r != 0 && r != 255) {
				t.Fatalf("pixel (%d,%d): got %d,%d,%d, want black or white", x, y, r, g, b)
			}
		}
	}
}

func TestGaussKernel(t *testing.T) {
	k := gaussKernel(3, 255, 1)
	if k[1][1] != 255 {
		t.Errorf("center: got %d, want 255", k[1][1])
	}
	// 255 * e^-0.5 = 154.66
	if k[0][1] != 155 || k[1][0] != 155 {
		t.Errorf("edge: got %d/%d, want 155", k[0][1], k[1][0])
	}
	// 255 * e^-1 = 93.8
	if k[0][0] != 94 {
		t.Errorf("corner: got %d, want 94", k[0][0])
	}
}
