package transform

import (
	"strconv"
	"testing"

	"github.com/ironsheep/image-fx-mcp/internal/raster"
)

func TestFlip_TwiceIdentity(t *testing.T) {
	for _, axis := range []string{"H", "V"} {
		for _, dims := range [][2]int{{5, 4}, {4, 5}, {1, 1}, {6, 6}} {
			in := patterned(dims[0], dims[1], 4)
			orig := in.Clone()
			for i := 0; i < 2; i++ {
				if _, err := Apply(in, nil, "flip", Params{"axis": axis}); err != nil {
					t.Fatalf("Apply failed: %v", err)
				}
			}
			if !in.Equal(orig) {
				t.Errorf("flip %s twice on %dx%d is not the identity", axis, dims[0], dims[1])
			}
		}
	}
}

func TestFlip(t *testing.T) {
	tests := []struct {
		axis string
		want []uint8
	}{
		{"H", []uint8{4, 5, 6, 1, 2, 3}},
		{"V", []uint8{3, 2, 1, 6, 5, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.axis, func(t *testing.T) {
			in := grayRaster(t, 3, 2, 1, 2, 3, 4, 5, 6)
			if _, err := Apply(in, nil, "flip", Params{"axis": tt.axis}); err != nil {
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

func TestScale_Dimensions(t *testing.T) {
	tests := []struct{ w, h int }{{1, 1}, {10, 3}, {3, 10}, {7, 7}, {20, 15}}
	in := patterned(7, 5, 3)
	for _, tt := range tests {
		res, err := Apply(in, nil, "scale", Params{"width": strconv.Itoa(tt.w), "height": strconv.Itoa(tt.h)})
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if res.Raster.Width() != tt.w || res.Raster.Height() != tt.h {
			t.Errorf("scale: got %dx%d, want %dx%d", res.Raster.Width(), res.Raster.Height(), tt.w, tt.h)
		}
	}
}

func TestScale_NearestNeighbor(t *testing.T) {
	in := grayRaster(t, 2, 2, 1, 2, 3, 4)
	res, err := Apply(in, nil, "scale", Params{"width": "4", "height": "4"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := []uint8{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}
	for i, v := range res.Raster.Band(0) {
		if v != want[i] {
			t.Errorf("value[%d]: got %d, want %d", i, v, want[i])
		}
	}
}

func TestRotate_ZeroIdentity(t *testing.T) {
	for _, bands := range []int{1, 3, 4} {
		in := patterned(6, 5, bands)
		res, err := Apply(in, nil, "rotate", Params{"angle": "0"})
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if !res.InOutput() {
			t.Error("rotate should write the output buffer")
		}
		if !res.Raster.Equal(in) {
			t.Errorf("%d bands: rotate by 0 is not the identity", bands)
		}
	}
}

func TestRotate_HolesUntouched(t *testing.T) {
	in := patterned(11, 11, 1)
	out := raster.New(11, 11, 1)
	for i := range out.Band(0) {
		out.Band(0)[i] = 9
	}
	if _, err := Apply(in, out, "rotate", Params{"angle": "45"}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := out.At(0, 0, 0); got != 9 {
		t.Errorf("corner: got %d, want untouched 9", got)
	}
	if got, want := out.At(5, 5, 0), in.At(5, 5, 0); got != want {
		t.Errorf("center: got %d, want %d", got, want)
	}
}

func TestTwist_ZeroAngleIdentity(t *testing.T) {
	in := patterned(7, 4, 3)
	res, err := Apply(in, nil, "twist", Params{"maxAngle": "0"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !res.Raster.Equal(in) {
		t.Error("twist with maxAngle 0 is not the identity")
	}
}

func TestTwist_SinglePixel(t *testing.T) {
	in := grayRaster(t, 1, 1, 42)
	res, err := Apply(in, nil, "twist", Params{"maxAngle": "90"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := res.Raster.At(0, 0, 0); got != 42 {
		t.Errorf("pixel: got %d, want 42", got)
	}
}

func TestWave_ZeroAmplitudeIdentity(t *testing.T) {
	for _, kind := range []string{"C", "R", "T"} {
		for _, axis := range []string{"H", "V"} {
			in := patterned(6, 6, 3)
			res, err := Apply(in, nil, "wave", Params{
				"waveAxis": axis, "waveOffset": "3", "amplitude": "0", "waveLength": "5", "waveType": kind,
			})
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if !res.Raster.Equal(in) {
				t.Errorf("wave %s/%s with amplitude 0 is not the identity", axis, kind)
			}
		}
	}
}

func TestWave_Square(t *testing.T) {
	in := grayRaster(t, 4, 2,
		1, 2, 3, 4,
		5, 6, 7, 8)
	res, err := Apply(in, nil, "wave", Params{
		"waveAxis": "V", "waveOffset": "0", "amplitude": "1", "waveLength": "4", "waveType": "R",
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	// Row 0 moves left, row 1 moves right; vacated pixels stay zero.
	want := []uint8{
		2, 3, 4, 0,
		0, 5, 6, 7,
	}
	for i, v := range res.Raster.Band(0) {
		if v != want[i] {
			t.Errorf("value[%d]: got %d, want %d", i, v, want[i])
		}
	}
}

func TestWaveShape(t *testing.T) {
	tests := []struct {
		kind rune
		pos  float64
		want float64
	}{
		{'C', 1, 1},
		{'C', 3, -1},
		{'R', 0.5, 1},
		{'R', 2.5, -1},
		{'T', 1, 1},
		{'T', 0, 0},
	}
	for _, tt := range tests {
		got := waveShape(tt.kind, tt.pos, 2)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("waveShape(%c, %v): got %v, want %v", tt.kind, tt.pos, got, tt.want)
		}
	}
}

func TestSphere_DiscLeavesCorners(t *testing.T) {
	in := raster.New(9, 9, 3)
	for b := 0; b < 3; b++ {
		for i := range in.Band(b) {
			in.Band(b)[i] = 200
		}
	}
	res, err := Apply(in, nil, "sphere", Params{"sphereType": "S"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	for _, p := range [][2]int{{0, 0}, {8, 0}, {0, 8}, {8, 8}} {
		if got := res.Raster.At(p[0], p[1], 0); got != 0 {
			t.Errorf("corner (%d,%d): got %d, want 0", p[0], p[1], got)
		}
	}
	if got := res.Raster.At(4, 4, 0); got != 200 {
		t.Errorf("center: got %d, want 200", got)
	}
}

func TestSphere_DegenerateSizes(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {1, 5}, {5, 1}} {
		in := patterned(dims[0], dims[1], 1)
		if _, err := Apply(in, nil, "sphere", Params{"sphereType": "E"}); err != nil {
			t.Errorf("%dx%d: Apply failed: %v", dims[0], dims[1], err)
		}
	}
}

func TestMozaic(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		in   []uint8
		want []uint8
	}{
		{"row", 4, 1, []uint8{1, 2, 3, 4}, []uint8{1, 3, 2, 4}},
		{"odd row", 3, 1, []uint8{1, 2, 3}, []uint8{1, 3, 2}},
		{"square", 2, 2, []uint8{1, 2, 3, 4}, []uint8{1, 2, 3, 4}},
		{"column", 1, 4, []uint8{1, 2, 3, 4}, []uint8{1, 3, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := grayRaster(t, tt.w, tt.h, tt.in...)
			res, err := Apply(in, nil, "mozaic", nil)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			for i, v := range res.Raster.Band(0) {
				if v != tt.want[i] {
					t.Errorf("value[%d]: got %d, want %d", i, v, tt.want[i])
				}
			}
		})
	}
}
