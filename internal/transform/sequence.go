package transform

import (
	"fmt"

	"github.com/ironsheep/image-fx-mcp/internal/raster"
)

// ApplySequence runs algorithm with the same params on every frame of seq.
//
// Each frame is copied, reordered from seq.Order into the processing order for
// its band count, transformed, and reordered back. Delays, frame order, the
// channel order and the loop count are preserved. The first failing frame
// aborts the whole sequence and no partial result is returned. seq itself is
// never modified.
func ApplySequence(seq raster.Sequence, algorithm string, params Params) (raster.Sequence, error) {
	if _, err := Lookup(algorithm); err != nil {
		return raster.Sequence{}, err
	}

	out := raster.Sequence{
		Frames:    make([]raster.Frame, 0, len(seq.Frames)),
		Order:     seq.Order,
		LoopCount: seq.LoopCount,
	}
	for i, f := range seq.Frames {
		r, err := applyFrame(f.Raster, seq.Order, algorithm, params)
		if err != nil {
			return raster.Sequence{}, fmt.Errorf("frame %d: %w", i, err)
		}
		out.Frames = append(out.Frames, raster.Frame{Raster: r, Delay: f.Delay})
	}
	return out, nil
}

func applyFrame(src *raster.Raster, order raster.ChannelOrder, algorithm string, params Params) (*raster.Raster, error) {
	in := src.Clone()

	var toProc, fromProc []int
	if order != nil {
		target := raster.Canonical(in.Bands())
		if target == nil {
			return nil, fmt.Errorf("no processing order for %d bands", in.Bands())
		}
		var err error
		if toProc, err = order.PermutationTo(target); err != nil {
			return nil, err
		}
		if fromProc, err = target.PermutationTo(order); err != nil {
			return nil, err
		}
		if err := in.Reorder(toProc); err != nil {
			return nil, err
		}
	}

	res, err := Apply(in, nil, algorithm, params)
	if err != nil {
		return nil, err
	}
	if fromProc != nil {
		if err := res.Raster.Reorder(fromProc); err != nil {
			return nil, err
		}
	}
	return res.Raster, nil
}
