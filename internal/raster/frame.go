package raster

// Frame is one raster of an animated image together with its display delay
// (in 1/100 s, the GIF unit).
type Frame struct {
	Raster *Raster
	Delay  int
}

// Sequence is an ordered list of frames.
//
// Order is the channel order of every frame's bands as decoded; a nil Order
// means the canonical processing order for the band count. LoopCount follows
// the GIF convention: 0 loops forever, -1 plays once.
type Sequence struct {
	Frames    []Frame
	Order     ChannelOrder
	LoopCount int
}

// Still wraps a single raster as a one-frame sequence in processing order.
func Still(r *Raster) Sequence {
	return Sequence{Frames: []Frame{{Raster: r}}}
}

// Animated reports whether the sequence holds more than one frame.
func (s Sequence) Animated() bool {
	return len(s.Frames) > 1
}

// First returns the raster of the first frame, or nil for an empty sequence.
func (s Sequence) First() *Raster {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[0].Raster
}
