package raster

import (
	"fmt"
	"strings"
)

// Channel identifies the meaning of one band.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Alpha
	Gray
)

// String returns the single-letter name of the channel.
func (c Channel) String() string {
	switch c {
	case Red:
		return "R"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Alpha:
		return "A"
	case Gray:
		return "Y"
	default:
		return "?"
	}
}

// ChannelOrder lists the channel stored in each band, band 0 first.
type ChannelOrder []Channel

// Well-known channel orders. OrderRGBA, OrderRGB and OrderGray are the
// processing orders expected by the transform catalog.
var (
	OrderRGBA = ChannelOrder{Red, Green, Blue, Alpha}
	OrderARGB = ChannelOrder{Alpha, Red, Green, Blue}
	OrderBGRA = ChannelOrder{Blue, Green, Red, Alpha}
	OrderRGB  = ChannelOrder{Red, Green, Blue}
	OrderBGR  = ChannelOrder{Blue, Green, Red}
	OrderGray = ChannelOrder{Gray}
)

// Canonical returns the processing order for a raster with the given band count,
// or nil when no such order exists.
func Canonical(bands int) ChannelOrder {
	switch bands {
	case 1:
		return OrderGray
	case 3:
		return OrderRGB
	case 4:
		return OrderRGBA
	default:
		return nil
	}
}

// String returns the order as letters, e.g. "ARGB".
func (o ChannelOrder) String() string {
	var b strings.Builder
	for _, c := range o {
		b.WriteString(c.String())
	}
	return b.String()
}

// PermutationTo returns the permutation that rearranges bands stored in order o
// into target, suitable for Raster.Reorder: band i of the result is band perm[i]
// of the source.
func (o ChannelOrder) PermutationTo(target ChannelOrder) ([]int, error) {
	if len(o) != len(target) {
		return nil, fmt.Errorf("channel order %s cannot be mapped to %s", o, target)
	}
	index := make(map[Channel]int, len(o))
	for i, c := range o {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("channel order %s repeats %s", o, c)
		}
		index[c] = i
	}
	perm := make([]int, len(target))
	for i, c := range target {
		src, ok := index[c]
		if !ok {
			return nil, fmt.Errorf("channel order %s has no %s channel", o, c)
		}
		perm[i] = src
	}
	return perm, nil
}
