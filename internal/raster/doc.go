// Package raster holds the in-memory pixel buffers shared by every transformation.
//
// A Raster is a planar, multi-band, 8-bit image: one []uint8 plane per band, all
// planes sharing the same width and height. Band counts of 1 (gray), 3 (RGB) and
// 4 (RGBA) are produced by FromImage; the transform package only ever addresses
// bands by index, so the meaning of each band is carried separately by a
// ChannelOrder.
//
// # Coordinate System
//
// Pixels are addressed as (x, y, band) with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. At and Set do not check
// bounds; algorithms that sample outside the image must test InBounds first.
//
// # Ownership
//
// A Raster is owned by the call that created it. Nothing in this package
// shares planes between rasters: Clone, SameShape and Reshape always allocate.
//
// # Animated Images
//
// A Sequence is an ordered list of Frames (a Raster plus a display delay) with
// the ChannelOrder its rasters were decoded in and a loop count.
package raster
