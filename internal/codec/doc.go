// Package codec converts between encoded image files and raster sequences.
//
// Still formats (PNG, JPEG, BMP, TIFF, WebP) are decoded with
// disintegration/imaging into a single-frame sequence. GIFs are decoded frame by
// frame so animations keep their per-frame delays and loop count, and are
// re-encoded as animations with Floyd-Steinberg dithering.
//
// Decoded rasters are in canonical channel order: gray (1 band), RGB (3 bands)
// or RGBA (4 bands), chosen from the source color model.
package codec
