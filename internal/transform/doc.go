// Package transform implements the catalog of raster transformations and the
// dispatcher that runs them by name.
//
// # Catalog
//
// Every algorithm is registered in a static table with the parameter keys it
// requires and the buffer that receives its result:
//
//   - Pointwise: addLuminosity, negative, sepia, hueFilter, reverseHue,
//     hueSelector, rainbow
//   - Histogram: equalize
//   - Convolution: blur, gradientImageSobel
//   - Geometric: scale, flip, rotate, wave, sphere, twist, mozaic
//   - Dithering: halftoning
//
// # Dispatch
//
// Apply validates the algorithm name and parameters, runs the algorithm and
// returns a Result naming the buffer that holds the transformed pixels.
// ApplySequence does the same for every frame of an animated sequence,
// handling band reordering and preserving frame delays.
//
// Parameters are strings. Failures wrap one of ErrUnknownAlgorithm,
// ErrMissingParameter, ErrInvalidParameterFormat or ErrInvalidParameterValue
// and can be inspected with errors.Is or errors.As on *ParamError.
//
// The package holds no mutable state; concurrent calls are safe as long as
// they do not share rasters.
package transform
