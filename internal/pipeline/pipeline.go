// Package pipeline runs one transformation request end to end: decode the
// encoded image, dispatch the algorithm over its frames, and encode the result.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ironsheep/image-fx-mcp/internal/codec"
	"github.com/ironsheep/image-fx-mcp/internal/hasher"
	"github.com/ironsheep/image-fx-mcp/internal/raster"
	"github.com/ironsheep/image-fx-mcp/internal/transform"
)

// Processor decodes, transforms and re-encodes images. The zero value is ready
// to use.
type Processor struct {
	// JPEGQuality is passed to the encoder for JPEG output.
	JPEGQuality int
}

// Output is the encoded result of one Process call.
type Output struct {
	Data     []byte
	Format   codec.Format
	Width    int
	Height   int
	Frames   int
	Location transform.Location
	Hash     string
}

// Process decodes data, applies algorithm with params and encodes the result
// in the source format, or PNG when the source format cannot be written.
func (p *Processor) Process(data []byte, format codec.Format, algorithm string, params transform.Params) (*Output, error) {
	return p.ProcessAs(data, format, "", algorithm, params)
}

// ProcessAs is Process with an explicit output format. An empty format is
// detected from the data; an empty outFormat selects the source format.
//
// GIFs and any input with more than one frame go through
// transform.ApplySequence; stills through transform.Apply.
//
// Parameter errors are returned unwrapped from the transform package so they
// can be told apart from codec errors.
func (p *Processor) ProcessAs(data []byte, format, outFormat codec.Format, algorithm string, params transform.Params) (*Output, error) {
	if outFormat != "" && !outFormat.CanEncode() {
		return nil, fmt.Errorf("%w: cannot encode %q", codec.ErrUnsupportedFormat, outFormat)
	}
	desc, err := transform.Lookup(algorithm)
	if err != nil {
		return nil, err
	}

	if format == "" {
		if format, err = codec.Detect(data); err != nil {
			return nil, err
		}
	}
	seq, err := codec.Decode(data, format)
	if err != nil {
		return nil, err
	}

	slog.Debug("pipeline: applying algorithm",
		"algorithm", desc.Name,
		"format", format,
		"frames", len(seq.Frames),
		"size", seq.First().String())

	var result raster.Sequence
	if seq.Animated() || format == codec.GIF {
		result, err = transform.ApplySequence(seq, algorithm, params)
	} else {
		var res transform.Result
		res, err = transform.Apply(seq.First(), nil, algorithm, params)
		result = raster.Still(res.Raster)
		result.LoopCount = seq.LoopCount
	}
	if err != nil {
		return nil, err
	}

	if outFormat == "" {
		outFormat = format
		if !outFormat.CanEncode() {
			outFormat = codec.PNG
		}
	}
	encoded, err := codec.Encode(result, outFormat, codec.EncodeOptions{JPEGQuality: p.JPEGQuality})
	if err != nil {
		return nil, err
	}

	first := result.First()
	return &Output{
		Data:     encoded,
		Format:   outFormat,
		Width:    first.Width(),
		Height:   first.Height(),
		Frames:   len(result.Frames),
		Location: desc.Location,
		Hash:     hasher.ContentHash(encoded),
	}, nil
}

// ProcessFile reads inPath, processes it and writes the result to outPath.
// The input format is taken from the input file name, falling back to sniffing
// the content. The output format follows the extension of outPath when it
// names a writable format, and the input format otherwise.
func (p *Processor) ProcessFile(inPath, outPath, algorithm string, params transform.Params) (*Output, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	format, err := codec.FormatFromFilename(inPath)
	if err != nil {
		format = ""
	}

	outFormat, err := codec.FormatFromFilename(outPath)
	if err != nil || !outFormat.CanEncode() {
		outFormat = ""
	}

	out, err := p.ProcessAs(data, format, outFormat, algorithm, params)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(outPath, out.Data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}
	slog.Info("pipeline: wrote image",
		"path", outPath,
		"format", out.Format,
		"bytes", len(out.Data))
	return out, nil
}
