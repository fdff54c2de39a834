package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-fx-mcp/internal/raster"
)

// Errors returned by Decode and Encode. They describe I/O and format problems
// and are never parameter errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecode            = errors.New("failed to decode image")
	ErrEncode            = errors.New("failed to encode image")
)

// Format identifies an image container format.
type Format string

// Supported formats. WebP can be decoded but not encoded.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WebP Format = "webp"
)

var mediaTypes = map[Format]string{
	PNG:  "image/png",
	JPEG: "image/jpeg",
	GIF:  "image/gif",
	BMP:  "image/bmp",
	TIFF: "image/tiff",
	WebP: "image/webp",
}

// DefaultJPEGQuality is used when EncodeOptions.JPEGQuality is out of range.
const DefaultJPEGQuality = 95

// ParseFormat returns the format for a name such as "png" or "jpg".
// Matching is case-insensitive.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(name, "."))); f {
	case "jpg":
		return JPEG, nil
	case "tif":
		return TIFF, nil
	case PNG, JPEG, GIF, BMP, TIFF, WebP:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromFilename returns the format implied by the file extension.
func FormatFromFilename(name string) (Format, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, name)
	}
	return ParseFormat(ext)
}

// FormatFromMediaType returns the format for a MIME type such as "image/png".
func FormatFromMediaType(mediaType string) (Format, error) {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	for f, t := range mediaTypes {
		if t == mt {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: media type %q", ErrUnsupportedFormat, mediaType)
}

// Detect sniffs the format from the encoded data.
func Detect(data []byte) (Format, error) {
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return ParseFormat(name)
}

// MediaType returns the MIME type of the format.
func (f Format) MediaType() string {
	if t, ok := mediaTypes[f]; ok {
		return t
	}
	return "application/octet-stream"
}

// CanEncode reports whether Encode supports the format.
func (f Format) CanEncode() bool {
	_, ok := imagingFormats[f]
	return ok
}

// imagingFormats maps the formats written through disintegration/imaging.
// GIF is listed so that CanEncode reports it, but Encode writes GIFs itself to
// keep every frame.
var imagingFormats = map[Format]imaging.Format{
	PNG:  imaging.PNG,
	JPEG: imaging.JPEG,
	GIF:  imaging.GIF,
	BMP:  imaging.BMP,
	TIFF: imaging.TIFF,
}

// EncodeOptions tunes Encode.
type EncodeOptions struct {
	// JPEGQuality is the JPEG quality (1-100). Zero selects DefaultJPEGQuality.
	JPEGQuality int
}

// Decode decodes data in format f into a sequence in canonical channel order.
//
// Still images yield a single frame with delay 0. GIFs yield every frame
// composited onto the logical screen, with its delay and the loop count.
// JPEG EXIF orientation is applied.
func Decode(data []byte, f Format) (raster.Sequence, error) {
	if _, ok := mediaTypes[f]; !ok {
		return raster.Sequence{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if f == GIF {
		return decodeGIF(bytes.NewReader(data))
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return raster.Sequence{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return raster.Still(raster.FromImage(img)), nil
}

// Encode encodes seq in format f.
//
// GIF output keeps every frame with its delay and the loop count; other
// formats encode the first frame only. seq must be in canonical channel order
// or carry an Order that can be mapped to it.
func Encode(seq raster.Sequence, f Format, opts EncodeOptions) ([]byte, error) {
	imgFormat, ok := imagingFormats[f]
	if !ok {
		return nil, fmt.Errorf("%w: cannot encode %q", ErrUnsupportedFormat, f)
	}
	if len(seq.Frames) == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrEncode)
	}
	seq, err := canonical(seq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if f == GIF {
		return encodeGIF(seq)
	}

	quality := opts.JPEGQuality
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, seq.First().ToImage(), imgFormat, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// canonical returns seq with its frames in processing channel order.
func canonical(seq raster.Sequence) (raster.Sequence, error) {
	if seq.Order == nil {
		return seq, nil
	}
	out := raster.Sequence{LoopCount: seq.LoopCount, Frames: make([]raster.Frame, len(seq.Frames))}
	for i, fr := range seq.Frames {
		perm, err := seq.Order.PermutationTo(raster.Canonical(fr.Raster.Bands()))
		if err != nil {
			return raster.Sequence{}, err
		}
		r := fr.Raster.Clone()
		if err := r.Reorder(perm); err != nil {
			return raster.Sequence{}, err
		}
		out.Frames[i] = raster.Frame{Raster: r, Delay: fr.Delay}
	}
	return out, nil
}
