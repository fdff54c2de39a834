package transform

import (
	"sort"

	"github.com/ironsheep/image-fx-mcp/internal/raster"
)

// Location tells which buffer holds the result of Apply.
type Location int

const (
	// InInput means the input raster was transformed in place.
	InInput Location = iota
	// InOutput means the result was written to the output raster.
	InOutput
)

func (l Location) String() string {
	if l == InOutput {
		return "output"
	}
	return "input"
}

// Result is the outcome of Apply: the raster holding the transformed pixels and
// the buffer it lives in.
type Result struct {
	Location Location
	Raster   *raster.Raster
}

// InOutput reports whether the result was written to the output buffer.
func (r Result) InOutput() bool { return r.Location == InOutput }

// Family groups catalog entries by the kind of computation they perform.
type Family string

const (
	FamilyPointwise   Family = "pointwise"
	FamilyHistogram   Family = "histogram"
	FamilyConvolution Family = "convolution"
	FamilyGeometric   Family = "geometric"
	FamilyDithering   Family = "dithering"
)

// Descriptor is the public description of one catalog entry.
type Descriptor struct {
	Name     string   `json:"name"`
	Family   Family   `json:"family"`
	Required []string `json:"required"`
	Location Location `json:"-"`
	Buffer   string   `json:"result_buffer"`
}

// handler binds a descriptor to the function that validates its parameters and
// runs the transformation. run receives a non-nil output raster whenever the
// descriptor's Location is InOutput.
type handler struct {
	name     string
	family   Family
	required []string
	location Location
	run      func(in, out *raster.Raster, a args) error
}

var catalog = []handler{
	{"addLuminosity", FamilyPointwise, []string{"gain"}, InInput, runAddLuminosity},
	{"negative", FamilyPointwise, nil, InInput, runNegative},
	{"sepia", FamilyPointwise, nil, InInput, runSepia},
	{"hueFilter", FamilyPointwise, []string{"hue"}, InInput, runHueFilter},
	{"reverseHue", FamilyPointwise, nil, InInput, runReverseHue},
	{"hueSelector", FamilyPointwise, []string{"min", "max"}, InInput, runHueSelector},
	{"rainbow", FamilyPointwise, []string{"direction"}, InInput, runRainbow},
	{"equalize", FamilyHistogram, []string{"canal"}, InInput, runEqualize},
	{"blur", FamilyConvolution, []string{"size", "type"}, InOutput, runBlur},
	{"gradientImageSobel", FamilyConvolution, nil, InOutput, runSobel},
	{"scale", FamilyGeometric, []string{"width", "height"}, InOutput, runScale},
	{"flip", FamilyGeometric, []string{"axis"}, InInput, runFlip},
	{"rotate", FamilyGeometric, []string{"angle"}, InOutput, runRotate},
	{"wave", FamilyGeometric, []string{"waveAxis", "waveOffset", "amplitude", "waveLength", "waveType"}, InOutput, runWave},
	{"sphere", FamilyGeometric, []string{"sphereType"}, InOutput, runSphere},
	{"twist", FamilyGeometric, []string{"maxAngle"}, InOutput, runTwist},
	{"mozaic", FamilyGeometric, nil, InOutput, runMozaic},
	{"halftoning", FamilyDithering, []string{"spread", "dotSize"}, InInput, runHalftoning},
}

// aliases maps names used by older clients to catalog entries.
var aliases = map[string]string{
	"addLuminosityRGB": "addLuminosity",
}

var byName = func() map[string]*handler {
	m := make(map[string]*handler, len(catalog)+len(aliases))
	for i := range catalog {
		m[catalog[i].name] = &catalog[i]
	}
	for alias, name := range aliases {
		m[alias] = m[name]
	}
	return m
}()

func (h *handler) descriptor() Descriptor {
	return Descriptor{
		Name:     h.name,
		Family:   h.family,
		Required: append([]string{}, h.required...),
		Location: h.location,
		Buffer:   h.location.String(),
	}
}

// Lookup returns the descriptor registered under algorithm.
func Lookup(algorithm string) (Descriptor, error) {
	h, ok := byName[algorithm]
	if !ok {
		return Descriptor{}, &ParamError{Algorithm: algorithm, Kind: ErrUnknownAlgorithm}
	}
	return h.descriptor(), nil
}

// Algorithms lists every catalog entry sorted by name. Aliases are not listed.
func Algorithms() []Descriptor {
	out := make([]Descriptor, 0, len(catalog))
	for i := range catalog {
		out = append(out, catalog[i].descriptor())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Aliases returns a copy of the alternative names accepted by Lookup and
// Apply, mapped to the catalog entry they resolve to.
func Aliases() map[string]string {
	out := make(map[string]string, len(aliases))
	for alias, name := range aliases {
		out[alias] = name
	}
	return out
}

// Apply runs algorithm on input with params.
//
// Algorithms that work in place mutate input; the others write into output,
// reshaping it as needed. A nil output, or one whose band count differs from
// the input's, is replaced by a fresh raster of the input's shape. The returned
// Result names the buffer that holds the transformed pixels.
//
// Errors wrap one of ErrUnknownAlgorithm, ErrMissingParameter,
// ErrInvalidParameterFormat or ErrInvalidParameterValue. After a failure both
// buffers must be treated as indeterminate.
func Apply(input, output *raster.Raster, algorithm string, params Params) (Result, error) {
	h, ok := byName[algorithm]
	if !ok {
		return Result{}, &ParamError{Algorithm: algorithm, Kind: ErrUnknownAlgorithm}
	}
	for _, key := range h.required {
		if _, ok := params[key]; !ok {
			return Result{}, &ParamError{Algorithm: algorithm, Param: key, Kind: ErrMissingParameter}
		}
	}

	if h.location == InOutput && (output == nil || output.Bands() != input.Bands()) {
		output = input.SameShape()
	}
	if err := h.run(input, output, args{algorithm: algorithm, params: params}); err != nil {
		return Result{}, err
	}

	if h.location == InOutput {
		return Result{Location: InOutput, Raster: output}, nil
	}
	return Result{Location: InInput, Raster: input}, nil
}
