package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ironsheep/image-fx-mcp/internal/catalog"
	"github.com/ironsheep/image-fx-mcp/internal/codec"
	"github.com/ironsheep/image-fx-mcp/internal/transform"
)

// JSON-RPC error codes returned by tools/call.
const (
	codeInvalidParams = -32602
	codeToolFailed    = -32000
	codeNotFound      = -32001
)

var (
	errInvalidArguments = errors.New("invalid arguments")
	errUnknownTool      = errors.New("unknown tool")
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_transform").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Failures are mapped by toolError.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		code, message := toolError(err)
		slog.Warn("server: tool failed", "tool", params.Name, "code", code, "error", err)
		return s.errorResponse(req.ID, code, message, err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// toolError maps a tool failure to its JSON-RPC code and message. Bad
// algorithm names or parameters are the caller's fault and never reported as
// execution failures.
func toolError(err error) (int, string) {
	switch {
	case transform.IsParameterError(err), errors.Is(err, errInvalidArguments), errors.Is(err, errUnknownTool):
		return codeInvalidParams, "Invalid params"
	case errors.Is(err, catalog.ErrNotFound):
		return codeNotFound, "Image not found"
	default:
		return codeToolFailed, "Tool execution failed"
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Catalog
	case "image_load":
		return s.handleImageLoad(args)
	case "image_list":
		return s.handleImageList(args)
	case "image_get":
		return s.handleImageGet(args)
	case "image_delete":
		return s.handleImageDelete(args)

	// Transformations
	case "image_algorithms":
		return s.handleImageAlgorithms(args)
	case "image_transform":
		return s.handleImageTransform(args)

	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments into v. Missing arguments are treated
// as an empty object.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(bytes.TrimSpace(args)) == 0 || string(bytes.TrimSpace(args)) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return nil
}

// imageSummary describes one catalog entry in tool results.
type imageSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Size     string `json:"size"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Frames   int    `json:"frames"`
	Hash     string `json:"hash"`
	ImageB64 string `json:"image_base64,omitempty"`
}

func summarize(img *catalog.Image) imageSummary {
	info := img.Info()
	return imageSummary{
		ID:     info.ID,
		Name:   info.Name,
		Type:   info.Type,
		Size:   info.Size,
		Width:  img.Width,
		Height: img.Height,
		Frames: img.Frames,
		Hash:   img.Hash,
	}
}

// === Catalog Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidArguments)
	}
	img, err := s.catalog.LoadFile(a.Path, a.Name)
	if err != nil {
		return nil, err
	}
	slog.Info("server: image loaded", "id", img.ID, "name", img.Name, "size", img.Size())
	return summarize(img), nil
}

type imageListResult struct {
	Images []catalog.Info `json:"images"`
	Count  int            `json:"count"`
}

func (s *Server) handleImageList(args json.RawMessage) (interface{}, error) {
	images := s.catalog.List()
	return imageListResult{Images: images, Count: len(images)}, nil
}

type imageIDArgs struct {
	ID string `json:"id"`
}

func (a imageIDArgs) validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: id is required", errInvalidArguments)
	}
	return nil
}

func (s *Server) handleImageGet(args json.RawMessage) (interface{}, error) {
	var a imageIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	img, err := s.catalog.Get(a.ID)
	if err != nil {
		return nil, err
	}
	out := summarize(img)
	out.ImageB64 = base64.StdEncoding.EncodeToString(img.Data)
	return out, nil
}

func (s *Server) handleImageDelete(args json.RawMessage) (interface{}, error) {
	var a imageIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	if err := s.catalog.Delete(a.ID); err != nil {
		return nil, err
	}
	slog.Info("server: image deleted", "id", a.ID)
	return map[string]string{"deleted": a.ID}, nil
}

// === Transformation Handlers ===

type imageAlgorithmsResult struct {
	Algorithms []transform.Descriptor `json:"algorithms"`
	Aliases    map[string]string      `json:"aliases"`
}

func (s *Server) handleImageAlgorithms(args json.RawMessage) (interface{}, error) {
	return imageAlgorithmsResult{
		Algorithms: transform.Algorithms(),
		Aliases:    transform.Aliases(),
	}, nil
}

// paramValues accepts parameter values written as JSON strings or numbers and
// keeps them in the string form the engine parses.
type paramValues transform.Params

func (p *paramValues) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(paramValues, len(raw))
	for key, value := range raw {
		var str string
		if err := json.Unmarshal(value, &str); err == nil {
			out[key] = str
			continue
		}
		var num json.Number
		if err := json.Unmarshal(value, &num); err != nil {
			return fmt.Errorf("parameter %q must be a string or a number", key)
		}
		out[key] = num.String()
	}
	*p = out
	return nil
}

type imageTransformArgs struct {
	ID         string      `json:"id"`
	Path       string      `json:"path"`
	Algorithm  string      `json:"algorithm"`
	Params     paramValues `json:"params"`
	Format     string      `json:"output_format"`
	OutputPath string      `json:"output_path"`
	SaveName   string      `json:"save_name"`
}

// outputFormat parses a format name ("png", "jpg") or media type
// ("image/png"). An empty string selects the source format.
func outputFormat(name string) (codec.Format, error) {
	if name == "" {
		return "", nil
	}
	var (
		f   codec.Format
		err error
	)
	if strings.Contains(name, "/") {
		f, err = codec.FormatFromMediaType(name)
	} else {
		f, err = codec.ParseFormat(name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: output_format: %v", errInvalidArguments, err)
	}
	if !f.CanEncode() {
		return "", fmt.Errorf("%w: output_format: %s cannot be written", errInvalidArguments, f)
	}
	return f, nil
}

type imageTransformResult struct {
	ID           string `json:"id,omitempty"`
	Algorithm    string `json:"algorithm"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Frames       int    `json:"frames"`
	Format       string `json:"format"`
	MimeType     string `json:"mime_type"`
	Hash         string `json:"hash"`
	ResultBuffer string `json:"result_buffer"`
	OutputPath   string `json:"output_path,omitempty"`
	ImageBase64  string `json:"image_base64,omitempty"`
}

func (s *Server) handleImageTransform(args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	switch {
	case a.ID == "" && a.Path == "":
		return nil, fmt.Errorf("%w: one of id or path is required", errInvalidArguments)
	case a.ID != "" && a.Path != "":
		return nil, fmt.Errorf("%w: id and path are mutually exclusive", errInvalidArguments)
	case strings.TrimSpace(a.Algorithm) == "":
		return nil, fmt.Errorf("%w: algorithm is required", errInvalidArguments)
	}

	outFormat, err := outputFormat(a.Format)
	if err != nil {
		return nil, err
	}
	data, format, err := s.source(a.ID, a.Path)
	if err != nil {
		return nil, err
	}

	out, err := s.processor.ProcessAs(data, format, outFormat, a.Algorithm, transform.Params(a.Params))
	if err != nil {
		return nil, err
	}

	res := imageTransformResult{
		Algorithm:    a.Algorithm,
		Width:        out.Width,
		Height:       out.Height,
		Frames:       out.Frames,
		Format:       string(out.Format),
		MimeType:     out.Format.MediaType(),
		Hash:         out.Hash,
		ResultBuffer: out.Location.String(),
	}

	if a.OutputPath != "" {
		if err := os.WriteFile(a.OutputPath, out.Data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write image: %w", err)
		}
		res.OutputPath = a.OutputPath
	} else {
		res.ImageBase64 = base64.StdEncoding.EncodeToString(out.Data)
	}

	if a.SaveName != "" {
		img, err := s.catalog.Add(a.SaveName, out.Data, out.Format)
		if err != nil {
			return nil, err
		}
		res.ID = img.ID
	}

	slog.Debug("server: transform done",
		"algorithm", a.Algorithm,
		"format", out.Format,
		"frames", out.Frames,
		"bytes", len(out.Data))
	return res, nil
}

// source returns the encoded bytes and format of a catalog entry or file.
func (s *Server) source(id, path string) ([]byte, codec.Format, error) {
	if id != "" {
		img, err := s.catalog.Get(id)
		if err != nil {
			return nil, "", err
		}
		return img.Data, img.Format, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	format, err := codec.FormatFromFilename(path)
	if err != nil {
		format = ""
	}
	return data, format, nil
}
