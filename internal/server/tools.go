package server

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ironsheep/image-fx-mcp/internal/transform"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// algorithmNames lists every name image_transform accepts, aliases included.
func algorithmNames() []string {
	var names []string
	for _, d := range transform.Algorithms() {
		names = append(names, d.Name)
	}
	for alias := range transform.Aliases() {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// algorithmHelp renders "name(key, key)" for each catalog entry.
func algorithmHelp() string {
	var parts []string
	for _, d := range transform.Algorithms() {
		parts = append(parts, fmt.Sprintf("%s(%s)", d.Name, strings.Join(d.Required, ", ")))
	}
	return strings.Join(parts, "; ")
}

func idSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id": map[string]interface{}{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"id"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Catalog
		{
			Name:        "image_load",
			Description: "Load a PNG, JPEG, GIF, BMP, TIFF or WebP file into the image catalog and return its id, media type and W*H*B size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Optional display name. Defaults to the file name",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_list",
			Description: "List the images in the catalog with their id, name, media type and W*H*B size.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_get",
			Description: "Return a catalog image as base64-encoded bytes in its stored format.",
			InputSchema: idSchema("Catalog image id"),
		},
		{
			Name:        "image_delete",
			Description: "Remove an image from the catalog.",
			InputSchema: idSchema("Catalog image id"),
		},

		// Transformations
		{
			Name:        "image_algorithms",
			Description: "List the available transformations with their required parameters and the buffer that holds the result.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name: "image_transform",
			Description: "Apply a transformation to a catalog image or a file. Animated GIFs are processed frame by frame " +
				"and keep their delays. The result is returned as base64 unless output_path is given. Algorithms: " + algorithmHelp() + ".",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Catalog image id. Mutually exclusive with path",
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to an image file. Mutually exclusive with id",
					},
					"algorithm": map[string]interface{}{
						"type":        "string",
						"enum":        algorithmNames(),
						"description": "Transformation to apply",
					},
					"params": map[string]interface{}{
						"type":        "object",
						"description": "Algorithm parameters, e.g. {\"axis\": \"H\"} or {\"width\": 320, \"height\": 200}. Unknown keys are ignored",
						"additionalProperties": map[string]interface{}{
							"type": []string{"string", "number"},
						},
					},
					"output_format": map[string]interface{}{
						"type":        "string",
						"description": "Optional output format (png, jpeg, gif, bmp, tiff) or media type. Defaults to the source format, or png for WebP sources",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write the result to instead of returning it inline",
					},
					"save_name": map[string]interface{}{
						"type":        "string",
						"description": "Optional name under which the result is added to the catalog",
					},
				},
				"required": []string{"algorithm"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
