// Package server implements the MCP (Model Context Protocol) server for the
// image transformation tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs go to stderr through log/slog so they never mix with responses.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Catalog:
//   - image_load: Register an image file and get its id and W*H*B size
//   - image_list: List registered images
//   - image_get: Fetch the stored bytes of an image as base64
//   - image_delete: Remove an image
//
// Transformations:
//   - image_algorithms: List algorithms with their required parameters
//   - image_transform: Apply an algorithm to a registered image or a file
//
// Algorithm parameters are passed as an object whose values may be strings
// or numbers:
//
//	{"name": "image_transform", "arguments": {
//	  "id": "6f1c...", "algorithm": "wave",
//	  "params": {"waveAxis": "H", "waveOffset": 0, "amplitude": 8, "waveLength": 40, "waveType": "C"}
//	}}
//
// Animated GIFs are transformed frame by frame and keep their delays.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors:
//   - -32602: unknown tool or algorithm, missing or malformed arguments and parameters
//   - -32001: no image with the given id
//   - -32000: anything else (I/O, decode and encode failures)
//
// The data field carries the Go error string.
package server
