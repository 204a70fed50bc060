// internal/mcptypes/types.go
// Package mcptypes contains shared MCP tool input/output types.
// These are used by both the direct MCP server (tools) and the shim proxy.
package mcptypes

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MereWhiplash/wordspace/internal/types"
)

// VisualizeInput defines the input schema for visualize_words
type VisualizeInput struct {
	Words       []string `json:"words" jsonschema:"Words to place in the 3-D space (at least 3)"`
	CentralWord string   `json:"central_word" jsonschema:"Word every other word is scored against"`
}

// VisualizeOutput defines the output schema for visualize_words
type VisualizeOutput struct {
	Records []types.Record `json:"records"`
}

// NewVisualizeOutput wraps records for the structured result. Records is
// never nil, since the output schema requires an array.
func NewVisualizeOutput(records []types.Record) VisualizeOutput {
	if records == nil {
		records = []types.Record{}
	}
	return VisualizeOutput{Records: records}
}

// TextResult creates a successful MCP result with text content
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// ErrorResult creates an error MCP result
func ErrorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// RecordsResult renders records as indented JSON text
func RecordsResult(records []types.Record) *mcp.CallToolResult {
	result, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return ErrorResult(fmt.Sprintf("failed to format response: %v", err))
	}
	return TextResult(string(result))
}

// Tool definitions (shared between server and shim)
var (
	VisualizeTool = &mcp.Tool{
		Name:        "visualize_words",
		Description: "Embed words, group them into 3 clusters, project them into 3-D and score each against a central word",
	}
)
