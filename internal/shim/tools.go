// internal/shim/tools.go
package shim

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MereWhiplash/wordspace/internal/mcptypes"
	"github.com/MereWhiplash/wordspace/internal/types"
)

// APIClient is the part of the remote API client the shim needs
type APIClient interface {
	Visualize(ctx context.Context, words []string, centralWord string) ([]types.Record, error)
}

// Handler holds shim dependencies
type Handler struct {
	client APIClient
}

// NewHandler creates a new shim handler
func NewHandler(c APIClient) *Handler {
	return &Handler{client: c}
}

// Register adds the wordspace tools to the MCP server
func Register(server *mcp.Server, h *Handler) {
	mcp.AddTool(server, mcptypes.VisualizeTool, h.Visualize)
}

func (h *Handler) Visualize(ctx context.Context, req *mcp.CallToolRequest, input mcptypes.VisualizeInput) (*mcp.CallToolResult, mcptypes.VisualizeOutput, error) {
	records, err := h.client.Visualize(ctx, input.Words, input.CentralWord)
	if err != nil {
		if errors.Is(err, types.ErrInvalidRequest) {
			return mcptypes.ErrorResult(err.Error()), mcptypes.NewVisualizeOutput(nil), nil
		}
		return mcptypes.ErrorResult(fmt.Sprintf("failed to visualize: %v", err)), mcptypes.NewVisualizeOutput(nil), nil
	}

	return mcptypes.RecordsResult(records), mcptypes.NewVisualizeOutput(records), nil
}
