package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MereWhiplash/wordspace/internal/mcptypes"
	"github.com/MereWhiplash/wordspace/internal/service"
	"github.com/MereWhiplash/wordspace/internal/types"
)

// Handler holds dependencies for tool handlers
type Handler struct {
	svc *service.Service
}

// NewHandler creates a new tool handler
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register adds the wordspace tools to the MCP server
func Register(server *mcp.Server, svc *service.Service) {
	h := NewHandler(svc)
	mcp.AddTool(server, mcptypes.VisualizeTool, h.Visualize)
}

func (h *Handler) Visualize(ctx context.Context, req *mcp.CallToolRequest, input mcptypes.VisualizeInput) (*mcp.CallToolResult, mcptypes.VisualizeOutput, error) {
	records, err := h.svc.Compute(ctx, input.Words, input.CentralWord)
	if err != nil {
		if errors.Is(err, types.ErrInvalidRequest) {
			return mcptypes.ErrorResult(err.Error()), mcptypes.NewVisualizeOutput(nil), nil
		}
		return mcptypes.ErrorResult(fmt.Sprintf("failed to visualize: %v", err)), mcptypes.NewVisualizeOutput(nil), nil
	}

	return mcptypes.RecordsResult(records), mcptypes.NewVisualizeOutput(records), nil
}
