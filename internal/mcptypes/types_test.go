package mcptypes_test

import (
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MereWhiplash/wordspace/internal/mcptypes"
	"github.com/MereWhiplash/wordspace/internal/types"
)

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(res.Content))
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected *mcp.TextContent, got %T", res.Content[0])
	}
	return tc.Text
}

func TestErrorResult(t *testing.T) {
	res := mcptypes.ErrorResult("boom")
	if !res.IsError {
		t.Error("expected IsError")
	}
	if textOf(t, res) != "boom" {
		t.Errorf("expected text 'boom', got %q", textOf(t, res))
	}
}

func TestRecordsResult(t *testing.T) {
	score := 0.5
	records := []types.Record{
		{Word: "king", Coordinates: types.Coordinates{1, 2, 3}, Cluster: 1, Similarity: &score},
		{Word: "queen", Coordinates: types.Origin},
	}

	res := mcptypes.RecordsResult(records)
	if res.IsError {
		t.Fatal("expected success result")
	}

	var decoded []types.Record
	if err := json.Unmarshal([]byte(textOf(t, res)), &decoded); err != nil {
		t.Fatalf("expected JSON text, got error: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 records, got %d", len(decoded))
	}
	if decoded[0].Similarity == nil || *decoded[0].Similarity != 0.5 {
		t.Errorf("expected similarity 0.5, got %v", decoded[0].Similarity)
	}
	if decoded[1].Similarity != nil {
		t.Errorf("expected no similarity, got %v", *decoded[1].Similarity)
	}
}

func TestNewVisualizeOutput_EmptyIsArray(t *testing.T) {
	data, err := json.Marshal(mcptypes.NewVisualizeOutput(nil))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"records":[]}` {
		t.Errorf("expected an empty records array, got %s", data)
	}
}
