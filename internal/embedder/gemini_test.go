package embedder

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

type fakeModelClient struct {
	resp      *genai.EmbedContentResponse
	err       error
	gotModel  string
	gotText   string
	gotConfig *genai.EmbedContentConfig
}

func (f *fakeModelClient) EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.gotModel = model
	f.gotConfig = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotText = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func TestGemini_Embed(t *testing.T) {
	fake := &fakeModelClient{
		resp: &genai.EmbedContentResponse{
			Embeddings: []*genai.ContentEmbedding{{Values: []float32{0.4, 0.5, 0.6}}},
		},
	}

	g := NewGeminiWithClient(fake, "")
	emb, err := g.Embed(context.Background(), "banana")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if len(emb) != 3 || emb[0] != 0.4 {
		t.Errorf("unexpected embedding: %v", emb)
	}
	if fake.gotModel != DefaultGeminiModel {
		t.Errorf("expected model %q, got %q", DefaultGeminiModel, fake.gotModel)
	}
	if fake.gotText != "banana" {
		t.Errorf("expected text %q, got %q", "banana", fake.gotText)
	}
	if fake.gotConfig == nil || fake.gotConfig.TaskType != "SEMANTIC_SIMILARITY" {
		t.Errorf("expected SEMANTIC_SIMILARITY task type, got %+v", fake.gotConfig)
	}
}

func TestGemini_Errors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeModelClient
	}{
		{"client error", &fakeModelClient{err: errors.New("quota exceeded")}},
		{"nil response", &fakeModelClient{}},
		{"no embeddings", &fakeModelClient{resp: &genai.EmbedContentResponse{}}},
		{"empty values", &fakeModelClient{resp: &genai.EmbedContentResponse{
			Embeddings: []*genai.ContentEmbedding{{Values: nil}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGeminiWithClient(tt.fake, "text-embedding-004")
			if _, err := g.Embed(context.Background(), "banana"); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}
