// internal/embedder/embedder.go
package embedder

import "context"

// Embedder generates a vector embedding for a single piece of text
type Embedder interface {
	// Embed issues one request to the underlying provider
	Embed(ctx context.Context, text string) ([]float32, error)
}
