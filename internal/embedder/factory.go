// internal/embedder/factory.go
package embedder

import (
	"context"
	"fmt"
	"time"
)

// Config holds embedder configuration
type Config struct {
	Provider string // "openai", "ollama", "gemini"
	BaseURL  string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// New creates an Embedder based on config
func New(ctx context.Context, cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key is required")
		}
		return NewOpenAI(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout), nil

	case "ollama":
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:11434"
		}
		if cfg.Model == "" {
			cfg.Model = "nomic-embed-text"
		}
		return NewOllama(cfg.BaseURL, cfg.Model, cfg.Timeout), nil

	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini API key is required")
		}
		return NewGemini(ctx, cfg.APIKey, cfg.Model)

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}
