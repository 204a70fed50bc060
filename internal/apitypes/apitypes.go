// Package apitypes contains the JSON bodies shared by the HTTP API and its client.
package apitypes

import "github.com/MereWhiplash/wordspace/internal/types"

// VisualizeRequest is the body of POST /v1/visualize and POST /get_embeddings
type VisualizeRequest struct {
	Words       []string `json:"words"`
	CentralWord string   `json:"centralWord"`
}

// VisualizeResponse is the record list, one per kept word
type VisualizeResponse []types.Record

// ErrorResponse is returned on errors
type ErrorResponse struct {
	Error string `json:"error"`
}

// CacheStats reports embedding cache usage
type CacheStats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

// HealthResponse for health check
type HealthResponse struct {
	Status string      `json:"status"`
	Cache  *CacheStats `json:"cache,omitempty"`
	Error  string      `json:"error,omitempty"`
}
