package cache

import (
	"context"

	"github.com/MereWhiplash/wordspace/internal/types"
)

// Cache maps words to previously fetched embedding vectors.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the vector stored for word, if any
	Get(ctx context.Context, word string) (types.Vector, bool, error)
	// Put stores vec for word, replacing any existing entry
	Put(ctx context.Context, word string, vec types.Vector) error
	// Len returns the number of stored entries
	Len(ctx context.Context) (int, error)
	Close() error
}
