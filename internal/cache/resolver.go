package cache

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/MereWhiplash/wordspace/internal/provider"
)

// Fetcher produces a vector for a word on a cache miss
type Fetcher interface {
	Fetch(ctx context.Context, word string) provider.Result
}

// Stats counts cache outcomes since the Resolver was created
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// Resolver answers word lookups from the cache, falling back to the
// fetcher on a miss. Only successful fetches are stored.
type Resolver struct {
	cache   Cache
	fetcher Fetcher
	logger  *log.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewResolver creates a new Resolver
func NewResolver(c Cache, f Fetcher, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		cache:   c,
		fetcher: f,
		logger:  logger,
	}
}

// LookupOrFetch returns the cached vector for word, or fetches and stores it.
// Cache backend errors are logged and treated as a miss or a skipped store.
func (r *Resolver) LookupOrFetch(ctx context.Context, word string) provider.Result {
	vec, ok, err := r.cache.Get(ctx, word)
	if err != nil {
		r.logger.Error("cache read failed", "word", word, "err", err)
	}
	if err == nil && ok {
		r.hits.Add(1)
		return provider.Available(vec)
	}
	r.misses.Add(1)

	res := r.fetcher.Fetch(ctx, word)
	fetched, ok := res.Vector()
	if !ok {
		return res
	}

	if err := r.cache.Put(ctx, word, fetched); err != nil {
		r.logger.Error("cache write failed", "word", word, "err", err)
	}
	return res
}

// Stats returns the hit and miss counters
func (r *Resolver) Stats() Stats {
	return Stats{
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
	}
}

// Len returns the number of cached entries, or 0 when the backend fails
func (r *Resolver) Len(ctx context.Context) int {
	n, err := r.cache.Len(ctx)
	if err != nil {
		r.logger.Error("cache size failed", "err", err)
		return 0
	}
	return n
}
