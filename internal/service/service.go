// internal/service/service.go
package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/MereWhiplash/wordspace/internal/cluster"
	"github.com/MereWhiplash/wordspace/internal/projection"
	"github.com/MereWhiplash/wordspace/internal/provider"
	"github.com/MereWhiplash/wordspace/internal/similarity"
	"github.com/MereWhiplash/wordspace/internal/types"
)

const (
	// MinResolved is the default smallest batch that is clustered and
	// projected. It follows the cluster count, so WithClusters moves it.
	MinResolved = cluster.DefaultK

	// MinWords is the smallest word list a request may carry
	MinWords = 3

	DefaultConcurrency = 8
	DefaultMaxWords    = 200
)

// Resolver turns a word into a vector, consulting the cache first
type Resolver interface {
	LookupOrFetch(ctx context.Context, word string) provider.Result
}

// Service contains the business logic for building visualizations
type Service struct {
	resolver    Resolver
	kmeans      *cluster.KMeans
	concurrency int
	maxWords    int
	logger      *log.Logger
}

// Option configures a Service
type Option func(*Service)

// WithConcurrency bounds the number of words resolved at once
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithMaxWords caps the request size accepted by Compute. Zero disables the cap.
func WithMaxWords(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxWords = n
		}
	}
}

// WithClusters changes the cluster count, and with it the smallest batch
// that is not handled by the fallback.
func WithClusters(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.kmeans.K = k
		}
	}
}

// minResolved is the smallest batch the clustering can split
func (s *Service) minResolved() int {
	return s.kmeans.K
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a new Service
func New(resolver Resolver, opts ...Option) *Service {
	s := &Service{
		resolver:    resolver,
		kmeans:      cluster.New(),
		concurrency: DefaultConcurrency,
		maxWords:    DefaultMaxWords,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks a request before any embedding work is done
func (s *Service) Validate(words []string, centralWord string) error {
	if centralWord == "" || len(words) < MinWords {
		return fmt.Errorf("%w: a central word and at least %d other words are required", types.ErrInvalidRequest, MinWords)
	}
	if s.maxWords > 0 && len(words) > s.maxWords {
		return fmt.Errorf("%w: at most %d words are allowed, got %d", types.ErrInvalidRequest, s.maxWords, len(words))
	}
	return nil
}

// Compute validates the request and builds its visualization
func (s *Service) Compute(ctx context.Context, words []string, centralWord string) ([]types.Record, error) {
	if err := s.Validate(words, centralWord); err != nil {
		return nil, err
	}
	return s.Build(ctx, words, centralWord), nil
}

// Build resolves every word and returns its visualization records.
//
// Words whose vector is unavailable are left out. When fewer words remain
// than there are clusters (MinResolved unless WithClusters changed it),
// every input word gets a record at the origin in
// cluster 0 with no similarity instead.
func (s *Service) Build(ctx context.Context, words []string, centralWord string) []types.Record {
	resolved := s.resolveAll(ctx, append([]string{centralWord}, words...))

	central, centralOK := resolved[centralWord].Vector()

	var (
		kept []string
		vecs []types.Vector
		dim  int
	)
	for _, w := range words {
		vec, ok := resolved[w].Vector()
		if !ok {
			continue
		}
		if dim == 0 {
			dim = len(vec)
		}
		if len(vec) != dim {
			s.logger.Warn("discarding vector with unexpected dimension", "word", w, "got", len(vec), "want", dim)
			continue
		}
		kept = append(kept, w)
		vecs = append(vecs, vec)
	}

	if len(vecs) < s.minResolved() {
		s.logger.Info("too few vectors, using fallback", "resolved", len(vecs), "words", len(words))
		return fallback(words)
	}

	labels, err := s.kmeans.Assign(vecs)
	if err != nil {
		s.logger.Error("clustering failed, using fallback", "err", err)
		return fallback(words)
	}

	coords, err := projection.PCA(vecs)
	if err != nil {
		s.logger.Error("projection failed, using fallback", "err", err)
		return fallback(words)
	}

	records := make([]types.Record, len(kept))
	for i, w := range kept {
		records[i] = types.Record{
			Word:        w,
			Coordinates: coords[i],
			Cluster:     labels[i],
		}
		if !centralOK {
			continue
		}
		if score, ok := similarity.Cosine(vecs[i], central); ok {
			records[i].Similarity = &score
		}
	}

	return records
}

// resolveAll looks up each distinct word once, in parallel
func (s *Service) resolveAll(ctx context.Context, words []string) map[string]provider.Result {
	var distinct []string
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			distinct = append(distinct, w)
		}
	}

	results := make([]provider.Result, len(distinct))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, w := range distinct {
		g.Go(func() error {
			results[i] = s.resolver.LookupOrFetch(ctx, w)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]provider.Result, len(distinct))
	for i, w := range distinct {
		out[w] = results[i]
	}
	return out
}

func fallback(words []string) []types.Record {
	records := make([]types.Record, len(words))
	for i, w := range words {
		records[i] = types.Record{
			Word:        w,
			Coordinates: types.Origin,
			Cluster:     0,
		}
	}
	return records
}
