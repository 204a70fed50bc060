// Package provider adapts an embedder into a call that never fails
// outward: every failure becomes an unavailable Result.
package provider

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/MereWhiplash/wordspace/internal/embedder"
	"github.com/MereWhiplash/wordspace/internal/types"
)

// Adapter wraps an Embedder. It performs no retries; the cache not storing
// failures is what makes the next lookup try again.
type Adapter struct {
	emb     embedder.Embedder
	timeout time.Duration
	limiter *rate.Limiter
	logger  *log.Logger
}

// Option configures an Adapter
type Option func(*Adapter)

// WithTimeout bounds each provider call
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		a.timeout = d
	}
}

// WithRateLimit throttles provider calls to rps with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(a *Adapter) {
		if rps <= 0 {
			a.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger used for failed calls
func WithLogger(l *log.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

// New creates a new Adapter
func New(emb embedder.Embedder, opts ...Option) *Adapter {
	a := &Adapter{
		emb:    emb,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fetch issues exactly one embedding request for word
func (a *Adapter) Fetch(ctx context.Context, word string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = a.fail(word, fmt.Errorf("embedder panicked: %v", r))
		}
	}()

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return a.fail(word, fmt.Errorf("rate limiter: %w", err))
		}
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	raw, err := a.emb.Embed(ctx, word)
	if err != nil {
		return a.fail(word, err)
	}

	vec, err := toVector(raw)
	if err != nil {
		return a.fail(word, err)
	}

	return Available(vec)
}

func (a *Adapter) fail(word string, err error) Result {
	perr := &Error{Word: word, Err: err}
	a.logger.Warn("embedding unavailable", "word", word, "err", err)
	return Unavailable(perr)
}

func toVector(raw []float32) (types.Vector, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("malformed response: empty vector")
	}
	vec := types.FromFloat32(raw)
	for i, x := range vec {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("malformed response: non-finite component at %d", i)
		}
	}
	return vec, nil
}
