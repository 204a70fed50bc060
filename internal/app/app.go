// Package app wires configuration into a ready visualization service.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/MereWhiplash/wordspace/internal/apitypes"
	"github.com/MereWhiplash/wordspace/internal/cache"
	"github.com/MereWhiplash/wordspace/internal/config"
	"github.com/MereWhiplash/wordspace/internal/embedder"
	"github.com/MereWhiplash/wordspace/internal/provider"
	"github.com/MereWhiplash/wordspace/internal/service"
)

// App holds the long-lived components of a running process
type App struct {
	Service  *service.Service
	Resolver *cache.Resolver
	Cache    cache.Cache
}

// New builds the embedder, provider adapter, cache and service from cfg
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	emb, err := embedder.New(ctx, embedder.Config{
		Provider: cfg.Embedder.Provider,
		BaseURL:  cfg.Embedder.BaseURL,
		Model:    cfg.Embedder.Model,
		APIKey:   cfg.Embedder.APIKey,
		Timeout:  cfg.Embedder.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	adapter := provider.New(emb,
		provider.WithTimeout(cfg.Embedder.Timeout),
		provider.WithRateLimit(cfg.Embedder.RateLimit, cfg.Embedder.Burst),
		provider.WithLogger(logger.With("component", "provider")),
	)

	store, err := cache.New(ctx, cache.Config{
		Driver:     cfg.Cache.Driver,
		MaxEntries: cfg.Cache.MaxEntries,
		TTL:        cfg.Cache.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	resolver := cache.NewResolver(store, adapter, logger.With("component", "cache"))

	svc := service.New(resolver,
		service.WithConcurrency(cfg.Pipeline.Concurrency),
		service.WithMaxWords(cfg.Pipeline.MaxWords),
		service.WithLogger(logger.With("component", "pipeline")),
	)

	logger.Info("initialized",
		"provider", cfg.Embedder.Provider,
		"cache", cfg.Cache.Driver,
		"concurrency", cfg.Pipeline.Concurrency,
	)

	return &App{Service: svc, Resolver: resolver, Cache: store}, nil
}

// CacheStats reports the resolver counters and the cache size
func (a *App) CacheStats(ctx context.Context) apitypes.CacheStats {
	stats := a.Resolver.Stats()
	return apitypes.CacheStats{
		Hits:    stats.Hits,
		Misses:  stats.Misses,
		Entries: a.Resolver.Len(ctx),
	}
}

// Ping checks that the cache backend answers
func (a *App) Ping(ctx context.Context) error {
	if _, err := a.Cache.Len(ctx); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}

// Close releases the cache
func (a *App) Close() error {
	return a.Cache.Close()
}
