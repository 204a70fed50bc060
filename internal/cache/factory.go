package cache

import (
	"context"
	"fmt"
	"time"
)

// Config holds cache configuration
type Config struct {
	Driver string // "memory", "none", "sqlite"

	// SQLite only; zero disables the bound
	MaxEntries int
	TTL        time.Duration
}

// New creates a Cache implementation based on config
func New(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Driver {
	case "memory", "":
		return NewMemory(), nil

	case "none":
		return Nop{}, nil

	case "sqlite":
		if cfg.MaxEntries < 0 {
			return nil, fmt.Errorf("sqlite max entries must not be negative")
		}
		if cfg.TTL < 0 {
			return nil, fmt.Errorf("sqlite ttl must not be negative")
		}
		return NewSQLite(ctx, cfg.MaxEntries, cfg.TTL)

	default:
		return nil, fmt.Errorf("unknown cache driver: %s", cfg.Driver)
	}
}
