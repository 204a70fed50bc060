//go:build !cgo

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/MereWhiplash/wordspace/internal/types"
)

// SQLite is a stub for non-CGO builds
type SQLite struct{}

var errNoCGO = fmt.Errorf("SQLite cache requires CGO (build with CGO_ENABLED=1)")

// NewSQLite returns an error in non-CGO builds
func NewSQLite(ctx context.Context, maxEntries int, ttl time.Duration) (*SQLite, error) {
	return nil, errNoCGO
}

func (s *SQLite) Get(ctx context.Context, word string) (types.Vector, bool, error) {
	return nil, false, errNoCGO
}

func (s *SQLite) Put(ctx context.Context, word string, vec types.Vector) error {
	return errNoCGO
}

func (s *SQLite) Len(ctx context.Context) (int, error) {
	return 0, errNoCGO
}

func (s *SQLite) Close() error {
	return nil
}
