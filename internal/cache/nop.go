package cache

import (
	"context"

	"github.com/MereWhiplash/wordspace/internal/types"
)

// Nop never stores anything; every lookup goes to the provider
type Nop struct{}

func (Nop) Get(ctx context.Context, word string) (types.Vector, bool, error) {
	return nil, false, nil
}

func (Nop) Put(ctx context.Context, word string, vec types.Vector) error {
	return nil
}

func (Nop) Len(ctx context.Context) (int, error) {
	return 0, nil
}

func (Nop) Close() error {
	return nil
}
