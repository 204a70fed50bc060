package cluster_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MereWhiplash/wordspace/internal/cluster"
	"github.com/MereWhiplash/wordspace/internal/types"
)

// three well-separated blobs in 4 dimensions
func blobs() []types.Vector {
	return []types.Vector{
		{0, 0, 0, 0},
		{10, 10, 0, 0},
		{0.1, 0, 0.1, 0},
		{0, 0, 10, 10},
		{10.2, 9.9, 0, 0},
		{0, 0.2, 0, 0.1},
		{0, 0, 9.8, 10.1},
	}
}

func TestAssign_SeparatesBlobs(t *testing.T) {
	labels, err := cluster.New().Assign(blobs())
	require.NoError(t, err)
	require.Len(t, labels, 7)

	// First-appearance numbering makes the labels fully predictable
	assert.Equal(t, []int{0, 1, 0, 2, 1, 0, 2}, labels)
}

func TestAssign_LabelsInRange(t *testing.T) {
	vectors := []types.Vector{
		{0.1, 0.9, 0.3},
		{0.7, 0.2, 0.5},
		{0.4, 0.4, 0.4},
		{0.9, 0.1, 0.8},
		{0.2, 0.6, 0.1},
	}

	labels, err := cluster.New().Assign(vectors)
	require.NoError(t, err)
	require.Len(t, labels, len(vectors))
	for i, l := range labels {
		assert.GreaterOrEqual(t, l, 0, "label %d", i)
		assert.Less(t, l, cluster.DefaultK, "label %d", i)
	}
	assert.Equal(t, 0, labels[0])
}

func TestAssign_ExactlyK(t *testing.T) {
	vectors := []types.Vector{{1, 0}, {0, 1}, {5, 5}}

	labels, err := cluster.New().Assign(vectors)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, labels)
}

func TestAssign_IdenticalPoints(t *testing.T) {
	vectors := []types.Vector{{1, 1}, {1, 1}, {1, 1}, {1, 1}}

	labels, err := cluster.New().Assign(vectors)
	require.NoError(t, err)
	require.Len(t, labels, 4)
	for _, l := range labels {
		assert.Less(t, l, cluster.DefaultK)
	}
}

func TestAssign_Deterministic(t *testing.T) {
	km := cluster.New()

	first, err := km.Assign(blobs())
	require.NoError(t, err)
	second, err := km.Assign(blobs())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssign_DoesNotModifyInput(t *testing.T) {
	vectors := blobs()
	before := make([]types.Vector, len(vectors))
	for i, v := range vectors {
		before[i] = v.Clone()
	}

	_, err := cluster.New().Assign(vectors)
	require.NoError(t, err)
	assert.Equal(t, before, vectors)
}

func TestAssign_TooFew(t *testing.T) {
	_, err := cluster.New().Assign([]types.Vector{{1}, {2}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cluster.ErrTooFewVectors))
}

func TestAssign_DimensionMismatch(t *testing.T) {
	_, err := cluster.New().Assign([]types.Vector{{1, 2}, {3, 4}, {5}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cluster.ErrDimensionMismatch))
}

func TestAssign_CustomK(t *testing.T) {
	km := cluster.New()
	km.K = 2

	labels, err := km.Assign([]types.Vector{{0}, {0.1}, {9}, {9.2}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, labels)
}
