// Package projection reduces embedding vectors to three dimensions with
// principal component analysis.
package projection

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/MereWhiplash/wordspace/internal/types"
)

// Dims is the number of output dimensions
const Dims = 3

// Singular values below this fraction of the largest are treated as zero
const rankTol = 1e-10

var (
	ErrEmptyBatch        = errors.New("no vectors to project")
	ErrDimensionMismatch = errors.New("vectors differ in dimension")
)

// PCA projects vectors onto their first three principal components,
// returning one coordinate triple per input in the same order.
//
// Each component is oriented so that its largest-magnitude loading is
// positive. Components that do not exist (fewer than three points or
// dimensions, or a degenerate batch) are zero.
func PCA(vectors []types.Vector) ([]types.Coordinates, error) {
	n := len(vectors)
	if n == 0 {
		return nil, ErrEmptyBatch
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: empty vector at 0", ErrDimensionMismatch)
	}

	data := mat.NewDense(n, dim, nil)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d components, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
		data.SetRow(i, v)
	}

	// Centre each column
	col := make([]float64, n)
	for j := 0; j < dim; j++ {
		mat.Col(col, j, data)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			data.Set(i, j, col[i]-mean)
		}
	}

	out := make([]types.Coordinates, n)
	if n == 1 {
		return out, nil
	}

	var svd mat.SVD
	if ok := svd.Factorize(data, mat.SVDThin); !ok {
		return nil, fmt.Errorf("svd failed to converge")
	}
	values := svd.Values(nil)
	if len(values) == 0 || values[0] == 0 {
		return out, nil
	}

	var v mat.Dense
	svd.VTo(&v)

	comps := 0
	for comps < Dims && comps < len(values) && values[comps] > rankTol*values[0] {
		comps++
	}

	loading := make([]float64, dim)
	for c := 0; c < comps; c++ {
		mat.Col(loading, c, &v)
		sign := orientation(loading)

		axis := v.ColView(c)
		for i := 0; i < n; i++ {
			score := sign * mat.Dot(data.RowView(i), axis)
			if math.IsNaN(score) || math.IsInf(score, 0) {
				return nil, fmt.Errorf("non-finite projection for vector %d", i)
			}
			out[i][c] = score
		}
	}

	return out, nil
}

// orientation returns the sign that makes the largest-magnitude entry positive
func orientation(loading []float64) float64 {
	idx := 0
	for i, x := range loading {
		if math.Abs(x) > math.Abs(loading[idx]) {
			idx = i
		}
	}
	if loading[idx] < 0 {
		return -1
	}
	return 1
}
