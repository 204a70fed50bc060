// Package cluster partitions a batch of embedding vectors into a fixed
// number of groups with K-Means.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/MereWhiplash/wordspace/internal/types"
)

// DefaultK is the number of clusters every visualization uses
const DefaultK = 3

var (
	ErrTooFewVectors     = errors.New("too few vectors to cluster")
	ErrDimensionMismatch = errors.New("vectors differ in dimension")
)

// KMeans is Euclidean K-Means with K-Means++ seeding. A fixed Seed makes
// Assign deterministic for a given batch.
type KMeans struct {
	K       int
	NInit   int     // independent seedings; the lowest inertia wins
	MaxIter int     // Lloyd iterations per seeding
	Tol     float64 // relative to the mean per-dimension variance
	Seed    int64
}

// New returns a KMeans with the default settings
func New() *KMeans {
	return &KMeans{
		K:       DefaultK,
		NInit:   10,
		MaxIter: 300,
		Tol:     1e-4,
		Seed:    0,
	}
}

// Assign returns one cluster label in [0, K) per vector, in input order.
// Labels are numbered by first appearance.
func (km *KMeans) Assign(vectors []types.Vector) ([]int, error) {
	k := km.K
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", k)
	}
	if len(vectors) < k {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrTooFewVectors, k, len(vectors))
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: empty vector at 0", ErrDimensionMismatch)
	}
	data := make([][]float64, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d components, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
		data[i] = v
	}

	nInit := km.NInit
	if nInit < 1 {
		nInit = 1
	}
	tol := km.Tol * meanVariance(data)
	rng := rand.New(rand.NewSource(km.Seed))

	var best []int
	bestInertia := math.Inf(1)
	for run := 0; run < nInit; run++ {
		labels, inertia := km.lloyd(data, k, tol, rng)
		if best == nil || inertia < bestInertia {
			best, bestInertia = labels, inertia
		}
	}

	return relabel(best), nil
}

func (km *KMeans) lloyd(data [][]float64, k int, tol float64, rng *rand.Rand) ([]int, float64) {
	centroids := seedPlusPlus(data, k, rng)
	labels := make([]int, len(data))

	maxIter := km.MaxIter
	if maxIter < 1 {
		maxIter = 1
	}
	for iter := 0; iter < maxIter; iter++ {
		assign(data, centroids, labels)
		next := recompute(data, labels, centroids)

		shift := 0.0
		for c := range centroids {
			d := floats.Distance(centroids[c], next[c], 2)
			shift += d * d
		}
		centroids = next
		if shift <= tol {
			break
		}
	}

	inertia := assign(data, centroids, labels)
	return labels, inertia
}

// seedPlusPlus picks k initial centroids, each new one with probability
// proportional to its squared distance from the nearest chosen centroid.
func seedPlusPlus(data [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(data)
	chosen := make([]bool, n)
	centroids := make([][]float64, 0, k)

	first := rng.Intn(n)
	chosen[first] = true
	centroids = append(centroids, clone(data[first]))

	d2 := make([]float64, n)
	for i := range data {
		d2[i] = sqDist(data[i], centroids[0])
	}

	for len(centroids) < k {
		total := floats.Sum(d2)

		pick := -1
		if total > 0 {
			r := rng.Float64() * total
			cum := 0.0
			for i, d := range d2 {
				if d == 0 {
					continue
				}
				cum += d
				pick = i
				if cum > r {
					break
				}
			}
		}
		if pick < 0 {
			// Every point coincides with a centroid
			for i := range chosen {
				if !chosen[i] {
					pick = i
					break
				}
			}
		}

		chosen[pick] = true
		centroids = append(centroids, clone(data[pick]))
		for i := range data {
			if d := sqDist(data[i], data[pick]); d < d2[i] {
				d2[i] = d
			}
		}
	}

	return centroids
}

// assign labels each point with its nearest centroid and returns the inertia
func assign(data, centroids [][]float64, labels []int) float64 {
	inertia := 0.0
	for i, p := range data {
		best, bestD := 0, math.Inf(1)
		for c, centroid := range centroids {
			if d := sqDist(p, centroid); d < bestD {
				best, bestD = c, d
			}
		}
		labels[i] = best
		inertia += bestD
	}
	return inertia
}

// recompute returns the mean of each cluster. A cluster left empty keeps
// its previous centroid.
func recompute(data [][]float64, labels []int, prev [][]float64) [][]float64 {
	dim := len(prev[0])
	sums := make([][]float64, len(prev))
	counts := make([]int, len(prev))
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, p := range data {
		floats.Add(sums[labels[i]], p)
		counts[labels[i]]++
	}
	for c := range sums {
		if counts[c] == 0 {
			copy(sums[c], prev[c])
			continue
		}
		floats.Scale(1/float64(counts[c]), sums[c])
	}
	return sums
}

// relabel renumbers labels in order of first appearance
func relabel(labels []int) []int {
	mapping := make(map[int]int)
	out := make([]int, len(labels))
	for i, l := range labels {
		m, ok := mapping[l]
		if !ok {
			m = len(mapping)
			mapping[l] = m
		}
		out[i] = m
	}
	return out
}

func meanVariance(data [][]float64) float64 {
	dim := len(data[0])
	col := make([]float64, len(data))
	total := 0.0
	for j := 0; j < dim; j++ {
		for i := range data {
			col[i] = data[i][j]
		}
		_, v := stat.PopMeanVariance(col, nil)
		total += v
	}
	return total / float64(dim)
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
