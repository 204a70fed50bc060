// Package similarity scores how closely two embedding vectors point in the
// same direction.
package similarity

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/MereWhiplash/wordspace/internal/types"
)

// Cosine returns the cosine similarity of a and b, in [-1, 1].
// ok is false when no score can be computed: an empty input, mismatched
// lengths, a zero-norm vector or a non-finite result.
func Cosine(a, b types.Vector) (float64, bool) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, false
	}

	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0, false
	}

	score := floats.Dot(a, b) / (na * nb)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, false
	}

	// Rounding can push parallel vectors just past the unit bound
	return math.Max(-1, math.Min(1, score)), true
}
