// internal/types/types.go
// Package types contains shared data types that have no CGO dependencies.
// This allows packages like the shim to use Record without pulling in sqlite.
package types

import (
	"errors"
)

// ErrInvalidRequest is returned when a visualization request is malformed
var ErrInvalidRequest = errors.New("invalid request")

// Vector is an embedding produced by a provider for a single word.
// Treat it as immutable once returned.
type Vector []float64

// Coordinates is a point in the 3-D visualization space
type Coordinates [3]float64

// Origin is the sentinel coordinate used for fallback records
var Origin = Coordinates{0, 0, 0}

// Record is one word of a visualization
type Record struct {
	Word        string      `json:"word"`
	Coordinates Coordinates `json:"coordinates"`
	Cluster     int         `json:"cluster"`
	// Similarity to the central word; nil when either vector was unavailable
	Similarity *float64 `json:"similarity,omitempty"`
}

// HasSimilarity reports whether a similarity score was computed
func (r Record) HasSimilarity() bool {
	return r.Similarity != nil
}

// FromFloat32 converts a provider vector to a Vector
func FromFloat32(v []float32) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// Clone returns a copy of v
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}
