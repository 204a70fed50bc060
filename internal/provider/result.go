package provider

import (
	"fmt"

	"github.com/MereWhiplash/wordspace/internal/types"
)

// Error is a failed embedding call for one word. It covers transport,
// authentication and malformed-response failures alike.
type Error struct {
	Word string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("embedding provider failed for %q: %v", e.Word, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result is either an available vector or an unavailable one with the
// reason it could not be produced.
type Result struct {
	vector types.Vector
	err    error
}

// Available wraps a successfully produced vector
func Available(v types.Vector) Result {
	return Result{vector: v}
}

// Unavailable wraps a failure
func Unavailable(err error) Result {
	if err == nil {
		err = fmt.Errorf("vector unavailable")
	}
	return Result{err: err}
}

// Vector returns the vector and true, or nil and false when unavailable
func (r Result) Vector() (types.Vector, bool) {
	if r.err != nil || r.vector == nil {
		return nil, false
	}
	return r.vector, true
}

// OK reports whether a vector is available
func (r Result) OK() bool {
	_, ok := r.Vector()
	return ok
}

// Err returns the failure, or nil when a vector is available
func (r Result) Err() error {
	if r.err == nil && r.vector == nil {
		return fmt.Errorf("vector unavailable")
	}
	return r.err
}
