// Package distance defines the pluggable metric the mining core uses to
// compare a shapelet candidate against a subsequence of a time series, plus
// a default Minkowski implementation and a DTW variant.
package distance

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// Functor is a pure, deterministic, stateless metric between two
// equal-length series. Implementations must not retain or mutate the
// slices they're given.
type Functor interface {
	// Name identifies the functor in output, e.g. "Minkowski:2".
	Name() string
	// Distance returns the non-negative distance between s and t. s and t
	// are always the same length.
	Distance(s, t []float64) float64
}

// Minkowski is the default distance functor: the Lᵖ norm of the
// element-wise difference between two series.
type Minkowski struct {
	// P is the Minkowski exponent. P == 2 is Euclidean distance, P == 1 is
	// Manhattan distance. Must be >= 1.
	P float64
}

// Name implements Functor.
func (m Minkowski) Name() string {
	return "Minkowski:" + formatExponent(m.P)
}

// Distance implements Functor using gonum's floats.Distance, which computes
// exactly the Lᵖ norm this functor advertises.
func (m Minkowski) Distance(s, t []float64) float64 {
	return floats.Distance(s, t, m.P)
}

func formatExponent(p float64) string {
	if p == math.Trunc(p) {
		return strconv.Itoa(int(p))
	}
	return strconv.FormatFloat(p, 'g', -1, 64)
}
