// Package normalize provides the z-score normalization collaborator the
// mining core consults through the keepNormalOnly option; the core itself
// has no opinion on how candidates are normalized.
package normalize

import "gonum.org/v1/gonum/stat"

// ZScore returns a new slice holding (x - mean) / stddev for every value in
// series, using the population mean and standard deviation of series
// itself. If series has zero variance, a zero-filled slice is returned
// rather than dividing by zero.
func ZScore(series []float64) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}

	mean, sigma := stat.PopMeanStdDev(series, nil)
	if sigma == 0 {
		return out
	}

	for i, v := range series {
		out[i] = (v - mean) / sigma
	}
	return out
}
