package subsequence

import (
	"math"

	"github.com/hallett-io/shapelets-go/distance"
	"github.com/hallett-io/shapelets-go/normalize"
)

// BruteForce returns the minimum distance, under functor, between
// candidate and any subsequence of series. Unlike BestEuclideanMatch it
// makes no assumption about functor and runs in O(len(series)*len(candidate))
// time. If normalizeWindows is set, both candidate and each window are
// z-score normalized before functor.Distance is applied, matching the
// keepNormalOnly option's effect on comparison.
//
// Returns ErrQueryLongerThanSeries if candidate is longer than series.
func BruteForce(functor distance.Functor, series, candidate []float64, normalizeWindows bool) (float64, error) {
	m := len(candidate)
	n := len(series)
	if m == 0 || n == 0 {
		return 0, nil
	}
	if m > n {
		return 0, ErrQueryLongerThanSeries
	}

	query := candidate
	if normalizeWindows {
		query = normalize.ZScore(candidate)
	}

	best := math.Inf(1)
	for offset := 0; offset+m <= n; offset++ {
		window := series[offset : offset+m]
		if normalizeWindows {
			window = normalize.ZScore(window)
		}
		if d := functor.Distance(query, window); d < best {
			best = d
		}
	}
	return best, nil
}
