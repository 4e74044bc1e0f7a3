package shapelets

import (
	"errors"

	"github.com/hallett-io/shapelets-go/distance"
	"github.com/hallett-io/shapelets-go/internal/subsequence"
)

// seriesDistance holds, for one series usable against a given candidate,
// the series' index in the dataset, its label, and its best subsequence
// distance to the candidate.
type seriesDistance struct {
	index int
	label bool
	dist  float64
}

// candidateDistances computes, for every series long enough to contain the
// candidate, the minimum distance between the candidate and any
// subsequence of that series. Series shorter than the candidate are
// silently omitted, per spec.md §4.6's failure semantics.
//
// Distance is evaluated by brute-force sliding window under cfg.Distance
// (the plain Lᵖ functor spec.md §4.3 defines), unless cfg.UseMASS opts into
// the FFT-accelerated z-normalized Euclidean reduction
// (internal/subsequence.BestEuclideanMatch) for the default Minkowski{P: 2}
// functor.
func candidateDistances(cfg Config, labels []bool, series [][]float64, candidate []float64) ([]seriesDistance, error) {
	useMASS := cfg.UseMASS && isDefaultEuclidean(cfg.Distance)

	out := make([]seriesDistance, 0, len(series))
	for i, s := range series {
		if len(s) < len(candidate) {
			continue
		}

		var d float64
		var err error
		if useMASS {
			d, err = subsequence.BestEuclideanMatch(s, candidate)
		} else {
			d, err = subsequence.BruteForce(cfg.Distance, s, candidate, cfg.KeepNormalOnly)
		}
		if errors.Is(err, subsequence.ErrZeroVarianceQuery) {
			// A constant candidate has no z-normalized shape to match
			// against under MASS; the whole candidate is unusable under
			// this functor, not just this one series.
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		out = append(out, seriesDistance{index: i, label: labels[i], dist: d})
	}
	return out, nil
}

func isDefaultEuclidean(f distance.Functor) bool {
	if f == nil {
		return true
	}
	m, ok := f.(distance.Minkowski)
	return ok && m.P == 2
}
