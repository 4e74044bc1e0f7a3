package distance

import (
	"math"
	"testing"
)

func TestDTW_IdenticalSeriesIsZero(t *testing.T) {
	t.Parallel()

	d := DTW{}
	got := d.Distance([]float64{1, 2, 3, 4}, []float64{1, 2, 3, 4})
	if got != 0 {
		t.Errorf("Distance(identical) = %v, want 0", got)
	}
}

func TestDTW_ToleratesTimeShift(t *testing.T) {
	t.Parallel()

	// A series and a delayed copy of itself: DTW should score this much
	// better than Euclidean distance would on the same misaligned pair.
	s := []float64{0, 0, 1, 2, 3, 2, 1, 0, 0}
	shifted := []float64{0, 0, 0, 1, 2, 3, 2, 1, 0}

	dtw := DTW{}.Distance(s, shifted)
	euclidean := Minkowski{P: 2}.Distance(s, shifted)

	if dtw >= euclidean {
		t.Errorf("DTW distance %v should be smaller than Euclidean %v for a shifted series", dtw, euclidean)
	}
}

func TestDTW_WindowConstrainsWarping(t *testing.T) {
	t.Parallel()

	const n = 40
	const delay = 6
	s := make([]float64, n)
	delayed := make([]float64, n)
	for i := range s {
		s[i] = float64(i % 5)
	}
	for i := range delayed {
		if i < delay {
			delayed[i] = s[0]
			continue
		}
		delayed[i] = s[i-delay]
	}

	narrow := DTW{Window: 1}.Distance(s, delayed)
	wide := DTW{Window: 0}.Distance(s, delayed)

	if narrow < wide {
		t.Errorf("narrow-window distance %v should be >= unconstrained distance %v, since a window of 1 cannot bridge a delay of %d", narrow, wide, delay)
	}
}

func TestDTW_EmptyInputIsZero(t *testing.T) {
	t.Parallel()

	d := DTW{}
	if got := d.Distance(nil, []float64{1, 2}); got != 0 {
		t.Errorf("Distance(nil, _) = %v, want 0", got)
	}
}

func TestDTW_Name(t *testing.T) {
	t.Parallel()

	if got := (DTW{}).Name(); got != "DTW" {
		t.Errorf("Name() = %q, want DTW", got)
	}
}

func TestDTW_NeverNegative(t *testing.T) {
	t.Parallel()

	got := DTW{}.Distance([]float64{5, 1, 9, 2}, []float64{1, 5, 2, 9})
	if math.IsNaN(got) || got < 0 {
		t.Errorf("Distance = %v, want finite non-negative", got)
	}
}
