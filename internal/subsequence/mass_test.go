package subsequence

import (
	"math"
	"math/rand/v2"
	"testing"
)

func generateSyntheticSeries(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*10 - 5
	}
	return out
}

func TestEuclideanProfile_SelfMatchIsZero(t *testing.T) {
	t.Parallel()

	series := generateSyntheticSeries(200, 1)
	query := append([]float64(nil), series[40:70]...)

	profile, err := EuclideanProfile(series, query)
	if err != nil {
		t.Fatalf("EuclideanProfile: %v", err)
	}
	if profile[40] > 1e-6 {
		t.Errorf("distance at the query's own offset = %v, want ~0", profile[40])
	}
}

func TestEuclideanProfile_ScaleAndShiftInvariant(t *testing.T) {
	t.Parallel()

	series := generateSyntheticSeries(100, 2)
	query := make([]float64, 20)
	copy(query, series[10:30])
	for i := range query {
		query[i] = query[i]*3 + 7 // affine transform: same shape, different scale/offset
	}

	profile, err := EuclideanProfile(series, query)
	if err != nil {
		t.Fatalf("EuclideanProfile: %v", err)
	}
	if profile[10] > 1e-6 {
		t.Errorf("z-normalized distance should ignore the affine transform, got %v", profile[10])
	}
}

func TestEuclideanProfile_ErrorCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		series    []float64
		candidate []float64
		wantErr   error
	}{
		{"query longer than series", []float64{1, 2, 3}, []float64{1, 2, 3, 4}, ErrQueryLongerThanSeries},
		{"zero variance query", []float64{1, 2, 3, 4, 5}, []float64{2, 2, 2}, ErrZeroVarianceQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EuclideanProfile(tt.series, tt.candidate)
			if err == nil {
				t.Fatalf("EuclideanProfile: got nil error, want %v", tt.wantErr)
			}
		})
	}
}

func TestBestEuclideanMatch_MatchesBruteForceMinimum(t *testing.T) {
	t.Parallel()

	series := generateSyntheticSeries(60, 3)
	query := generateSyntheticSeries(10, 4)

	got, err := BestEuclideanMatch(series, query)
	if err != nil {
		t.Fatalf("BestEuclideanMatch: %v", err)
	}

	profile, err := EuclideanProfile(series, query)
	if err != nil {
		t.Fatalf("EuclideanProfile: %v", err)
	}
	want := profile[0]
	for _, d := range profile[1:] {
		if d < want {
			want = d
		}
	}

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("BestEuclideanMatch = %v, want %v", got, want)
	}
}

func TestSlidingMeanStddev_MatchesDirectComputation(t *testing.T) {
	t.Parallel()

	data := []float64{1, 3, 5, 7, 9, 11, 13}
	window := 3

	means, sigmas := slidingMeanStddev(data, window)
	for i := range means {
		var sum, sumSq float64
		for j := i; j < i+window; j++ {
			sum += data[j]
			sumSq += data[j] * data[j]
		}
		wantMean := sum / float64(window)
		wantVar := sumSq/float64(window) - wantMean*wantMean
		wantSigma := math.Sqrt(math.Max(0, wantVar))

		if math.Abs(means[i]-wantMean) > 1e-9 {
			t.Errorf("means[%d] = %v, want %v", i, means[i], wantMean)
		}
		if math.Abs(sigmas[i]-wantSigma) > 1e-9 {
			t.Errorf("sigmas[%d] = %v, want %v", i, sigmas[i], wantSigma)
		}
	}
}
