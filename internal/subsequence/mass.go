// Package subsequence reduces a shapelet candidate's distance to a whole
// series of equal-or-greater length down to a single number: the minimum
// distance between the candidate and any subsequence (sliding window) of
// that series. This is what the mining driver feeds into each contingency
// table's Insert.
//
// EuclideanProfile implements the reduction for the z-normalized Euclidean
// case using Mueen's FFT-accelerated algorithm (MASS), adapted from the
// time-series subsequence search this module's teacher package implements
// in full; BruteForce implements it generically for any distance.Functor.
package subsequence

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

const varianceFloor = 1e-6

// ErrQueryLongerThanSeries is returned when the candidate is longer than the
// series it is being compared against; callers should treat this as "skip
// this series" per the mining driver's silent-skip failure semantics rather
// than as a hard error.
var ErrQueryLongerThanSeries = errors.New("subsequence: candidate longer than series")

// ErrZeroVarianceQuery is returned when the candidate has zero variance, so
// it cannot be z-normalized.
var ErrZeroVarianceQuery = errors.New("subsequence: candidate has zero variance")

// EuclideanProfile computes the z-normalized Euclidean distance between
// candidate and every subsequence of series with the same length, in
// O(n log n) time via FFT cross-correlation, following Mueen's MASS
// algorithm: the dot products between the candidate and every window are
// obtained from one linear convolution, and combined with per-window
// sliding mean/variance to get the z-normalized distance directly, without
// ever re-normalizing each window explicitly.
func EuclideanProfile(series, candidate []float64) ([]float64, error) {
	n := len(series)
	m := len(candidate)

	if m == 0 || n == 0 {
		return nil, errors.New("subsequence: empty series or candidate")
	}
	if m > n {
		return nil, ErrQueryLongerThanSeries
	}

	queryMean, querySigma := stat.PopMeanStdDev(candidate, nil)
	if querySigma < varianceFloor {
		return nil, ErrZeroVarianceQuery
	}

	seriesMeans, seriesSigmas := slidingMeanStddev(series, m)

	reversed := make([]float64, m)
	for i := 0; i < m; i++ {
		reversed[i] = candidate[m-1-i]
	}

	dotProducts, err := convolve(series, reversed)
	if err != nil {
		return nil, err
	}

	distances := make([]float64, n-m+1)
	for i := range distances {
		if seriesSigmas[i] == 0 {
			// A flat window z-normalizes to all zeros (as normalize.ZScore
			// does), so its distance to the unit-variance query is sqrt(m).
			distances[i] = math.Sqrt(float64(m))
			continue
		}

		normalizedDot := (dotProducts[m+i-1] - float64(m)*seriesMeans[i]*queryMean) / (seriesSigmas[i] * querySigma)
		distSquared := 2.0 * (float64(m) - normalizedDot)
		if distSquared < 0 {
			distSquared = 0
		}
		distances[i] = math.Sqrt(distSquared)
	}

	return distances, nil
}

// BestEuclideanMatch returns the minimum z-normalized Euclidean distance
// between candidate and any subsequence of series: the reduction the
// mining driver's distance-to-series step needs.
func BestEuclideanMatch(series, candidate []float64) (float64, error) {
	profile, err := EuclideanProfile(series, candidate)
	if err != nil {
		return 0, err
	}

	best := profile[0]
	for _, d := range profile[1:] {
		if d < best {
			best = d
		}
	}
	return best, nil
}

// convolve performs linear convolution of signal with kernel via
// zero-padded FFT.
func convolve(signal, kernel []float64) ([]float64, error) {
	n, m := len(signal), len(kernel)
	if n == 0 || m == 0 {
		return nil, errors.New("subsequence: empty convolution input")
	}

	convLen := nextPow2(n + m - 1)
	fft := fourier.NewCmplxFFT(convLen)

	a := make([]complex128, convLen)
	b := make([]complex128, convLen)
	for i := 0; i < n; i++ {
		a[i] = complex(signal[i], 0)
	}
	for i := 0; i < m; i++ {
		b[i] = complex(kernel[i], 0)
	}

	A := fft.Coefficients(nil, a)
	B := fft.Coefficients(nil, b)
	for i := range A {
		A[i] *= B[i]
	}
	c := fft.Sequence(nil, A)

	out := make([]float64, n+m-1)
	scale := float64(convLen)
	for i := range out {
		out[i] = real(c[i]) / scale
	}
	return out, nil
}

func nextPow2(x int) int {
	p := 1
	for p < x {
		p <<= 1
	}
	return p
}

// slidingMeanStddev computes the mean and standard deviation of every
// length-windowSize window in data, updating the running sums
// incrementally rather than recomputing each window from scratch.
func slidingMeanStddev(data []float64, windowSize int) (means, sigmas []float64) {
	n := len(data)
	means = make([]float64, n-windowSize+1)
	sigmas = make([]float64, n-windowSize+1)
	w := float64(windowSize)

	var sum, sumSq float64
	for i := 0; i < windowSize; i++ {
		sum += data[i]
		sumSq += data[i] * data[i]
	}
	means[0] = sum / w
	sigmas[0] = stddevFromSums(sumSq, w, means[0])

	for i := 1; i <= n-windowSize; i++ {
		leaving, entering := data[i-1], data[i+windowSize-1]
		sum += entering - leaving
		sumSq += entering*entering - leaving*leaving

		means[i] = sum / w
		sigmas[i] = stddevFromSums(sumSq, w, means[i])
	}

	return means, sigmas
}

func stddevFromSums(sumSq, w, mean float64) float64 {
	variance := sumSq/w - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
