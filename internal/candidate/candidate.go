// Package candidate enumerates shapelet candidates from a dataset: every
// (series, offset, length) triple across a window-size range and stride.
package candidate

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"

	"github.com/hallett-io/shapelets-go/normalize"
)

// ErrInvalidRange is returned by Generate when minLen > maxLen.
var ErrInvalidRange = errors.New("candidate: minLen exceeds maxLen")

// ErrInvalidStride is returned by Generate when stride is not positive.
var ErrInvalidStride = errors.New("candidate: stride must be positive")

// Candidate is a contiguous subsequence extracted from one series in the
// dataset.
type Candidate struct {
	SeriesIndex int
	Offset      int
	Length      int
	Values      []float64
}

// Options controls optional filtering during enumeration.
type Options struct {
	// RemoveDuplicates keeps only the first occurrence of each distinct
	// value vector.
	RemoveDuplicates bool
	// KeepNormalOnly canonicalizes candidates by their z-score-normalized
	// values before the RemoveDuplicates equality check; it does not alter
	// the values stored on the returned Candidate.
	KeepNormalOnly bool
}

// Generate enumerates every candidate across all series, in outer-to-inner
// (series, length, offset) order, for length in [minLen, maxLen] and offset
// stepping by stride. Series shorter than a given length are silently
// skipped for that length, per the mining driver's failure semantics; if no
// candidates exist at all, the result is an empty, non-error slice.
//
// The returned slice is finite and safe to hand out in chunks to worker
// goroutines; Generate itself does no concurrent work.
func Generate(series [][]float64, minLen, maxLen, stride int, opts Options) ([]Candidate, error) {
	if minLen > maxLen {
		return nil, ErrInvalidRange
	}
	if stride <= 0 {
		return nil, ErrInvalidStride
	}

	var out []Candidate
	var seen map[string]struct{}
	if opts.RemoveDuplicates {
		seen = make(map[string]struct{})
	}

	for i, s := range series {
		l := len(s)
		for length := minLen; length <= maxLen; length++ {
			if length > l {
				continue
			}
			for offset := 0; offset+length <= l; offset += stride {
				values := make([]float64, length)
				copy(values, s[offset:offset+length])

				if seen != nil {
					key := canonicalKey(values, opts.KeepNormalOnly)
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
				}

				out = append(out, Candidate{
					SeriesIndex: i,
					Offset:      offset,
					Length:      length,
					Values:      values,
				})
			}
		}
	}

	return out, nil
}

// canonicalKey builds a bit-exact identity key for a candidate's value
// vector, optionally normalizing first so that shape-equivalent candidates
// at different scales/offsets dedupe together.
func canonicalKey(values []float64, normalizeFirst bool) string {
	v := values
	if normalizeFirst {
		v = normalize.ZScore(values)
	}

	var b strings.Builder
	buf := make([]byte, 8)
	for _, x := range v {
		binary.BigEndian.PutUint64(buf, math.Float64bits(x))
		b.Write(buf)
	}
	return b.String()
}
