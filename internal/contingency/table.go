package contingency

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrLabelCountExceedsTotal is returned by New when n1 > n.
var ErrLabelCountExceedsTotal = errors.New("contingency: label-1 count exceeds total count")

// ErrNegativeCount is returned by New when n or n1 is negative.
var ErrNegativeCount = errors.New("contingency: negative count")

// Table is a 2x2 contingency table cross-classifying "distance to threshold"
// (near vs far) against the binary class label, for one shapelet candidate
// at one distance threshold.
//
//	           near (<=θ)   far (>θ)   row total
//	label=1      a            b         n1
//	label=0      d            c         n0
//	col tot      rs           qs        n
//
// Equality (Equal) and identity ignore the threshold, so that tables built
// at different thresholds but with identical cell counts can be merged by
// the mining driver's mergeTables option.
type Table struct {
	n, n1, n0    int // expected totals once complete (pseudocount-adjusted)
	a, b, c, d   int
	threshold    float64
	pseudocounts bool
}

// New creates an empty table for n total instances, n1 of which carry
// label 1, at the given distance threshold. If withPseudocounts is set,
// every cell starts at 1 and the effective totals grow by four (two per
// row) so that no p-value formula ever divides by a zero margin.
func New(n, n1 int, threshold float64, withPseudocounts bool) (*Table, error) {
	if n < 0 || n1 < 0 {
		return nil, ErrNegativeCount
	}
	if n1 > n {
		return nil, fmt.Errorf("contingency: n1=%d exceeds n=%d: %w", n1, n, ErrLabelCountExceedsTotal)
	}

	t := &Table{
		threshold:    threshold,
		pseudocounts: withPseudocounts,
	}

	if withPseudocounts {
		t.n = n + 4
		t.n1 = n1 + 2
		t.n0 = (n - n1) + 2
		t.a, t.b, t.c, t.d = 1, 1, 1, 1
	} else {
		t.n = n
		t.n1 = n1
		t.n0 = n - n1
	}

	return t, nil
}

// Insert records one more instance with the given distance and label,
// incrementing exactly one cell.
func (t *Table) Insert(distance float64, label bool) {
	near := distance <= t.threshold

	switch {
	case label && near:
		t.a++
	case label && !near:
		t.b++
	case !label && near:
		t.d++
	default:
		t.c++
	}
}

// A, B, C, D return the current cell counts.
func (t *Table) A() int { return t.a }
func (t *Table) B() int { return t.b }
func (t *Table) C() int { return t.c }
func (t *Table) D() int { return t.d }

// Threshold returns the distance threshold this table was built for.
func (t *Table) Threshold() float64 { return t.threshold }

// N, N1, N0 return the expected (fixed) totals for a complete table,
// including any pseudocount adjustment.
func (t *Table) N() int  { return t.n }
func (t *Table) N1() int { return t.n1 }
func (t *Table) N0() int { return t.n0 }

// Count returns the number of instances inserted so far.
func (t *Table) Count() int { return t.a + t.b + t.c + t.d }

// RS and QS return the current column marginals (near and far totals).
func (t *Table) RS() int { return t.a + t.d }
func (t *Table) QS() int { return t.b + t.c }

// Complete reports whether the table's marginals have reached the expected
// totals.
func (t *Table) Complete() bool { return t.Count() == t.n }

// Equal compares two tables by cell contents only; the threshold is not
// part of identity, which is what lets the mining driver deduplicate tables
// built at different thresholds under mergeTables.
func (t *Table) Equal(other *Table) bool {
	if other == nil {
		return false
	}
	return t.a == other.a && t.b == other.b && t.c == other.c && t.d == other.d
}

// P computes the p-value of the table in its current state, treating the
// current cell counts as if they were the final ones. Callers normally only
// call this once Complete() is true.
func (t *Table) P() float64 {
	return pValue(t.a, t.b, t.c, t.d, t.n1, t.n0)
}

// MinAttainableP computes the smallest p-value attainable by any completion
// of the row margins (N1, N0) over every feasible column split, per the
// table's fixed problem size. It does not depend on the table's current
// (possibly partial) cell counts.
func (t *Table) MinAttainableP() float64 {
	best := 1.0
	for rs := 0; rs <= t.n; rs++ {
		if v := t.MinAttainableAtRS(rs); v < best {
			best = v
		}
	}
	return best
}

// MinAttainableAtRS computes the minimum attainable p-value for a fixed
// column margin rs (the count of "near" instances), minimizing over the
// feasible splits of rs between a and d. The minimum is attained at one of
// the two extremal splits, where the within-rs allocation is as unbalanced
// as the row margins permit.
func (t *Table) MinAttainableAtRS(rs int) float64 {
	if rs < 0 || rs > t.n {
		return 1
	}

	aLo := max(0, rs-t.n0)
	aHi := min(t.n1, rs)

	pLo := t.pValueForSplit(aLo, rs)
	pHi := t.pValueForSplit(aHi, rs)

	if pLo < pHi {
		return pLo
	}
	return pHi
}

// pValueForSplit evaluates p() for the hypothetical complete table with
// near-label-1 count a and column-near margin rs.
func (t *Table) pValueForSplit(a, rs int) float64 {
	b := t.n1 - a
	d := rs - a
	c := t.n0 - d
	if b < 0 || d < 0 || c < 0 {
		return 1
	}
	return pValue(a, b, c, d, t.n1, t.n0)
}

// MinOptimisticP computes the smallest p-value attainable from this
// (possibly partial) table if every remaining insertion landed wherever it
// would help significance the most. Used for early pruning: if this exceeds
// the current Tarone threshold, the table cannot become testable and the
// remaining insertions can be skipped.
func (t *Table) MinOptimisticP() float64 {
	r1 := t.n1 - (t.a + t.b)
	r0 := t.n0 - (t.c + t.d)
	if r1 < 0 {
		r1 = 0
	}
	if r0 < 0 {
		r0 = 0
	}

	best := math.Inf(1)
	// Remaining class-1 mass goes either entirely to a (near) or entirely
	// to b (far); remaining class-0 mass goes either entirely to d (near)
	// or entirely to c (far). The minimum over the feasible polytope of
	// completions is attained at one of these four corners.
	corners := [4][4]int{
		{t.a + r1, t.b, t.c, t.d + r0},
		{t.a + r1, t.b, t.c + r0, t.d},
		{t.a, t.b + r1, t.c, t.d + r0},
		{t.a, t.b + r1, t.c + r0, t.d},
	}
	for _, corner := range corners {
		p := pValue(corner[0], corner[1], corner[2], corner[3], t.n1, t.n0)
		if p < best {
			best = p
		}
	}
	return best
}

// chi2 is the process-wide 1-degree-of-freedom chi-squared distribution
// every p-value computation tests against, mirroring the single static
// boost::math::chi_squared_distribution the original C++ ContingencyTable
// kept for the same purpose.
var chi2 = distuv.ChiSquared{K: 1}

// pValue is the shared p-value computation used by P, MinAttainableAtRS and
// MinOptimisticP: the Pearson chi-squared test of independence for a 2x2
// table, looked up through cdfCache rather than evaluated from scratch for
// every repeated statistic.
func pValue(a, b, c, d, n1, n0 int) float64 {
	n := a + b + c + d
	rs := a + d
	qs := b + c

	if n1 == 0 || n0 == 0 || rs == 0 || qs == 0 {
		return 1
	}

	t := chiSquaredStatistic(a, b, c, d, n1, n0, rs, qs, n)
	if t <= 0 {
		return 1
	}

	p := 1 - cdfCache.lookup(t)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

func chiSquaredStatistic(a, b, c, d, n1, n0, rs, qs, n int) float64 {
	diff := float64(a)*float64(c) - float64(b)*float64(d)
	return float64(n) * diff * diff / (float64(n1) * float64(n0) * float64(rs) * float64(qs))
}
