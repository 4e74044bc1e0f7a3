package shapelets

import (
	"fmt"
	"io"
	"runtime"

	"github.com/hallett-io/shapelets-go/distance"
)

// Config collects every option spec.md §6 names. The zero value is not
// ready to use; call Mine, which applies defaults and validates.
type Config struct {
	// MinWindowSize, MaxWindowSize bound the shapelet lengths enumerated.
	MinWindowSize, MaxWindowSize int
	// WindowStride is the offset step within each series. Must be > 0.
	WindowStride int

	// Alpha is the target family-wise error rate. Defaults to 0.01.
	Alpha float64

	// Distance is the functor used to compare equal-length series, computed
	// by brute-force sliding window per spec.md §4.3's plain Lᵖ definition.
	// Defaults to distance.Minkowski{P: 2}.
	Distance distance.Functor

	// UseMASS, when Distance is the default Minkowski{P: 2} (or unset),
	// switches from the plain Euclidean brute-force reduction to the
	// FFT-accelerated z-normalized Euclidean reduction
	// (internal/subsequence.BestEuclideanMatch). This is an acceleration
	// with different semantics than the spec default — it compares
	// z-normalized shapes, not raw values — so it must be opted into
	// explicitly rather than substituted silently. A constant candidate has
	// no z-normalized shape, so candidates are dropped under this option
	// the way the unnormalized default never would be.
	UseMASS bool

	// DefaultFactor, when > 0, switches from the all-midpoints threshold
	// policy to a single threshold equal to DefaultFactor times the
	// median candidate-to-series distance.
	DefaultFactor float64

	// DisablePruning skips the optimistic-p early-termination check.
	DisablePruning bool
	// KeepNormalOnly z-score-normalizes candidates (and the series windows
	// they're compared against) before comparison/dedup.
	KeepNormalOnly bool
	// MergeTables collapses tables with identical cell counts across the
	// whole result set, keeping the first one encountered.
	MergeTables bool
	// RemoveDuplicates deduplicates candidates with equal value vectors.
	RemoveDuplicates bool
	// ReportAllShapelets emits every candidate's best table regardless of
	// significance. Implies DisablePruning.
	ReportAllShapelets bool
	// Pseudocounts initializes every table cell to 1.
	Pseudocounts bool

	// Workers bounds the number of concurrent candidate-evaluation
	// goroutines. Defaults to runtime.GOMAXPROCS(0).
	Workers int

	// Progress, if non-nil, receives periodic mining progress lines.
	Progress io.Writer
}

func (c Config) withDefaults() Config {
	if c.Alpha == 0 {
		c.Alpha = 0.01
	}
	if c.Distance == nil {
		c.Distance = distance.Minkowski{P: 2}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.ReportAllShapelets {
		c.DisablePruning = true
	}
	return c
}

// Validate checks the configuration invariants spec.md §7 requires to fail
// fast, before any mining work begins.
func (c Config) Validate() error {
	if c.MaxWindowSize < c.MinWindowSize {
		return fmt.Errorf("shapelets: min=%d max=%d: %w", c.MinWindowSize, c.MaxWindowSize, ErrInvalidWindowRange)
	}
	if c.WindowStride <= 0 {
		return fmt.Errorf("shapelets: stride=%d: %w", c.WindowStride, ErrInvalidStride)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("shapelets: alpha=%v: %w", c.Alpha, ErrInvalidAlpha)
	}
	return nil
}
