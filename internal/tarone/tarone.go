// Package tarone implements the Tarone testability threshold controller:
// the one piece of mutable state the mining driver's workers share, per
// spec.md §4.5/§9.
package tarone

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/hallett-io/shapelets-go/internal/contingency"
)

// AchievablePValues returns every min-attainable p-value reachable for a
// problem of size n with n1 label-1 instances, sorted ascending and
// deduplicated. The controller walks this ladder from the back (largest
// value first) as it shrinks its testability threshold.
func AchievablePValues(n, n1 int) ([]float64, error) {
	t, err := contingency.New(n, n1, 0, false)
	if err != nil {
		return nil, err
	}

	vals := make([]float64, 0, n+1)
	for rs := 0; rs <= n; rs++ {
		vals = append(vals, t.MinAttainableAtRS(rs))
	}
	sort.Float64s(vals)

	out := vals[:0:0]
	for i, v := range vals {
		if i == 0 || v != vals[i-1] {
			out = append(out, v)
		}
	}
	return out, nil
}

// Controller maintains the Tarone state (δ, k, α) described in spec.md
// §3/§4.5: δ is the current testability threshold, k counts the hypotheses
// currently classed as testable (min-attainable p <= δ), and α is the
// target family-wise error rate. δ is non-increasing over the controller's
// lifetime.
type Controller struct {
	alpha      float64
	achievable []float64 // ascending
	pos        int        // index into achievable of the current δ
	counts     map[float64]int

	mu        sync.Mutex    // serializes Offer and pos/counts mutation
	deltaBits atomic.Uint64 // lock-free snapshot of the current δ, for Threshold()
	k         atomic.Int64
}

// NewController creates a controller for the given target FWER and the
// precomputed achievable min-attainable p-value ladder (see
// AchievablePValues), starting at δ=1, k=0.
func NewController(alpha float64, achievable []float64) *Controller {
	c := &Controller{
		alpha:      alpha,
		achievable: achievable,
		counts:     make(map[float64]int),
	}
	c.pos = len(achievable) - 1
	delta := 1.0
	if c.pos >= 0 {
		delta = achievable[c.pos]
	}
	c.deltaBits.Store(math.Float64bits(delta))
	return c
}

// Threshold returns the current δ. Safe for concurrent use; a reader that
// observes δ=v may safely assume all future reads are <= v.
func (c *Controller) Threshold() float64 {
	return math.Float64frombits(c.deltaBits.Load())
}

// K returns the current count of testable hypotheses.
func (c *Controller) K() int {
	return int(c.k.Load())
}

// Offer registers one more hypothesis's min-attainable p-value. If it is
// not <= the current δ, the hypothesis is not testable and is ignored. If
// it is, k increments, and then δ shrinks (dropping any hypotheses whose
// min-attainable p equals each removed level) until α/k <= δ again.
func (c *Controller) Offer(minAttainableP float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delta := math.Float64frombits(c.deltaBits.Load())
	if minAttainableP > delta {
		return
	}

	k := c.k.Load() + 1
	c.k.Store(k)
	c.counts[minAttainableP]++

	for k > 0 && float64(k)*delta > c.alpha {
		removed := delta
		c.pos--
		if c.pos < 0 {
			// No achievable level satisfies α/k <= δ; δ bottoms out at 0
			// and stays there, so every later hypothesis with a positive
			// min-attainable p is untestable. k drops by the removed level.
			delta = 0
			k -= int64(c.counts[removed])
			delete(c.counts, removed)
			break
		}
		delta = c.achievable[c.pos]
		k -= int64(c.counts[removed])
		delete(c.counts, removed)
	}

	c.k.Store(k)
	c.deltaBits.Store(math.Float64bits(delta))
}
