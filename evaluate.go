package shapelets

import (
	"math"

	"github.com/hallett-io/shapelets-go/internal/candidate"
	"github.com/hallett-io/shapelets-go/internal/contingency"
	"github.com/hallett-io/shapelets-go/internal/tarone"
)

// evaluation is the outcome of sweeping one candidate's threshold set: the
// best (smallest-p) completed, still-eligible table, if any.
type evaluation struct {
	cand  candidate.Candidate
	p     float64
	table *contingency.Table
	ok    bool
}

// groupByLabel returns sd reordered so every label-1 entry precedes every
// label-0 entry, preserving relative order within each group. Inserting in
// this order lets the optimistic bound tighten as fast as possible, per
// spec.md §4.6 step 2.
func groupByLabel(sd []seriesDistance) []seriesDistance {
	out := make([]seriesDistance, 0, len(sd))
	for _, s := range sd {
		if s.label {
			out = append(out, s)
		}
	}
	for _, s := range sd {
		if !s.label {
			out = append(out, s)
		}
	}
	return out
}

// evaluateCandidate sweeps every distance threshold for one candidate,
// feeding each threshold's min-attainable p-value to the Tarone controller
// and tracking the smallest-p completed table that survives pruning.
func evaluateCandidate(
	cfg Config,
	cand candidate.Candidate,
	sd []seriesDistance,
	controller *tarone.Controller,
) (evaluation, error) {
	result := evaluation{cand: cand}
	if len(sd) == 0 {
		return result, nil
	}

	effN := len(sd)
	effN1 := 0
	for _, s := range sd {
		if s.label {
			effN1++
		}
	}

	distances := make([]float64, len(sd))
	for i, s := range sd {
		distances[i] = s.dist
	}

	var thresholds []float64
	if cfg.DefaultFactor > 0 {
		thresholds = thresholdDefaultFactor(distances, cfg.DefaultFactor)
	} else {
		thresholds = thresholdsAllMidpoints(distances)
	}

	grouped := groupByLabel(sd)
	bestP := math.Inf(1)
	var bestTable *contingency.Table

	for _, theta := range thresholds {
		table, err := contingency.New(effN, effN1, theta, cfg.Pseudocounts)
		if err != nil {
			return result, err
		}

		rs := countAtMost(distances, theta)
		if cfg.Pseudocounts {
			rs += 2
		}
		minAttainableP := table.MinAttainableAtRS(rs)
		controller.Offer(minAttainableP)

		if !cfg.ReportAllShapelets && minAttainableP > controller.Threshold() {
			continue
		}

		completed := true
		for _, s := range grouped {
			table.Insert(s.dist, s.label)
			if !cfg.DisablePruning && table.MinOptimisticP() > controller.Threshold() {
				completed = false
				break
			}
		}
		if !completed || !table.Complete() {
			continue
		}

		p := table.P()
		if !cfg.ReportAllShapelets && p > controller.Threshold() {
			continue
		}
		if p < bestP {
			bestP = p
			bestTable = table
		}
	}

	if bestTable == nil {
		return result, nil
	}

	result.p = bestP
	result.table = bestTable
	result.ok = true
	return result, nil
}
