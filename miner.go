// Package shapelets implements statistically significant shapelet mining:
// discriminative subsequence discovery over labeled time series, with
// Tarone-corrected multiple hypothesis testing bounding the family-wise
// error rate across every candidate and threshold tested.
package shapelets

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hallett-io/shapelets-go/dataset"
	"github.com/hallett-io/shapelets-go/internal/candidate"
	"github.com/hallett-io/shapelets-go/internal/tarone"
)

// Mine searches ds for shapelets whose best contingency table is
// significant under Tarone-corrected multiple hypothesis testing at the
// configured family-wise error rate. Results are sorted by ascending
// p-value. Mine returns an error and no results if cfg or ds fails
// validation, or if a worker hits an unrecoverable error; ctx cancellation
// stops outstanding work and is reported as the returned error.
func Mine(ctx context.Context, ds *dataset.Dataset, cfg Config) ([]SignificantShapelet, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	series := make([][]float64, ds.N())
	labels := make([]bool, ds.N())
	for i, s := range ds.Series {
		series[i] = s.Values
		labels[i] = s.Label == 1
	}

	candidates, err := candidate.Generate(series, cfg.MinWindowSize, cfg.MaxWindowSize, cfg.WindowStride, candidate.Options{
		RemoveDuplicates: cfg.RemoveDuplicates,
		KeepNormalOnly:   cfg.KeepNormalOnly,
	})
	if err != nil {
		return nil, err
	}

	achievable, err := tarone.AchievablePValues(ds.N(), ds.N1())
	if err != nil {
		return nil, err
	}
	controller := tarone.NewController(cfg.Alpha, achievable)

	evaluations, err := runWorkers(ctx, cfg, candidates, labels, series, controller)
	if err != nil {
		return nil, err
	}

	return finalize(cfg, evaluations, controller), nil
}

// runWorkers fans candidate indices out to cfg.Workers goroutines, each of
// which computes one candidate's per-series distances and sweeps its
// threshold set through evaluateCandidate. All workers share one Tarone
// controller, so each Offer call narrows delta for everyone still running.
func runWorkers(
	ctx context.Context,
	cfg Config,
	candidates []candidate.Candidate,
	labels []bool,
	series [][]float64,
	controller *tarone.Controller,
) ([]evaluation, error) {
	results := make([]evaluation, len(candidates))
	if len(candidates) == 0 {
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	done := 0

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	worker := func() {
		defer wg.Done()
		for idx := range jobs {
			cand := candidates[idx]

			sd, err := candidateDistances(cfg, labels, series, cand.Values)
			if err != nil {
				fail(err)
				continue
			}

			eval, err := evaluateCandidate(cfg, cand, sd, controller)
			if err != nil {
				fail(err)
				continue
			}
			results[idx] = eval

			if cfg.Progress != nil {
				mu.Lock()
				done++
				fmt.Fprintf(cfg.Progress, "mined %d/%d candidates (delta=%.3g k=%d)\n", done, len(candidates), controller.Threshold(), controller.K())
				mu.Unlock()
			}
		}
	}

	workers := cfg.Workers
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go worker()
	}

feed:
	for i := range candidates {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// finalize applies the final alpha/k cutoff (k fixed once every candidate
// has reported), converts surviving evaluations to SignificantShapelet, and
// optionally collapses cell-identical tables.
func finalize(cfg Config, evaluations []evaluation, controller *tarone.Controller) []SignificantShapelet {
	k := controller.K()
	var cutoff float64
	if k > 0 {
		cutoff = cfg.Alpha / float64(k)
	}

	var out []SignificantShapelet
	for _, e := range evaluations {
		if !e.ok {
			continue
		}
		if !cfg.ReportAllShapelets && e.p > cutoff {
			continue
		}

		out = append(out, SignificantShapelet{
			SeriesIndex: e.cand.SeriesIndex,
			Offset:      e.cand.Offset,
			Length:      e.cand.Length,
			Values:      e.cand.Values,
			P:           e.p,
			Cells: TableCells{
				A: e.table.A(),
				B: e.table.B(),
				D: e.table.D(),
				C: e.table.C(),
			},
			Threshold:    e.table.Threshold(),
			DistanceName: cfg.Distance.Name(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].P < out[j].P })

	if cfg.MergeTables {
		out = mergeTables(out)
	}
	return out
}

// mergeTables keeps the first shapelet encountered for each distinct set of
// contingency table cells, dropping later duplicates found at a different
// offset, length, or series.
func mergeTables(in []SignificantShapelet) []SignificantShapelet {
	seen := make(map[TableCells]struct{}, len(in))
	out := make([]SignificantShapelet, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s.Cells]; dup {
			continue
		}
		seen[s.Cells] = struct{}{}
		out = append(out, s)
	}
	return out
}
