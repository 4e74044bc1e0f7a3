// Command stsmine mines statistically significant shapelets from a labeled
// CSV time-series dataset and reports them as JSON or a table.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	shapelets "github.com/hallett-io/shapelets-go"
	"github.com/hallett-io/shapelets-go/dataset"
	"github.com/hallett-io/shapelets-go/distance"
	"github.com/hallett-io/shapelets-go/report"
)

func main() {
	var (
		minLen             int
		maxLen             int
		stride             int
		alpha              float64
		defaultFactor      float64
		dtwWindow          int
		useMASS            bool
		disablePruning     bool
		keepNormalOnly     bool
		mergeTables        bool
		removeDuplicates   bool
		reportAllShapelets bool
		pseudocounts       bool
		workers            int
		format             string
		progress           bool
	)

	rootCmd := &cobra.Command{
		Use:   "stsmine <dataset.csv>",
		Short: "Mine statistically significant shapelets from a labeled dataset",
		Long: `stsmine reads a CSV dataset of "label,v0,v1,..." rows and searches for
subsequences (shapelets) whose best-separating contingency table is
significant under Tarone-corrected multiple hypothesis testing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Load(args[0])
			if err != nil {
				return err
			}

			var functor distance.Functor = distance.Minkowski{P: 2}
			if dtwWindow > 0 {
				functor = distance.DTW{Window: dtwWindow}
			}

			cfg := shapelets.Config{
				MinWindowSize:      minLen,
				MaxWindowSize:      maxLen,
				WindowStride:       stride,
				Alpha:              alpha,
				Distance:           functor,
				UseMASS:            useMASS,
				DefaultFactor:      defaultFactor,
				DisablePruning:     disablePruning,
				KeepNormalOnly:     keepNormalOnly,
				MergeTables:        mergeTables,
				RemoveDuplicates:   removeDuplicates,
				ReportAllShapelets: reportAllShapelets,
				Pseudocounts:       pseudocounts,
				Workers:            workers,
			}
			if progress {
				cfg.Progress = os.Stderr
			}

			results, err := shapelets.Mine(context.Background(), ds, cfg)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return report.JSON(os.Stdout, results)
			case "table":
				return report.Table(os.Stdout, results)
			default:
				return fmt.Errorf("stsmine: unknown format %q (want json or table)", format)
			}
		},
	}

	flags := rootCmd.Flags()
	flags.IntVar(&minLen, "min-length", 3, "minimum shapelet length")
	flags.IntVar(&maxLen, "max-length", 20, "maximum shapelet length")
	flags.IntVar(&stride, "stride", 1, "candidate offset stride")
	flags.Float64Var(&alpha, "alpha", 0.01, "target family-wise error rate")
	flags.Float64Var(&defaultFactor, "default-factor", 0, "use a single threshold at factor*median distance instead of sweeping every midpoint")
	flags.IntVar(&dtwWindow, "dtw-window", 0, "use DTW with this Sakoe-Chiba window instead of Euclidean distance")
	flags.BoolVar(&useMASS, "use-mass", false, "accelerate the default Euclidean distance with z-normalized MASS instead of a plain brute-force sliding window")
	flags.BoolVar(&disablePruning, "disable-pruning", false, "disable optimistic-p early termination")
	flags.BoolVar(&keepNormalOnly, "keep-normal-only", false, "z-score normalize candidates before comparison and deduplication")
	flags.BoolVar(&mergeTables, "merge-tables", false, "collapse shapelets with identical contingency tables")
	flags.BoolVar(&removeDuplicates, "remove-duplicates", false, "deduplicate candidates with equal value vectors")
	flags.BoolVar(&reportAllShapelets, "report-all", false, "report every candidate's best table regardless of significance")
	flags.BoolVar(&pseudocounts, "pseudocounts", false, "initialize every contingency cell to 1")
	flags.IntVar(&workers, "workers", 0, "concurrent candidate workers (0 = GOMAXPROCS)")
	flags.StringVar(&format, "format", "table", "output format: table or json")
	flags.BoolVar(&progress, "progress", false, "print mining progress to stderr")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
