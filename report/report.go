// Package report formats mining results for output: a machine-readable JSON
// encoding and a human-readable aligned table, per the cells-in-a,b,d,c
// order the mining core reports them in.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hallett-io/shapelets-go"
)

// record is the JSON wire shape for one shapelet: a flat struct so callers
// get stable field names without reaching into the shapelets package.
type record struct {
	SeriesIndex  int       `json:"seriesIndex"`
	Offset       int       `json:"offset"`
	Length       int       `json:"length"`
	Values       []float64 `json:"values"`
	P            float64   `json:"p"`
	A            int       `json:"a"`
	B            int       `json:"b"`
	D            int       `json:"d"`
	C            int       `json:"c"`
	Threshold    float64   `json:"threshold"`
	DistanceName string    `json:"distanceName"`
}

func toRecord(s shapelets.SignificantShapelet) record {
	return record{
		SeriesIndex:  s.SeriesIndex,
		Offset:       s.Offset,
		Length:       s.Length,
		Values:       s.Values,
		P:            s.P,
		A:            s.Cells.A,
		B:            s.Cells.B,
		D:            s.Cells.D,
		C:            s.Cells.C,
		Threshold:    s.Threshold,
		DistanceName: s.DistanceName,
	}
}

// JSON writes results to w as a JSON array, one object per shapelet.
func JSON(w io.Writer, results []shapelets.SignificantShapelet) error {
	records := make([]record, len(results))
	for i, s := range results {
		records[i] = toRecord(s)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Table writes results to w as a tab-aligned table: one row per shapelet,
// ordered series/offset/length/p-value/threshold/cells/distance.
func Table(w io.Writer, results []shapelets.SignificantShapelet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "SERIES\tOFFSET\tLENGTH\tP\tTHRESHOLD\tA\tB\tD\tC\tDISTANCE")
	for _, s := range results {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.6g\t%.6g\t%d\t%d\t%d\t%d\t%s\n",
			s.SeriesIndex, s.Offset, s.Length, s.P, s.Threshold,
			s.Cells.A, s.Cells.B, s.Cells.D, s.Cells.C, s.DistanceName)
	}

	return tw.Flush()
}
