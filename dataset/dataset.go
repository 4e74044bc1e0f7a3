// Package dataset is the in-memory view of a labeled time-series collection
// the mining core accepts, plus a CSV loader. The core never parses files
// itself; Load is the peripheral collaborator that produces the view.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrInconsistentLabel is returned when a row's label is not 0 or 1.
var ErrInconsistentLabel = errors.New("dataset: label is not 0 or 1")

// ErrEmptyDataset is returned when a dataset has no series.
var ErrEmptyDataset = errors.New("dataset: no series")

// ErrSingleClass is returned when every series shares the same label, so
// n0 or n1 is zero.
var ErrSingleClass = errors.New("dataset: only one class present")

// Series is one labeled time series: Label is 0 or 1, Values is the
// ordered sequence of readings.
type Series struct {
	Label  uint8
	Values []float64
}

// Dataset is an ordered collection of labeled series.
type Dataset struct {
	Series []Series
}

// N returns the total number of series.
func (d *Dataset) N() int { return len(d.Series) }

// N1 returns the number of series with label 1.
func (d *Dataset) N1() int {
	n1 := 0
	for _, s := range d.Series {
		if s.Label == 1 {
			n1++
		}
	}
	return n1
}

// N0 returns the number of series with label 0.
func (d *Dataset) N0() int { return d.N() - d.N1() }

// Validate checks the invariants the mining core requires before it will
// start: a non-empty dataset with both classes present, and every label in
// {0,1}.
func (d *Dataset) Validate() error {
	if d.N() == 0 {
		return ErrEmptyDataset
	}
	for i, s := range d.Series {
		if s.Label != 0 && s.Label != 1 {
			return fmt.Errorf("dataset: series %d: %w", i, ErrInconsistentLabel)
		}
	}
	if d.N1() == 0 || d.N0() == 0 {
		return ErrSingleClass
	}
	return nil
}

// Load reads a CSV file where each row is a label followed by the series
// values: "label,v0,v1,v2,...". Rows with fewer than two columns are
// skipped.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	return loadFrom(f)
}

func loadFrom(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var d Dataset
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("dataset: read row: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		label, err := strconv.ParseUint(record[0], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("dataset: parse label %q: %w", record[0], err)
		}

		values := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("dataset: parse value %q: %w", field, err)
			}
			values = append(values, v)
		}

		d.Series = append(d.Series, Series{Label: uint8(label), Values: values})
	}

	return &d, nil
}
