package candidate

import (
	"testing"
)

func TestGenerate_RejectsBadArguments(t *testing.T) {
	t.Parallel()

	series := [][]float64{{1, 2, 3}}

	if _, err := Generate(series, 5, 2, 1, Options{}); err != ErrInvalidRange {
		t.Errorf("Generate(minLen>maxLen) error = %v, want %v", err, ErrInvalidRange)
	}
	if _, err := Generate(series, 1, 2, 0, Options{}); err != ErrInvalidStride {
		t.Errorf("Generate(stride=0) error = %v, want %v", err, ErrInvalidStride)
	}
}

func TestGenerate_EnumeratesEveryWindow(t *testing.T) {
	t.Parallel()

	series := [][]float64{{1, 2, 3, 4}}
	got, err := Generate(series, 2, 3, 1, Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// length 2: offsets 0,1,2 (3 candidates); length 3: offsets 0,1 (2 candidates).
	if len(got) != 5 {
		t.Fatalf("len(got) = %d, want 5", len(got))
	}
	for _, c := range got {
		if len(c.Values) != c.Length {
			t.Errorf("candidate at offset %d: len(Values)=%d, Length=%d", c.Offset, len(c.Values), c.Length)
		}
	}
}

func TestGenerate_SkipsSeriesShorterThanLength(t *testing.T) {
	t.Parallel()

	series := [][]float64{{1, 2}, {1, 2, 3, 4, 5}}
	got, err := Generate(series, 4, 4, 1, Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, c := range got {
		if c.SeriesIndex == 0 {
			t.Errorf("series 0 is too short for length 4 but produced a candidate")
		}
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2 (series 1 has two length-4 windows)", len(got))
	}
}

func TestGenerate_StrideSkipsOffsets(t *testing.T) {
	t.Parallel()

	series := [][]float64{{1, 2, 3, 4, 5, 6, 7}}
	got, err := Generate(series, 2, 2, 3, Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var offsets []int
	for _, c := range got {
		offsets = append(offsets, c.Offset)
	}
	want := []int{0, 3}
	if len(offsets) != len(want) {
		t.Fatalf("offsets = %v, want %v", offsets, want)
	}
	for i := range want {
		if offsets[i] != want[i] {
			t.Errorf("offsets = %v, want %v", offsets, want)
		}
	}
}

func TestGenerate_RemoveDuplicates(t *testing.T) {
	t.Parallel()

	series := [][]float64{{1, 2, 1, 2}}
	got, err := Generate(series, 2, 2, 1, Options{RemoveDuplicates: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// windows are [1,2], [2,1], [1,2]; the repeated [1,2] should be dropped.
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2 after deduplication", len(got))
	}
}

func TestGenerate_RemoveDuplicatesKeepNormalOnlyMatchesShapeEquivalent(t *testing.T) {
	t.Parallel()

	// [1,2,3] and [10,20,30] are shape-equivalent after z-score normalization.
	series := [][]float64{{1, 2, 3}, {10, 20, 30}}
	got, err := Generate(series, 3, 3, 1, Options{RemoveDuplicates: true, KeepNormalOnly: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1 when shape-equivalent candidates are deduplicated", len(got))
	}
}

func TestGenerate_EmptySeriesProducesNoError(t *testing.T) {
	t.Parallel()

	got, err := Generate(nil, 1, 5, 1, Options{})
	if err != nil {
		t.Fatalf("Generate(nil) error = %v, want nil", err)
	}
	if len(got) != 0 {
		t.Errorf("len(got) = %d, want 0", len(got))
	}
}
