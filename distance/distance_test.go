package distance

import (
	"math"
	"testing"
)

func TestMinkowski_Distance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    float64
		s, t []float64
		want float64
	}{
		{"euclidean", 2, []float64{0, 0}, []float64{3, 4}, 5},
		{"manhattan", 1, []float64{0, 0}, []float64{3, 4}, 7},
		{"identical series", 2, []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Minkowski{P: tt.p}
			got := m.Distance(tt.s, tt.t)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinkowski_Name(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p    float64
		want string
	}{
		{2, "Minkowski:2"},
		{1, "Minkowski:1"},
		{1.5, "Minkowski:1.5"},
	}

	for _, tt := range tests {
		got := Minkowski{P: tt.p}.Name()
		if got != tt.want {
			t.Errorf("Name() for P=%v = %q, want %q", tt.p, got, tt.want)
		}
	}
}
