package utils

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3}, 3},
		{"several", []float64{1, 2, 3, 4}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.xs); got != tt.want {
				t.Errorf("Mean(%v) = %g, want %g", tt.xs, got, tt.want)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean := Mean(xs)
	if got := StdDev(xs, mean); math.Abs(got-2) > 1e-12 {
		t.Errorf("StdDev = %g, want 2", got)
	}
	if got := StdDev([]float64{5, 5, 5}, 5); got != 0 {
		t.Errorf("constant StdDev = %g, want 0", got)
	}
}

func TestSquaredDistance(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{3, 4}
	if got := SquaredDistance(a, b); got != 25 {
		t.Errorf("SquaredDistance = %g, want 25", got)
	}
	if got := SquaredDistance(a, a); got != 0 {
		t.Errorf("identical points = %g, want 0", got)
	}
}
