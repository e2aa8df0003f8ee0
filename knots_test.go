package bspline

import (
	"slices"
	"testing"
)

func TestCheckKnots(t *testing.T) {
	wantErr(t, CheckKnots([]float64{0, 1, 0.5}), ErrInvalidKnots)
	for _, knots := range [][]float64{nil, {1}, {0, 0, 0}, bookKnots} {
		if err := CheckKnots(knots); err != nil {
			t.Errorf("CheckKnots(%v): unexpected error %v", knots, err)
		}
	}
}

func TestNormalizeKnots(t *testing.T) {
	knots := slices.Clone(bookKnots)
	NormalizeKnots(knots)
	diff(t, []float64{0, 0, 0, 0.2, 0.4, 0.6, 0.8, 0.8, 1, 1, 1}, knots, approx)

	// Normalizing normalized knots is a no-op.
	again := slices.Clone(knots)
	NormalizeKnots(again)
	diff(t, knots, again)

	knots = []float64{-2, -1, 0, 2}
	NormalizeKnots(knots)
	diff(t, []float64{0, 0.25, 0.5, 1}, knots)
}

func TestNormalizeKnotsDegenerate(t *testing.T) {
	knots := []float64{3, 3, 3, 3}
	NormalizeKnots(knots)
	diff(t, []float64{1, 1, 1, 1}, knots)

	single := []float64{7}
	NormalizeKnots(single)
	diff(t, []float64{7}, single)
}

func TestUniformKnots(t *testing.T) {
	tests := []struct {
		degree, numCtrl int
		want            []float64
	}{
		{1, 2, []float64{0, 0, 1, 1}},
		{2, 3, []float64{0, 0, 0, 1, 1, 1}},
		{2, 5, []float64{0, 0, 0, 1.0 / 3, 2.0 / 3, 1, 1, 1}},
		{3, 4, []float64{0, 0, 0, 0, 1, 1, 1, 1}},
		{3, 7, []float64{0, 0, 0, 0, 0.25, 0.5, 0.75, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		got := UniformKnots(tt.degree, tt.numCtrl)
		diff(t, tt.want, got, approx)
		if !IsClamped(got, tt.degree) {
			t.Errorf("UniformKnots(%d, %d) isn't clamped", tt.degree, tt.numCtrl)
		}
	}
}

func TestKnotMultiplicities(t *testing.T) {
	want := []KnotMultiplicity{
		{0, 3},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{5, 3},
	}
	diff(t, want, KnotMultiplicities(bookKnots))
	if got := KnotMultiplicities(nil); len(got) != 0 {
		t.Errorf("got %v, want no multiplicities", got)
	}
}

func TestIsClamped(t *testing.T) {
	tests := []struct {
		knots  []float64
		degree int
		want   bool
	}{
		{bookKnots, 2, true},
		{bookKnots, 3, false},
		{[]float64{0, 1, 2, 3, 4, 5}, 2, false},
		{[]float64{0, 0, 1, 1}, 1, true},
		{[]float64{0, 0, 1}, 1, false},
	}
	for _, tt := range tests {
		if got := IsClamped(tt.knots, tt.degree); got != tt.want {
			t.Errorf("IsClamped(%v, %d) = %t, want %t", tt.knots, tt.degree, got, tt.want)
		}
	}
}
