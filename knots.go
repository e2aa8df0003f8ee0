package bspline

import (
	"fmt"
)

// CheckKnots returns an error wrapping [ErrInvalidKnots] if knots is not
// non-decreasing.
func CheckKnots(knots []float64) error {
	for i := 1; i < len(knots); i++ {
		if knots[i-1] > knots[i] {
			return fmt.Errorf("%w: knot %d (%g) is smaller than knot %d (%g)",
				ErrInvalidKnots, i, knots[i], i-1, knots[i-1])
		}
	}
	return nil
}

// NormalizeKnots rescales a non-decreasing knot vector in place so that it
// spans [0, 1].
//
// Knot vectors with fewer than two knots are left unchanged. A knot vector
// whose knots are all equal has no range to rescale and becomes a vector of
// all ones. Normalizing a normalized knot vector doesn't change it.
func NormalizeKnots(knots []float64) {
	if len(knots) < 2 {
		return
	}
	lo, hi := knots[0], knots[len(knots)-1]
	span := hi - lo
	if span == 0 {
		// Degenerate knot vector.
		for i := range knots {
			knots[i] = 1
		}
		return
	}
	for i, k := range knots {
		knots[i] = (k - lo) / span
	}
	// Guard against the rounding of (hi-lo)/(hi-lo).
	knots[len(knots)-1] = 1
}

// UniformKnots returns the open uniform knot vector on [0, 1] for a B-spline
// of the given degree with numCtrl control points.
//
// The first and last degree+1 knots are 0 and 1, respectively, which makes
// the curve interpolate its first and last control points. The remaining
// numCtrl-degree-1 knots are spaced evenly.
func UniformKnots(degree, numCtrl int) []float64 {
	// m = n + p + 1 where n+1 is the number of control points and m+1 the
	// number of knots.
	n := numCtrl - 1
	m := n + degree + 1
	knots := make([]float64, m+1)

	segments := float64(n - degree + 1)
	for i := degree + 1; i <= n; i++ {
		knots[i] = float64(i-degree) / segments
	}
	for i := n + 1; i <= m; i++ {
		knots[i] = 1
	}
	return knots
}

// KnotMultiplicity is a distinct knot value and the number of times it occurs
// in a knot vector.
type KnotMultiplicity struct {
	Knot float64
	Mult int
}

// KnotMultiplicities returns the distinct values of a non-decreasing knot
// vector and how often each of them occurs.
func KnotMultiplicities(knots []float64) []KnotMultiplicity {
	var out []KnotMultiplicity
	for _, k := range knots {
		if len(out) > 0 && out[len(out)-1].Knot == k {
			out[len(out)-1].Mult++
			continue
		}
		out = append(out, KnotMultiplicity{Knot: k, Mult: 1})
	}
	return out
}

// IsClamped reports whether the first and last knot of a non-decreasing knot
// vector are each repeated at least degree+1 times, which is the case for open
// knot vectors.
func IsClamped(knots []float64, degree int) bool {
	if degree < 0 || len(knots) < 2*(degree+1) {
		return false
	}
	mults := KnotMultiplicities(knots)
	return mults[0].Mult > degree && mults[len(mults)-1].Mult > degree
}
