package bspline

import (
	"math"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := Vec(1, 2, 3)
	b := Vec(-2, 0.5, 4)
	diff(t, Vec(-1, 2.5, 7), a.Add(b))
	diff(t, Vec(3, 1.5, -1), a.Sub(b))
	diff(t, Vec(2, 4, 6), a.Mul(2))
	diff(t, Vec(0.5, 1, 1.5), a.Div(2))
	diff(t, Vec(-1, -2, -3), a.Negate())
	diff(t, Vec(-0.5, 1.25, 3.5), a.Lerp(b, 0.5))
}

func TestVecProducts(t *testing.T) {
	x, y, z := Vec(1, 0, 0), Vec(0, 1, 0), Vec(0, 0, 1)
	diff(t, z, x.Cross(y))
	diff(t, x, y.Cross(z))
	diff(t, y, z.Cross(x))
	diff(t, 0.0, x.Dot(y))

	a := Vec(1, 2, 3)
	b := Vec(4, 5, 6)
	diff(t, 32.0, a.Dot(b))
	c := a.Cross(b)
	diff(t, Vec(-3, 6, -3), c)
	// The cross product is orthogonal to both factors.
	diff(t, 0.0, c.Dot(a))
	diff(t, 0.0, c.Dot(b))
}

func TestVecLength(t *testing.T) {
	v := Vec(2, 3, 6)
	if got := v.Hypot(); got != 7 {
		t.Errorf("got length %v, want 7", got)
	}
	if got := v.Hypot2(); got != 49 {
		t.Errorf("got squared length %v, want 49", got)
	}
	if d := Vec(1, 1, 1).Distance(Vec(3, 4, 7)); d != 7 {
		t.Errorf("got distance %v, want 7", d)
	}
	if d := Vec(0, 0, 0).DistanceSquared(Vec(1, 2, 2)); d != 9 {
		t.Errorf("got squared distance %v, want 9", d)
	}
	diff(t, Vec(2.0/7, 3.0/7, 6.0/7), v.Normalize(), approx)
	if !Vec(0, 0, 0).Normalize().IsNaN() {
		t.Error("normalizing the zero vector should produce NaN")
	}
}

func TestVecIsInf(t *testing.T) {
	if Vec(1, 2, 3).IsInf() {
		t.Error("vector is infinite but shouldn't be")
	}
	if !Vec(1, 2, math.Inf(-1)).IsInf() {
		t.Error("vector is finite but shouldn't be")
	}
	if !Vec(math.NaN(), 0, 0).IsNaN() {
		t.Error("vector isn't NaN but should be")
	}
}
