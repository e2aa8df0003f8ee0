package bspline

import (
	"math"
)

// ParametricCurve describes a curve in 3D parametrized by a scalar.
type ParametricCurve interface {
	// Eval evaluates the curve at parameter u, which must lie within the
	// curve's domain.
	Eval(u float64) (Vec3, error)
	// Domain returns the range of valid parameters.
	Domain() (float64, float64)
	Start() Vec3
	End() Vec3
}

// Deviation measures how far a curve is from a sequence of parameterized
// points. It evaluates c at each point's parameter and reports the largest and
// the root mean square distance.
//
// Points whose parameters lie outside the curve's domain are reported as an
// error.
func Deviation(c ParametricCurve, pts []ParamPoint) (maxDist, rms float64, err error) {
	if len(pts) == 0 {
		return 0, 0, nil
	}
	var sum float64
	for _, pt := range pts {
		q, err := c.Eval(pt.U)
		if err != nil {
			return 0, 0, err
		}
		d2 := q.DistanceSquared(pt.Pt)
		sum += d2
		maxDist = max(maxDist, d2)
	}
	return math.Sqrt(maxDist), math.Sqrt(sum / float64(len(pts))), nil
}
