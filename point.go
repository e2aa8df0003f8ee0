package bspline

import (
	"fmt"
)

// ParamPoint is a point that has been assigned a curve parameter.
//
// U is only meaningful after parameterization, see [Polyline.Parameterize].
type ParamPoint struct {
	Pt Vec3
	U  float64
}

func (pt ParamPoint) String() string {
	return fmt.Sprintf("%v@%g", pt.Pt, pt.U)
}

// SplinePoint is a point sampled from a B-spline. In addition to its
// parameter, it records the knot span that produced it.
type SplinePoint struct {
	ParamPoint
	Span int
}

func (pt SplinePoint) String() string {
	return fmt.Sprintf("%v@%g[%d]", pt.Pt, pt.U, pt.Span)
}

// Points returns the coordinates of a sequence of parameterized points.
func Points(pts []ParamPoint) []Vec3 {
	out := make([]Vec3, len(pts))
	for i, pt := range pts {
		out[i] = pt.Pt
	}
	return out
}
