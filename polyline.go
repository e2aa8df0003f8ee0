package bspline

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ParamMethod records how the parameters of a polyline's points were chosen.
type ParamMethod int

const (
	// ParamNone means that no parameters have been assigned.
	ParamNone ParamMethod = iota
	// ParamUniform spaces parameters evenly.
	ParamUniform
	// ParamChordal spaces parameters proportionally to the distance between
	// neighboring points.
	ParamChordal
	// ParamCentripetal spaces parameters proportionally to the square root of
	// the distance between neighboring points.
	ParamCentripetal
)

var paramMethodNames = [...]string{
	ParamNone:        "none",
	ParamUniform:     "uniform",
	ParamChordal:     "chordal",
	ParamCentripetal: "centripetal",
}

func (m ParamMethod) String() string {
	if m < 0 || int(m) >= len(paramMethodNames) {
		return fmt.Sprintf("ParamMethod(%d)", int(m))
	}
	return paramMethodNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m ParamMethod) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(paramMethodNames) {
		return nil, fmt.Errorf("%w: unknown parameterization method %d", ErrInvalidArgument, int(m))
	}
	return []byte(paramMethodNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are matched case
// insensitively.
func (m *ParamMethod) UnmarshalText(text []byte) error {
	for i, name := range paramMethodNames {
		if strings.EqualFold(name, string(text)) {
			*m = ParamMethod(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown parameterization method %q", ErrInvalidArgument, text)
}

// Polyline is an ordered sequence of points, such as measurements, that can
// be parameterized and then fitted with a B-spline.
type Polyline struct {
	// Points are the polyline's vertices together with their parameters.
	Points []ParamPoint
	// Method is the parameterization that assigned the points' parameters.
	Method ParamMethod
	// Periodic is set by [Polyline.ClosePeriodic] when the polyline was
	// closed.
	Periodic bool
}

var _ ParametricCurve = (*Polyline)(nil)

// NewPolyline returns an unparameterized polyline with the given vertices.
func NewPolyline(pts []Vec3) *Polyline {
	pl := &Polyline{Points: make([]ParamPoint, len(pts))}
	for i, pt := range pts {
		pl.Points[i].Pt = pt
	}
	return pl
}

// Vertices returns the coordinates of the polyline's points.
func (pl *Polyline) Vertices() []Vec3 {
	return Points(pl.Points)
}

// Parameterize assigns parameters in [0, 1] to the polyline's points, using
// the given method. The first point is assigned 0 and the last point 1.
//
// The chordal and centripetal methods fall back to the uniform method when all
// points coincide. Parameterizing with [ParamNone] resets all parameters to
// zero.
func (pl *Polyline) Parameterize(method ParamMethod) {
	pl.Method = method
	pts := pl.Points
	switch method {
	case ParamNone:
		for i := range pts {
			pts[i].U = 0
		}
		return
	case ParamUniform, ParamChordal, ParamCentripetal:
	default:
		panic(fmt.Sprintf("invalid parameterization method %v", method))
	}

	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		pts[0].U = 0
		return
	}

	var total float64
	if method != ParamUniform {
		pts[0].U = 0
		for i := 1; i < len(pts); i++ {
			d := pts[i].Pt.Distance(pts[i-1].Pt)
			if method == ParamCentripetal {
				d = math.Sqrt(d)
			}
			total += d
			pts[i].U = total
		}
	}
	if total == 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		step := 1.0 / float64(len(pts)-1)
		for i := range pts {
			pts[i].U = float64(i) * step
		}
	} else {
		for i := range pts {
			pts[i].U /= total
		}
	}
	pts[len(pts)-1].U = 1
}

// BoundingBox returns the smallest box containing all points.
func (pl *Polyline) BoundingBox() Box3 {
	b := EmptyBox()
	for _, pt := range pl.Points {
		b = b.UnionPoint(pt.Pt)
	}
	return b
}

// Normalize translates and uniformly scales the polyline so that it is
// centered on the origin and fits into [-1, 1]³. Axes along which the
// polyline has no extent are treated as having a half-extent of 0.5, so that
// degenerate polylines are scaled by at most a factor of two.
func (pl *Polyline) Normalize() {
	if len(pl.Points) == 0 {
		return
	}
	box := pl.BoundingBox()
	mid := box.Center()
	half := box.Size().Mul(0.5)
	if half.X == 0 {
		half.X = 0.5
	}
	if half.Y == 0 {
		half.Y = 0.5
	}
	if half.Z == 0 {
		half.Z = 0.5
	}
	scale := max(half.X, half.Y, half.Z)
	for i := range pl.Points {
		pl.Points[i].Pt = pl.Points[i].Pt.Sub(mid).Div(scale)
	}
}

// PeriodicPolicy decides whether a polyline describes a closed loop.
type PeriodicPolicy func(pts []Vec3) bool

// MaxGapPolicy reports polylines as closed if the gap between their last and
// first point is no larger than the largest gap between neighboring points.
//
// Polylines with fewer than three points are never closed, even though the
// gap between the ends of a single segment equals its length. Closing them
// would only retrace the segment.
func MaxGapPolicy(pts []Vec3) bool {
	if len(pts) < 3 {
		return false
	}
	var maxGap float64
	for i := 1; i < len(pts); i++ {
		maxGap = max(maxGap, pts[i].DistanceSquared(pts[i-1]))
	}
	return pts[0].DistanceSquared(pts[len(pts)-1]) <= maxGap
}

// ClosePeriodic closes the polyline by appending a copy of its first point
// if policy reports it as a closed loop. It reports whether it closed the
// polyline. Polylines that are already periodic are not closed again.
//
// The polyline must be parameterized again after closing it.
func (pl *Polyline) ClosePeriodic(policy PeriodicPolicy) bool {
	if pl.Periodic || policy == nil || !policy(pl.Vertices()) {
		return false
	}
	pl.Points = append(pl.Points, pl.Points[0])
	pl.Periodic = true
	return true
}

// Domain implements [ParametricCurve]. It returns the parameters of the first
// and last point.
func (pl *Polyline) Domain() (float64, float64) {
	if len(pl.Points) == 0 {
		return 0, 0
	}
	return pl.Points[0].U, pl.Points[len(pl.Points)-1].U
}

// Start returns the first point, or the zero vector if there are no points.
func (pl *Polyline) Start() Vec3 {
	if len(pl.Points) == 0 {
		return Vec3{}
	}
	return pl.Points[0].Pt
}

// End returns the last point, or the zero vector if there are no points.
func (pl *Polyline) End() Vec3 {
	if len(pl.Points) == 0 {
		return Vec3{}
	}
	return pl.Points[len(pl.Points)-1].Pt
}

// Eval implements [ParametricCurve] by interpolating linearly between the
// points whose parameters bracket u. The points' parameters must be
// non-decreasing.
func (pl *Polyline) Eval(u float64) (Vec3, error) {
	pts := pl.Points
	lo, hi := pl.Domain()
	if len(pts) == 0 || !(u >= lo && u <= hi) {
		return Vec3{}, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, u, lo, hi)
	}
	// Index of the first point with a parameter larger than u.
	i := sort.Search(len(pts), func(i int) bool { return pts[i].U > u })
	if i == len(pts) {
		return pts[len(pts)-1].Pt, nil
	}
	a, b := pts[i-1], pts[i]
	t := (u - a.U) / (b.U - a.U)
	return a.Pt.Lerp(b.Pt, t), nil
}
