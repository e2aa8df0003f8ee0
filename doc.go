// Package bspline evaluates B-spline curves in 3D and fits them to sequences
// of points.
//
// # B-splines
//
// A [BSpline] is defined by its degree p, its n+1 control points, and its knot
// vector of n+p+2 non-decreasing knots. Knot vectors are always normalized to
// [0, 1], see [NormalizeKnots]. Curves constructed with [NewUniformBSpline] use
// an open uniform knot vector (see [UniformKnots]), which makes them start at
// their first and end at their last control point.
//
// A curve can be evaluated on its domain [knots[p], knots[n+1]]. For clamped
// knot vectors like the uniform ones, this is all of [0, 1].
//
// [BSpline.Eval] and [BSpline.Derivs] evaluate a curve and its derivatives at
// a single parameter. [BSpline.Sample] and [BSpline.Samples] evaluate it at
// evenly spaced parameters and produce [SplinePoint] values that also record
// the knot span each point belongs to, which is useful for drawing the
// curve's segments in different colors.
//
// # Basis functions
//
// The workhorse of evaluation and fitting is [Basis], which locates the knot
// span of a parameter and computes the non-vanishing basis functions and their
// derivatives. Basis reuses internal buffers and is therefore not safe for
// concurrent use. The functions and methods of this package that need a Basis
// allocate their own, so they can be used concurrently.
//
// # Fitting
//
// Points to be fitted first need parameters. [Polyline] assigns them using
// one of the uniform, chordal, and centripetal methods (see [ParamMethod]),
// and can optionally normalize the points to [-1, 1]³ and close loops (see
// [Polyline.ClosePeriodic]).
//
// A [Fitter] then fits a B-spline with a given degree and number of control
// points in two steps. First, a [KnotSelector] chooses the knot vector. [KTP]
// places knots by averaging the points' parameters, which guarantees that
// every knot span contains at least one point. Second, [LeastSquares] computes
// control points that minimize the squared distance between the curve and the
// points, under the constraint that the curve starts and ends exactly at the
// first and last point. Knot selectors may replace the second step by
// implementing [ControlSolver].
//
// Fitting fails with [ErrSingularSystem] when the requested number of control
// points can't be determined from the points, rather than returning a
// degenerate curve.
//
// # Errors
//
// All errors returned by this package wrap one of [ErrInvalidArgument],
// [ErrInvalidKnots], [ErrOutOfRange], and [ErrSingularSystem] and can be
// tested with [errors.Is].
//
// # Literature
//
// This package makes use of the following ideas:
//   - [The NURBS Book] by Les Piegl and Wayne Tiller, 2nd edition, in particular
//     algorithms A2.1 to A2.3, A3.1, and A3.2 and the least-squares
//     approximation of section 9.4.1
//   - [Centripetal parameterization] by E. T. Y. Lee
//
// [The NURBS Book]: https://doi.org/10.1007/978-3-642-59223-2
// [Centripetal parameterization]: https://doi.org/10.1016/0010-4485(89)90003-1
package bspline
