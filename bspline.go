package bspline

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// DefaultSampleRate is the parameter step used by callers that don't have a
// more specific requirement. It produces 101 samples on a normalized curve.
const DefaultSampleRate = 0.01

// MaxSamples is the largest number of samples [BSpline.Sample] computes.
const MaxSamples = 1 << 24

// BSpline is a non-rational B-spline curve in 3D, defined by its degree, its
// control points, and its knot vector.
//
// A BSpline owns its control points and knots; constructors and accessors copy
// them. Its knot vector is always normalized to [0, 1]. The knot vector needn't
// be clamped, but only clamped curves start and end at their first and last
// control point.
//
// The methods of BSpline may be called concurrently, as long as
// [BSpline.SetKnots] isn't.
type BSpline struct {
	degree int
	ctrl   []Vec3
	knots  []float64
}

var _ ParametricCurve = (*BSpline)(nil)

// NewBSpline returns a B-spline of the given degree with the given control
// points and knots. The knots are normalized to [0, 1].
//
// There must be more control points than the degree, and len(ctrl)+degree+1
// knots in non-decreasing order.
func NewBSpline(degree int, ctrl []Vec3, knots []float64) (*BSpline, error) {
	if err := checkDegree(degree, len(ctrl)); err != nil {
		return nil, err
	}
	b := &BSpline{
		degree: degree,
		ctrl:   slices.Clone(ctrl),
	}
	if err := b.SetKnots(knots); err != nil {
		return nil, err
	}
	return b, nil
}

// NewUniformBSpline returns a B-spline of the given degree with the given
// control points and an open uniform knot vector, see [UniformKnots].
func NewUniformBSpline(degree int, ctrl []Vec3) (*BSpline, error) {
	if err := checkDegree(degree, len(ctrl)); err != nil {
		return nil, err
	}
	return &BSpline{
		degree: degree,
		ctrl:   slices.Clone(ctrl),
		knots:  UniformKnots(degree, len(ctrl)),
	}, nil
}

func checkDegree(degree, numCtrl int) error {
	if degree < 1 {
		return fmt.Errorf("%w: degree must be at least 1, is %d", ErrInvalidArgument, degree)
	}
	if degree >= numCtrl {
		return fmt.Errorf("%w: degree %d needs more than %d control points",
			ErrInvalidArgument, degree, numCtrl)
	}
	return nil
}

// Degree returns the degree of the curve.
func (b *BSpline) Degree() int { return b.degree }

// Len returns the number of control points.
func (b *BSpline) Len() int { return len(b.ctrl) }

// ControlPoints returns a copy of the curve's control points.
func (b *BSpline) ControlPoints() []Vec3 { return slices.Clone(b.ctrl) }

// Knots returns a copy of the curve's normalized knot vector.
func (b *BSpline) Knots() []float64 { return slices.Clone(b.knots) }

// SetKnots replaces the knot vector. The new knots are copied and normalized
// to [0, 1].
//
// It returns an error wrapping [ErrInvalidKnots] if the knots aren't
// non-decreasing, if their number doesn't match the degree and number of
// control points, or if the curve's domain would be empty, which includes knots
// that are all equal. The curve is unchanged in that case.
func (b *BSpline) SetKnots(knots []float64) error {
	if err := CheckKnots(knots); err != nil {
		return err
	}
	if want := len(b.ctrl) + b.degree + 1; len(knots) != want {
		return fmt.Errorf("%w: have %d knots, want %d for degree %d and %d control points",
			ErrInvalidKnots, len(knots), want, b.degree, len(b.ctrl))
	}
	if lo, hi := knots[b.degree], knots[len(b.ctrl)]; lo == hi {
		return fmt.Errorf("%w: empty domain [%g, %g]", ErrInvalidKnots, lo, hi)
	}
	knots = slices.Clone(knots)
	NormalizeKnots(knots)
	b.knots = knots
	return nil
}

// UniformKnots returns the open uniform knot vector matching the curve's
// degree and number of control points. It does not modify the curve.
func (b *BSpline) UniformKnots() []float64 {
	return UniformKnots(b.degree, len(b.ctrl))
}

// Domain returns the range of valid parameters, [knots[degree], knots[n+1]]
// for n+1 control points. It is [0, 1] if the knot vector is clamped, which
// [UniformKnots] and the knots selected by fitters are.
func (b *BSpline) Domain() (float64, float64) {
	return b.knots[b.degree], b.knots[len(b.ctrl)]
}

// IsClamped reports whether the curve's knot vector is clamped.
func (b *BSpline) IsClamped() bool {
	return IsClamped(b.knots, b.degree)
}

// Start returns the curve's first point.
func (b *BSpline) Start() Vec3 {
	lo, _ := b.Domain()
	return b.mustEval(lo)
}

// End returns the curve's last point.
func (b *BSpline) End() Vec3 {
	_, hi := b.Domain()
	return b.mustEval(hi)
}

// BoundingBox returns the bounding box of the control polygon, which by the
// convex hull property also contains the curve.
func (b *BSpline) BoundingBox() Box3 {
	return NewBoxFromPoints(b.ctrl...)
}

func (b *BSpline) basis() *Basis {
	// The constructors guarantee valid arguments.
	bf, err := NewBasis(b.knots, b.degree, len(b.ctrl)-1)
	if err != nil {
		panic(err)
	}
	return bf
}

func (b *BSpline) mustEval(u float64) Vec3 {
	pt, err := b.Eval(u)
	if err != nil {
		panic(err)
	}
	return pt
}

// point computes the curve point at u given the non-zero basis functions
// of span.
func (b *BSpline) point(span int, funcs []float64) Vec3 {
	var pt Vec3
	base := span - b.degree
	for i, f := range funcs {
		pt = pt.axpy(f, b.ctrl[base+i])
	}
	return pt
}

// Eval evaluates the curve at u.
//
// It returns an error wrapping [ErrOutOfRange] if u is outside the curve's
// domain.
//
// This is algorithm A3.1 of The NURBS Book.
func (b *BSpline) Eval(u float64) (Vec3, error) {
	bf := b.basis()
	span, err := bf.FindSpan(u)
	if err != nil {
		return Vec3{}, err
	}
	return b.point(span, bf.BasisFuncs(span, u, nil)), nil
}

// Derivs returns the curve point at u followed by the curve's derivatives at
// u, up to and including the given order. Derivatives of an order higher than
// the degree are zero.
//
// This is algorithm A3.2 of The NURBS Book.
func (b *BSpline) Derivs(u float64, order int) ([]Vec3, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: negative derivative order %d", ErrInvalidArgument, order)
	}
	bf := b.basis()
	span, err := bf.FindSpan(u)
	if err != nil {
		return nil, err
	}
	ders := bf.DersBasisFuncs(span, u, min(order, b.degree), nil)
	out := make([]Vec3, order+1)
	for k, row := range ders {
		out[k] = b.point(span, row)
	}
	return out, nil
}

// Sample evaluates the curve at u = lo, lo+rate, lo+2·rate, … for as long as
// u doesn't exceed the end of the domain [lo, hi]. Every call computes a new
// slice.
//
// It returns an error wrapping [ErrInvalidArgument] if rate isn't positive or
// if it would produce more than [MaxSamples] samples.
func (b *BSpline) Sample(rate float64) ([]SplinePoint, error) {
	if err := checkSampleRate(rate); err != nil {
		return nil, err
	}
	lo, hi := b.Domain()
	count := math.Floor((hi-lo)/rate) + 1
	if count > MaxSamples {
		return nil, fmt.Errorf("%w: sample rate %g produces more than %d samples",
			ErrInvalidArgument, rate, MaxSamples)
	}
	out := make([]SplinePoint, 0, int(count))
	for pt := range b.samples(rate) {
		out = append(out, pt)
	}
	return out, nil
}

// Samples is like [BSpline.Sample] but returns an iterator that evaluates the
// curve lazily. It panics if rate isn't positive.
func (b *BSpline) Samples(rate float64) iter.Seq[SplinePoint] {
	if err := checkSampleRate(rate); err != nil {
		panic(err)
	}
	return b.samples(rate)
}

func (b *BSpline) samples(rate float64) iter.Seq[SplinePoint] {
	return func(yield func(SplinePoint) bool) {
		bf := b.basis()
		funcs := make([]float64, b.degree+1)
		start, end := b.Domain()
		for i := 0; ; i++ {
			// Multiplying instead of accumulating keeps rounding errors from
			// adding up over many steps.
			u := start + rate*float64(i)
			if u > end {
				return
			}
			span, err := bf.FindSpan(u)
			if err != nil {
				// u is within the domain.
				panic(err)
			}
			funcs = bf.BasisFuncs(span, u, funcs)
			pt := SplinePoint{
				ParamPoint: ParamPoint{Pt: b.point(span, funcs), U: u},
				Span:       span,
			}
			if !yield(pt) {
				return
			}
		}
	}
}

func checkSampleRate(rate float64) error {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: sample rate must be positive and finite, is %g", ErrInvalidArgument, rate)
	}
	return nil
}
