package bspline

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// KnotSelector chooses the knot vector of a B-spline that is to be fitted to a
// sequence of parameterized points.
//
// SelectKnots must return numCtrl+degree+1 non-decreasing knots in [0, 1].
type KnotSelector interface {
	SelectKnots(src []ParamPoint, degree, numCtrl int) ([]float64, error)
}

// ControlSolver is an optional interface implemented by knot selectors that
// also compute the control points themselves. Fitters use [LeastSquares] for
// selectors that don't implement it.
type ControlSolver interface {
	SolveControlPoints(src []ParamPoint, degree int, knots []float64) ([]Vec3, error)
}

// KTP selects knots by averaging the parameters of the source points, so that
// every knot span contains at least one point. This is the knot placement
// technique of The NURBS Book, section 9.4.1, equation 9.69.
type KTP struct{}

var _ KnotSelector = KTP{}

// SelectKnots implements [KnotSelector].
func (KTP) SelectKnots(src []ParamPoint, degree, numCtrl int) ([]float64, error) {
	m := len(src) - 1
	n := numCtrl - 1
	p := degree
	if n < p || m < n {
		return nil, fmt.Errorf("%w: can't place knots for %d control points of degree %d on %d points",
			ErrInvalidArgument, numCtrl, degree, len(src))
	}

	knots := make([]float64, n+p+2)
	d := float64(m+1) / float64(n-p+1)
	for j := 1; j <= n-p; j++ {
		jd := float64(j) * d
		i := int(math.Floor(jd))
		alpha := jd - float64(i)
		knots[p+j] = (1-alpha)*src[i-1].U + alpha*src[i].U
	}
	for j := n + 1; j <= n+p+1; j++ {
		knots[j] = 1
	}
	return knots, nil
}

// UniformSelector selects open uniform knots, ignoring the source points'
// parameters. See [UniformKnots].
type UniformSelector struct{}

var _ KnotSelector = UniformSelector{}

// SelectKnots implements [KnotSelector].
func (UniformSelector) SelectKnots(src []ParamPoint, degree, numCtrl int) ([]float64, error) {
	return UniformKnots(degree, numCtrl), nil
}

// FixedKnots is a knot selector that always selects the same knots.
type FixedKnots []float64

var _ KnotSelector = FixedKnots(nil)

// SelectKnots implements [KnotSelector].
func (k FixedKnots) SelectKnots(src []ParamPoint, degree, numCtrl int) ([]float64, error) {
	return slices.Clone(k), nil
}

// Fitter fits a B-spline to a sequence of parameterized points in a
// least-squares sense. The fitted curve interpolates the first and last
// point.
type Fitter struct {
	src     []ParamPoint
	degree  int
	numCtrl int
	sel     KnotSelector
}

// NewFitter returns a fitter that fits a B-spline of the given degree with
// numCtrl control points to src, using sel to select the knot vector. A nil
// sel selects [KTP].
//
// The points' parameters must be non-decreasing and lie within [0, 1], with
// the first point at 0. There must be at least as many points as control
// points, and more control points than the degree. The points are copied.
func NewFitter(src []ParamPoint, degree, numCtrl int, sel KnotSelector) (*Fitter, error) {
	if len(src) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, have %d", ErrInvalidArgument, len(src))
	}
	if err := checkDegree(degree, numCtrl); err != nil {
		return nil, err
	}
	if numCtrl > len(src) {
		return nil, fmt.Errorf("%w: %d control points exceed the %d points to fit",
			ErrInvalidArgument, numCtrl, len(src))
	}
	if err := checkParams(src); err != nil {
		return nil, err
	}
	if sel == nil {
		sel = KTP{}
	}
	return &Fitter{
		src:     slices.Clone(src),
		degree:  degree,
		numCtrl: numCtrl,
		sel:     sel,
	}, nil
}

func checkParams(src []ParamPoint) error {
	if src[0].U != 0 {
		return fmt.Errorf("%w: first point has parameter %g, want 0", ErrInvalidArgument, src[0].U)
	}
	for i, pt := range src {
		if !(pt.U >= 0 && pt.U <= 1) {
			return fmt.Errorf("%w: parameter %g of point %d not in [0, 1]", ErrInvalidArgument, pt.U, i)
		}
		if i > 0 && pt.U < src[i-1].U {
			return fmt.Errorf("%w: parameters decrease at point %d", ErrInvalidArgument, i)
		}
	}
	return nil
}

// Fit selects the knot vector, solves for the control points, and returns the
// fitted curve.
func (f *Fitter) Fit() (*BSpline, error) {
	knots, err := f.sel.SelectKnots(f.src, f.degree, f.numCtrl)
	if err != nil {
		return nil, fmt.Errorf("selecting knots: %w", err)
	}
	if want := f.numCtrl + f.degree + 1; len(knots) != want {
		return nil, fmt.Errorf("%w: knot selector returned %d knots, want %d", ErrInvalidKnots, len(knots), want)
	}
	if err := CheckKnots(knots); err != nil {
		return nil, err
	}
	if knots[0] < 0 || knots[len(knots)-1] > 1 {
		return nil, fmt.Errorf("%w: selected knots not in [0, 1]", ErrInvalidKnots)
	}

	var ctrl []Vec3
	if cs, ok := f.sel.(ControlSolver); ok {
		ctrl, err = cs.SolveControlPoints(f.src, f.degree, knots)
	} else {
		ctrl, err = LeastSquares(f.src, f.degree, knots)
	}
	if err != nil {
		return nil, err
	}
	if len(ctrl) != f.numCtrl {
		return nil, fmt.Errorf("%w: solver returned %d control points, want %d",
			ErrInvalidArgument, len(ctrl), f.numCtrl)
	}
	return NewBSpline(f.degree, ctrl, knots)
}

// Fit fits a B-spline of the given degree with numCtrl control points to src,
// selecting knots with [KTP]. See [NewFitter] for the requirements on the
// arguments.
func Fit(src []ParamPoint, degree, numCtrl int) (*BSpline, error) {
	f, err := NewFitter(src, degree, numCtrl, nil)
	if err != nil {
		return nil, err
	}
	return f.Fit()
}

// LeastSquares computes the control points of the B-spline of the given
// degree over knots that best approximates src in a least-squares sense,
// subject to the curve interpolating the first and last point of src. The
// number of control points is len(knots)-degree-1.
//
// The interior control points are the solution of the normal equations
// (NᵀN)P = R, where N holds the basis functions of the interior control
// points evaluated at the interior points' parameters, and R the interior
// points, corrected for the contribution of the fixed end points, weighted by
// N. See The NURBS Book, section 9.4.1.
//
// It returns an error wrapping [ErrSingularSystem] if the normal equations
// can't be solved reliably. This happens when some interior control point
// isn't influenced by any of the points, for example because there are too
// few points for the number of control points.
func LeastSquares(src []ParamPoint, degree int, knots []float64) ([]Vec3, error) {
	p := degree
	n := len(knots) - p - 2
	m := len(src) - 1
	if m < 1 {
		return nil, fmt.Errorf("%w: need at least 2 points, have %d", ErrInvalidArgument, len(src))
	}
	if err := checkDegree(p, n+1); err != nil {
		return nil, err
	}

	q0, qm := src[0].Pt, src[m].Pt
	out := make([]Vec3, n+1)
	out[0], out[n] = q0, qm
	if n < 2 {
		// No interior control points.
		return out, nil
	}

	if m < 2 {
		return nil, fmt.Errorf("%w: no interior points for %d interior control points", ErrSingularSystem, n-1)
	}

	bf, err := NewBasis(knots, p, n)
	if err != nil {
		return nil, err
	}
	funcs := make([]float64, p+1)

	// Row k-1 of N and of the right-hand side belong to point k, column j-1 of
	// N to control point j. Every entry of N is set at most once.
	rows, cols := m-1, n-1
	nmat := sparse.NewCOO(rows, cols, nil, nil, nil)
	rx, ry, rz := make([]float64, rows), make([]float64, rows), make([]float64, rows)
	for k := 1; k < m; k++ {
		u := src[k].U
		span, err := bf.FindSpan(u)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", k, err)
		}
		funcs = bf.BasisFuncs(span, u, funcs)

		// funcs[j] is the basis function of control point span-p+j.
		var n0, nn float64
		if span <= p {
			n0 = funcs[p-span]
		}
		if span >= n {
			nn = funcs[p-(span-n)]
		}
		r := src[k].Pt.Sub(q0.Mul(n0)).Sub(qm.Mul(nn))
		rx[k-1], ry[k-1], rz[k-1] = r.Splat()

		for j := span - p; j <= span; j++ {
			if j <= 0 || j >= n {
				continue
			}
			if v := funcs[j-span+p]; v != 0 {
				nmat.Set(k-1, j-1, v)
			}
		}
	}

	csr := nmat.ToCSR()
	var gram sparse.CSR
	gram.Mul(csr.T(), csr)
	rhs := mat.NewDense(cols, 3, nil)
	for c, r := range [...][]float64{rx, ry, rz} {
		col := make([]float64, cols)
		csr.MulVecTo(col, true, r)
		rhs.SetCol(c, col)
	}

	var qr mat.QR
	qr.Factorize(&gram)
	var sol mat.Dense
	if err := qr.SolveTo(&sol, false, rhs); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: condition number %g", ErrSingularSystem, float64(cond))
		}
		return nil, fmt.Errorf("%w: %s", ErrSingularSystem, err)
	}

	for i := 1; i < n; i++ {
		pt := Vec(sol.At(i-1, 0), sol.At(i-1, 1), sol.At(i-1, 2))
		if pt.IsNaN() || pt.IsInf() {
			return nil, fmt.Errorf("%w: non-finite control point %d", ErrSingularSystem, i)
		}
		out[i] = pt
	}
	return out, nil
}
