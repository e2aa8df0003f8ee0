package bspline

import (
	"fmt"
)

// Basis evaluates the B-spline basis functions of a degree over a knot vector.
//
// A Basis owns scratch buffers that are reused between calls. It is therefore
// not safe for concurrent use; every goroutine needs its own Basis. The knot
// vector is borrowed and must not be modified while the Basis is in use.
//
// The algorithms are those of The NURBS Book, section 2.5.
type Basis struct {
	knots  []float64
	degree int
	// n+1 is the number of basis functions, i.e. control points.
	n int

	left  []float64
	right []float64
	// ndu stores basis functions in the upper triangle and knot differences in
	// the lower triangle.
	ndu [][]float64
	// a stores, in an alternating fashion, the two most recently computed rows
	// of the derivative coefficients.
	a [2][]float64
}

// NewBasis returns a Basis for the given knot vector and degree, with n+1
// basis functions.
//
// The knot vector must be non-decreasing; this is not checked. It must be
// long enough to be indexed at knots[n+1] and knots[n+degree].
func NewBasis(knots []float64, degree, n int) (*Basis, error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: negative degree %d", ErrInvalidArgument, degree)
	}
	if n < degree {
		return nil, fmt.Errorf("%w: degree %d needs at least %d control points, have %d",
			ErrInvalidArgument, degree, degree+1, n+1)
	}
	if len(knots) <= max(n+1, n+degree) {
		return nil, fmt.Errorf("%w: %d knots are too few for degree %d and %d control points",
			ErrInvalidKnots, len(knots), degree, n+1)
	}

	b := &Basis{
		knots:  knots,
		degree: degree,
		n:      n,
		left:   make([]float64, degree+1),
		right:  make([]float64, degree+1),
		ndu:    make([][]float64, degree+1),
	}
	for i := range b.ndu {
		b.ndu[i] = make([]float64, degree+1)
	}
	for i := range b.a {
		b.a[i] = make([]float64, degree+1)
	}
	return b, nil
}

// Degree returns the degree of the basis functions.
func (b *Basis) Degree() int { return b.degree }

// Len returns the number of basis functions.
func (b *Basis) Len() int { return b.n + 1 }

// Domain returns the range of parameters that can be evaluated, which is
// [knots[degree], knots[n+1]]. For clamped knot vectors this is the range of
// the whole knot vector.
func (b *Basis) Domain() (float64, float64) {
	return b.knots[b.degree], b.knots[b.n+1]
}

// FindSpan returns the index of the knot span containing u, that is, the
// index i with knots[i] <= u < knots[i+1]. At the upper end of the domain it
// returns n, so that the span always refers to valid control points.
//
// It returns an error wrapping [ErrOutOfRange] if u lies outside of the
// domain.
//
// This is algorithm A2.1.
func (b *Basis) FindSpan(u float64) (int, error) {
	knots := b.knots
	lo, hi := b.Domain()
	if !(u >= lo && u <= hi) {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, u, lo, hi)
	}
	if u == hi {
		return b.n, nil
	}

	low, high := b.degree, b.n+1
	mid := (low + high) / 2
	for u < knots[mid] || u >= knots[mid+1] {
		if u < knots[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid, nil
}

// BasisFuncs computes the degree+1 basis functions that are non-zero at u,
// N[span-degree] through N[span]. The result is stored in dst if it has
// sufficient capacity, otherwise a new slice is allocated.
//
// The values sum to one, up to rounding.
//
// This is algorithm A2.2.
func (b *Basis) BasisFuncs(span int, u float64, dst []float64) []float64 {
	p := b.degree
	knots := b.knots
	left, right := b.left, b.right
	if cap(dst) < p+1 {
		dst = make([]float64, p+1)
	}
	dst = dst[:p+1]

	dst[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := range j {
			temp := dst[r] / (right[r+1] + left[j-r])
			dst[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		dst[j] = saved
	}
	return dst
}

// DersBasisFuncs computes the non-zero basis functions at u and their
// derivatives up to and including the given order. Row k of the result holds
// the k-th derivatives of N[span-degree] through N[span]; row 0 holds the
// values themselves.
//
// The result is stored in dst if it has the right shape, otherwise a new
// slice is allocated. Derivatives of an order higher than the degree are zero.
//
// This is algorithm A2.3.
func (b *Basis) DersBasisFuncs(span int, u float64, order int, dst [][]float64) [][]float64 {
	if order < 0 {
		panic(fmt.Sprintf("negative derivative order %d", order))
	}
	p := b.degree
	knots := b.knots
	left, right, ndu, a := b.left, b.right, b.ndu, b.a
	ders := shape2d(dst, order+1, p+1)

	ndu[0][0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := range j {
			// Lower triangle
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]
			// Upper triangle
			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}

	for j := 0; j <= p; j++ {
		ders[0][j] = ndu[j][p]
	}

	// Compute the derivatives (eq. 2.9).
	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1

		for k := 1; k <= order; k++ {
			var d float64
			rk := r - k
			pk := p - k

			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}

			var j1, j2 int
			if rk >= -1 {
				j1 = 1
			} else {
				j1 = -rk
			}
			if r-1 <= pk {
				j2 = k - 1
			} else {
				j2 = p - r
			}

			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}
			ders[k][r] = d

			s1, s2 = s2, s1
		}
	}

	// Multiply through by the falling factorial p!/(p-k)!.
	f := float64(p)
	for k := 1; k <= order; k++ {
		for j := range ders[k] {
			ders[k][j] *= f
		}
		f *= float64(p - k)
	}

	return ders
}

// shape2d returns a rows×cols matrix, reusing dst if it has exactly that
// shape.
func shape2d(dst [][]float64, rows, cols int) [][]float64 {
	if len(dst) == rows {
		ok := true
		for _, row := range dst {
			if len(row) != cols {
				ok = false
				break
			}
		}
		if ok {
			return dst
		}
	}
	out := make([][]float64, rows)
	data := make([]float64, rows*cols)
	for i := range out {
		out[i] = data[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return out
}
