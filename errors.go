package bspline

import (
	"errors"
)

var (
	// ErrInvalidArgument is returned for arguments outside an operation's
	// domain, such as a non-positive sample rate or a degree that isn't smaller
	// than the number of control points.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidKnots is returned for knot vectors that aren't non-decreasing
	// or that don't match the degree and number of control points.
	ErrInvalidKnots = errors.New("invalid knot vector")
	// ErrOutOfRange is returned when evaluating at a parameter outside the
	// knot vector's domain.
	ErrOutOfRange = errors.New("parameter out of range")
	// ErrSingularSystem is returned by least-squares fitting when the normal
	// equations are singular or too ill-conditioned to solve, for example
	// because too few samples fall into the support of some control point.
	ErrSingularSystem = errors.New("singular least-squares system")
)
