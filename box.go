package bspline

import (
	"math"
)

// Box3 is an axis-aligned bounding box.
//
// The zero value is the degenerate box at the origin. Use [EmptyBox] as the
// starting point when accumulating points.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBox returns a box that contains nothing and that is the identity for
// [Box3.Union] and [Box3.UnionPoint].
func EmptyBox() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewBoxFromPoints returns the smallest box containing all of pts. It returns
// [EmptyBox] for no points.
func NewBoxFromPoints(pts ...Vec3) Box3 {
	b := EmptyBox()
	for _, pt := range pts {
		b = b.UnionPoint(pt)
	}
	return b
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Size returns the extents of the box along each axis.
func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the box.
func (b Box3) Center() Vec3 {
	return b.Min.Lerp(b.Max, 0.5)
}

// Contains reports whether pt lies within the box, including its boundary.
func (b Box3) Contains(pt Vec3) bool {
	return b.Min.X <= pt.X && pt.X <= b.Max.X &&
		b.Min.Y <= pt.Y && pt.Y <= b.Max.Y &&
		b.Min.Z <= pt.Z && pt.Z <= b.Max.Z
}

// Union returns the smallest box containing both b and o.
func (b Box3) Union(o Box3) Box3 {
	return Box3{
		Min: Vec3{
			X: min(b.Min.X, o.Min.X),
			Y: min(b.Min.Y, o.Min.Y),
			Z: min(b.Min.Z, o.Min.Z),
		},
		Max: Vec3{
			X: max(b.Max.X, o.Max.X),
			Y: max(b.Max.Y, o.Max.Y),
			Z: max(b.Max.Z, o.Max.Z),
		},
	}
}

// UnionPoint returns the smallest box containing b and pt.
func (b Box3) UnionPoint(pt Vec3) Box3 {
	return b.Union(Box3{Min: pt, Max: pt})
}
