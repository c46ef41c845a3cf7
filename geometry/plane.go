// Package geometry implements the 3-D kernel used to describe fuzzy color
// volumes in CIELAB: planes, polygonal faces, convex volumes, the reference
// domain box and the distance/intersection tools that operate on them.
//
// Points and vectors are plain mgl64.Vec3 values, interpreted as (L, a, b).
package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// EPSILON is the tolerance used by every predicate of the package.
const EPSILON = 1e-9

// Plane is the set of points where A·x + B·y + C·z + D = 0.
// The sign of Evaluate tells on which side of the plane a point lies.
type Plane struct {
	A, B, C, D float64
}

// NewPlane returns the plane with the given coefficients.
func NewPlane(a, b, c, d float64) Plane {
	return Plane{A: a, B: b, C: c, D: d}
}

// PlaneFromNormal returns the plane with the given normal going through point.
func PlaneFromNormal(normal, point mgl64.Vec3) Plane {
	return Plane{
		A: normal.X(),
		B: normal.Y(),
		C: normal.Z(),
		D: -normal.Dot(point),
	}
}

// Normal returns (A, B, C). It is not normalized.
func (p Plane) Normal() mgl64.Vec3 {
	return mgl64.Vec3{p.A, p.B, p.C}
}

// Evaluate returns the signed value A·x + B·y + C·z + D.
func (p Plane) Evaluate(q mgl64.Vec3) float64 {
	return p.A*q.X() + p.B*q.Y() + p.C*q.Z() + p.D
}

// SignedDistance returns Evaluate(q) divided by the length of the normal.
func (p Plane) SignedDistance(q mgl64.Vec3) float64 {
	n := p.Normal().Len()
	if n < EPSILON {
		return 0
	}
	return p.Evaluate(q) / n
}

// Flip returns the same plane with the opposite orientation.
func (p Plane) Flip() Plane {
	return Plane{A: -p.A, B: -p.B, C: -p.C, D: -p.D}
}

// Equal reports whether both planes have identical coefficients.
func (p Plane) Equal(o Plane) bool {
	return p.A == o.A && p.B == o.B && p.C == o.C && p.D == o.D
}

// Degenerate reports whether the normal vector is null.
func (p Plane) Degenerate() bool {
	return p.Normal().Len() < EPSILON
}

func (p Plane) String() string {
	return fmt.Sprintf("%gx%+gy%+gz%+g", p.A, p.B, p.C, p.D)
}
