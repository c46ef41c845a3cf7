package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

// PointsEqual reports whether p and q match on every axis up to EPSILON.
func PointsEqual(p, q mgl64.Vec3) bool {
	return scalar.EqualWithinAbs(p.X(), q.X(), EPSILON) &&
		scalar.EqualWithinAbs(p.Y(), q.Y(), EPSILON) &&
		scalar.EqualWithinAbs(p.Z(), q.Z(), EPSILON)
}

// EuclideanDistance returns ‖p2 - p1‖.
func EuclideanDistance(p1, p2 mgl64.Vec3) float64 {
	return p2.Sub(p1).Len()
}

// DistancePointPlane returns the perpendicular distance between p and the plane.
func DistancePointPlane(plane Plane, p mgl64.Vec3) float64 {
	return math.Abs(plane.SignedDistance(p))
}

// SameDirection reports whether u and v point the same way, i.e. the cosine
// of their angle lies in (1-EPSILON, 1+EPSILON). Null vectors have no direction.
func SameDirection(u, v mgl64.Vec3) bool {
	nu, nv := u.Len(), v.Len()
	if nu < EPSILON || nv < EPSILON {
		return false
	}
	cos := u.Dot(v) / (nu * nv)
	return scalar.EqualWithinAbs(cos, 1, EPSILON)
}

// IntersectionPlaneSegment returns the point (1-t)·p0 + t·p1 lying on the plane.
// The parameter t is not restricted to [0,1]; callers decide what to keep.
// It returns false when the segment is parallel to the plane.
func IntersectionPlaneSegment(plane Plane, p0, p1 mgl64.Vec3) (mgl64.Vec3, bool) {
	direction := p1.Sub(p0)
	denominator := plane.Normal().Dot(direction)
	if math.Abs(denominator) < EPSILON {
		return mgl64.Vec3{}, false
	}

	t := -plane.Evaluate(p0) / denominator
	return p0.Add(direction.Mul(t)), true
}

// IntersectionWithVolume casts a ray from `from` towards `to` and returns the
// closest point where it meets the plane of one of the volume faces.
// Intersections lying behind `from` are ignored.
func IntersectionWithVolume(volume *Volume, from, to mgl64.Vec3) (mgl64.Vec3, bool) {
	ray := to.Sub(from)

	var closest mgl64.Vec3
	found := false
	minDistance := math.Inf(1)

	for _, face := range volume.Faces {
		point, ok := IntersectionPlaneSegment(face.Plane, from, to)
		if !ok {
			continue
		}
		if !SameDirection(point.Sub(from), ray) {
			continue
		}

		distance := EuclideanDistance(from, point)
		if distance < minDistance {
			minDistance = distance
			closest = point
			found = true
		}
	}

	return closest, found
}

// ParallelPlanes returns the two planes parallel to plane at distance d on
// each side. The first one is shifted along the normal, the second against it.
func ParallelPlanes(plane Plane, d float64) (Plane, Plane) {
	shift := d * plane.Normal().Len()

	return Plane{A: plane.A, B: plane.B, C: plane.C, D: plane.D - shift},
		Plane{A: plane.A, B: plane.B, C: plane.C, D: plane.D + shift}
}

// Bisector returns the perpendicular bisector plane of the segment [p, q],
// oriented so that Evaluate(p) > 0.
func Bisector(p, q mgl64.Vec3) Plane {
	return PlaneFromNormal(p.Sub(q), p.Add(q).Mul(0.5))
}

// TriangleArea returns the area of the triangle (a, b, c).
func TriangleArea(a, b, c mgl64.Vec3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Len() / 2
}
