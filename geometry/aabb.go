package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Bounds returns the box enclosing a closed volume. ok is false when the
// volume is unbounded or its faces are not all closed polygons, in which
// case the vertices do not enclose it.
func (v *Volume) Bounds() (box AABB, ok bool) {
	if len(v.Faces) < 4 || !v.Bounded() {
		return AABB{}, false
	}
	for _, f := range v.Faces {
		if len(f.Vertices) < 3 {
			return AABB{}, false
		}
	}

	inf := math.Inf(1)
	box = AABB{Min: mgl64.Vec3{inf, inf, inf}, Max: mgl64.Vec3{-inf, -inf, -inf}}
	for _, f := range v.Faces {
		for _, p := range f.Vertices {
			for i := range 3 {
				box.Min[i] = math.Min(box.Min[i], p[i])
				box.Max[i] = math.Max(box.Max[i], p[i])
			}
		}
	}
	return box, true
}
