package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Volume is a convex region described by the faces enclosing a representative point.
// Each face is oriented by the side of its plane the representative lies on.
type Volume struct {
	representative mgl64.Vec3
	Faces          []*Face
}

// NewVolume creates a volume around representative.
func NewVolume(representative mgl64.Vec3, faces ...*Face) *Volume {
	return &Volume{
		representative: representative,
		Faces:          append([]*Face(nil), faces...),
	}
}

// Representative returns the point the volume is built around.
func (v *Volume) Representative() mgl64.Vec3 {
	return v.representative
}

// AddFace appends a face.
func (v *Volume) AddFace(f *Face) {
	v.Faces = append(v.Faces, f)
}

// orientedDistance returns the signed distance from q to the face plane,
// positive on the representative side.
func (v *Volume) orientedDistance(f *Face, q mgl64.Vec3) float64 {
	d := f.Plane.SignedDistance(q)
	if f.Plane.Evaluate(v.representative) < 0 {
		return -d
	}
	return d
}

// IsInside reports whether q lies on the representative side of every face,
// boundary included.
func (v *Volume) IsInside(q mgl64.Vec3) bool {
	for _, f := range v.Faces {
		if v.orientedDistance(f, q) < -EPSILON {
			return false
		}
	}
	return true
}

// IsOnFace reports whether q lies on the plane of at least one face.
func (v *Volume) IsOnFace(q mgl64.Vec3) bool {
	for _, f := range v.Faces {
		if math.Abs(v.orientedDistance(f, q)) < EPSILON {
			return true
		}
	}
	return false
}

// IsInterior reports whether q is inside the volume and not on its boundary.
func (v *Volume) IsInterior(q mgl64.Vec3) bool {
	return v.IsInside(q) && !v.IsOnFace(q)
}

// Bounded reports whether no face is unbounded.
func (v *Volume) Bounded() bool {
	for _, f := range v.Faces {
		if f.Infinity {
			return false
		}
	}
	return true
}

// Vertices returns the distinct finite vertices of all faces, in face order.
func (v *Volume) Vertices() []mgl64.Vec3 {
	var vertices []mgl64.Vec3
	for _, f := range v.Faces {
	next:
		for _, p := range f.Vertices {
			for _, known := range vertices {
				if PointsEqual(known, p) {
					continue next
				}
			}
			vertices = append(vertices, p)
		}
	}
	return vertices
}

// Clone returns a deep copy of the volume.
func (v *Volume) Clone() *Volume {
	faces := make([]*Face, len(v.Faces))
	for i, f := range v.Faces {
		faces[i] = f.Clone()
	}
	return &Volume{representative: v.representative, Faces: faces}
}
