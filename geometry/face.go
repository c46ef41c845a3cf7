package geometry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrGeometry is returned when a geometric precondition does not hold.
var ErrGeometry = errors.New("geometry error")

// Face is a polygon lying on a plane.
// When Infinity is set the face is unbounded and Vertices only hold its finite part.
type Face struct {
	Plane    Plane
	Vertices []mgl64.Vec3
	Infinity bool
}

// NewFace creates a face on plane with the given vertices, in polygon order.
func NewFace(plane Plane, vertices ...mgl64.Vec3) *Face {
	return &Face{
		Plane:    plane,
		Vertices: append([]mgl64.Vec3(nil), vertices...),
	}
}

// AddVertex appends a vertex to the polygon.
func (f *Face) AddVertex(v mgl64.Vec3) {
	f.Vertices = append(f.Vertices, v)
}

// SetInfinity marks the face as unbounded.
func (f *Face) SetInfinity() {
	f.Infinity = true
}

// EvaluatePoint evaluates the face plane at q.
func (f *Face) EvaluatePoint(q mgl64.Vec3) float64 {
	return f.Plane.Evaluate(q)
}

// Clone returns a deep copy of the face.
func (f *Face) Clone() *Face {
	return &Face{
		Plane:    f.Plane,
		Vertices: append([]mgl64.Vec3(nil), f.Vertices...),
		Infinity: f.Infinity,
	}
}

// Area returns the polygon area using a triangle fan from the first vertex.
// Unbounded faces and faces with less than 3 vertices have no area.
func (f *Face) Area() (float64, error) {
	if f.Infinity {
		return 0, fmt.Errorf("%w: area of an unbounded face", ErrGeometry)
	}
	if len(f.Vertices) < 3 {
		return 0, fmt.Errorf("%w: face has %d vertices, need at least 3", ErrGeometry, len(f.Vertices))
	}

	// Vector area: the fan may cover vertices in any planar order
	var sum mgl64.Vec3
	origin := f.Vertices[0]
	for i := 1; i < len(f.Vertices)-1; i++ {
		ab := f.Vertices[i].Sub(origin)
		ac := f.Vertices[i+1].Sub(origin)
		sum = sum.Add(ab.Cross(ac))
	}

	return sum.Len() / 2, nil
}

// Centroid returns the average of the finite vertices.
func (f *Face) Centroid() (mgl64.Vec3, error) {
	if len(f.Vertices) == 0 {
		return mgl64.Vec3{}, fmt.Errorf("%w: face has no vertex", ErrGeometry)
	}

	var centroid mgl64.Vec3
	for _, v := range f.Vertices {
		centroid = centroid.Add(v)
	}
	return centroid.Mul(1.0 / float64(len(f.Vertices))), nil
}
