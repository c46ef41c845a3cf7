package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Domain is an axis-aligned box of LAB values.
type Domain struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// DefaultDomain returns the CIELAB box L∈[0,100], a∈[-128,127], b∈[-128,127].
func DefaultDomain() Domain {
	return Domain{
		Min: mgl64.Vec3{0, -128, -128},
		Max: mgl64.Vec3{100, 127, 127},
	}
}

// Center returns the middle of the box.
func (d Domain) Center() mgl64.Vec3 {
	return d.Min.Add(d.Max).Mul(0.5)
}

// Contains checks if a point is inside the box, boundary included.
func (d Domain) Contains(p mgl64.Vec3) bool {
	return AABB(d).ContainsPoint(p)
}

// Transform maps p, expressed in the source domain, into d by rescaling
// each axis linearly.
func (d Domain) Transform(p mgl64.Vec3, source Domain) mgl64.Vec3 {
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		span := source.Max[i] - source.Min[i]
		if span == 0 {
			out[i] = d.Min[i]
			continue
		}
		out[i] = d.Min[i] + (p[i]-source.Min[i])*(d.Max[i]-d.Min[i])/span
	}
	return out
}

// Volume returns the box as a volume of six faces around its center.
// Every face polygon is listed counter-clockwise seen from outside.
func (d Domain) Volume() *Volume {
	lo, hi := d.Min, d.Max

	faces := []struct {
		plane    Plane
		vertices []mgl64.Vec3
	}{
		// L = max
		{
			plane: NewPlane(1, 0, 0, -hi.X()),
			vertices: []mgl64.Vec3{
				{hi.X(), lo.Y(), lo.Z()},
				{hi.X(), hi.Y(), lo.Z()},
				{hi.X(), hi.Y(), hi.Z()},
				{hi.X(), lo.Y(), hi.Z()},
			},
		},
		// L = min
		{
			plane: NewPlane(1, 0, 0, -lo.X()),
			vertices: []mgl64.Vec3{
				{lo.X(), lo.Y(), hi.Z()},
				{lo.X(), hi.Y(), hi.Z()},
				{lo.X(), hi.Y(), lo.Z()},
				{lo.X(), lo.Y(), lo.Z()},
			},
		},
		// a = max
		{
			plane: NewPlane(0, 1, 0, -hi.Y()),
			vertices: []mgl64.Vec3{
				{lo.X(), hi.Y(), lo.Z()},
				{lo.X(), hi.Y(), hi.Z()},
				{hi.X(), hi.Y(), hi.Z()},
				{hi.X(), hi.Y(), lo.Z()},
			},
		},
		// a = min
		{
			plane: NewPlane(0, 1, 0, -lo.Y()),
			vertices: []mgl64.Vec3{
				{lo.X(), lo.Y(), hi.Z()},
				{lo.X(), lo.Y(), lo.Z()},
				{hi.X(), lo.Y(), lo.Z()},
				{hi.X(), lo.Y(), hi.Z()},
			},
		},
		// b = max
		{
			plane: NewPlane(0, 0, 1, -hi.Z()),
			vertices: []mgl64.Vec3{
				{lo.X(), lo.Y(), hi.Z()},
				{hi.X(), lo.Y(), hi.Z()},
				{hi.X(), hi.Y(), hi.Z()},
				{lo.X(), hi.Y(), hi.Z()},
			},
		},
		// b = min
		{
			plane: NewPlane(0, 0, 1, -lo.Z()),
			vertices: []mgl64.Vec3{
				{hi.X(), lo.Y(), lo.Z()},
				{lo.X(), lo.Y(), lo.Z()},
				{lo.X(), hi.Y(), lo.Z()},
				{hi.X(), hi.Y(), lo.Z()},
			},
		},
	}

	volume := NewVolume(d.Center())
	for _, f := range faces {
		volume.AddFace(NewFace(f.plane, f.vertices...))
	}
	return volume
}
