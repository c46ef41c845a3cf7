package prototype

import (
	"fmt"

	"github.com/akmonengine/fuzzycolor/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// DEFAULT_LAMBDA is the default scaling factor between a volume and its core.
const DEFAULT_LAMBDA = 0.5

// Scale derives the core and the support of volume. Every face at distance
// h from the representative is moved to λ·h for the core and (2-λ)·h for
// the support; its vertices slide along the rays from the representative.
func Scale(volume *geometry.Volume, lambda float64) (core, support *geometry.Volume, err error) {
	if lambda <= 0 || lambda >= 1 {
		return nil, nil, fmt.Errorf("prototype: scaling factor %g not in (0,1)", lambda)
	}

	representative := volume.Representative()
	core = geometry.NewVolume(representative)
	support = geometry.NewVolume(representative)

	for _, face := range volume.Faces {
		d := geometry.DistancePointPlane(face.Plane, representative) * (1 - lambda)
		first, second := geometry.ParallelPlanes(face.Plane, d)

		inner, outer := first, second
		if geometry.DistancePointPlane(first, representative) > geometry.DistancePointPlane(second, representative) {
			inner, outer = second, first
		}

		core.AddFace(slide(face, inner, representative))
		support.AddFace(slide(face, outer, representative))
	}

	return core, support, nil
}

// slide projects the vertices of face onto plane, along the rays coming from origin.
func slide(face *geometry.Face, plane geometry.Plane, origin mgl64.Vec3) *geometry.Face {
	moved := geometry.NewFace(plane)
	moved.Infinity = face.Infinity

	for _, v := range face.Vertices {
		if p, ok := geometry.IntersectionPlaneSegment(plane, origin, v); ok {
			moved.AddVertex(p)
		}
	}

	return moved
}
