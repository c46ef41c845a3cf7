// Package voronoi computes the Voronoi cell of a site among a finite set of
// 3-D points, as the list of bisector faces shared with its neighbors.
//
// Two backends are provided: Clipper, which computes the cell in process,
// and Qhull, which runs the qvoronoi program and parses its output.
package voronoi

import (
	"errors"
	"fmt"

	"github.com/akmonengine/fuzzycolor/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Ridge is a face of the cell: the part of the bisector between the site
// and one of its neighbors that bounds the cell.
type Ridge struct {
	// Neighbor is the index of the other point in the input list (site is 0).
	Neighbor int
	// Plane is the bisector, oriented so that Plane.Evaluate(site) > 0.
	Plane geometry.Plane
	// Vertices is the ordered polygon of the ridge. For unbounded ridges
	// only the finite vertices are kept.
	Vertices []mgl64.Vec3
	// Unbounded is set when the polygon has vertices at infinity.
	Unbounded bool
}

// Cell is the Voronoi cell of Site.
type Cell struct {
	Site   mgl64.Vec3
	Ridges []Ridge
}

// Bounded reports whether no ridge reaches infinity.
func (c *Cell) Bounded() bool {
	for _, r := range c.Ridges {
		if r.Unbounded {
			return false
		}
	}
	return true
}

// Volume converts the cell into a volume around its site.
func (c *Cell) Volume() *geometry.Volume {
	volume := geometry.NewVolume(c.Site)
	for _, r := range c.Ridges {
		face := geometry.NewFace(r.Plane, r.Vertices...)
		if r.Unbounded {
			face.SetInfinity()
		}
		volume.AddFace(face)
	}
	return volume
}

// Backend computes Voronoi cells.
type Backend interface {
	// CellOf returns the cell of points[0] in the diagram of points.
	CellOf(points []mgl64.Vec3) (*Cell, error)
}

var (
	// ErrTooFewPoints is returned when there is no point besides the site.
	ErrTooFewPoints = errors.New("voronoi: need the site and at least one other point")
	// ErrDuplicateSite is returned when another point coincides with the site.
	ErrDuplicateSite = errors.New("voronoi: a point coincides with the site")
)

// BackendError reports a failure of an external Voronoi program.
type BackendError struct {
	Program string
	Status  int
	Stderr  string
	Err     error
}

func (err *BackendError) Error() string {
	msg := fmt.Sprintf("voronoi: %s exited with status %d", err.Program, err.Status)
	if err.Stderr != "" {
		msg += ": " + err.Stderr
	}
	if err.Err != nil {
		msg += " (" + err.Err.Error() + ")"
	}
	return msg
}

func (err *BackendError) Unwrap() error {
	return err.Err
}

func checkPoints(points []mgl64.Vec3) error {
	if len(points) < 2 {
		return ErrTooFewPoints
	}
	for i, p := range points[1:] {
		if geometry.PointsEqual(p, points[0]) {
			return fmt.Errorf("%w: point %d", ErrDuplicateSite, i+1)
		}
	}
	return nil
}
