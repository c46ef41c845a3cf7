package voronoi

import (
	"math"

	"github.com/akmonengine/fuzzycolor/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// DEFAULT_HORIZON scales the square used to stand for a whole bisector plane,
// relative to the spread of the input points.
const DEFAULT_HORIZON = 1e3

// Clipper computes cells in process. Each bisector plane between the site
// and another point is represented by a large square, which is clipped by
// the half-spaces of every other bisector. What survives is the ridge; the
// vertices still lying on the square border are at infinity.
type Clipper struct {
	// Horizon overrides DEFAULT_HORIZON when positive.
	Horizon float64
}

var _ Backend = (*Clipper)(nil)

// vertex is a polygon corner. far is set when the edge going to the next
// corner lies on the border of the initial square.
type vertex struct {
	p   mgl64.Vec3
	far bool
}

// CellOf implements the Backend interface.
func (c *Clipper) CellOf(points []mgl64.Vec3) (*Cell, error) {
	if err := checkPoints(points); err != nil {
		return nil, err
	}

	site := points[0]
	extent := 1.0
	for _, p := range points[1:] {
		extent = math.Max(extent, p.Sub(site).Len())
	}
	horizon := c.Horizon
	if horizon <= 0 {
		horizon = DEFAULT_HORIZON
	}
	radius := horizon * extent
	minArea := 1e-9 * extent * extent
	tolerance := 1e-12 * radius

	bisectors := make([]geometry.Plane, len(points))
	for i := 1; i < len(points); i++ {
		bisectors[i] = geometry.Bisector(site, points[i])
	}

	cell := &Cell{Site: site}
	for i := 1; i < len(points); i++ {
		polygon := initialSquare(bisectors[i], site, points[i], radius)

		for j := 1; j < len(points) && len(polygon) > 0; j++ {
			if j == i {
				continue
			}
			polygon = clip(polygon, bisectors[j])
		}

		polygon = dedupe(polygon, tolerance)
		if len(polygon) < 3 || polygonArea(polygon) < minArea {
			continue
		}

		vertices, unbounded := finitePart(polygon)
		cell.Ridges = append(cell.Ridges, Ridge{
			Neighbor:  i,
			Plane:     bisectors[i],
			Vertices:  vertices,
			Unbounded: unbounded,
		})
	}

	return cell, nil
}

// initialSquare returns a square of half side radius, lying on the bisector
// of site and other and centered on their midpoint.
func initialSquare(plane geometry.Plane, site, other mgl64.Vec3, radius float64) []vertex {
	center := site.Add(other).Mul(0.5)
	t1, t2 := tangentBasis(plane.Normal().Normalize())
	t1, t2 = t1.Mul(radius), t2.Mul(radius)

	return []vertex{
		{p: center.Sub(t1).Sub(t2), far: true},
		{p: center.Add(t1).Sub(t2), far: true},
		{p: center.Add(t1).Add(t2), far: true},
		{p: center.Sub(t1).Add(t2), far: true},
	}
}

// tangentBasis returns two unit vectors such that (t1, t2, normal) is direct.
func tangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	var t1 mgl64.Vec3
	if math.Abs(normal.X()) > 0.9 {
		t1 = mgl64.Vec3{0, 1, 0}
	} else {
		t1 = mgl64.Vec3{1, 0, 0}
	}

	t1 = t1.Sub(normal.Mul(t1.Dot(normal))).Normalize()
	t2 := normal.Cross(t1).Normalize()

	return t1, t2
}

// clip keeps the part of the polygon where plane is non-negative
// (Sutherland-Hodgman, single plane).
func clip(polygon []vertex, plane geometry.Plane) []vertex {
	n := len(polygon)
	out := make([]vertex, 0, n+1)

	for i := 0; i < n; i++ {
		cur, next := polygon[i], polygon[(i+1)%n]
		dc, dn := plane.SignedDistance(cur.p), plane.SignedDistance(next.p)

		switch {
		case dc >= 0 && dn >= 0:
			out = append(out, cur)
		case dc >= 0:
			out = append(out, cur)
			out = append(out, vertex{p: lerp(cur.p, next.p, dc/(dc-dn)), far: false})
		case dn >= 0:
			out = append(out, vertex{p: lerp(cur.p, next.p, dc/(dc-dn)), far: cur.far})
		}
	}

	return out
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// dedupe merges consecutive corners closer than tolerance.
func dedupe(polygon []vertex, tolerance float64) []vertex {
	if len(polygon) == 0 {
		return polygon
	}

	out := make([]vertex, 0, len(polygon))
	for _, v := range polygon {
		if len(out) > 0 && out[len(out)-1].p.Sub(v.p).Len() < tolerance {
			// the surviving corner leads along the edge of the dropped one
			out[len(out)-1].far = v.far
			continue
		}
		out = append(out, v)
	}

	for len(out) > 1 && out[len(out)-1].p.Sub(out[0].p).Len() < tolerance {
		out = out[:len(out)-1]
	}

	return out
}

func polygonArea(polygon []vertex) float64 {
	var sum mgl64.Vec3
	origin := polygon[0].p
	for i := 1; i < len(polygon)-1; i++ {
		sum = sum.Add(polygon[i].p.Sub(origin).Cross(polygon[i+1].p.Sub(origin)))
	}
	return sum.Len() / 2
}

// finitePart drops the corners lying on the square border. The remaining
// corners form a single chain, returned in polygon order.
func finitePart(polygon []vertex) ([]mgl64.Vec3, bool) {
	n := len(polygon)
	infinite := make([]bool, n)
	unbounded := false
	for i := range polygon {
		infinite[i] = polygon[i].far || polygon[(i+n-1)%n].far
		unbounded = unbounded || infinite[i]
	}

	if !unbounded {
		vertices := make([]mgl64.Vec3, n)
		for i, v := range polygon {
			vertices[i] = v.p
		}
		return vertices, false
	}

	start := 0
	for i := range polygon {
		if infinite[(i+n-1)%n] && !infinite[i] {
			start = i
			break
		}
	}

	var vertices []mgl64.Vec3
	for k := 0; k < n; k++ {
		i := (start + k) % n
		if infinite[i] {
			if len(vertices) > 0 {
				break
			}
			continue
		}
		vertices = append(vertices, polygon[i].p)
	}

	return vertices, true
}
