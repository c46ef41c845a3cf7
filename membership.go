package fuzzycolor

import (
	"fmt"
	"math"

	"github.com/akmonengine/fuzzycolor/geometry"
	"github.com/akmonengine/fuzzycolor/membership"
	"github.com/go-gl/mathgl/mgl64"
)

// Degree is the membership of a LAB point to one prototype.
type Degree struct {
	Label string
	Value float64
}

// Membership lists the non-zero degrees of a LAB point, in prototype order.
type Membership []Degree

// Get returns the degree for label.
func (m Membership) Get(label string) (float64, bool) {
	for _, d := range m {
		if d.Label == label {
			return d.Value, true
		}
	}
	return 0, false
}

// Winner returns the highest degree. Ties go to the first prototype.
func (m Membership) Winner() (Degree, bool) {
	if len(m) == 0 {
		return Degree{}, false
	}
	best := m[0]
	for _, d := range m[1:] {
		if d.Value > best.Value {
			best = d
		}
	}
	return best, true
}

// Membership returns the normalized degrees of lab for every prototype,
// dropping zeros. It is empty when lab is outside every support.
func (fcs *FuzzyColorSpace) Membership(lab mgl64.Vec3) Membership {
	return fcs.currentPack().membership(lab, fcs.Labels())
}

// MembershipFor returns the raw degree, in [0,1], of lab for the prototype at index.
func (fcs *FuzzyColorSpace) MembershipFor(lab mgl64.Vec3, index int) (float64, error) {
	if index < 0 || index >= len(fcs.Prototypes) {
		return 0, fmt.Errorf("fuzzycolor: prototype index %d out of range [0,%d)", index, len(fcs.Prototypes))
	}
	return fcs.currentPack().degree(index, lab), nil
}

// Degrees returns the raw degree of lab for every prototype, in order.
func (fcs *FuzzyColorSpace) Degrees(lab mgl64.Vec3) []float64 {
	pack := fcs.currentPack()
	degrees := make([]float64, len(pack.entries))
	for i := range pack.entries {
		degrees[i] = pack.degree(i, lab)
	}
	return degrees
}

func (p *Pack) membership(lab mgl64.Vec3, labels []string) Membership {
	degrees := make([]float64, len(p.entries))
	sum := 0.0
	for i := range p.entries {
		degrees[i] = p.degree(i, lab)
		sum += degrees[i]
	}
	if sum == 0 {
		return nil
	}

	var m Membership
	for i, d := range degrees {
		if d == 0 {
			continue
		}
		m = append(m, Degree{Label: labels[i], Value: d / sum})
	}
	return m
}

// degree computes the membership of q to prototype i:
// 0 outside the support or on its boundary, 1 inside the core, and in
// between the spline of the distance to the representative, parameterized
// by where the ray from the representative through q leaves the core,
// the Voronoi volume and the support.
func (p *Pack) degree(i int, q mgl64.Vec3) float64 {
	e := &p.entries[i]

	if e.bounded && !e.bounds.ContainsPoint(q) {
		return 0
	}
	if !e.support.IsInside(q) || e.support.IsOnFace(q) {
		return 0
	}
	if e.core.IsInside(q) {
		return 1
	}

	dCube := math.Inf(1)
	if exit, ok := geometry.IntersectionWithVolume(p.domain, e.representative, q); ok {
		dCube = geometry.EuclideanDistance(e.representative, exit)
	}
	boundary := func(v *geometry.Volume) float64 {
		if hit, ok := geometry.IntersectionWithVolume(v, e.representative, q); ok {
			return geometry.EuclideanDistance(e.representative, hit)
		}
		return dCube
	}

	params := membership.Params{
		A: boundary(e.core),
		B: boundary(e.voronoi),
		C: boundary(e.support),
	}.Sorted()

	d := geometry.EuclideanDistance(e.representative, q)
	return math.Max(0, math.Min(1, membership.Value(d, params)))
}
