package fuzzycolor

import (
	"github.com/akmonengine/fuzzycolor/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Pack holds the geometry a membership query reads: the reference domain
// volume and, per prototype, its representative and its three volumes.
// A Pack is never modified once built, so it may be shared by goroutines.
type Pack struct {
	domain  *geometry.Volume
	entries []packEntry
}

type packEntry struct {
	representative mgl64.Vec3
	voronoi        *geometry.Volume
	core           *geometry.Volume
	support        *geometry.Volume

	// bounds encloses the support when bounded is set.
	bounds  geometry.AABB
	bounded bool
}

// PrecomputePack builds the constant geometry used by queries.
func (fcs *FuzzyColorSpace) PrecomputePack() {
	fcs.pack = fcs.buildPack()
}

// ClearPrecompute drops the precomputed geometry. Queries still work,
// rebuilding what they need on every call.
func (fcs *FuzzyColorSpace) ClearPrecompute() {
	fcs.pack = nil
}

// Precomputed reports whether a pack is available.
func (fcs *FuzzyColorSpace) Precomputed() bool {
	return fcs.pack != nil
}

func (fcs *FuzzyColorSpace) currentPack() *Pack {
	if fcs.pack != nil {
		return fcs.pack
	}
	return fcs.buildPack()
}

func (fcs *FuzzyColorSpace) buildPack() *Pack {
	pack := &Pack{
		domain:  fcs.Domain.Volume(),
		entries: make([]packEntry, len(fcs.Prototypes)),
	}
	for i, p := range fcs.Prototypes {
		e := packEntry{
			representative: p.Positive,
			voronoi:        p.Volume,
			core:           fcs.Cores[i],
			support:        fcs.Supports[i],
		}
		e.bounds, e.bounded = e.support.Bounds()
		pack.entries[i] = e
	}
	return pack
}
