// Package fuzzycolor assembles fuzzy color spaces: a list of prototypes,
// each owning a Voronoi volume in CIELAB plus the core and support derived
// from it, and answers membership queries for LAB points.
package fuzzycolor

import (
	"errors"
	"fmt"

	"github.com/akmonengine/fuzzycolor/geometry"
	"github.com/akmonengine/fuzzycolor/prototype"
)

const (
	DEFAULT_WORKERS = 1
	DEFAULT_LAMBDA  = prototype.DEFAULT_LAMBDA
)

var (
	// ErrDomain is returned when a prototype lies outside the reference domain.
	ErrDomain = errors.New("fuzzycolor: representative outside the reference domain")
	// ErrMismatch is returned when cores or supports do not match the prototypes.
	ErrMismatch = errors.New("fuzzycolor: volumes do not match the prototypes")
)

// Options configures a fuzzy color space. The zero value selects the defaults.
type Options struct {
	// Lambda is the core scaling factor, in (0,1).
	Lambda float64
	// Domain is the reference LAB box; nil selects geometry.DefaultDomain.
	Domain *geometry.Domain
	// Workers is the number of goroutines used by batch evaluations.
	Workers int
}

// FuzzyColorSpace is an ordered list of prototypes with their cores and supports.
// Cores[i] and Supports[i] belong to Prototypes[i].
type FuzzyColorSpace struct {
	Name       string
	Prototypes []*prototype.Prototype
	Cores      []*geometry.Volume
	Supports   []*geometry.Volume
	Lambda     float64
	Domain     geometry.Domain
	Workers    int

	pack *Pack
}

// New builds a fuzzy color space, deriving cores and supports from the
// prototype volumes.
func New(name string, prototypes []*prototype.Prototype, opts Options) (*FuzzyColorSpace, error) {
	fcs := newSpace(name, prototypes, opts)
	if err := fcs.checkDomain(); err != nil {
		return nil, err
	}
	if err := fcs.derive(); err != nil {
		return nil, err
	}
	fcs.PrecomputePack()
	return fcs, nil
}

// Restore builds a fuzzy color space from already computed cores and supports.
func Restore(name string, prototypes []*prototype.Prototype, cores, supports []*geometry.Volume, opts Options) (*FuzzyColorSpace, error) {
	if len(cores) != len(prototypes) || len(supports) != len(prototypes) {
		return nil, fmt.Errorf("%w: %d prototypes, %d cores, %d supports", ErrMismatch, len(prototypes), len(cores), len(supports))
	}
	for i, p := range prototypes {
		if !geometry.PointsEqual(cores[i].Representative(), p.Positive) ||
			!geometry.PointsEqual(supports[i].Representative(), p.Positive) {
			return nil, fmt.Errorf("%w: %q is not the representative of its core and support", ErrMismatch, p.Label)
		}
	}

	fcs := newSpace(name, prototypes, opts)
	if err := fcs.checkDomain(); err != nil {
		return nil, err
	}
	fcs.Cores = append([]*geometry.Volume(nil), cores...)
	fcs.Supports = append([]*geometry.Volume(nil), supports...)
	fcs.PrecomputePack()
	return fcs, nil
}

func newSpace(name string, prototypes []*prototype.Prototype, opts Options) *FuzzyColorSpace {
	fcs := &FuzzyColorSpace{
		Name:       name,
		Prototypes: append([]*prototype.Prototype(nil), prototypes...),
		Lambda:     opts.Lambda,
		Domain:     geometry.DefaultDomain(),
		Workers:    max(DEFAULT_WORKERS, opts.Workers),
	}
	if fcs.Lambda == 0 {
		fcs.Lambda = DEFAULT_LAMBDA
	}
	if opts.Domain != nil {
		fcs.Domain = *opts.Domain
	}
	return fcs
}

func (fcs *FuzzyColorSpace) checkDomain() error {
	for _, p := range fcs.Prototypes {
		if !fcs.Domain.Contains(p.Positive) {
			return fmt.Errorf("%w: %q at %v", ErrDomain, p.Label, p.Positive)
		}
	}
	return nil
}

// derive computes the cores and supports from the prototype volumes.
func (fcs *FuzzyColorSpace) derive() error {
	cores := make([]*geometry.Volume, len(fcs.Prototypes))
	supports := make([]*geometry.Volume, len(fcs.Prototypes))
	for i, p := range fcs.Prototypes {
		core, support, err := prototype.Scale(p.Volume, fcs.Lambda)
		if err != nil {
			return fmt.Errorf("fuzzycolor: %q: %w", p.Label, err)
		}
		cores[i], supports[i] = core, support
	}

	fcs.Cores, fcs.Supports = cores, supports
	return nil
}

// SetLambda changes the scaling factor and derives the cores and supports again.
// On error the space is left unchanged.
func (fcs *FuzzyColorSpace) SetLambda(lambda float64) error {
	previous := fcs.Lambda
	fcs.Lambda = lambda
	if err := fcs.derive(); err != nil {
		fcs.Lambda = previous
		return err
	}
	if fcs.pack != nil {
		fcs.PrecomputePack()
	}
	return nil
}

// Len returns the number of prototypes.
func (fcs *FuzzyColorSpace) Len() int {
	return len(fcs.Prototypes)
}

// Labels returns the prototype labels, in order.
func (fcs *FuzzyColorSpace) Labels() []string {
	labels := make([]string, len(fcs.Prototypes))
	for i, p := range fcs.Prototypes {
		labels[i] = p.Label
	}
	return labels
}
