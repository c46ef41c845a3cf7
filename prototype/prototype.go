// Package prototype builds the crisp volume of a fuzzy color: the Voronoi
// cell of its positive LAB point against its negatives, and derives the core
// and support volumes from it.
package prototype

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akmonengine/fuzzycolor/geometry"
	"github.com/akmonengine/fuzzycolor/voronoi"
	"github.com/go-gl/mathgl/mgl64"
)

// FALSE_NEGATIVES sit just outside the default LAB domain, one near each
// corner. Adding them to the negatives bounds every cell without changing
// the cells inside the domain.
var FALSE_NEGATIVES = [8]mgl64.Vec3{
	{-5, -140, -140},
	{-5, -140, 140},
	{-5, 140, -140},
	{-5, 140, 140},
	{105, -140, -140},
	{105, -140, 140},
	{105, 140, -140},
	{105, 140, 140},
}

var (
	// ErrPositiveInNegatives is returned when the positive point is also a negative.
	ErrPositiveInNegatives = errors.New("prototype: positive point is among the negatives")
	// ErrNoNegative is returned when a prototype has nothing to be contrasted with.
	ErrNoNegative = errors.New("prototype: no negative point")
	// ErrRepresentative is returned when a volume is not built around the positive.
	ErrRepresentative = errors.New("prototype: volume representative differs from the positive")
	// ErrLabel is returned for a blank label or one spanning several lines.
	ErrLabel = errors.New("prototype: label must be a non-blank single line")
)

// Prototype is a named color: a positive LAB point, the points it is
// contrasted with, and the Voronoi volume separating them.
type Prototype struct {
	Label     string
	Positive  mgl64.Vec3
	Negatives []mgl64.Vec3
	Volume    *geometry.Volume
}

// Builder computes prototypes with a given Voronoi backend.
type Builder struct {
	// Backend defaults to an in-process voronoi.Clipper.
	Backend voronoi.Backend
	// AddFalseNegatives extends the negatives with FALSE_NEGATIVES.
	AddFalseNegatives bool
}

// New builds a prototype with the in-process backend.
func New(label string, positive mgl64.Vec3, negatives []mgl64.Vec3, addFalse bool) (*Prototype, error) {
	b := &Builder{AddFalseNegatives: addFalse}
	return b.Build(label, positive, negatives)
}

// Build computes the Voronoi volume of positive against negatives.
func (b *Builder) Build(label string, positive mgl64.Vec3, negatives []mgl64.Vec3) (*Prototype, error) {
	if err := checkLabel(label); err != nil {
		return nil, fmt.Errorf("prototype %q: %w", label, err)
	}
	if err := checkNegatives(positive, negatives); err != nil {
		return nil, fmt.Errorf("prototype %q: %w", label, err)
	}

	points := make([]mgl64.Vec3, 0, 1+len(negatives)+len(FALSE_NEGATIVES))
	points = append(points, positive)
	points = append(points, negatives...)
	if b.AddFalseNegatives {
		for _, fn := range FALSE_NEGATIVES {
			if !contains(points, fn) {
				points = append(points, fn)
			}
		}
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("prototype %q: %w", label, ErrNoNegative)
	}

	backend := b.Backend
	if backend == nil {
		backend = &voronoi.Clipper{}
	}
	cell, err := backend.CellOf(points)
	if err != nil {
		return nil, fmt.Errorf("prototype %q: %w", label, err)
	}

	return &Prototype{
		Label:     label,
		Positive:  positive,
		Negatives: append([]mgl64.Vec3(nil), negatives...),
		Volume:    cell.Volume(),
	}, nil
}

// FromVolume restores a prototype whose Voronoi volume is already known.
func FromVolume(label string, positive mgl64.Vec3, negatives []mgl64.Vec3, volume *geometry.Volume) (*Prototype, error) {
	if err := checkLabel(label); err != nil {
		return nil, fmt.Errorf("prototype %q: %w", label, err)
	}
	if err := checkNegatives(positive, negatives); err != nil {
		return nil, fmt.Errorf("prototype %q: %w", label, err)
	}
	if !geometry.PointsEqual(volume.Representative(), positive) {
		return nil, fmt.Errorf("prototype %q: %w", label, ErrRepresentative)
	}

	return &Prototype{
		Label:     label,
		Positive:  positive,
		Negatives: append([]mgl64.Vec3(nil), negatives...),
		Volume:    volume,
	}, nil
}

func checkLabel(label string) error {
	if strings.TrimSpace(label) == "" || strings.ContainsAny(label, "\r\n") {
		return ErrLabel
	}
	return nil
}

func checkNegatives(positive mgl64.Vec3, negatives []mgl64.Vec3) error {
	if contains(negatives, positive) {
		return ErrPositiveInNegatives
	}
	return nil
}

func contains(points []mgl64.Vec3, p mgl64.Vec3) bool {
	for _, q := range points {
		if geometry.PointsEqual(p, q) {
			return true
		}
	}
	return false
}
