package fuzzycolor

import (
	"github.com/akmonengine/fuzzycolor/prototype"
	"github.com/akmonengine/fuzzycolor/voronoi"
	"github.com/go-gl/mathgl/mgl64"
)

// Color is a palette entry: a labelled LAB point and the points it is
// contrasted with. RGB keeps the 0..255 triple it was read from, if any.
type Color struct {
	Label     string
	RGB       [3]float64
	Positive  mgl64.Vec3
	Negatives []mgl64.Vec3
}

// Palette turns labelled LAB points into colors, each contrasted with all
// the others.
func Palette(labels []string, points []mgl64.Vec3) []Color {
	colors := make([]Color, min(len(labels), len(points)))
	for i := range colors {
		negatives := make([]mgl64.Vec3, 0, len(colors)-1)
		for j := range colors {
			if j != i {
				negatives = append(negatives, points[j])
			}
		}
		colors[i] = Color{Label: labels[i], Positive: points[i], Negatives: negatives}
	}
	return colors
}

// BuildOptions selects how prototypes are computed from a palette.
type BuildOptions struct {
	Options
	// Backend computes the Voronoi cells; nil selects voronoi.Clipper.
	Backend voronoi.Backend
	// NoFalseNegatives leaves cells unbounded where the palette does not close them.
	NoFalseNegatives bool
}

// FromColors builds one prototype per color, spread over opts.Workers
// goroutines, and assembles them into a fuzzy color space.
func FromColors(name string, colors []Color, opts BuildOptions) (*FuzzyColorSpace, error) {
	builder := &prototype.Builder{Backend: opts.Backend, AddFalseNegatives: !opts.NoFalseNegatives}

	prototypes := make([]*prototype.Prototype, len(colors))
	errs := make([]error, len(colors))
	task(opts.Workers, colors, func(i int, c Color) {
		prototypes[i], errs[i] = builder.Build(c.Label, c.Positive, c.Negatives)
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return New(name, prototypes, opts.Options)
}
