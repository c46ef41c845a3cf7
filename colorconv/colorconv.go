// Package colorconv converts colors between sRGB and CIELAB (D65) and
// measures CIEDE2000 differences. LAB values use the usual scale: L in
// [0,100], a and b roughly in [-128,127].
package colorconv

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// LAB is a CIELAB triple (L, a, b).
type LAB = mgl64.Vec3

// NewLAB returns the LAB triple (l, a, b).
func NewLAB(l, a, b float64) LAB {
	return LAB{l, a, b}
}

// ParseLAB normalizes the representations callers use for a LAB value:
// a LAB, a [3]float64, a []float64 of length 3 or a map with the keys
// "L", "A" and "B" (any case).
func ParseLAB(v any) (LAB, error) {
	switch t := v.(type) {
	case LAB:
		return t, nil
	case [3]float64:
		return LAB(t), nil
	case []float64:
		if len(t) != 3 {
			return LAB{}, fmt.Errorf("colorconv: LAB needs 3 components, got %d", len(t))
		}
		return LAB{t[0], t[1], t[2]}, nil
	case map[string]float64:
		var lab LAB
		for i, keys := range [3][2]string{{"L", "l"}, {"A", "a"}, {"B", "b"}} {
			value, ok := t[keys[0]]
			if !ok {
				value, ok = t[keys[1]]
			}
			if !ok {
				return LAB{}, fmt.Errorf("colorconv: missing LAB component %q", keys[0])
			}
			lab[i] = value
		}
		return lab, nil
	default:
		return LAB{}, fmt.Errorf("colorconv: cannot use %T as a LAB value", v)
	}
}

// RGBToLAB converts an sRGB color with components in [0,1] to LAB.
func RGBToLAB(r, g, b float64) LAB {
	l, a, bb := colorful.Color{R: r, G: g, B: b}.Lab()
	return LAB{l * 100, a * 100, bb * 100}
}

// RGB255ToLAB converts an sRGB color with components in [0,255] to LAB.
func RGB255ToLAB(r, g, b float64) LAB {
	return RGBToLAB(r/255, g/255, b/255)
}

// LABToRGB converts a LAB color to sRGB with components clamped to [0,1].
func LABToRGB(lab LAB) (r, g, b float64) {
	c := colorful.Lab(lab.X()/100, lab.Y()/100, lab.Z()/100).Clamped()
	return c.R, c.G, c.B
}

// LABToRGB255 converts a LAB color to 8-bit sRGB, used to paint swatches.
func LABToRGB255(lab LAB) (r, g, b uint8) {
	return colorful.Lab(lab.X()/100, lab.Y()/100, lab.Z()/100).Clamped().RGB255()
}

// DeltaE00 returns the CIEDE2000 difference between two LAB colors.
func DeltaE00(p, q LAB) float64 {
	cp := colorful.Lab(p.X()/100, p.Y()/100, p.Z()/100)
	cq := colorful.Lab(q.X()/100, q.Y()/100, q.Z()/100)
	return cp.DistanceCIEDE2000(cq) * 100
}
