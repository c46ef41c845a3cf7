package fuzzycolor

import (
	"image"
	"image/color"
	"math"

	"github.com/akmonengine/fuzzycolor/colorconv"
	"github.com/go-gl/mathgl/mgl64"
)

// labKey is a LAB point rounded to two decimals.
type labKey [3]float64

func keyOf(lab mgl64.Vec3) labKey {
	return labKey{
		math.Round(lab[0]*100) / 100,
		math.Round(lab[1]*100) / 100,
		math.Round(lab[2]*100) / 100,
	}
}

// Winner returns the prototype with the highest degree for lab.
// Ties go to the first prototype; ok is false when lab is outside every support.
func (fcs *FuzzyColorSpace) Winner(lab mgl64.Vec3) (Degree, bool) {
	return fcs.Membership(lab).Winner()
}

// Evaluate returns the membership of every point of labs. Points are rounded
// to two decimals and each distinct rounded point is evaluated once, the
// distinct points being spread over fcs.Workers goroutines.
func (fcs *FuzzyColorSpace) Evaluate(labs []mgl64.Vec3) []Membership {
	pack := fcs.currentPack()
	labels := fcs.Labels()

	index := make(map[labKey]int)
	var unique []labKey
	slots := make([]int, len(labs))
	for i, lab := range labs {
		k := keyOf(lab)
		j, ok := index[k]
		if !ok {
			j = len(unique)
			index[k] = j
			unique = append(unique, k)
		}
		slots[i] = j
	}

	results := make([]Membership, len(unique))
	task(fcs.Workers, unique, func(j int, k labKey) {
		results[j] = pack.membership(mgl64.Vec3(k), labels)
	})

	out := make([]Membership, len(labs))
	for i, j := range slots {
		out[i] = results[j]
	}
	return out
}

// imageLABs converts every pixel of img to LAB, row by row.
func imageLABs(img image.Image) []mgl64.Vec3 {
	bounds := img.Bounds()
	labs := make([]mgl64.Vec3, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			labs = append(labs, colorconv.RGBToLAB(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff))
		}
	}
	return labs
}

// MembershipMap returns one grayscale image per prototype, in order, where
// each pixel is the normalized degree of the source pixel scaled to 0..255.
func (fcs *FuzzyColorSpace) MembershipMap(img image.Image) []*image.Gray {
	bounds := img.Bounds()
	maps := make([]*image.Gray, len(fcs.Prototypes))
	for i := range maps {
		maps[i] = image.NewGray(bounds)
	}

	labels := fcs.Labels()
	memberships := fcs.Evaluate(imageLABs(img))
	width := bounds.Dx()
	for n, m := range memberships {
		x, y := bounds.Min.X+n%width, bounds.Min.Y+n/width
		for i, label := range labels {
			v, _ := m.Get(label)
			maps[i].SetGray(x, y, color.Gray{Y: uint8(math.Round(v * 255))})
		}
	}
	return maps
}

// Proportions returns, per prototype, the mean normalized degree over the
// pixels of img. Pixels outside every support count for none.
func (fcs *FuzzyColorSpace) Proportions(img image.Image) []Degree {
	labels := fcs.Labels()
	totals := make([]float64, len(labels))
	memberships := fcs.Evaluate(imageLABs(img))
	for _, m := range memberships {
		for i, label := range labels {
			v, _ := m.Get(label)
			totals[i] += v
		}
	}

	proportions := make([]Degree, len(labels))
	for i, label := range labels {
		proportions[i] = Degree{Label: label}
		if len(memberships) > 0 {
			proportions[i].Value = totals[i] / float64(len(memberships))
		}
	}
	return proportions
}

// Recolor paints every pixel of img with the prototype that wins it.
// Pixels outside every support are left as they are.
func (fcs *FuzzyColorSpace) Recolor(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)

	swatches := make(map[string]color.RGBA, len(fcs.Prototypes))
	for _, p := range fcs.Prototypes {
		r, g, b := colorconv.LABToRGB255(p.Positive)
		swatches[p.Label] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}

	memberships := fcs.Evaluate(imageLABs(img))
	width := bounds.Dx()
	for n, m := range memberships {
		x, y := bounds.Min.X+n%width, bounds.Min.Y+n/width
		if winner, ok := m.Winner(); ok {
			out.SetRGBA(x, y, swatches[winner.Label])
			continue
		}
		out.Set(x, y, img.At(x, y))
	}
	return out
}
