package prototype

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/akmonengine/fuzzycolor/geometry"
	"github.com/akmonengine/fuzzycolor/voronoi"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	red   = mgl64.Vec3{53.24, 80.09, 67.20}
	green = mgl64.Vec3{87.74, -86.18, 83.18}
	blue  = mgl64.Vec3{32.30, 79.19, -107.86}
)

type failingBackend struct{}

func (failingBackend) CellOf([]mgl64.Vec3) (*voronoi.Cell, error) {
	return nil, &voronoi.BackendError{Program: "qvoronoi", Status: 2}
}

func TestNewWithFalseNegatives(t *testing.T) {
	p, err := New("red", red, []mgl64.Vec3{green, blue}, true)
	if err != nil {
		t.Fatal(err)
	}

	if p.Label != "red" {
		t.Errorf("label = %q, want red", p.Label)
	}
	if p.Volume.Representative() != red {
		t.Errorf("representative = %v, want %v", p.Volume.Representative(), red)
	}
	if !p.Volume.Bounded() {
		t.Error("volume should be bounded with false negatives")
	}
	if len(p.Negatives) != 2 {
		t.Errorf("negatives = %v, false negatives must not be stored", p.Negatives)
	}
	if !p.Volume.IsInterior(red) {
		t.Error("the positive should be strictly inside its volume")
	}
	for _, n := range []mgl64.Vec3{green, blue} {
		if p.Volume.IsInside(n) {
			t.Errorf("negative %v should be outside the volume", n)
		}
	}
}

func TestNewWithoutFalseNegatives(t *testing.T) {
	p, err := New("red", red, []mgl64.Vec3{green}, false)
	if err != nil {
		t.Fatal(err)
	}
	if p.Volume.Bounded() {
		t.Error("a two point cell should be unbounded")
	}
	if len(p.Volume.Faces) != 1 {
		t.Errorf("got %d faces, want 1", len(p.Volume.Faces))
	}
}

func TestNewOnlyFalseNegatives(t *testing.T) {
	p, err := New("alone", mgl64.Vec3{50, 0, 0}, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Volume.Bounded() {
		t.Error("volume should be bounded")
	}
	for _, q := range []mgl64.Vec3{{50, 0, 0}, {10, 60, -60}, {90, -60, 60}} {
		if !p.Volume.IsInside(q) {
			t.Errorf("%v should be inside", q)
		}
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name      string
		negatives []mgl64.Vec3
		addFalse  bool
		err       error
	}{
		{"positive among negatives", []mgl64.Vec3{green, red}, true, ErrPositiveInNegatives},
		{"nothing to contrast", nil, false, ErrNoNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("red", red, tt.negatives, tt.addFalse)
			if !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestLabelErrors(t *testing.T) {
	for _, label := range []string{"", "  \t", "red\ngreen"} {
		if _, err := New(label, red, []mgl64.Vec3{green}, true); !errors.Is(err, ErrLabel) {
			t.Errorf("New(%q): err = %v, want ErrLabel", label, err)
		}
		if _, err := FromVolume(label, red, []mgl64.Vec3{green}, geometry.NewVolume(red)); !errors.Is(err, ErrLabel) {
			t.Errorf("FromVolume(%q): err = %v, want ErrLabel", label, err)
		}
	}
	if _, err := New("dark red", red, []mgl64.Vec3{green}, true); err != nil {
		t.Errorf("New(%q): %v", "dark red", err)
	}
}

func TestBuilderBackendError(t *testing.T) {
	b := &Builder{Backend: failingBackend{}, AddFalseNegatives: true}
	_, err := b.Build("red", red, []mgl64.Vec3{green})

	var backendErr *voronoi.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("err = %v, want a *voronoi.BackendError", err)
	}
}

func TestFromVolume(t *testing.T) {
	built, err := New("red", red, []mgl64.Vec3{green}, true)
	if err != nil {
		t.Fatal(err)
	}

	restored, err := FromVolume("red", red, []mgl64.Vec3{green}, built.Volume)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Volume != built.Volume {
		t.Error("FromVolume should keep the given volume")
	}

	if _, err := FromVolume("green", green, []mgl64.Vec3{red}, built.Volume); !errors.Is(err, ErrRepresentative) {
		t.Errorf("err = %v, want ErrRepresentative", err)
	}
}

func TestScaleDistances(t *testing.T) {
	p, err := New("red", red, []mgl64.Vec3{green, blue}, true)
	if err != nil {
		t.Fatal(err)
	}

	for _, lambda := range []float64{0.25, 0.5, 0.9} {
		core, support, err := Scale(p.Volume, lambda)
		if err != nil {
			t.Fatal(err)
		}
		if len(core.Faces) != len(p.Volume.Faces) || len(support.Faces) != len(p.Volume.Faces) {
			t.Fatalf("face count mismatch: %d / %d / %d", len(core.Faces), len(p.Volume.Faces), len(support.Faces))
		}
		if core.Representative() != red || support.Representative() != red {
			t.Error("core and support must share the positive as representative")
		}

		for i, face := range p.Volume.Faces {
			h := geometry.DistancePointPlane(face.Plane, red)
			hCore := geometry.DistancePointPlane(core.Faces[i].Plane, red)
			hSupport := geometry.DistancePointPlane(support.Faces[i].Plane, red)

			if math.Abs(hCore-lambda*h) > 1e-9 {
				t.Errorf("λ=%v face %d: core at %v, want %v", lambda, i, hCore, lambda*h)
			}
			if math.Abs(hSupport-(2-lambda)*h) > 1e-9 {
				t.Errorf("λ=%v face %d: support at %v, want %v", lambda, i, hSupport, (2-lambda)*h)
			}
			if core.Faces[i].Infinity != face.Infinity || support.Faces[i].Infinity != face.Infinity {
				t.Errorf("face %d: infinity flag not preserved", i)
			}
			if len(core.Faces[i].Vertices) != len(face.Vertices) {
				t.Errorf("face %d: core has %d vertices, want %d", i, len(core.Faces[i].Vertices), len(face.Vertices))
			}

			// vertices are homothetic images of the original ones
			for k, v := range face.Vertices {
				wantCore := red.Add(v.Sub(red).Mul(lambda))
				wantSupport := red.Add(v.Sub(red).Mul(2 - lambda))
				if core.Faces[i].Vertices[k].Sub(wantCore).Len() > 1e-6 {
					t.Errorf("face %d vertex %d: core %v, want %v", i, k, core.Faces[i].Vertices[k], wantCore)
				}
				if support.Faces[i].Vertices[k].Sub(wantSupport).Len() > 1e-6 {
					t.Errorf("face %d vertex %d: support %v, want %v", i, k, support.Faces[i].Vertices[k], wantSupport)
				}
			}
		}
	}
}

func TestScaleNesting(t *testing.T) {
	p, err := New("green", green, []mgl64.Vec3{red, blue}, true)
	if err != nil {
		t.Fatal(err)
	}
	core, support, err := Scale(p.Volume, DEFAULT_LAMBDA)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		q := mgl64.Vec3{rng.Float64() * 100, rng.Float64()*255 - 128, rng.Float64()*255 - 128}
		if core.IsInside(q) && !p.Volume.IsInside(q) {
			t.Fatalf("%v is in the core but not in the volume", q)
		}
		if p.Volume.IsInside(q) && !support.IsInside(q) {
			t.Fatalf("%v is in the volume but not in the support", q)
		}
	}
}

func TestScaleInvalidLambda(t *testing.T) {
	p, err := New("red", red, []mgl64.Vec3{green}, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, lambda := range []float64{0, 1, -0.5, 1.5} {
		if _, _, err := Scale(p.Volume, lambda); err == nil {
			t.Errorf("Scale(λ=%v) should fail", lambda)
		}
	}
}
