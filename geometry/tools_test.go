package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vec3ApproxEqual(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func TestDistancePointPlane(t *testing.T) {
	tests := []struct {
		name     string
		plane    Plane
		point    mgl64.Vec3
		expected float64
	}{
		{"on the plane", NewPlane(1, 0, 0, 0), mgl64.Vec3{0, 5, 5}, 0},
		{"positive side", NewPlane(1, 0, 0, 0), mgl64.Vec3{3, 1, 1}, 3},
		{"negative side", NewPlane(1, 0, 0, 0), mgl64.Vec3{-4, 1, 1}, 4},
		{"non unit normal", NewPlane(0, 2, 0, -4), mgl64.Vec3{0, 7, 0}, 5},
		{"oblique", NewPlane(1, 1, 1, 0), mgl64.Vec3{1, 1, 1}, math.Sqrt(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistancePointPlane(tt.plane, tt.point)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("DistancePointPlane(%v, %v) = %v, want %v", tt.plane, tt.point, got, tt.expected)
			}
		})
	}
}

func TestIntersectionPlaneSegment(t *testing.T) {
	tests := []struct {
		name     string
		plane    Plane
		p0, p1   mgl64.Vec3
		expected mgl64.Vec3
		ok       bool
	}{
		{
			name:     "crossing segment",
			plane:    NewPlane(1, 0, 0, -5),
			p0:       mgl64.Vec3{0, 0, 0},
			p1:       mgl64.Vec3{10, 0, 0},
			expected: mgl64.Vec3{5, 0, 0},
			ok:       true,
		},
		{
			name:     "beyond the segment end",
			plane:    NewPlane(1, 0, 0, -20),
			p0:       mgl64.Vec3{0, 1, 2},
			p1:       mgl64.Vec3{10, 1, 2},
			expected: mgl64.Vec3{20, 1, 2},
			ok:       true,
		},
		{
			name:     "behind the segment start",
			plane:    NewPlane(0, 0, 1, 3),
			p0:       mgl64.Vec3{0, 0, 0},
			p1:       mgl64.Vec3{0, 0, 1},
			expected: mgl64.Vec3{0, 0, -3},
			ok:       true,
		},
		{
			name:  "parallel segment",
			plane: NewPlane(1, 0, 0, -5),
			p0:    mgl64.Vec3{0, 0, 0},
			p1:    mgl64.Vec3{0, 10, 10},
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IntersectionPlaneSegment(tt.plane, tt.p0, tt.p1)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !vec3ApproxEqual(got, tt.expected, 1e-9) {
				t.Errorf("intersection = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParallelPlanes(t *testing.T) {
	first, second := ParallelPlanes(NewPlane(1, 0, 0, 0), 5)

	for _, p := range []Plane{first, second} {
		if p.A != 1 || p.B != 0 || p.C != 0 {
			t.Errorf("normal changed: %v", p)
		}
	}
	if math.Abs(first.D+5) > 1e-12 {
		t.Errorf("first.D = %v, want -5", first.D)
	}
	if math.Abs(second.D-5) > 1e-12 {
		t.Errorf("second.D = %v, want 5", second.D)
	}

	// distance is measured in space, not in coefficients
	plane := NewPlane(0, 3, 4, 10)
	first, second = ParallelPlanes(plane, 2)
	origin := mgl64.Vec3{0, 0, 0}
	base := plane.SignedDistance(origin)
	if d := first.SignedDistance(origin) - base; math.Abs(d-(-2)) > 1e-12 {
		t.Errorf("first shifted by %v, want -2", d)
	}
	if d := second.SignedDistance(origin) - base; math.Abs(d-2) > 1e-12 {
		t.Errorf("second shifted by %v, want 2", d)
	}
}

func TestSameDirection(t *testing.T) {
	tests := []struct {
		name     string
		u, v     mgl64.Vec3
		expected bool
	}{
		{"identical", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}, true},
		{"scaled", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{10, 20, 30}, true},
		{"opposite", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-1, 0, 0}, false},
		{"orthogonal", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, false},
		{"slightly off", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0.01, 0}, false},
		{"null vector", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDirection(tt.u, tt.v); got != tt.expected {
				t.Errorf("SameDirection(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.expected)
			}
		})
	}
}

func TestIntersectionWithVolume_DomainExit(t *testing.T) {
	box := DefaultDomain().Volume()

	point, ok := IntersectionWithVolume(box, mgl64.Vec3{50, 0, 0}, mgl64.Vec3{60, 0, 0})
	if !ok {
		t.Fatal("expected an intersection")
	}
	if !vec3ApproxEqual(point, mgl64.Vec3{100, 0, 0}, 1e-9) {
		t.Errorf("exit point = %v, want (100, 0, 0)", point)
	}
	if d := EuclideanDistance(mgl64.Vec3{50, 0, 0}, point); math.Abs(d-50) > 1e-9 {
		t.Errorf("distance = %v, want 50", d)
	}
}

func TestIntersectionWithVolume_Diagonal(t *testing.T) {
	box := Domain{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}.Volume()

	point, ok := IntersectionWithVolume(box, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.1, 0.05, 0})
	if !ok {
		t.Fatal("expected an intersection")
	}
	if !vec3ApproxEqual(point, mgl64.Vec3{1, 0.5, 0}, 1e-9) {
		t.Errorf("exit point = %v, want (1, 0.5, 0)", point)
	}
}

func TestIntersectionWithVolume_NoFace(t *testing.T) {
	// a single face behind the ray
	volume := NewVolume(mgl64.Vec3{0, 0, 0}, NewFace(NewPlane(1, 0, 0, 1)))

	if _, ok := IntersectionWithVolume(volume, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}); ok {
		t.Error("expected no intersection")
	}
}

func TestBisector(t *testing.T) {
	p := mgl64.Vec3{10, 20, 30}
	q := mgl64.Vec3{-4, 2, 8}
	plane := Bisector(p, q)

	if plane.Evaluate(p) <= 0 {
		t.Errorf("Evaluate(p) = %v, want > 0", plane.Evaluate(p))
	}
	if plane.Evaluate(q) >= 0 {
		t.Errorf("Evaluate(q) = %v, want < 0", plane.Evaluate(q))
	}
	if math.Abs(DistancePointPlane(plane, p)-DistancePointPlane(plane, q)) > 1e-9 {
		t.Error("p and q are not at the same distance from the bisector")
	}
	if math.Abs(plane.Evaluate(p.Add(q).Mul(0.5))) > 1e-9 {
		t.Error("midpoint is not on the bisector")
	}
}

func TestTriangleArea(t *testing.T) {
	area := TriangleArea(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 0, 0}, mgl64.Vec3{0, 0, 3})
	if math.Abs(area-6) > 1e-12 {
		t.Errorf("area = %v, want 6", area)
	}
}

func BenchmarkIntersectionWithVolume(b *testing.B) {
	box := DefaultDomain().Volume()
	from := mgl64.Vec3{50, 0, 0}
	to := mgl64.Vec3{60, 10, -5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		IntersectionWithVolume(box, from, to)
	}
}
