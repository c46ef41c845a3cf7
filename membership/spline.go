// Package membership implements the one dimensional membership function of a
// fuzzy color: a decreasing "spline 0.5" curve of the distance to the prototype.
//
// The curve is parameterized by three distances 0 <= a <= b <= c:
//
//	f(d) = 1            for d <= a
//	f(b) = 0.5
//	f(d) = 0            for d >= c
//
// and is smooth (zero slope at a, b and c) and non-increasing in between.
package membership

import (
	"fmt"
	"math"
)

// Params holds the three control distances of the curve.
type Params struct {
	A, B, C float64
}

// Valid reports whether 0 <= A <= B <= C.
func (p Params) Valid() bool {
	return p.A >= 0 && p.A <= p.B && p.B <= p.C
}

// Sorted returns the parameters reordered so that A <= B <= C, negative
// values being raised to zero.
func (p Params) Sorted() Params {
	a, b, c := math.Max(p.A, 0), math.Max(p.B, 0), math.Max(p.C, 0)
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return Params{A: a, B: b, C: c}
}

// Value evaluates the curve at distance d. It does not depend on any state
// and may be called concurrently.
func Value(d float64, p Params) float64 {
	switch {
	case d <= p.A:
		return 1
	case d >= p.C:
		return 0
	case d <= p.B:
		t := (d - p.A) / (p.B - p.A)
		return clamp(1 - smoothstep(t)/2)
	default:
		t := (d - p.B) / (p.C - p.B)
		return clamp(0.5 - smoothstep(t)/2)
	}
}

// smoothstep is the cubic Hermite 3t² - 2t³, with zero slope at 0 and 1.
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Function is a curve with stored parameters, for callers evaluating the
// same curve many times. It is not safe for concurrent SetParams.
type Function struct {
	params Params
}

// NewFunction returns a function with the given parameters.
func NewFunction(p Params) (*Function, error) {
	f := &Function{}
	if err := f.SetParams(p); err != nil {
		return nil, err
	}
	return f, nil
}

// SetParams replaces the parameters of the curve.
func (f *Function) SetParams(p Params) error {
	if !p.Valid() {
		return fmt.Errorf("membership: invalid parameters a=%g b=%g c=%g, need 0 <= a <= b <= c", p.A, p.B, p.C)
	}
	f.params = p
	return nil
}

// Params returns the current parameters.
func (f *Function) Params() Params {
	return f.params
}

// Value evaluates the curve at d.
func (f *Function) Value(d float64) float64 {
	return Value(d, f.params)
}
