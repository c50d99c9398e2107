// Package interp provides the immutable cubic interpolants the rate
// evaluators are built from: natural cubic splines in 1D and bicubic
// patches in 2D, both with optional Taylor-series continuation outside
// the tabulated domain and optional tolerance for length-1 axes.
//
// Interpolants are constructed once, validated eagerly, and never
// mutated afterwards, so Evaluate is safe for unrestricted concurrent
// use.
package interp

import (
	"fmt"
	"math"
	"sort"
)

// Extrapolation selects how an interpolant continues outside its domain
// when Options.Extrapolate is set.
type Extrapolation uint8

const (
	// Quadratic continues with a second-order Taylor expansion anchored
	// at the nearest domain boundary point.
	Quadratic Extrapolation = iota
	// Linear continues with a first-order Taylor expansion.
	Linear
	// Nearest holds the boundary value.
	Nearest
)

func (e Extrapolation) String() string {
	switch e {
	case Quadratic:
		return "quadratic"
	case Linear:
		return "linear"
	case Nearest:
		return "nearest"
	}
	return fmt.Sprintf("extrapolation(%d)", uint8(e))
}

// Options configure interpolant construction.
type Options struct {
	// Extrapolate permits queries outside the tabulated domain. When
	// false, such queries return a *DomainError.
	Extrapolate bool
	// Extrapolation selects the continuation used when Extrapolate is
	// set. The zero value is Quadratic.
	Extrapolation Extrapolation
	// TolerateSingleValue accepts a length-1 axis; the interpolant is
	// then constant along that axis for any query value, in or out of
	// domain.
	TolerateSingleValue bool
	// AxisX and AxisY name the axes in domain errors. They default to
	// "x" and "y".
	AxisX, AxisY string
}

func (o Options) axisX() string {
	if o.AxisX == "" {
		return "x"
	}
	return o.AxisX
}

func (o Options) axisY() string {
	if o.AxisY == "" {
		return "y"
	}
	return o.AxisY
}

// DomainError reports a query outside the tabulated domain of one axis
// while extrapolation is disabled, or a non-finite query value. It is
// recoverable: the interpolant remains valid for further queries.
type DomainError struct {
	Axis     string
	Value    float64
	Min, Max float64
}

func (e *DomainError) Error() string {
	if !isFinite(e.Value) {
		return fmt.Sprintf("interp: %s=%v is not a finite query value", e.Axis, e.Value)
	}
	return fmt.Sprintf("interp: %s=%g outside domain [%g, %g]", e.Axis, e.Value, e.Min, e.Max)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkAxis validates an interpolation axis: finite entries, strictly
// increasing, length >= 2 unless a single value is tolerated.
func checkAxis(name string, x []float64, tolerateSingle bool) error {
	switch {
	case len(x) == 0:
		return fmt.Errorf("interp: axis %s is empty", name)
	case len(x) == 1 && !tolerateSingle:
		return fmt.Errorf("interp: axis %s has a single value and single values are not tolerated", name)
	}
	for i, v := range x {
		if !isFinite(v) {
			return fmt.Errorf("interp: axis %s[%d]=%v is not finite", name, i, v)
		}
		if i > 0 && v <= x[i-1] {
			return fmt.Errorf("interp: axis %s is not strictly increasing at index %d (%g after %g)",
				name, i, v, x[i-1])
		}
	}
	return nil
}

func errShape(axis string, nKnots, nVals int) error {
	return fmt.Errorf("interp: axis %s has %d knots but %d values", axis, nKnots, nVals)
}

func checkValues(name string, f []float64) error {
	for i, v := range f {
		if !isFinite(v) {
			return fmt.Errorf("interp: %s[%d]=%v is not finite", name, i, v)
		}
	}
	return nil
}

// segment returns the index j of the knot interval containing x, with
// x[j] <= x <= x[j+1], clamping to the boundary intervals outside the
// domain. The axis must have at least two knots.
func segment(xs []float64, x float64) int {
	j := sort.SearchFloat64s(xs, x) - 1
	if j < 0 {
		j = 0
	}
	if j > len(xs)-2 {
		j = len(xs) - 2
	}
	return j
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
