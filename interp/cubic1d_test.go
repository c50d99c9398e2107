package interp

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubic1DKnots(t *testing.T) {
	var (
		x = []float64{0, 0.5, 1.2, 2, 3.7, 5}
		f = []float64{1, -0.2, 0.7, 2.3, -1.1, 0.4}
	)
	s, err := NewCubic1D(x, f, Options{})
	require.NoError(t, err)
	for i := range x {
		v, err := s.Evaluate(x[i])
		require.NoError(t, err)
		assert.True(t, near(f[i], v))
	}
	min, max := s.Domain()
	assert.Equal(t, 0., min)
	assert.Equal(t, 5., max)
}

func TestCubic1DLinearPrecision(t *testing.T) {
	// A natural spline through samples of a straight line reproduces the
	// line exactly, knots and mid-segment alike.
	var (
		lin = func(x float64) float64 { return 3*x - 7 }
		x   = []float64{-2, -0.5, 0.1, 1, 4, 9}
		f   = make([]float64, len(x))
	)
	for i := range x {
		f[i] = lin(x[i])
	}
	s, err := NewCubic1D(x, f, Options{})
	require.NoError(t, err)
	for _, q := range []float64{-2, -1.3, 0, 0.7, 2.5, 8.99, 9} {
		v, err := s.Evaluate(q)
		require.NoError(t, err)
		assert.True(t, near(lin(q), v))
	}
}

func TestCubic1DTwoPoints(t *testing.T) {
	// Two knots degenerate to the chord.
	s, err := NewCubic1D([]float64{1, 10}, []float64{1.e-14, 2.e-14}, Options{})
	require.NoError(t, err)
	v, err := s.Evaluate(5.5)
	require.NoError(t, err)
	assert.True(t, near(1.5e-14, v))
}

func TestCubic1DSingleValue(t *testing.T) {
	_, err := NewCubic1D([]float64{2}, []float64{7}, Options{})
	assert.Error(t, err)

	s, err := NewCubic1D([]float64{2}, []float64{7}, Options{TolerateSingleValue: true})
	require.NoError(t, err)
	// Constant along the degenerate axis for any query, extrapolation
	// permission notwithstanding.
	for _, q := range []float64{2, -1.e6, 3.5e24} {
		v, err := s.Evaluate(q)
		require.NoError(t, err)
		assert.Equal(t, 7., v)
	}
}

func TestCubic1DDomainError(t *testing.T) {
	s, err := NewCubic1D([]float64{1, 2, 3}, []float64{1, 4, 9}, Options{AxisX: "energy"})
	require.NoError(t, err)

	_, err = s.Evaluate(3.5)
	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "energy", de.Axis)
	assert.Equal(t, 3.5, de.Value)
	assert.Equal(t, 1., de.Min)
	assert.Equal(t, 3., de.Max)

	// Boundary queries are in domain.
	for _, q := range []float64{1, 3} {
		_, err = s.Evaluate(q)
		assert.NoError(t, err)
	}

	// The interpolant stays usable after a domain error.
	v, err := s.Evaluate(2)
	require.NoError(t, err)
	assert.True(t, near(4, v))
}

func TestCubic1DNaNAlwaysFails(t *testing.T) {
	s, err := NewCubic1D([]float64{1, 2, 3}, []float64{1, 4, 9},
		Options{Extrapolate: true})
	require.NoError(t, err)
	for _, q := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = s.Evaluate(q)
		var de *DomainError
		assert.True(t, errors.As(err, &de))
	}
}

func TestCubic1DExtrapolation(t *testing.T) {
	var (
		lin = func(x float64) float64 { return 2*x + 1 }
		x   = []float64{0, 1, 2, 3}
		f   = make([]float64, len(x))
	)
	for i := range x {
		f[i] = lin(x[i])
	}
	{ // quadratic tail of a line is the line itself
		s, err := NewCubic1D(x, f, Options{Extrapolate: true})
		require.NoError(t, err)
		v, err := s.Evaluate(5)
		require.NoError(t, err)
		assert.True(t, near(lin(5), v))
		v, err = s.Evaluate(-2)
		require.NoError(t, err)
		assert.True(t, near(lin(-2), v))
	}
	{
		s, err := NewCubic1D(x, f, Options{Extrapolate: true, Extrapolation: Linear})
		require.NoError(t, err)
		v, err := s.Evaluate(5)
		require.NoError(t, err)
		assert.True(t, near(lin(5), v))
	}
	{ // nearest holds the boundary values
		s, err := NewCubic1D(x, f, Options{Extrapolate: true, Extrapolation: Nearest})
		require.NoError(t, err)
		v, err := s.Evaluate(5)
		require.NoError(t, err)
		assert.True(t, near(lin(3), v))
		v, err = s.Evaluate(-2)
		require.NoError(t, err)
		assert.True(t, near(lin(0), v))
	}
}

func TestCubic1DValidation(t *testing.T) {
	_, err := NewCubic1D(nil, nil, Options{})
	assert.Error(t, err)
	_, err = NewCubic1D([]float64{1, 1}, []float64{0, 0}, Options{})
	assert.Error(t, err)
	_, err = NewCubic1D([]float64{2, 1}, []float64{0, 0}, Options{})
	assert.Error(t, err)
	_, err = NewCubic1D([]float64{1, 2, 3}, []float64{0, 0}, Options{})
	assert.Error(t, err)
	_, err = NewCubic1D([]float64{1, 2}, []float64{0, math.NaN()}, Options{})
	assert.Error(t, err)
	_, err = NewCubic1D([]float64{1, math.Inf(1)}, []float64{0, 0}, Options{})
	assert.Error(t, err)
}

func near(a, b float64) (l bool) {
	tol := 1.e-8 * math.Abs(a)
	if tol == 0 {
		tol = 1.e-12
	}
	if math.Abs(a-b) <= tol {
		l = true
	}
	return
}
