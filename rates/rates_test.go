package rates

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampedProduct(t *testing.T) {
	constTerm := func(v float64) term {
		return func() (float64, error) { return v, nil }
	}
	{ // plain product
		v, err := clampedProduct(constTerm(2), constTerm(3), constTerm(0.5))
		require.NoError(t, err)
		assert.Equal(t, 3., v)
	}
	{ // negative product clamps to exactly zero, short-circuiting
		calls := 0
		counted := func() (float64, error) { calls++; return 10, nil }
		v, err := clampedProduct(constTerm(2), constTerm(-1.e-30), counted)
		require.NoError(t, err)
		assert.Equal(t, 0., v)
		assert.Equal(t, 0, calls)
	}
	{ // a later error is never reached after a clamp
		failing := func() (float64, error) { return 0, errors.New("boom") }
		v, err := clampedProduct(constTerm(-1), failing)
		require.NoError(t, err)
		assert.Equal(t, 0., v)
	}
	{ // errors abort the product
		failing := func() (float64, error) { return 0, errors.New("boom") }
		_, err := clampedProduct(constTerm(2), failing, constTerm(3))
		assert.Error(t, err)
	}
	{ // zero factors are valid results, not clamps
		v, err := clampedProduct(constTerm(0), constTerm(5))
		require.NoError(t, err)
		assert.Equal(t, 0., v)
	}
}

func TestCheckWavelength(t *testing.T) {
	assert.NoError(t, checkWavelength("x", 656.28))
	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.Error(t, checkWavelength("x", w))
	}
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
