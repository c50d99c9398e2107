package rates

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plasmadiag/goadas/adf"
	"github.com/plasmadiag/goadas/interp"
	"github.com/plasmadiag/goadas/units"
)

func beamData() *adf.BeamRateData {
	return &adf.BeamRateData{
		EB:    []float64{10, 100},
		DT:    []float64{1.e18, 1.e19},
		TT:    []float64{1, 10},
		SV:    [][]float64{{1.e-14, 2.e-14}, {3.e-14, 4.e-14}},
		SVT:   []float64{1.e-14, 2.e-14},
		SVRef: 1.e-14,
	}
}

func TestBeamStoppingEndToEnd(t *testing.T) {
	r, err := NewBeamStoppingRate(beamData(), false)
	require.NoError(t, err)

	// Mid-grid query. On a 2x2 surface the patch is the bilinear through
	// the corners, and the two-knot temperature correction is the chord:
	// 2.5e-20 m^3/s * 1.5 = 3.75e-20 m^3/s.
	v, err := r.Evaluate(55, 5.5e24, 5.5)
	require.NoError(t, err)
	assert.True(t, near(3.75e-20, v))

	// Bounded by the coefficient range times the correction range.
	assert.True(t, v > 0 && !math.IsInf(v, 0))
	assert.True(t, v >= 1.e-20*1.0 && v <= 4.e-20*2.0)

	// Reference corner: correction is exactly 1 there.
	v, err = r.Evaluate(10, 1.e24, 1)
	require.NoError(t, err)
	assert.True(t, near(1.e-20, v))
}

func TestBeamPopulationNoRateConversion(t *testing.T) {
	// Population coefficients are dimensionless: same dataset, but the
	// table keeps its tabulated magnitude.
	r, err := NewBeamPopulationRate(beamData(), false)
	require.NoError(t, err)
	v, err := r.Evaluate(10, 1.e24, 1)
	require.NoError(t, err)
	assert.True(t, near(1.e-14, v))
}

func TestBeamEmissionPowerConversion(t *testing.T) {
	const lambda = 656.28
	r, err := NewBeamEmissionRate(beamData(), lambda, false)
	require.NoError(t, err)
	assert.Equal(t, lambda, r.Wavelength())

	// photons cm^3/s -> m^3/s -> W m^3
	v, err := r.Evaluate(10, 1.e24, 1)
	require.NoError(t, err)
	assert.True(t, near(units.PhotonToJ(1.e-20, lambda), v))

	for _, w := range []float64{0, -5, math.NaN()} {
		_, err := NewBeamEmissionRate(beamData(), w, false)
		assert.Error(t, err)
	}
}

func TestBeamRateClampShortCircuit(t *testing.T) {
	// A negative surface clamps the product to zero before the
	// temperature correction runs: a query far outside TT that would
	// otherwise be a domain error returns a clean zero.
	d := beamData()
	d.SV = [][]float64{{-1.e-14, -2.e-14}, {-3.e-14, -4.e-14}}
	r, err := NewBeamStoppingRate(d, false)
	require.NoError(t, err)

	v, err := r.Evaluate(55, 5.5e24, 1.e6)
	require.NoError(t, err)
	assert.Equal(t, 0., v)

	// With a positive surface the same temperature is a domain error.
	rp, err := NewBeamStoppingRate(beamData(), false)
	require.NoError(t, err)
	_, err = rp.Evaluate(55, 5.5e24, 1.e6)
	var de *interp.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "temperature", de.Axis)
}

func TestBeamRateDomainErrors(t *testing.T) {
	r, err := NewBeamStoppingRate(beamData(), false)
	require.NoError(t, err)

	cases := []struct {
		energy, density, temperature float64
		axis                         string
	}{
		{5, 5.5e24, 5.5, "energy"},
		{101, 5.5e24, 5.5, "energy"},
		{55, 1.e23, 5.5, "density"},
		{55, 5.5e24, 0.5, "temperature"},
	}
	for _, c := range cases {
		_, err := r.Evaluate(c.energy, c.density, c.temperature)
		var de *interp.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, c.axis, de.Axis)
		assert.Contains(t, err.Error(), "beam stopping rate")
	}

	// The same queries succeed when extrapolation is permitted.
	re, err := NewBeamStoppingRate(beamData(), true)
	require.NoError(t, err)
	for _, c := range cases {
		v, err := re.Evaluate(c.energy, c.density, c.temperature)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(v))
	}
}

func TestBeamRateDegenerateAxes(t *testing.T) {
	{ // single-entry energy axis: constant along energy
		d := beamData()
		d.EB = []float64{100}
		d.SV = [][]float64{{1.e-14, 2.e-14}}
		r, err := NewBeamStoppingRate(d, false)
		require.NoError(t, err)
		a, err := r.Evaluate(55, 5.5e24, 5.5)
		require.NoError(t, err)
		b, err := r.Evaluate(9999, 5.5e24, 5.5)
		require.NoError(t, err)
		assert.True(t, near(a, b))
		assert.True(t, near(1.5e-20*1.5, a))
	}
	{ // single-entry density axis
		d := beamData()
		d.DT = []float64{1.e18}
		d.SV = [][]float64{{1.e-14}, {3.e-14}}
		r, err := NewBeamStoppingRate(d, false)
		require.NoError(t, err)
		v, err := r.Evaluate(55, 1.e30, 5.5)
		require.NoError(t, err)
		assert.True(t, near(2.e-20*1.5, v))
	}
	{ // single-entry temperature axis: correction constant at SVT/SVREF
		d := beamData()
		d.TT = []float64{5}
		d.SVT = []float64{2.e-14}
		r, err := NewBeamStoppingRate(d, false)
		require.NoError(t, err)
		v, err := r.Evaluate(55, 5.5e24, 77777)
		require.NoError(t, err)
		assert.True(t, near(2.5e-20*2, v))
	}
}

func TestBeamRateSchemaErrors(t *testing.T) {
	d := beamData()
	d.SVRef = 0
	_, err := NewBeamStoppingRate(d, false)
	var se *adf.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "SVREF", se.Key)

	d = beamData()
	d.SV[0] = d.SV[0][:1]
	_, err = NewBeamPopulationRate(d, false)
	assert.True(t, errors.As(err, &se))
}
