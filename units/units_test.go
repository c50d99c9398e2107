package units

import (
	"math"
	"testing"

	"github.com/ctessum/unit"
	"github.com/stretchr/testify/assert"
)

func TestConversionRoundTrips(t *testing.T) {
	// Round trips must hold to 1e-9 relative across the magnitudes the
	// datasets actually span (densities ~1e13 cm^-3, rates ~1e-14 cm^3/s).
	for exp := -30; exp <= 30; exp += 3 {
		x := 1.7 * math.Pow(10, float64(exp))
		assert.True(t, near(x, PerM3ToPerCm3(PerCm3ToPerM3(x))))
		assert.True(t, near(x, PerCm3ToPerM3(PerM3ToPerCm3(x))))
		assert.True(t, near(x, M3ToCm3(Cm3ToM3(x))))
		assert.True(t, near(x, JToPhoton(PhotonToJ(x, 656.28), 656.28)))
	}
}

func TestConversionScales(t *testing.T) {
	assert.True(t, near(1.e19, PerCm3ToPerM3(1.e13)))
	assert.True(t, near(1.e-20, Cm3ToM3(1.e-14)))
	// H-alpha photon energy, h*c/lambda.
	assert.InEpsilon(t, 3.0268e-19, PhotonEnergy(656.28), 1.e-4)
	assert.InEpsilon(t, 3.0268e-19, PhotonToJ(1, 656.28), 1.e-4)
	// Photon energy grows as wavelength shrinks.
	assert.True(t, PhotonEnergy(468.6) > PhotonEnergy(656.28))
}

func TestDimensionTags(t *testing.T) {
	assert.NoError(t, Stopping(3.e-14).Check(unit.Meter3PerSecond))
	assert.NoError(t, Population(0.2).Check(unit.Dimless))
	assert.NoError(t, EmissionPower(1.e-33).Check(WattMeter3))
	assert.NoError(t, Density(5.5e19).Check(PerMeter3))

	// stopping coefficient x density = collision frequency [1/s]
	f := unit.Mul(Stopping(3.e-14), Density(1.e19))
	assert.NoError(t, f.Check(unit.Herz))
	assert.True(t, near(3.e5, f.Value()))

	// emission coefficient x density^2 = volumetric power [W/m^3]
	p := unit.Mul(EmissionPower(1.e-33), Density(1.e19), Density(1.e19))
	assert.NoError(t, p.Check(unit.Dimensions{
		unit.MassDim:   1,
		unit.LengthDim: -1,
		unit.TimeDim:   -3,
	}))
}

func near(a, b float64) (l bool) {
	tol := 1.e-9 * math.Abs(a)
	if tol == 0 {
		tol = 1.e-12
	}
	if math.Abs(a-b) <= tol {
		l = true
	}
	return
}
