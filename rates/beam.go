package rates

import (
	"fmt"

	"github.com/plasmadiag/goadas/adf"
	"github.com/plasmadiag/goadas/interp"
	"github.com/plasmadiag/goadas/units"
)

// beamRate is the shared two-stage evaluator behind the beam-type
// coefficients: a bicubic surface over (energy, density) and a 1D
// temperature correction normalised to 1 at the reference condition.
type beamRate struct {
	kind    string
	surface *interp.Cubic2D
	tcorr   *interp.Cubic1D
}

func newBeamRate(kind string, d *adf.BeamRateData, convert func(float64) float64, extrapolate bool) (beamRate, error) {
	if err := d.Validate(); err != nil {
		return beamRate{}, fmt.Errorf("%s: %w", kind, err)
	}
	surface, err := interp.NewCubic2D(
		d.EB,
		mapped(d.DT, units.PerCm3ToPerM3),
		tableDense(len(d.EB), len(d.DT), d.SV, convert),
		interp.Options{
			Extrapolate:         extrapolate,
			TolerateSingleValue: true,
			AxisX:               "energy",
			AxisY:               "density",
		})
	if err != nil {
		return beamRate{}, fmt.Errorf("%s: %w", kind, err)
	}
	tcorr, err := interp.NewCubic1D(
		d.TT,
		mapped(d.SVT, func(v float64) float64 { return v / d.SVRef }),
		interp.Options{
			Extrapolate:         extrapolate,
			TolerateSingleValue: true,
			AxisX:               "temperature",
		})
	if err != nil {
		return beamRate{}, fmt.Errorf("%s: %w", kind, err)
	}
	return beamRate{kind: kind, surface: surface, tcorr: tcorr}, nil
}

// evaluate composes surface and temperature correction with the zero
// clamp applied after each stage.
func (r *beamRate) evaluate(energy, density, temperature float64) (float64, error) {
	v, err := clampedProduct(
		func() (float64, error) { return r.surface.Evaluate(energy, density) },
		func() (float64, error) { return r.tcorr.Evaluate(temperature) },
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", r.kind, err)
	}
	return v, nil
}

// BeamStoppingRate evaluates total beam stopping coefficients (ADF21
// content) in m^3 s^-1.
type BeamStoppingRate struct {
	beamRate
}

// NewBeamStoppingRate builds the evaluator from d, converting the density
// axis to m^-3 and the coefficient table from cm^3/s to m^3/s. With
// extrapolate false, queries outside the tabulated domain fail.
func NewBeamStoppingRate(d *adf.BeamRateData, extrapolate bool) (*BeamStoppingRate, error) {
	r, err := newBeamRate("beam stopping rate", d, units.Cm3ToM3, extrapolate)
	if err != nil {
		return nil, err
	}
	return &BeamStoppingRate{r}, nil
}

// Evaluate returns the stopping coefficient [m^3 s^-1] at the given
// interaction energy [eV/amu], target density [m^-3] and target
// temperature [eV].
func (r *BeamStoppingRate) Evaluate(energy, density, temperature float64) (float64, error) {
	return r.evaluate(energy, density, temperature)
}

// BeamPopulationRate evaluates dimensionless relative beam population
// coefficients (ADF22 content).
type BeamPopulationRate struct {
	beamRate
}

// NewBeamPopulationRate builds the evaluator from d, converting the
// density axis to m^-3. The coefficient table is dimensionless and is
// used as tabulated.
func NewBeamPopulationRate(d *adf.BeamRateData, extrapolate bool) (*BeamPopulationRate, error) {
	r, err := newBeamRate("beam population rate", d, identity, extrapolate)
	if err != nil {
		return nil, err
	}
	return &BeamPopulationRate{r}, nil
}

// Evaluate returns the relative population of the excited beam state
// [dimensionless] at the given interaction energy [eV/amu], target
// density [m^-3] and target temperature [eV].
func (r *BeamPopulationRate) Evaluate(energy, density, temperature float64) (float64, error) {
	return r.evaluate(energy, density, temperature)
}

// BeamEmissionRate evaluates beam emission coefficients (ADF22 content)
// converted from photon rates to radiated power, in W m^3.
type BeamEmissionRate struct {
	beamRate
	wavelength float64
}

// NewBeamEmissionRate builds the evaluator from d. The coefficient table
// is converted from photons cm^3/s to W m^3 using the transition
// wavelength [nm].
func NewBeamEmissionRate(d *adf.BeamRateData, wavelength float64, extrapolate bool) (*BeamEmissionRate, error) {
	const kind = "beam emission rate"
	if err := checkWavelength(kind, wavelength); err != nil {
		return nil, err
	}
	r, err := newBeamRate(kind, d, func(v float64) float64 {
		return units.PhotonToJ(units.Cm3ToM3(v), wavelength)
	}, extrapolate)
	if err != nil {
		return nil, err
	}
	return &BeamEmissionRate{beamRate: r, wavelength: wavelength}, nil
}

// Wavelength returns the transition wavelength [nm] the photon-to-power
// conversion used.
func (r *BeamEmissionRate) Wavelength() float64 { return r.wavelength }

// Evaluate returns the emission coefficient [W m^3] at the given
// interaction energy [eV/amu], target density [m^-3] and target
// temperature [eV].
func (r *BeamEmissionRate) Evaluate(energy, density, temperature float64) (float64, error) {
	return r.evaluate(energy, density, temperature)
}
