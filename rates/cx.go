package rates

import (
	"fmt"

	"github.com/plasmadiag/goadas/adf"
	"github.com/plasmadiag/goadas/interp"
	"github.com/plasmadiag/goadas/units"
)

// BeamCXRate evaluates effective charge-exchange emission coefficients
// (ADF12 content) in W m^3. The primary energy dependence carries the
// units; the temperature, density, Zeff and field dependences enter as
// dimensionless corrections normalised to 1 at the reference condition.
type BeamCXRate struct {
	donorMetastable int
	wavelength      float64

	eb   *interp.Cubic1D
	ti   *interp.Cubic1D
	ni   *interp.Cubic1D
	zeff *interp.Cubic1D
	b    *interp.Cubic1D
}

// NewBeamCXRate builds the evaluator from d. The density axis is
// converted to m^-3, the energy-dependence table from photons cm^3/s to
// W m^3 via the transition wavelength [nm], and each correction table is
// divided by QEFREF. donorMetastable only annotates which donor state the
// dataset describes.
func NewBeamCXRate(donorMetastable int, wavelength float64, d *adf.CXRateData, extrapolate bool) (*BeamCXRate, error) {
	const kind = "beam cx rate"
	if donorMetastable < 0 {
		return nil, fmt.Errorf("%s: donor metastable index must be non-negative, got %d", kind, donorMetastable)
	}
	if err := checkWavelength(kind, wavelength); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	var (
		norm    = func(v float64) float64 { return v / d.QefRef }
		toPower = func(v float64) float64 {
			return units.PhotonToJ(units.Cm3ToM3(v), wavelength)
		}
		r   = &BeamCXRate{donorMetastable: donorMetastable, wavelength: wavelength}
		err error
	)
	build := func(axis string, x, f []float64) *interp.Cubic1D {
		if err != nil {
			return nil
		}
		var s *interp.Cubic1D
		s, err = interp.NewCubic1D(x, f, interp.Options{
			Extrapolate:         extrapolate,
			TolerateSingleValue: true,
			AxisX:               axis,
		})
		return s
	}
	r.eb = build("energy", d.Ener, mapped(d.QEner, toPower))
	r.ti = build("temperature", d.Tiev, mapped(d.QTiev, norm))
	r.ni = build("density", mapped(d.Densi, units.PerCm3ToPerM3), mapped(d.QDensi, norm))
	r.zeff = build("zeff", d.Zeff, mapped(d.QZeff, norm))
	r.b = build("bfield", d.Bmag, mapped(d.QBmag, norm))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return r, nil
}

// DonorMetastable returns the metastable index of the donor state the
// dataset describes.
func (r *BeamCXRate) DonorMetastable() int { return r.donorMetastable }

// Wavelength returns the transition wavelength [nm] the photon-to-power
// conversion used.
func (r *BeamCXRate) Wavelength() float64 { return r.wavelength }

// Evaluate returns the effective emission coefficient [W m^3] at the
// given interaction energy [eV/amu], receiver ion temperature [eV],
// receiver ion density [m^-3], plasma effective charge and magnetic field
// magnitude [T]. Factors multiply in that order with the zero clamp
// applied after each stage.
func (r *BeamCXRate) Evaluate(energy, temperature, density, zEffective, bField float64) (float64, error) {
	v, err := clampedProduct(
		func() (float64, error) { return r.eb.Evaluate(energy) },
		func() (float64, error) { return r.ti.Evaluate(temperature) },
		func() (float64, error) { return r.ni.Evaluate(density) },
		func() (float64, error) { return r.zeff.Evaluate(zEffective) },
		func() (float64, error) { return r.b.Evaluate(bField) },
	)
	if err != nil {
		return 0, fmt.Errorf("beam cx rate: %w", err)
	}
	return v, nil
}
