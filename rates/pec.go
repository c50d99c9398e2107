package rates

import (
	"fmt"

	"github.com/plasmadiag/goadas/adf"
	"github.com/plasmadiag/goadas/interp"
	"github.com/plasmadiag/goadas/units"
)

// pecRate is the shared photon emissivity evaluator behind the impact
// excitation and recombination coefficients: a single bicubic surface
// over (electron density, electron temperature), converted to radiated
// power.
type pecRate struct {
	kind       string
	wavelength float64
	surface    *interp.Cubic2D
}

func newPECRate(kind string, wavelength float64, d *adf.PECData, extrapolate bool) (pecRate, error) {
	if err := checkWavelength(kind, wavelength); err != nil {
		return pecRate{}, err
	}
	if err := d.Validate(); err != nil {
		return pecRate{}, fmt.Errorf("%s: %w", kind, err)
	}
	surface, err := interp.NewCubic2D(
		mapped(d.Ne, units.PerCm3ToPerM3),
		d.Te,
		tableDense(len(d.Ne), len(d.Te), d.PEC, func(v float64) float64 {
			return units.PhotonToJ(units.Cm3ToM3(v), wavelength)
		}),
		interp.Options{
			Extrapolate:         extrapolate,
			TolerateSingleValue: true,
			AxisX:               "density",
			AxisY:               "temperature",
		})
	if err != nil {
		return pecRate{}, fmt.Errorf("%s: %w", kind, err)
	}
	return pecRate{kind: kind, wavelength: wavelength, surface: surface}, nil
}

func (r *pecRate) evaluate(density, temperature float64) (float64, error) {
	v, err := clampedProduct(
		func() (float64, error) { return r.surface.Evaluate(density, temperature) },
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", r.kind, err)
	}
	return v, nil
}

// Wavelength returns the transition wavelength [nm] the photon-to-power
// conversion used.
func (r *pecRate) Wavelength() float64 { return r.wavelength }

// ImpactExcitationRate evaluates electron-impact excitation photon
// emissivity coefficients (ADF15 content) in W m^3.
type ImpactExcitationRate struct {
	pecRate
}

// NewImpactExcitationRate builds the evaluator from d, converting the
// density axis to m^-3 and the emissivity table from photons cm^3/s to
// W m^3 via the transition wavelength [nm].
func NewImpactExcitationRate(wavelength float64, d *adf.PECData, extrapolate bool) (*ImpactExcitationRate, error) {
	r, err := newPECRate("impact excitation rate", wavelength, d, extrapolate)
	if err != nil {
		return nil, err
	}
	return &ImpactExcitationRate{r}, nil
}

// Evaluate returns the excitation emissivity coefficient [W m^3] at the
// given electron density [m^-3] and electron temperature [eV].
func (r *ImpactExcitationRate) Evaluate(density, temperature float64) (float64, error) {
	return r.evaluate(density, temperature)
}

// RecombinationRate evaluates recombination photon emissivity
// coefficients (ADF15 content) in W m^3.
type RecombinationRate struct {
	pecRate
}

// NewRecombinationRate builds the evaluator from d with the same
// conversions as NewImpactExcitationRate.
func NewRecombinationRate(wavelength float64, d *adf.PECData, extrapolate bool) (*RecombinationRate, error) {
	r, err := newPECRate("recombination rate", wavelength, d, extrapolate)
	if err != nil {
		return nil, err
	}
	return &RecombinationRate{r}, nil
}

// Evaluate returns the recombination emissivity coefficient [W m^3] at
// the given electron density [m^-3] and electron temperature [eV].
func (r *RecombinationRate) Evaluate(density, temperature float64) (float64, error) {
	return r.evaluate(density, temperature)
}
