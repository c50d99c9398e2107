// Package units holds the unit conversions shared by the rate evaluators
// and the SI dimension tags used when reporting evaluated coefficients.
//
// Tabulated atomic data ships in CGS-flavoured units (densities in cm^-3,
// rate coefficients in cm^3/s, emission tables in photons rather than watts).
// Everything downstream of dataset loading works in SI, so the conversions
// here are applied exactly once, at evaluator construction time.
package units

import "github.com/ctessum/unit"

const (
	// PlanckConstant is the exact SI value fixed by the 2019 redefinition [J s].
	PlanckConstant = 6.62607015e-34
	// SpeedOfLight is the exact SI value [m/s].
	SpeedOfLight = 299792458.0
)

// PerCm3ToPerM3 converts a number density from cm^-3 to m^-3.
func PerCm3ToPerM3(d float64) float64 {
	return d * 1.e6
}

// PerM3ToPerCm3 converts a number density from m^-3 to cm^-3.
func PerM3ToPerCm3(d float64) float64 {
	return d * 1.e-6
}

// Cm3ToM3 converts a volumetric rate coefficient from cm^3/s to m^3/s.
func Cm3ToM3(r float64) float64 {
	return r * 1.e-6
}

// M3ToCm3 converts a volumetric rate coefficient from m^3/s to cm^3/s.
func M3ToCm3(r float64) float64 {
	return r * 1.e6
}

// PhotonEnergy returns the energy [J] of one photon at the given vacuum
// wavelength [nm].
func PhotonEnergy(wavelengthNm float64) float64 {
	return PlanckConstant * SpeedOfLight / (wavelengthNm * 1.e-9)
}

// PhotonToJ converts a photon-counted quantity to joules at the given
// wavelength [nm].
func PhotonToJ(photons, wavelengthNm float64) float64 {
	return photons * PhotonEnergy(wavelengthNm)
}

// JToPhoton converts a quantity in joules back to a photon count at the
// given wavelength [nm].
func JToPhoton(energy, wavelengthNm float64) float64 {
	return energy / PhotonEnergy(wavelengthNm)
}

var (
	// PerMeter3 is number density [m^-3].
	PerMeter3 = unit.Dimensions{unit.LengthDim: -3}
	// WattMeter3 is a radiated-power rate coefficient [W m^3], i.e.
	// [kg m^5 s^-3].
	WattMeter3 = unit.Dimensions{
		unit.MassDim:   1,
		unit.LengthDim: 5,
		unit.TimeDim:   -3,
	}
)

// Stopping tags v as a beam stopping coefficient [m^3 s^-1].
func Stopping(v float64) *unit.Unit {
	return unit.New(v, unit.Meter3PerSecond)
}

// Population tags v as a dimensionless beam population coefficient.
func Population(v float64) *unit.Unit {
	return unit.New(v, unit.Dimless)
}

// EmissionPower tags v as a radiated-power coefficient [W m^3], the unit of
// beam emission, effective CX and PEC coefficients.
func EmissionPower(v float64) *unit.Unit {
	return unit.New(v, WattMeter3)
}

// Density tags v as a number density [m^-3].
func Density(v float64) *unit.Unit {
	return unit.New(v, PerMeter3)
}
