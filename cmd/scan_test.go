package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/spf13/cobra"

	"github.com/plasmadiag/goadas/interp"
)

func TestSweep(t *testing.T) {
	var (
		err error
	)
	// Below 20 eV/amu the fake table has no coverage.
	eval := func(p point) (float64, error) {
		if p.Energy < 20 {
			return 0, &interp.DomainError{Axis: "energy", Value: p.Energy, Min: 20, Max: 90}
		}
		return 2 * p.Energy, nil
	}
	xs := []float64{10, 15, 20, 30}
	values, skipped, err := sweep(eval, point{Density: 5.5e24}, "energy", xs)
	if err != nil {
		panic(err)
	}
	assert.Equal(t, skipped, 2)
	assert.Equal(t, len(values), 2)
	assert.Equal(t, values[0], 40.)
	assert.Equal(t, values[1], 60.)

	_, _, err = sweep(eval, point{}, "volume", xs)
	assert.Equal(t, err != nil, true)
}

func TestPointFlags(t *testing.T) {
	var (
		err error
	)
	cmd := &cobra.Command{}
	rateFlags(cmd)
	for flag, value := range map[string]string{
		"energy":      "55",
		"density":     "5.5e24",
		"temperature": "5.5",
		"transition":  "8->7",
		"ionisation":  "6",
	} {
		if err = cmd.Flags().Set(flag, value); err != nil {
			panic(err)
		}
	}
	p := pointFromFlags(cmd)
	assert.Equal(t, p.Energy, 55.)
	assert.Equal(t, p.Density, 5.5e24)
	assert.Equal(t, p.Temperature, 5.5)
	// Unset flags keep their defaults.
	assert.Equal(t, p.Zeff, 1.)
	assert.Equal(t, p.Bfield, 2.)

	s := specFromFlags(cmd, []string{"CX"})
	assert.Equal(t, s.Kind, "cx")
	assert.Equal(t, s.Transition, "8->7")
	assert.Equal(t, s.Ionisation, 6)
}
