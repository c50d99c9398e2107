package cmd

import (
	"path/filepath"
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/plasmadiag/goadas/adf"
	"github.com/plasmadiag/goadas/units"
)

func TestFileSeries(t *testing.T) {
	var (
		err error
	)
	d := &adf.BeamRateData{
		EB:    []float64{10, 100},
		DT:    []float64{1e18, 1e19},
		TT:    []float64{1, 10},
		SV:    [][]float64{{1e-14, 2e-14}, {3e-14, 4e-14}},
		SVT:   []float64{1e-14, 2e-14},
		SVRef: 1e-14,
	}
	file := filepath.Join(t.TempDir(), "stopping.yaml")
	if err = d.Save(file); err != nil {
		panic(err)
	}

	ss, err := buildSeries(rateSpec{Kind: "stopping", File: file})
	if err != nil {
		panic(err)
	}
	assert.Equal(t, len(ss), 1)
	assert.Equal(t, ss[0].Label, "beam stopping rate")

	// At a table knot the surface reproduces the converted entry and the
	// temperature correction is the reference ratio 1e-14/1e-14.
	p := point{Energy: 10, Density: units.PerCm3ToPerM3(1e18), Temperature: 1}
	v, err := ss[0].Eval(p)
	if err != nil {
		panic(err)
	}
	assert.Equal(t, v, units.Cm3ToM3(1e-14))
	assert.Equal(t, ss[0].Unit(v).Value(), v)

	_, err = buildSeries(rateSpec{Kind: "ionisation", File: file})
	assert.Equal(t, err != nil, true)

	// Emission from a snapshot needs an explicit wavelength.
	_, err = buildSeries(rateSpec{Kind: "emission", File: file})
	assert.Equal(t, err != nil, true)
}
