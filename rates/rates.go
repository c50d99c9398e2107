// Package rates evaluates plasma diagnostic rate coefficients from
// tabulated atomic data: beam stopping, beam population, beam emission,
// effective charge-exchange emission, and electron-impact
// excitation/recombination photon emissivities.
//
// Every evaluator owns its interpolants, converts the source tables to SI
// exactly once at construction, and is immutable afterwards, so Evaluate
// is safe for unrestricted concurrent use.
//
// Evaluation composes interpolated factors multiplicatively. Spline
// undershoot near the table floor can turn a physically non-negative
// factor slightly negative; whenever the running product turns negative
// it is clamped to exactly 0.0 and returned as a valid result, without
// evaluating the remaining factors. Clamping is not an error. Queries
// outside the tabulated domain fail with an *interp.DomainError (wrapped
// with the rate kind) when the evaluator was built without extrapolation
// permission.
package rates

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

type term func() (float64, error)

// clampedProduct folds the factors left to right. The moment the running
// product turns negative it returns exactly zero and stops; later factors
// are not evaluated. A factor error aborts the product.
func clampedProduct(terms ...term) (float64, error) {
	v := 1.0
	for _, t := range terms {
		f, err := t()
		if err != nil {
			return 0, err
		}
		v *= f
		if v < 0 {
			return 0, nil
		}
	}
	return v, nil
}

func checkWavelength(kind string, wavelength float64) error {
	if !(wavelength > 0) || math.IsInf(wavelength, 1) {
		return fmt.Errorf("%s: wavelength must be positive and finite, got %g", kind, wavelength)
	}
	return nil
}

// tableDense converts a row-major table to a gonum matrix, mapping every
// entry through convert.
func tableDense(rows, cols int, tab [][]float64, convert func(float64) float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, convert(tab[i][j]))
		}
	}
	return m
}

func mapped(v []float64, convert func(float64) float64) []float64 {
	out := make([]float64, len(v))
	for i, e := range v {
		out[i] = convert(e)
	}
	return out
}

func identity(v float64) float64 { return v }
