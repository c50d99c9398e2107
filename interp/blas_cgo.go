//go:build cgo && netlib
// +build cgo,netlib

package interp

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Building with -tags netlib routes gonum's dense kernels through the
// system BLAS, which pays off when assembling coefficient tables for
// large rate surfaces.
func init() {
	blas64.Use(netblas.Implementation{})
	fmt.Println("Using netlib to accelerate BLAS")
}
