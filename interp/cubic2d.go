package interp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// hermite maps function/derivative corner data to bicubic polynomial
// coefficients: A = hermite * F * hermite^T per cell.
var hermite = mat.NewDense(4, 4, []float64{
	1, 0, 0, 0,
	0, 0, 1, 0,
	-3, 3, -2, -1,
	2, -2, 1, 1,
})

// Cubic2D is a bicubic interpolant over a rectilinear grid. Node
// derivatives are estimated by finite differences (one-sided at the grid
// edges), each cell is a Hermite patch on the unit square, and the patch
// coefficients are assembled once at construction.
//
// A degenerate (length-1) axis reduces the surface to a 1D spline along
// the other axis; both axes degenerate reduce it to a constant.
type Cubic2D struct {
	x, y []float64
	opt  Options

	cells    []*mat.Dense
	line     *Cubic1D
	alongY   bool
	constant float64
	flat     bool
}

// NewCubic2D builds the surface. f supplies node values with rows indexed
// by x and columns by y; its dimensions must match the axis lengths.
func NewCubic2D(x, y []float64, f mat.Matrix, opt Options) (*Cubic2D, error) {
	if err := checkAxis(opt.axisX(), x, opt.TolerateSingleValue); err != nil {
		return nil, err
	}
	if err := checkAxis(opt.axisY(), y, opt.TolerateSingleValue); err != nil {
		return nil, err
	}
	rf, cf := f.Dims()
	if rf != len(x) || cf != len(y) {
		return nil, fmt.Errorf("interp: table is %dx%d but axes span %dx%d",
			rf, cf, len(x), len(y))
	}
	for i := 0; i < rf; i++ {
		for j := 0; j < cf; j++ {
			if v := f.At(i, j); !isFinite(v) {
				return nil, fmt.Errorf("interp: table value [%d][%d]=%v is not finite", i, j, v)
			}
		}
	}
	s := &Cubic2D{
		x:   append([]float64(nil), x...),
		y:   append([]float64(nil), y...),
		opt: opt,
	}
	switch {
	case len(x) == 1 && len(y) == 1:
		s.flat = true
		s.constant = f.At(0, 0)
	case len(x) == 1:
		row := make([]float64, len(y))
		for j := range row {
			row[j] = f.At(0, j)
		}
		lopt := opt
		lopt.AxisX = opt.axisY()
		line, err := NewCubic1D(y, row, lopt)
		if err != nil {
			return nil, err
		}
		s.line, s.alongY = line, true
	case len(y) == 1:
		col := make([]float64, len(x))
		for i := range col {
			col[i] = f.At(i, 0)
		}
		line, err := NewCubic1D(x, col, opt)
		if err != nil {
			return nil, err
		}
		s.line = line
	default:
		s.cells = buildCells(s.x, s.y, f)
	}
	return s, nil
}

// Domain returns the axis ranges.
func (s *Cubic2D) Domain() (xmin, xmax, ymin, ymax float64) {
	return s.x[0], s.x[len(s.x)-1], s.y[0], s.y[len(s.y)-1]
}

// Evaluate returns the surface value at (x, y). Non-finite queries always
// fail; out-of-domain queries fail with a *DomainError unless extrapolation
// is enabled. Queries along a degenerate axis are unconstrained.
func (s *Cubic2D) Evaluate(x, y float64) (float64, error) {
	xmin, xmax, ymin, ymax := s.Domain()
	if !isFinite(x) {
		return 0, &DomainError{Axis: s.opt.axisX(), Value: x, Min: xmin, Max: xmax}
	}
	if !isFinite(y) {
		return 0, &DomainError{Axis: s.opt.axisY(), Value: y, Min: ymin, Max: ymax}
	}
	if s.flat {
		return s.constant, nil
	}
	if s.line != nil {
		if s.alongY {
			return s.line.Evaluate(y)
		}
		return s.line.Evaluate(x)
	}
	var (
		inX = x >= xmin && x <= xmax
		inY = y >= ymin && y <= ymax
	)
	if inX && inY {
		f, _, _, _, _, _ := s.at(segment(s.x, x), segment(s.y, y), x, y)
		return f, nil
	}
	if !s.opt.Extrapolate {
		if !inX {
			return 0, &DomainError{Axis: s.opt.axisX(), Value: x, Min: xmin, Max: xmax}
		}
		return 0, &DomainError{Axis: s.opt.axisY(), Value: y, Min: ymin, Max: ymax}
	}
	// Taylor continuation anchored at the nearest boundary point; the
	// mixed term only contributes in corner regions where both axes are
	// out of domain.
	var (
		xc = clamp(x, xmin, xmax)
		yc = clamp(y, ymin, ymax)
		dx = x - xc
		dy = y - yc
	)
	f, fx, fy, fxx, fyy, fxy := s.at(segment(s.x, xc), segment(s.y, yc), xc, yc)
	switch s.opt.Extrapolation {
	case Nearest:
		return f, nil
	case Linear:
		return f + fx*dx + fy*dy, nil
	default:
		return f + fx*dx + fy*dy + 0.5*(fxx*dx*dx+fyy*dy*dy) + fxy*dx*dy, nil
	}
}

// at evaluates cell (i, j) at the in-domain point (x, y), returning the
// value and its first and second partials.
func (s *Cubic2D) at(i, j int, x, y float64) (f, fx, fy, fxx, fyy, fxy float64) {
	var (
		hx = s.x[i+1] - s.x[i]
		hy = s.y[j+1] - s.y[j]
		u  = (x - s.x[i]) / hx
		v  = (y - s.y[j]) / hy
		a  = s.cells[i*(len(s.y)-1)+j]
		up = [4]float64{1, u, u * u, u * u * u}
		vp = [4]float64{1, v, v * v, v * v * v}
	)
	for m := 0; m < 4; m++ {
		for n := 0; n < 4; n++ {
			amn := a.At(m, n)
			f += amn * up[m] * vp[n]
			if m > 0 {
				fx += amn * float64(m) * up[m-1] * vp[n]
			}
			if n > 0 {
				fy += amn * float64(n) * up[m] * vp[n-1]
			}
			if m > 1 {
				fxx += amn * float64(m*(m-1)) * up[m-2] * vp[n]
			}
			if n > 1 {
				fyy += amn * float64(n*(n-1)) * up[m] * vp[n-2]
			}
			if m > 0 && n > 0 {
				fxy += amn * float64(m*n) * up[m-1] * vp[n-1]
			}
		}
	}
	fx /= hx
	fy /= hy
	fxx /= hx * hx
	fyy /= hy * hy
	fxy /= hx * hy
	return
}

// buildCells assembles one 4x4 coefficient matrix per grid cell from node
// values and finite-difference derivative estimates, scaled to the unit
// square.
func buildCells(x, y []float64, f mat.Matrix) []*mat.Dense {
	var (
		nx, ny = len(x), len(y)
		fx     = mat.NewDense(nx, ny, nil)
		fy     = mat.NewDense(nx, ny, nil)
		fxy    = mat.NewDense(nx, ny, nil)
	)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			fx.Set(i, j, diffX(x, f, i, j))
			fy.Set(i, j, diffY(y, f, i, j))
		}
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			fxy.Set(i, j, diffY(y, fx, i, j))
		}
	}
	cells := make([]*mat.Dense, (nx-1)*(ny-1))
	for i := 0; i < nx-1; i++ {
		hx := x[i+1] - x[i]
		for j := 0; j < ny-1; j++ {
			hy := y[j+1] - y[j]
			F := mat.NewDense(4, 4, []float64{
				f.At(i, j), f.At(i, j+1), fy.At(i, j) * hy, fy.At(i, j+1) * hy,
				f.At(i+1, j), f.At(i+1, j+1), fy.At(i+1, j) * hy, fy.At(i+1, j+1) * hy,
				fx.At(i, j) * hx, fx.At(i, j+1) * hx, fxy.At(i, j) * hx * hy, fxy.At(i, j+1) * hx * hy,
				fx.At(i+1, j) * hx, fx.At(i+1, j+1) * hx, fxy.At(i+1, j) * hx * hy, fxy.At(i+1, j+1) * hx * hy,
			})
			A := mat.NewDense(4, 4, nil)
			A.Product(hermite, F, hermite.T())
			cells[i*(ny-1)+j] = A
		}
	}
	return cells
}

// diffX estimates df/dx at node (i, j), one-sided at the edges.
func diffX(x []float64, f mat.Matrix, i, j int) float64 {
	n := len(x)
	switch {
	case n < 2:
		return 0
	case i == 0:
		return (f.At(1, j) - f.At(0, j)) / (x[1] - x[0])
	case i == n-1:
		return (f.At(n-1, j) - f.At(n-2, j)) / (x[n-1] - x[n-2])
	default:
		return (f.At(i+1, j) - f.At(i-1, j)) / (x[i+1] - x[i-1])
	}
}

// diffY estimates df/dy at node (i, j), one-sided at the edges.
func diffY(y []float64, f mat.Matrix, i, j int) float64 {
	n := len(y)
	switch {
	case n < 2:
		return 0
	case j == 0:
		return (f.At(i, 1) - f.At(i, 0)) / (y[1] - y[0])
	case j == n-1:
		return (f.At(i, n-1) - f.At(i, n-2)) / (y[n-1] - y[n-2])
	default:
		return (f.At(i, j+1) - f.At(i, j-1)) / (y[j+1] - y[j-1])
	}
}
