package interp

// Cubic1D is a natural cubic spline through a strictly increasing set of
// knots. Outside the knot range it either extrapolates per the configured
// Extrapolation or reports a *DomainError, depending on Options.Extrapolate.
type Cubic1D struct {
	x []float64
	a []float64 // knot values
	// per-segment polynomial coefficients:
	// f(x) = a[j] + r*(b[j] + r*(c[j] + r*d[j])), r = x - x[j]
	b, c, d []float64
	opt     Options
}

// NewCubic1D builds the spline. x must be strictly increasing and aligned
// 1:1 with f; both must be finite. A single knot is accepted only with
// Options.TolerateSingleValue, in which case the interpolant is the constant
// f[0] everywhere.
func NewCubic1D(x, f []float64, opt Options) (*Cubic1D, error) {
	if err := checkAxis(opt.axisX(), x, opt.TolerateSingleValue); err != nil {
		return nil, err
	}
	if len(x) != len(f) {
		return nil, errShape(opt.axisX(), len(x), len(f))
	}
	if err := checkValues("f", f); err != nil {
		return nil, err
	}
	s := &Cubic1D{
		x:   append([]float64(nil), x...),
		a:   append([]float64(nil), f...),
		opt: opt,
	}
	if len(x) > 1 {
		s.b, s.c, s.d = spline(s.x, s.a)
	}
	return s, nil
}

// Domain returns the knot range.
func (s *Cubic1D) Domain() (min, max float64) {
	return s.x[0], s.x[len(s.x)-1]
}

// Evaluate returns the spline value at x. Non-finite x always fails; x
// outside the knot range fails with a *DomainError unless extrapolation is
// enabled.
func (s *Cubic1D) Evaluate(x float64) (float64, error) {
	var (
		n        = len(s.x) - 1
		min, max = s.Domain()
	)
	if !isFinite(x) {
		return 0, &DomainError{Axis: s.opt.axisX(), Value: x, Min: min, Max: max}
	}
	if n == 0 {
		// Degenerate axis: constant for any query value.
		return s.a[0], nil
	}
	if x < min || x > max {
		if !s.opt.Extrapolate {
			return 0, &DomainError{Axis: s.opt.axisX(), Value: x, Min: min, Max: max}
		}
		return s.extend(x), nil
	}
	j := segment(s.x, x)
	r := x - s.x[j]
	return s.a[j] + r*(s.b[j]+r*(s.c[j]+r*s.d[j])), nil
}

// extend continues the spline outside [min, max] as a Taylor expansion
// anchored at the nearest boundary knot.
func (s *Cubic1D) extend(x float64) float64 {
	var (
		n  = len(s.x) - 1
		xb = s.x[0]
		j  = 0
		r  = 0.
	)
	if x > s.x[n] {
		xb = s.x[n]
		j = n - 1
		r = s.x[n] - s.x[j]
	}
	var (
		f   = s.a[j] + r*(s.b[j]+r*(s.c[j]+r*s.d[j]))
		df  = s.b[j] + r*(2*s.c[j]+r*3*s.d[j])
		d2f = 2*s.c[j] + r*6*s.d[j]
		dx  = x - xb
	)
	switch s.opt.Extrapolation {
	case Nearest:
		return f
	case Linear:
		return f + df*dx
	default:
		return f + dx*(df+0.5*d2f*dx)
	}
}

// spline computes natural cubic spline coefficients with the classic
// tridiagonal sweep. len(x) >= 2.
func spline(x, a []float64) (b, c, d []float64) {
	var (
		n     = len(x) - 1
		h     = make([]float64, n)
		alpha = make([]float64, n)
		l     = make([]float64, n+1)
		mu    = make([]float64, n+1)
		z     = make([]float64, n+1)
		cc    = make([]float64, n+1)
	)
	for i := 0; i < n; i++ {
		h[i] = x[i+1] - x[i]
	}
	for i := 1; i < n; i++ {
		alpha[i] = 3*(a[i+1]-a[i])/h[i] - 3*(a[i]-a[i-1])/h[i-1]
	}
	l[0] = 1
	for i := 1; i < n; i++ {
		l[i] = 2*(x[i+1]-x[i-1]) - h[i-1]*mu[i-1]
		mu[i] = h[i] / l[i]
		z[i] = (alpha[i] - h[i-1]*z[i-1]) / l[i]
	}
	l[n] = 1
	b = make([]float64, n)
	d = make([]float64, n)
	for j := n - 1; j >= 0; j-- {
		cc[j] = z[j] - mu[j]*cc[j+1]
		b[j] = (a[j+1]-a[j])/h[j] - h[j]*(cc[j+1]+2*cc[j])/3
		d[j] = (cc[j+1] - cc[j]) / (3 * h[j])
	}
	return b, cc[:n], d
}
