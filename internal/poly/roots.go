package poly

import (
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// RealRoots returns the real roots of p in [a, b] in ascending order. Roots of
// cubic and higher polynomials come from the eigenvalues of the companion
// matrix and are polished with Newton steps.
func RealRoots(p Poly, a, b float64) []float64 {
	p = trim(p)
	n := p.Degree()
	var cand []float64
	switch {
	case n <= 0:
		return nil
	case n == 1:
		cand = []float64{-p[0] / p[1]}
	case n == 2:
		cand = quadratic(p[2], p[1], p[0])
	default:
		cand = companionRoots(p[:n+1])
	}

	tol := 1e-9 * math.Max(1, math.Abs(b-a))
	var out []float64
	for _, r := range cand {
		r = polish(p, r)
		if r < a-tol || r > b+tol {
			continue
		}
		out = append(out, math.Min(math.Max(r, a), b))
	}
	slices.Sort(out)
	return Unique(out, tol)
}

// trim drops trailing coefficients that are negligible relative to the
// largest one.
func trim(p Poly) Poly {
	m := maxAbs(p)
	if m == 0 {
		return Poly{0}
	}
	n := len(p)
	for n > 1 && math.Abs(p[n-1]) <= 1e-13*m {
		n--
	}
	return p[:n]
}

func quadratic(a, b, c float64) []float64 {
	d := b*b - 4*a*c
	if d < 0 {
		if d > -1e-12*b*b {
			return []float64{-b / (2 * a)}
		}
		return nil
	}
	// numerically stable form
	q := -0.5 * (b + math.Copysign(math.Sqrt(d), b))
	if q == 0 {
		return []float64{0}
	}
	return []float64{q / a, c / q}
}

func companionRoots(p Poly) []float64 {
	n := len(p) - 1
	lead := p[n]
	c := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		c.Set(i, i-1, 1)
	}
	for i := 0; i < n; i++ {
		c.Set(i, n-1, -p[i]/lead)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(c, mat.EigenNone); !ok {
		return nil
	}
	var out []float64
	for _, v := range eig.Values(nil) {
		if math.Abs(imag(v)) <= 1e-7*math.Max(1, cmplx.Abs(v)) {
			out = append(out, real(v))
		}
	}
	return out
}

func polish(p Poly, r float64) float64 {
	d := p.Deriv()
	for range 4 {
		dp := d.Eval(r)
		if dp == 0 {
			break
		}
		step := p.Eval(r) / dp
		r -= step
		if math.Abs(step) <= 1e-15*math.Max(1, math.Abs(r)) {
			break
		}
	}
	return r
}

// Extremum returns the position and value of the largest |f| over [lo, hi].
// Candidates are both one-sided values at the interval ends and at interior
// breaks plus the stationary points of every segment, which is exact for
// polynomials.
func (f Piecewise) Extremum(lo, hi float64) (x, v float64) {
	x, v = lo, f.At(lo)
	consider := func(cx, cv float64) {
		if math.Abs(cv) > math.Abs(v)*(1+1e-12) {
			x, v = cx, cv
		}
	}
	consider(hi, f.Left(hi))
	consider(hi, f.At(hi))
	for i, p := range f.polys {
		s, e := f.breaks[i], f.breaks[i+1]
		if e <= lo || s >= hi {
			continue
		}
		a, b := math.Max(s, lo), math.Min(e, hi)
		if s >= lo {
			consider(s, p.Eval(0))
		}
		if e <= hi {
			consider(e, p.Eval(e-s))
		}
		for _, t := range RealRoots(p.Deriv(), a-s, b-s) {
			consider(s+t, p.Eval(t))
		}
	}
	return x, v
}

// Roots returns the zero crossings of f in [lo, hi]: roots inside segments
// plus interior breaks where f jumps across zero.
func (f Piecewise) Roots(lo, hi float64) []float64 {
	var scale float64
	for _, p := range f.polys {
		scale = math.Max(scale, maxAbs(p))
	}
	var out []float64
	for i, p := range f.polys {
		s, e := f.breaks[i], f.breaks[i+1]
		if e < lo || s > hi || maxAbs(p) <= 1e-12*scale {
			continue
		}
		a, b := math.Max(s, lo), math.Min(e, hi)
		for _, t := range RealRoots(p, a-s, b-s) {
			out = append(out, s+t)
		}
		if i > 0 && s > lo && s < hi {
			l, r := f.polys[i-1].Eval(s-f.breaks[i-1]), p.Eval(0)
			if l*r < 0 {
				out = append(out, s)
			}
		}
	}
	slices.Sort(out)
	return Unique(out, snapTolerance(f.breaks)*1e3)
}

func maxAbs(p Poly) float64 {
	var m float64
	for _, c := range p {
		m = math.Max(m, math.Abs(c))
	}
	return m
}
