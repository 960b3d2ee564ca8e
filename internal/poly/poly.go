// Package poly provides the polynomial arena behind every internal-force and
// deformation function: local polynomials, Macaulay singularity terms and
// piecewise functions indexed by interval.
package poly

import "math"

// Poly is a polynomial in a local coordinate t with coefficients in ascending
// powers: p(t) = p[0] + p[1]·t + p[2]·t² + ...
type Poly []float64

// Eval evaluates p at t using Horner's scheme.
func (p Poly) Eval(t float64) float64 {
	var v float64
	for i := len(p) - 1; i >= 0; i-- {
		v = v*t + p[i]
	}
	return v
}

// Degree returns the degree ignoring trailing zero coefficients. The zero
// polynomial has degree -1.
func (p Poly) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}

// IsZero reports whether every coefficient is exactly zero.
func (p Poly) IsZero() bool {
	return p.Degree() < 0
}

// Deriv returns dp/dt.
func (p Poly) Deriv() Poly {
	if len(p) <= 1 {
		return Poly{0}
	}
	d := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = float64(i) * p[i]
	}
	return d
}

// Integ returns the antiderivative of p that vanishes at t = 0.
func (p Poly) Integ() Poly {
	q := make(Poly, len(p)+1)
	for i, c := range p {
		q[i+1] = c / float64(i+1)
	}
	return q
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	n := max(len(p), len(q))
	r := make(Poly, n)
	copy(r, p)
	for i, c := range q {
		r[i] += c
	}
	return r
}

// Scale returns k·p.
func (p Poly) Scale(k float64) Poly {
	r := make(Poly, len(p))
	for i, c := range p {
		r[i] = k * c
	}
	return r
}

// Shift returns q with q(t) = p(t + d), used to re-base a segment polynomial
// onto a later start position.
func (p Poly) Shift(d float64) Poly {
	r := make(Poly, len(p))
	for i, c := range p {
		if c == 0 {
			continue
		}
		// (t + d)^i = Σ C(i,k) d^(i-k) t^k
		for k := 0; k <= i; k++ {
			r[k] += c * binomial(i, k) * math.Pow(d, float64(i-k))
		}
	}
	return r
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1.0
	for i := 1; i <= k; i++ {
		r = r * float64(n-k+i) / float64(i)
	}
	return r
}
