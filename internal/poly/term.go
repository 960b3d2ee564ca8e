package poly

import "math"

// Term is the singularity (Macaulay) function Coef·⟨x − At⟩^Power, which
// equals Coef·(x − At)^Power for x ≥ At and zero before it.
type Term struct {
	At    float64
	Power int
	Coef  float64
}

// Eval evaluates the term at x.
func (t Term) Eval(x float64) float64 {
	if x < t.At {
		return 0
	}
	if t.Power == 0 {
		return t.Coef
	}
	return t.Coef * math.Pow(x-t.At, float64(t.Power))
}

// Integrate returns the antiderivative term, ⟨x−a⟩^(n+1)/(n+1).
func (t Term) Integrate() Term {
	return Term{At: t.At, Power: t.Power + 1, Coef: t.Coef / float64(t.Power+1)}
}

// Local expands the term about start (start ≥ At) into a polynomial in
// t = x − start.
func (t Term) Local(start float64) Poly {
	p := make(Poly, t.Power+1)
	p[t.Power] = t.Coef
	return p.Shift(start - t.At)
}

// IntegrateTerms integrates every term once.
func IntegrateTerms(terms []Term) []Term {
	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = t.Integrate()
	}
	return out
}

// EvalTerms sums all terms at x.
func EvalTerms(terms []Term, x float64) float64 {
	var v float64
	for _, t := range terms {
		v += t.Eval(x)
	}
	return v
}
