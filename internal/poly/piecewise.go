package poly

import (
	"math"
	"slices"
	"sort"
)

// Piecewise is a function over [breaks[0], breaks[n]] made of n polynomial
// segments. Segment i covers [breaks[i], breaks[i+1]) and is expressed in the
// local coordinate x − breaks[i]. Evaluation is right-continuous at interior
// breaks; at the right end of the domain the last segment is used.
type Piecewise struct {
	breaks []float64
	polys  []Poly
}

// Segment is one polynomial piece of a Piecewise function.
type Segment struct {
	Start, End float64
	Poly       Poly
}

// New builds a piecewise function. len(polys) must equal len(breaks)-1 and
// breaks must be strictly increasing.
func New(breaks []float64, polys []Poly) Piecewise {
	if len(breaks) != len(polys)+1 {
		panic("poly: breaks and polynomials do not match")
	}
	return Piecewise{breaks: slices.Clone(breaks), polys: slices.Clone(polys)}
}

// Zero returns the zero function on the given breaks.
func Zero(breaks []float64) Piecewise {
	polys := make([]Poly, len(breaks)-1)
	for i := range polys {
		polys[i] = Poly{0}
	}
	return Piecewise{breaks: slices.Clone(breaks), polys: polys}
}

// FromTerms assembles the sum of singularity terms on the given breaks. A term
// contributes to every segment starting at or after its position.
func FromTerms(breaks []float64, terms []Term) Piecewise {
	f := Zero(breaks)
	eps := snapTolerance(breaks)
	for i := range f.polys {
		s := breaks[i]
		p := Poly{0}
		for _, t := range terms {
			if t.At <= s+eps {
				p = p.Add(t.Local(s))
			}
		}
		f.polys[i] = p
	}
	return f
}

func snapTolerance(breaks []float64) float64 {
	if len(breaks) < 2 {
		return 0
	}
	return 1e-12 * math.Max(1, math.Abs(breaks[len(breaks)-1]-breaks[0]))
}

// Breaks returns a copy of the segment boundaries.
func (f Piecewise) Breaks() []float64 { return slices.Clone(f.breaks) }

// Len returns the number of segments.
func (f Piecewise) Len() int { return len(f.polys) }

// Segment returns segment i.
func (f Piecewise) Segment(i int) Segment {
	return Segment{Start: f.breaks[i], End: f.breaks[i+1], Poly: f.polys[i]}
}

// Domain returns the first and last break.
func (f Piecewise) Domain() (lo, hi float64) {
	return f.breaks[0], f.breaks[len(f.breaks)-1]
}

// index returns the segment containing x with right-continuity, in O(log n).
func (f Piecewise) index(x float64) int {
	n := len(f.polys)
	i := sort.Search(n, func(i int) bool { return f.breaks[i+1] > x })
	if i >= n {
		i = n - 1
	}
	return i
}

// leftIndex returns the segment whose closure ends at or after x, so that
// evaluating it at x yields the left limit.
func (f Piecewise) leftIndex(x float64) int {
	n := len(f.polys)
	i := sort.Search(n, func(i int) bool { return f.breaks[i+1] >= x })
	if i >= n {
		i = n - 1
	}
	return i
}

// At evaluates f at x (right-continuous).
func (f Piecewise) At(x float64) float64 {
	i := f.index(x)
	return f.polys[i].Eval(x - f.breaks[i])
}

// Left evaluates the left limit of f at x.
func (f Piecewise) Left(x float64) float64 {
	i := f.leftIndex(x)
	return f.polys[i].Eval(x - f.breaks[i])
}

// Jump returns At(x) − Left(x).
func (f Piecewise) Jump(x float64) float64 {
	return f.At(x) - f.Left(x)
}

// Derivative differentiates every segment.
func (f Piecewise) Derivative() Piecewise {
	g := Piecewise{breaks: slices.Clone(f.breaks), polys: make([]Poly, len(f.polys))}
	for i, p := range f.polys {
		g.polys[i] = p.Deriv()
	}
	return g
}

// Integral returns the continuous antiderivative that vanishes at the left end
// of the domain.
func (f Piecewise) Integral() Piecewise {
	g := Piecewise{breaks: slices.Clone(f.breaks), polys: make([]Poly, len(f.polys))}
	var c float64
	for i, p := range f.polys {
		q := p.Integ()
		q[0] += c
		g.polys[i] = q
		c = q.Eval(f.breaks[i+1] - f.breaks[i])
	}
	return g
}

// Scale returns k·f.
func (f Piecewise) Scale(k float64) Piecewise {
	return f.Map(func(_ int, s Segment) Poly { return s.Poly.Scale(k) })
}

// Map returns a function on the same breaks with each segment replaced by fn.
func (f Piecewise) Map(fn func(i int, s Segment) Poly) Piecewise {
	g := Piecewise{breaks: slices.Clone(f.breaks), polys: make([]Poly, len(f.polys))}
	for i := range f.polys {
		g.polys[i] = fn(i, f.Segment(i))
	}
	return g
}

// Refine re-expresses f on the union of its breaks and extra, dropping extra
// positions outside the domain.
func (f Piecewise) Refine(extra []float64) Piecewise {
	lo, hi := f.Domain()
	eps := snapTolerance(f.breaks)
	all := slices.Clone(f.breaks)
	for _, x := range extra {
		if x > lo+eps && x < hi-eps {
			all = append(all, x)
		}
	}
	all = Unique(all, eps)
	if len(all) == len(f.breaks) {
		return f
	}
	g := Piecewise{breaks: all, polys: make([]Poly, len(all)-1)}
	for i := range g.polys {
		s := all[i]
		j := f.index(s + eps)
		g.polys[i] = f.polys[j].Shift(s - f.breaks[j])
	}
	return g
}

// Add returns f + g on the union of both break sets.
func (f Piecewise) Add(g Piecewise) Piecewise {
	a := f.Refine(g.breaks)
	b := g.Refine(a.breaks)
	a = a.Refine(b.breaks)
	return a.Map(func(i int, s Segment) Poly { return s.Poly.Add(b.polys[i]) })
}

// Sample evaluates f at n equally spaced stations over its domain.
func (f Piecewise) Sample(n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	lo, hi := f.Domain()
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := range xs {
		x := lo + (hi-lo)*float64(i)/float64(n-1)
		xs[i] = x
		ys[i] = f.At(x)
	}
	return xs, ys
}

// Unique sorts xs and merges values closer than eps.
func Unique(xs []float64, eps float64) []float64 {
	s := slices.Clone(xs)
	slices.Sort(s)
	out := s[:0]
	for _, x := range s {
		if len(out) > 0 && x-out[len(out)-1] <= eps {
			continue
		}
		out = append(out, x)
	}
	return out
}
