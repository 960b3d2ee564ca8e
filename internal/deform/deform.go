// Package deform integrates internal forces into displacements.
//
// Each constant-rigidity span gets its own integration constants, tied
// together by continuity at the joints and pinned down by the support
// conditions. The resulting linear system is solved in one step.
package deform

import (
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gobeam/internal/errs"
	"github.com/alexiusacademia/gobeam/internal/linalg"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/member"
	"github.com/alexiusacademia/gobeam/internal/poly"
)

// Constraints lists the positions where each displacement is held at zero.
type Constraints struct {
	Deflection []float64
	Rotation   []float64
	Axial      []float64
	Twist      []float64
}

// ConstraintsOf collects the restraints of a set of supports.
func ConstraintsOf(supports []load.Support) Constraints {
	var c Constraints
	for _, s := range supports {
		c.Add(s.Position, s.Kind.Restrains())
	}
	return c
}

// Add restrains the given freedoms at x.
func (c *Constraints) Add(x float64, dof load.DOF) {
	if dof.Has(load.Axial) {
		c.Axial = append(c.Axial, x)
	}
	if dof.Has(load.Transverse) {
		c.Deflection = append(c.Deflection, x)
	}
	if dof.Has(load.Rotation) {
		c.Rotation = append(c.Rotation, x)
	}
	if dof.Has(load.Twist) {
		c.Twist = append(c.Twist, x)
	}
}

// Bending holds the bending rotation θ and the deflection v.
type Bending struct {
	Slope      poly.Piecewise
	Deflection poly.Piecewise
}

// spanned is a function refined on span boundaries with the span of each
// segment recorded.
type spanned struct {
	f      poly.Piecewise
	spanOf []int
	spans  []member.Span
}

func split(f poly.Piecewise, spans []member.Span) spanned {
	joints := make([]float64, 0, len(spans))
	for _, s := range spans[1:] {
		joints = append(joints, s.Start)
	}
	f = f.Refine(joints)
	out := spanned{f: f, spanOf: make([]int, f.Len()), spans: spans}
	for i := range out.spanOf {
		seg := f.Segment(i)
		mid := (seg.Start + seg.End) / 2
		out.spanOf[i] = slices.IndexFunc(spans, func(s member.Span) bool {
			return mid >= s.Start && mid <= s.End
		})
		if out.spanOf[i] < 0 {
			out.spanOf[i] = len(spans) - 1
		}
	}
	return out
}

// spanAt returns the span index at x, right-continuous like Piecewise.At.
func spanAt(spans []member.Span, x float64) int {
	for n, s := range spans {
		if x < s.End {
			return n
		}
	}
	return len(spans) - 1
}

// integrate returns the antiderivative of each segment that restarts from
// zero at every span start.
func (s spanned) integrate(f poly.Piecewise) poly.Piecewise {
	var c float64
	prev := -1
	return f.Map(func(i int, seg poly.Segment) poly.Poly {
		if s.spanOf[i] != prev {
			c, prev = 0, s.spanOf[i]
		}
		q := seg.Poly.Integ()
		q[0] += c
		c = q.Eval(seg.End - seg.Start)
		return q
	})
}

// divide returns f/rigidity per segment. Non-positive rigidities are treated
// as unity so that compatibility of uniform members is still correct.
func (s spanned) divide(f poly.Piecewise, rigidity func(member.Span) float64) poly.Piecewise {
	return f.Map(func(i int, seg poly.Segment) poly.Poly {
		k := rigidity(s.spans[s.spanOf[i]])
		if k <= 0 {
			k = 1
		}
		return seg.Poly.Scale(1 / k)
	})
}

// system accumulates rows of a linear system in the integration constants.
type system struct {
	cols int
	rows [][]float64
	rhs  []float64
}

func (s *system) add(row []float64, rhs float64) {
	s.rows = append(s.rows, row)
	s.rhs = append(s.rhs, rhs)
}

func (s *system) row() []float64 { return make([]float64, s.cols) }

func (s *system) solve(op string) ([]float64, error) {
	if len(s.rows) < s.cols {
		return nil, errs.New(op, errs.ErrUnderconstrained, "%d conditions for %d integration constants", len(s.rows), s.cols)
	}
	a := mat.NewDense(len(s.rows), s.cols, nil)
	for i, r := range s.rows {
		a.SetRow(i, r)
	}
	if rank := linalg.Rank(a); rank < s.cols {
		return nil, errs.New(op, errs.ErrUnderconstrained, "integration constants have rank %d of %d", rank, s.cols)
	}
	c, err := linalg.Solve(a, s.rhs)
	if err != nil {
		return nil, errs.New(op, errs.ErrSolverTolerance, "%v", err)
	}
	return c, nil
}

// Bend integrates M/EI twice, adding −V/(kGA) to the slope of the deflection
// on spans with shear rigidity. Fixed rotations and deflections come from c.
func Bend(moment, shear poly.Piecewise, spans []member.Span, c Constraints) (Bending, error) {
	const op = "deform.Bend"
	moment = moment.Refine(shear.Breaks())
	sp := split(moment, spans)
	shear = shear.Refine(sp.f.Breaks())

	theta := sp.integrate(sp.divide(sp.f, func(s member.Span) float64 { return s.EI }))
	defl := sp.integrate(theta)
	hasShear := slices.ContainsFunc(spans, func(s member.Span) bool { return s.KGA > 0 })
	if hasShear {
		gamma := sp.divide(shear, func(s member.Span) float64 { return s.KGA }).Map(func(i int, seg poly.Segment) poly.Poly {
			if spans[sp.spanOf[i]].KGA <= 0 {
				return poly.Poly{0}
			}
			// shear strain deflects in the direction of the load
			return seg.Poly.Scale(-1)
		})
		defl = defl.Add(sp.integrate(gamma))
	}

	// unknowns: C1 (rotation) and C2 (deflection) per span
	n := len(spans)
	sys := &system{cols: 2 * n}
	for s := 0; s+1 < n; s++ {
		x := spans[s].End
		h := x - spans[s].Start
		r := sys.row()
		r[2*s], r[2*s+2] = 1, -1
		sys.add(r, -theta.Left(x))

		r = sys.row()
		r[2*s], r[2*s+1], r[2*s+3] = h, 1, -1
		sys.add(r, -defl.Left(x))
	}
	for _, x := range c.Deflection {
		s := spanAt(spans, x)
		r := sys.row()
		r[2*s], r[2*s+1] = x-spans[s].Start, 1
		sys.add(r, -defl.At(x))
	}
	for _, x := range c.Rotation {
		s := spanAt(spans, x)
		r := sys.row()
		r[2*s] = 1
		sys.add(r, -theta.At(x))
	}
	k, err := sys.solve(op)
	if err != nil {
		return Bending{}, err
	}

	theta = theta.Map(func(i int, seg poly.Segment) poly.Poly {
		return seg.Poly.Add(poly.Poly{k[2*sp.spanOf[i]]})
	})
	defl = defl.Map(func(i int, seg poly.Segment) poly.Poly {
		s := sp.spanOf[i]
		c1, c2 := k[2*s], k[2*s+1]
		return seg.Poly.Add(poly.Poly{c2 + c1*(seg.Start-spans[s].Start), c1})
	})
	return Bending{Slope: theta, Deflection: defl}, nil
}

// Stretch integrates N/EA into the axial displacement u.
func Stretch(axial poly.Piecewise, spans []member.Span, fixed []float64) (poly.Piecewise, error) {
	return firstOrder("deform.Stretch", axial, spans, fixed, func(s member.Span) float64 { return s.EA })
}

// Twist integrates T/GJ into the angle of twist φ.
func Twist(torque poly.Piecewise, spans []member.Span, fixed []float64) (poly.Piecewise, error) {
	return firstOrder("deform.Twist", torque, spans, fixed, func(s member.Span) float64 { return s.GJ })
}

// firstOrder solves u' = f/k with u = 0 at every fixed position, or u(0) = 0
// when nothing is fixed.
func firstOrder(op string, f poly.Piecewise, spans []member.Span, fixed []float64, rigidity func(member.Span) float64) (poly.Piecewise, error) {
	sp := split(f, spans)
	u := sp.integrate(sp.divide(sp.f, rigidity))

	n := len(spans)
	sys := &system{cols: n}
	for s := 0; s+1 < n; s++ {
		r := sys.row()
		r[s], r[s+1] = 1, -1
		sys.add(r, -u.Left(spans[s].End))
	}
	if len(fixed) == 0 {
		fixed = []float64{spans[0].Start}
	}
	for _, x := range fixed {
		r := sys.row()
		r[spanAt(spans, x)] = 1
		sys.add(r, -u.At(x))
	}
	k, err := sys.solve(op)
	if err != nil {
		return poly.Piecewise{}, err
	}
	return u.Map(func(i int, seg poly.Segment) poly.Poly {
		return seg.Poly.Add(poly.Poly{k[sp.spanOf[i]]})
	}), nil
}
