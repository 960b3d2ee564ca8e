// Package solver resolves support reactions from static equilibrium, using
// the force method for statically indeterminate members.
//
// The axial, bending and torsion fields are uncoupled for a straight member
// and are solved independently. When a field has more reaction components
// than independent equations, redundants are released until the primary
// structure is determinate; their magnitudes follow from compatibility of
// the released displacements.
package solver

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gobeam/internal/errs"
	"github.com/alexiusacademia/gobeam/internal/linalg"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/member"
)

// Unknown is one reaction component of one support.
type Unknown struct {
	Support  load.Handle
	Position float64
	DOF      load.DOF
}

func (u Unknown) String() string {
	name := map[load.DOF]string{
		load.Axial: "Fx", load.Transverse: "Fy", load.Rotation: "Mz", load.Twist: "Tx",
	}[u.DOF]
	return fmt.Sprintf("%s at x=%g", name, u.Position)
}

// load returns the component as an applied load of magnitude k.
func (u Unknown) load(k float64) load.Load {
	switch u.DOF {
	case load.Axial:
		return load.AngledForce(u.Position, k, 0)
	case load.Rotation:
		return load.Moment(u.Position, k)
	case load.Twist:
		return load.Torque(u.Position, k)
	}
	return load.Force(u.Position, k)
}

// Reaction holds the actions a support applies to the member.
type Reaction struct {
	Support  load.Handle
	Kind     load.SupportKind
	Position float64

	Fx, Fy, Mz, Tx float64
}

// Loads returns the reaction as synthetic loads.
func (r Reaction) Loads() []load.Load {
	var out []load.Load
	if r.Fx != 0 {
		out = append(out, load.AngledForce(r.Position, r.Fx, 0))
	}
	if r.Fy != 0 {
		out = append(out, load.Force(r.Position, r.Fy))
	}
	if r.Mz != 0 {
		out = append(out, load.Moment(r.Position, r.Mz))
	}
	if r.Tx != 0 {
		out = append(out, load.Torque(r.Position, r.Tx))
	}
	return out
}

// Result is the outcome of Solve.
type Result struct {
	// Reactions in support registration order.
	Reactions []Reaction

	// Degree is the total degree of static indeterminacy.
	Degree int

	// Redundants are the components released in the primary structure.
	Redundants []Unknown

	// Residual is the largest relative equilibrium residual.
	Residual float64
}

// Reaction returns the reaction of support h.
func (r Result) Reaction(h load.Handle) (Reaction, bool) {
	for _, re := range r.Reactions {
		if re.Support == h {
			return re, true
		}
	}
	return Reaction{}, false
}

// Loads returns every reaction as synthetic loads.
func (r Result) Loads() []load.Load {
	var out []load.Load
	for _, re := range r.Reactions {
		out = append(out, re.Loads()...)
	}
	return out
}

var dofs = []load.DOF{load.Axial, load.Transverse, load.Rotation, load.Twist}

// Solve computes the reactions of supports on member m under loads.
func Solve(m *member.Member, supports []load.SupportEntry, loads []load.Load) (Result, error) {
	var unknowns []Unknown
	for _, e := range supports {
		for _, d := range dofs {
			if e.Support.Kind.Restrains().Has(d) {
				unknowns = append(unknowns, Unknown{Support: e.Handle, Position: e.Support.Position, DOF: d})
			}
		}
	}

	s := &solver{m: m, loads: loads, tol: m.Convention().Tolerance}
	var res Result
	values := make(map[Unknown]float64, len(unknowns))
	for _, f := range fields {
		us := slices.DeleteFunc(slices.Clone(unknowns), func(u Unknown) bool { return !f.owns(u.DOF) })
		vals, released, err := s.field(f, us)
		if err != nil {
			return Result{}, err
		}
		for i, u := range us {
			if vals != nil {
				values[u] = vals[i]
			}
		}
		res.Degree += len(released)
		res.Redundants = append(res.Redundants, released...)
	}

	for _, e := range supports {
		re := Reaction{Support: e.Handle, Kind: e.Support.Kind, Position: e.Support.Position}
		for _, u := range unknowns {
			if u.Support != e.Handle {
				continue
			}
			v := values[u]
			switch u.DOF {
			case load.Axial:
				re.Fx = v
			case load.Transverse:
				re.Fy = v
			case load.Rotation:
				re.Mz = v
			case load.Twist:
				re.Tx = v
			}
		}
		res.Reactions = append(res.Reactions, re)
	}

	res.Residual = residual(loads, res.Reactions)
	if res.Residual > s.tol {
		return Result{}, errs.New("solver.Solve", errs.ErrSolverTolerance,
			"relative residual %.3g exceeds %.3g", res.Residual, s.tol)
	}
	return res, nil
}

type solver struct {
	m     *member.Member
	loads []load.Load
	tol   float64
}

// field returns the values of us (nil when us is empty) and the released
// redundants.
func (s *solver) field(f field, us []Unknown) ([]float64, []Unknown, error) {
	const op = "solver.Solve"
	applied := f.applied(s.loads)
	rhs := make([]float64, len(applied))
	var scale float64
	for i, v := range applied {
		rhs[i] = -v
		scale = math.Max(scale, math.Abs(v))
	}

	n, m := len(us), f.equations()
	if n == 0 {
		if f.stable() {
			return nil, nil, errs.New(op, errs.ErrUnderconstrained, "no support restrains %s", f)
		}
		if scale > 0 {
			return nil, nil, errs.New(op, errs.ErrUnderconstrained, "unrestrained %s load %g", f, applied[0])
		}
		return nil, nil, nil
	}

	a := f.matrix(us)
	rank := linalg.Rank(a)
	if rank < m {
		if n > rank {
			return nil, nil, errs.New(op, errs.ErrOverconstrained,
				"%d %s reactions span only %d of %d equilibrium equations", n, f, rank, m)
		}
		return nil, nil, errs.New(op, errs.ErrUnderconstrained,
			"%s has %d reaction components for %d equilibrium equations", f, n, m)
	}
	if n == m {
		vals, err := linalg.Solve(a, rhs)
		if err != nil {
			return nil, nil, errs.New(op, errs.ErrOverconstrained, "%s equilibrium: %v", f, err)
		}
		return vals, nil, nil
	}
	return s.forceMethod(f, us)
}

// releaseOrder lists candidates for release: farthest from x = 0 first, and
// forces before moments at the same position.
func releaseOrder(us []Unknown) []int {
	idx := make([]int, len(us))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		ua, ub := us[a], us[b]
		switch {
		case ua.Position > ub.Position:
			return -1
		case ua.Position < ub.Position:
			return 1
		}
		return int(ua.DOF) - int(ub.DOF)
	})
	return idx
}

// forceMethod releases r = n − m redundants, solves the primary structure and
// restores compatibility at every released component.
func (s *solver) forceMethod(f field, us []Unknown) ([]float64, []Unknown, error) {
	const op = "solver.Solve"
	m := f.equations()
	r := len(us) - m

	keep := slices.Clone(us)
	var released []Unknown
	for _, i := range releaseOrder(us) {
		if len(released) == r {
			break
		}
		trial := slices.DeleteFunc(slices.Clone(keep), func(u Unknown) bool { return u == us[i] })
		if linalg.Rank(f.matrix(trial)) == m {
			keep = trial
			released = append(released, us[i])
		}
	}
	if len(released) < r {
		return nil, nil, errs.New(op, errs.ErrOverconstrained, "could not choose %d independent %s redundants", r, f)
	}
	primaryMatrix := f.matrix(keep)

	// primary solves keep-reactions for a load set and returns the
	// displacements at the released components.
	primary := func(loads []load.Load) ([]float64, []float64, error) {
		applied := f.applied(loads)
		for i := range applied {
			applied[i] = -applied[i]
		}
		vals, err := linalg.Solve(primaryMatrix, applied)
		if err != nil {
			return nil, nil, errs.New(op, errs.ErrOverconstrained, "primary %s structure: %v", f, err)
		}
		all := slices.Clone(loads)
		for i, u := range keep {
			all = append(all, u.load(vals[i]))
		}
		disp, err := f.displacements(s.m, all, keep)
		if err != nil {
			return nil, nil, err
		}
		d := make([]float64, r)
		for i, u := range released {
			d[i] = disp(u)
		}
		return vals, d, nil
	}

	p0, d0, err := primary(s.loads)
	if err != nil {
		return nil, nil, err
	}
	flex := mat.NewDense(r, r, nil)
	units := make([][]float64, r)
	for j, u := range released {
		pj, dj, err := primary([]load.Load{u.load(1)})
		if err != nil {
			return nil, nil, err
		}
		units[j] = pj
		flex.SetCol(j, dj)
	}
	if linalg.Rank(flex) < r {
		return nil, nil, errs.New(op, errs.ErrOverconstrained, "%s flexibility matrix is singular", f)
	}
	for i := range d0 {
		d0[i] = -d0[i]
	}
	x, err := linalg.Solve(flex, d0)
	if err != nil {
		return nil, nil, errs.New(op, errs.ErrSolverTolerance, "%s compatibility: %v", f, err)
	}

	vals := make([]float64, len(us))
	for i, u := range us {
		if k := slices.Index(released, u); k >= 0 {
			vals[i] = x[k]
			continue
		}
		k := slices.Index(keep, u)
		v := p0[k]
		for j := range released {
			v += x[j] * units[j][k]
		}
		vals[i] = v
	}
	return vals, released, nil
}

// residual returns the largest equilibrium imbalance relative to the sum of
// magnitudes entering that equation.
func residual(loads []load.Load, reactions []Reaction) float64 {
	var sum, mag [4]float64
	add := func(i int, v float64) {
		sum[i] += v
		mag[i] += math.Abs(v)
	}
	for _, l := range loads {
		fx, fy, mz, tx := l.Resultant()
		add(0, fx)
		add(1, fy)
		add(2, mz)
		add(3, tx)
	}
	for _, r := range reactions {
		add(0, r.Fx)
		add(1, r.Fy)
		add(2, r.Fy*r.Position)
		add(2, r.Mz)
		add(3, r.Tx)
	}
	var worst float64
	for i := range sum {
		if mag[i] > 0 {
			worst = math.Max(worst, math.Abs(sum[i])/mag[i])
		}
	}
	return worst
}
