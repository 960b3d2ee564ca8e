// Package analysis is the query façade over the solve-and-build pipeline.
//
// An Analysis pairs a Member with its Registry. The first query after any
// registry mutation reruns the whole pipeline (reactions, internal forces,
// displacements) in one step; later queries read the cached functions. A
// failed build is cached too, so queries keep returning the same error until
// the registry changes.
//
// An Analysis is not safe for concurrent use. Independent analyses share no
// state and may run in parallel.
package analysis

import (
	"log/slog"
	"slices"

	"github.com/alexiusacademia/gobeam/internal/deform"
	"github.com/alexiusacademia/gobeam/internal/errs"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/member"
	"github.com/alexiusacademia/gobeam/internal/poly"
	"github.com/alexiusacademia/gobeam/internal/singularity"
	"github.com/alexiusacademia/gobeam/internal/solver"
	"github.com/alexiusacademia/gobeam/internal/stress"
)

// Analysis answers queries about one member.
type Analysis struct {
	member   *member.Member
	registry *load.Registry
	logger   *slog.Logger

	built   bool
	version uint64
	state   *state
	err     error
}

// state is everything derived from one registry version.
type state struct {
	result  solver.Result
	fields  singularity.Fields
	bending deform.Bending
	axial   poly.Piecewise
	twist   poly.Piecewise
}

// Option configures an Analysis.
type Option func(*Analysis)

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analysis) { a.logger = l }
}

// New returns an analysis of m under the loads and supports in r.
func New(m *member.Member, r *load.Registry, opts ...Option) *Analysis {
	a := &Analysis{member: m, registry: r, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Member returns the analysed member.
func (a *Analysis) Member() *member.Member { return a.member }

// Registry returns the live registry. Mutating it invalidates every result.
func (a *Analysis) Registry() *load.Registry { return a.registry }

// Solve runs the pipeline if the registry changed since the last build.
func (a *Analysis) Solve() error {
	_, err := a.current()
	return err
}

func (a *Analysis) current() (*state, error) {
	v := a.registry.Version()
	if a.built && a.version == v {
		return a.state, a.err
	}
	a.state, a.err = a.build()
	a.built, a.version = true, v
	if a.err != nil {
		a.logger.Debug("analysis failed", "version", v, "err", a.err)
	}
	return a.state, a.err
}

func (a *Analysis) build() (*state, error) {
	m := a.member
	if a.registry.Length() != m.Length() {
		return nil, errs.New("analysis.Solve", errs.ErrInvalidGeometry,
			"registry length %g does not match member length %g", a.registry.Length(), m.Length())
	}

	entries := a.registry.Loads()
	loads := make([]load.Load, len(entries))
	for i, e := range entries {
		loads[i] = e.Load
	}
	var supports []load.Support
	for _, e := range a.registry.Supports() {
		supports = append(supports, e.Support)
	}

	res, err := solver.Solve(m, a.registry.Supports(), loads)
	if err != nil {
		return nil, err
	}

	extra := make([]float64, 0, len(supports))
	for _, s := range supports {
		extra = append(extra, s.Position)
	}
	spans := m.Spans()
	for _, s := range spans {
		extra = append(extra, s.Start)
	}
	fields := singularity.Build(m.Length(), append(loads, res.Loads()...), extra...)

	c := deform.ConstraintsOf(supports)
	bending, err := deform.Bend(fields.Moment, fields.Shear, spans, c)
	if err != nil {
		return nil, err
	}
	u, err := deform.Stretch(fields.Axial, spans, c.Axial)
	if err != nil {
		return nil, err
	}
	phi, err := deform.Twist(fields.Torque, spans, c.Twist)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("analysis rebuilt",
		"version", a.registry.Version(),
		"loads", len(loads),
		"supports", len(supports),
		"segments", fields.Moment.Len(),
		"indeterminacy", res.Degree,
		"redundants", res.Redundants,
		"residual", res.Residual,
	)
	return &state{result: res, fields: fields, bending: bending, axial: u, twist: phi}, nil
}

// Result returns the solved reactions.
func (a *Analysis) Result() (solver.Result, error) {
	s, err := a.current()
	if err != nil {
		return solver.Result{}, err
	}
	return s.result, nil
}

// ReactionAt returns the reaction of the support registered under h.
func (a *Analysis) ReactionAt(h load.Handle) (solver.Reaction, error) {
	res, err := a.Result()
	if err != nil {
		return solver.Reaction{}, err
	}
	re, ok := res.Reaction(h)
	if !ok {
		return solver.Reaction{}, errs.New("analysis.ReactionAt", errs.ErrInvalidQuery, "no support with handle %d", h)
	}
	return re, nil
}

// Function returns the piecewise polynomial of q over [0, L].
func (a *Analysis) Function(q Quantity) (poly.Piecewise, error) {
	s, err := a.current()
	if err != nil {
		return poly.Piecewise{}, err
	}
	switch q {
	case Shear:
		return s.fields.Shear, nil
	case Moment:
		return s.fields.Moment, nil
	case Axial:
		return s.fields.Axial, nil
	case Torque:
		return s.fields.Torque, nil
	case Intensity:
		return s.fields.Intensity, nil
	case Slope:
		return s.bending.Slope, nil
	case Deflection:
		return s.bending.Deflection, nil
	case Twist:
		if !a.member.HasTorsion() {
			return poly.Piecewise{}, errs.New("analysis.Function", errs.ErrInvalidGeometry, "member has no torsional rigidity")
		}
		return s.twist, nil
	case AxialDisplacement:
		if !a.member.HasAxial() {
			return poly.Piecewise{}, errs.New("analysis.Function", errs.ErrInvalidGeometry, "member has no axial rigidity")
		}
		return s.axial, nil
	}
	return poly.Piecewise{}, errs.New("analysis.Function", errs.ErrInvalidQuery, "unknown quantity %d", int(q))
}

func (a *Analysis) checkX(op string, x float64) error {
	if !a.member.Contains(x) {
		return errs.New(op, errs.ErrInvalidPosition, "x = %g outside [0, %g]", x, a.member.Length())
	}
	return nil
}

// Value evaluates q at x. Values are right-continuous at point loads.
func (a *Analysis) Value(q Quantity, x float64) (float64, error) {
	if err := a.checkX("analysis.Value", x); err != nil {
		return 0, err
	}
	f, err := a.Function(q)
	if err != nil {
		return 0, err
	}
	return f.At(x), nil
}

// Shear returns V(x).
func (a *Analysis) Shear(x float64) (float64, error) { return a.Value(Shear, x) }

// Moment returns M(x).
func (a *Analysis) Moment(x float64) (float64, error) { return a.Value(Moment, x) }

// Axial returns N(x).
func (a *Analysis) Axial(x float64) (float64, error) { return a.Value(Axial, x) }

// Torque returns T(x).
func (a *Analysis) Torque(x float64) (float64, error) { return a.Value(Torque, x) }

// Slope returns θ(x).
func (a *Analysis) Slope(x float64) (float64, error) { return a.Value(Slope, x) }

// Deflection returns v(x), positive upward.
func (a *Analysis) Deflection(x float64) (float64, error) { return a.Value(Deflection, x) }

// TwistAngle returns φ(x).
func (a *Analysis) TwistAngle(x float64) (float64, error) { return a.Value(Twist, x) }

// Elongation returns the axial displacement u(x).
func (a *Analysis) Elongation(x float64) (float64, error) { return a.Value(AxialDisplacement, x) }

func (a *Analysis) interval(op string, lo, hi float64) error {
	if err := a.checkX(op, lo); err != nil {
		return err
	}
	if err := a.checkX(op, hi); err != nil {
		return err
	}
	if lo > hi {
		return errs.New(op, errs.ErrInvalidPosition, "interval [%g, %g] is reversed", lo, hi)
	}
	return nil
}

// Extremum returns the position and value of the largest |q| on [lo, hi].
// Candidates are the interval ends, every segment boundary and the real
// roots of the derivative inside each segment.
func (a *Analysis) Extremum(q Quantity, lo, hi float64) (x, v float64, err error) {
	if err := a.interval("analysis.Extremum", lo, hi); err != nil {
		return 0, 0, err
	}
	f, err := a.Function(q)
	if err != nil {
		return 0, 0, err
	}
	x, v = f.Extremum(lo, hi)
	return x, v, nil
}

// ZeroCrossings returns where q is zero or changes sign on [lo, hi].
func (a *Analysis) ZeroCrossings(q Quantity, lo, hi float64) ([]float64, error) {
	if err := a.interval("analysis.ZeroCrossings", lo, hi); err != nil {
		return nil, err
	}
	f, err := a.Function(q)
	if err != nil {
		return nil, err
	}
	return f.Roots(lo, hi), nil
}

// Stations samples q at n equally spaced positions, adding every segment
// boundary so that jumps are visible.
func (a *Analysis) Stations(q Quantity, n int) (xs, ys []float64, err error) {
	f, err := a.Function(q)
	if err != nil {
		return nil, nil, err
	}
	xs, _ = f.Sample(n)
	xs = slices.Concat(xs, f.Breaks())
	xs = poly.Unique(xs, 1e-12*max(1, a.member.Length()))
	ys = make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f.At(x)
	}
	return xs, ys, nil
}

// Forces returns the internal actions at x.
func (a *Analysis) Forces(x float64) (stress.Forces, error) {
	if err := a.checkX("analysis.Forces", x); err != nil {
		return stress.Forces{}, err
	}
	s, err := a.current()
	if err != nil {
		return stress.Forces{}, err
	}
	return stress.Forces{
		N: s.fields.Axial.At(x),
		V: s.fields.Shear.At(x),
		M: s.fields.Moment.At(x),
		T: s.fields.Torque.At(x),
	}, nil
}

func (a *Analysis) evaluator(x float64) (stress.Evaluator, error) {
	shape, err := a.member.ShapeAt(x)
	if err != nil {
		return stress.Evaluator{}, err
	}
	i, j, area := a.member.SectionAt(x)
	return stress.Evaluator{Shape: shape, I: i, J: j, A: area}, nil
}

// StressAt returns σ and τ at height y above the neutral axis at x.
func (a *Analysis) StressAt(x, y float64) (stress.Stress, error) {
	f, err := a.Forces(x)
	if err != nil {
		return stress.Stress{}, err
	}
	e, err := a.evaluator(x)
	if err != nil {
		return stress.Stress{}, err
	}
	return e.AtY(f, y)
}

// TorsionStressAt returns the torsional shear stress at radius r at x.
func (a *Analysis) TorsionStressAt(x, r float64) (stress.Stress, error) {
	f, err := a.Forces(x)
	if err != nil {
		return stress.Stress{}, err
	}
	e, err := a.evaluator(x)
	if err != nil {
		return stress.Stress{}, err
	}
	return e.AtR(f, r)
}
