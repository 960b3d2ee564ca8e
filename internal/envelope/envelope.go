// Package envelope analyses a member under every load combination in
// parallel and reports the governing combination per quantity.
package envelope

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/member"
	"github.com/alexiusacademia/gobeam/internal/nscp"
)

// Quantities are the functions tracked by the envelope.
var Quantities = []analysis.Quantity{analysis.Shear, analysis.Moment, analysis.Slope, analysis.Deflection}

// Peak is the largest |value| of a quantity along the member.
type Peak struct {
	X     float64
	Value float64
}

// Entry is the result of one combination.
type Entry struct {
	Combination nscp.LoadCombination
	Analysis    *analysis.Analysis
	Peaks       map[analysis.Quantity]Peak
}

// Result collects every combination in input order.
type Result struct {
	Entries []Entry
}

// Governing returns the entry with the largest |peak| of q.
func (r *Result) Governing(q analysis.Quantity) (Entry, Peak) {
	var best Entry
	var peak Peak
	first := true
	for _, e := range r.Entries {
		p := e.Peaks[q]
		if first || math.Abs(p.Value) > math.Abs(peak.Value) {
			best, peak, first = e, p, false
		}
	}
	return best, peak
}

// Envelope runs one analysis per combination.
type Envelope struct {
	member       *member.Member
	registry     *load.Registry
	combinations []nscp.LoadCombination
	opts         []analysis.Option
}

// New prepares an envelope. The registry is only read; each combination
// works on a scaled copy.
func New(m *member.Member, r *load.Registry, combinations []nscp.LoadCombination, opts ...analysis.Option) *Envelope {
	return &Envelope{member: m, registry: r, combinations: combinations, opts: opts}
}

// Run solves every combination concurrently. The first failure cancels the
// remaining ones.
func (e *Envelope) Run(ctx context.Context) (*Result, error) {
	for _, l := range e.registry.Loads() {
		if !nscp.KnownCase(l.Load.Case) {
			return nil, fmt.Errorf("load %s has unknown case %q", l.Load, l.Load.Case)
		}
	}

	entries := make([]Entry, len(e.combinations))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, lc := range e.combinations {
		scaled := e.registry.Scaled(lc.Factor)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a := analysis.New(e.member, scaled, e.opts...)
			peaks := make(map[analysis.Quantity]Peak, len(Quantities))
			for _, q := range Quantities {
				x, v, err := a.Extremum(q, 0, e.member.Length())
				if err != nil {
					return fmt.Errorf("combination %s: %w", lc.ID, err)
				}
				peaks[q] = Peak{X: x, Value: v}
			}
			entries[i] = Entry{Combination: lc, Analysis: a, Peaks: peaks}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{Entries: entries}, nil
}
