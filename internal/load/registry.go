package load

import (
	"math"
	"slices"

	"github.com/alexiusacademia/gobeam/internal/errs"
)

// Handle identifies a load or support in a Registry.
type Handle uint64

// LoadEntry is a registered load.
type LoadEntry struct {
	Handle Handle
	Load   Load
}

// SupportEntry is a registered support.
type SupportEntry struct {
	Handle  Handle
	Support Support
}

// Registry is the mutable set of loads and supports on one member. Every
// mutation bumps Version; derived results compare against it.
//
// A Registry is not safe for concurrent mutation.
type Registry struct {
	length   float64
	next     Handle
	version  uint64
	loads    []LoadEntry
	supports []SupportEntry
}

// NewRegistry returns an empty registry for a member of the given length.
func NewRegistry(length float64) *Registry {
	return &Registry{length: length}
}

// Length returns the member length the registry validates against.
func (r *Registry) Length() float64 { return r.length }

// Version returns a counter that changes on every mutation.
func (r *Registry) Version() uint64 { return r.version }

func (r *Registry) handle() Handle {
	r.next++
	r.version++
	return r.next
}

// AddLoad registers l and returns its handle.
func (r *Registry) AddLoad(l Load) (Handle, error) {
	if err := l.Validate(r.length); err != nil {
		return 0, err
	}
	l = r.snap(l)
	h := r.handle()
	r.loads = append(r.loads, LoadEntry{Handle: h, Load: l})
	return h, nil
}

// AddSupport registers a support of the given kind at x.
func (r *Registry) AddSupport(x float64, kind SupportKind) (Handle, error) {
	eps := 1e-12 * math.Max(1, r.length)
	if math.IsNaN(x) || x < -eps || x > r.length+eps {
		return 0, errs.New("load.AddSupport", errs.ErrInvalidPosition, "%s support at %g outside [0, %g]", kind, x, r.length)
	}
	if kind < Free || kind > Fixed {
		return 0, errs.New("load.AddSupport", errs.ErrInvalidGeometry, "unknown support kind %d", int(kind))
	}
	h := r.handle()
	r.supports = append(r.supports, SupportEntry{Handle: h, Support: Support{Kind: kind, Position: r.clamp(x)}})
	return h, nil
}

// Remove deletes the load or support with handle h and reports whether it
// existed.
func (r *Registry) Remove(h Handle) bool {
	if i := slices.IndexFunc(r.loads, func(e LoadEntry) bool { return e.Handle == h }); i >= 0 {
		r.loads = slices.Delete(r.loads, i, i+1)
		r.version++
		return true
	}
	if i := slices.IndexFunc(r.supports, func(e SupportEntry) bool { return e.Handle == h }); i >= 0 {
		r.supports = slices.Delete(r.supports, i, i+1)
		r.version++
		return true
	}
	return false
}

// Loads returns the registered loads in insertion order.
func (r *Registry) Loads() []LoadEntry { return slices.Clone(r.loads) }

// Supports returns the registered supports in insertion order.
func (r *Registry) Supports() []SupportEntry { return slices.Clone(r.supports) }

// Support returns the support registered under h.
func (r *Registry) Support(h Handle) (Support, bool) {
	for _, e := range r.supports {
		if e.Handle == h {
			return e.Support, true
		}
	}
	return Support{}, false
}

// Cases returns the distinct load case tags in first-seen order.
func (r *Registry) Cases() []string {
	var out []string
	for _, e := range r.loads {
		if !slices.Contains(out, e.Load.Case) {
			out = append(out, e.Load.Case)
		}
	}
	return out
}

// Scaled returns a copy whose loads are multiplied by factor(case). Loads
// with a zero factor are dropped. Handles are preserved.
func (r *Registry) Scaled(factor func(loadCase string) float64) *Registry {
	c := &Registry{length: r.length, next: r.next, version: r.version}
	c.supports = slices.Clone(r.supports)
	for _, e := range r.loads {
		k := factor(e.Load.Case)
		if k == 0 {
			continue
		}
		c.loads = append(c.loads, LoadEntry{Handle: e.Handle, Load: e.Load.Scale(k)})
	}
	return c
}

// snap pulls positions within tolerance of the ends onto the ends.
func (r *Registry) snap(l Load) Load {
	l.Position = r.clamp(l.Position)
	l.Start = r.clamp(l.Start)
	l.End = r.clamp(l.End)
	return l
}

func (r *Registry) clamp(x float64) float64 {
	return math.Min(math.Max(x, 0), r.length)
}
