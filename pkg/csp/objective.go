package csp

import "github.com/solverkit/fdsearch/pkg/search"

// objectiveCutKind tells the pinned incumbent-bound constraint which
// direction to narrow in, if any.
type objectiveCutKind int

const (
	cutNone objectiveCutKind = iota
	cutBelow
	cutAbove
)

// objectiveCut is the persistent incumbent-bound propagator behind
// BoundVar. It is posted once, via Store.Pin, so Store.Propagate
// re-applies bound to V at the start of every node — including nodes
// reached after backtracking past the world where the bound was first
// recorded, the way the teacher's optimize.go re-injects its incumbent
// cutoff on every new node rather than trusting a single Remove to
// survive the trail.
type objectiveCut struct {
	v     Var
	kind  objectiveCutKind
	bound int
}

func (c *objectiveCut) Vars() []Var { return []Var{c.v} }

func (c *objectiveCut) Filter(s *Store) error {
	switch c.kind {
	case cutBelow:
		return removeAbove(s, c.v, c.bound)
	case cutAbove:
		return removeBelow(s, c.v, c.bound)
	default:
		return nil
	}
}

// BoundVar adapts a Store variable to search.ObjectiveVar, so it can be
// passed directly to search.NewMinimizeObjective/NewMaximizeObjective.
// Use NewBoundVar to construct one; the zero value has no pinned cut
// installed and will panic on first use.
type BoundVar struct {
	Store *Store
	V     Var
	cut   *objectiveCut
}

// NewBoundVar adapts v to search.ObjectiveVar and pins the incumbent-
// bound propagator that keeps the cut in force across backtracking.
func NewBoundVar(s *Store, v Var) BoundVar {
	cut := &objectiveCut{v: v}
	s.Pin(cut)
	return BoundVar{Store: s, V: v, cut: cut}
}

// Value implements search.ObjectiveVar; the caller must only read this
// after a solution, when V is singleton.
func (b BoundVar) Value() int {
	return b.Store.Domain(b.V).Value()
}

// TightenBelow implements search.ObjectiveVar by pinning "V < bound"
// as a standing propagator instead of a one-off Remove, so it survives
// every backtrack from here on, not just until the next WorldPop.
func (b BoundVar) TightenBelow(bound int) search.CutResult {
	b.cut.kind = cutBelow
	b.cut.bound = bound - 1
	if err := b.cut.Filter(b.Store); err != nil {
		return search.CutContradiction
	}
	return search.Applied
}

// TightenAbove implements search.ObjectiveVar by pinning "V > bound"
// as a standing propagator, mirroring TightenBelow.
func (b BoundVar) TightenAbove(bound int) search.CutResult {
	b.cut.kind = cutAbove
	b.cut.bound = bound + 1
	if err := b.cut.Filter(b.Store); err != nil {
		return search.CutContradiction
	}
	return search.Applied
}
