package csp

import "github.com/solverkit/fdsearch/pkg/search"

// BinaryDecision branches a variable on one value: the left branch
// assigns X = Value, the right branch removes Value from X's domain.
type BinaryDecision struct {
	Store *Store
	X     Var
	Value int

	appliedRight bool
}

// ApplyLeft implements search.Decision.
func (d *BinaryDecision) ApplyLeft() search.CutResult {
	if err := d.Store.Assign(d.X, d.Value); err != nil {
		return search.CutContradiction
	}
	return search.Applied
}

// ApplyRight implements search.Decision.
func (d *BinaryDecision) ApplyRight() search.CutResult {
	d.appliedRight = true
	if err := d.Store.Remove(d.X, d.Value); err != nil {
		return search.CutContradiction
	}
	return search.Applied
}

// HasNextBranch implements search.Decision.
func (d *BinaryDecision) HasNextBranch() bool { return !d.appliedRight }

// Free implements search.Decision; BinaryDecision holds no resources
// beyond what the garbage collector already reclaims.
func (d *BinaryDecision) Free() {}
