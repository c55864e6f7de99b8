package csp

import "github.com/solverkit/fdsearch/pkg/search"

// LexStrategy selects the first non-singleton variable in index order
// and branches on its smallest remaining value, the simplest possible
// ordering.
type LexStrategy struct {
	Store *Store
	Vars  []Var
}

// GetDecision implements search.BranchingStrategy.
func (s *LexStrategy) GetDecision() (search.Decision, search.StrategyOutcome) {
	for _, v := range s.Vars {
		d := s.Store.Domain(v)
		if d.IsEmpty() {
			return nil, search.StrategyInconsistent
		}
		if d.IsSingleton() {
			continue
		}
		return &BinaryDecision{Store: s.Store, X: v, Value: d.Min()}, search.StrategyDecision
	}
	return nil, search.StrategyNone
}

// FirstFailStrategy selects the non-singleton variable with the
// smallest remaining domain, breaking ties by index order, and
// branches on its smallest remaining value.
type FirstFailStrategy struct {
	Store *Store
	Vars  []Var
}

// GetDecision implements search.BranchingStrategy.
func (s *FirstFailStrategy) GetDecision() (search.Decision, search.StrategyOutcome) {
	bestIdx := -1
	bestSize := -1
	for i, v := range s.Vars {
		d := s.Store.Domain(v)
		if d.IsEmpty() {
			return nil, search.StrategyInconsistent
		}
		if d.IsSingleton() {
			continue
		}
		if bestIdx == -1 || d.Size() < bestSize {
			bestIdx = i
			bestSize = d.Size()
		}
	}
	if bestIdx == -1 {
		return nil, search.StrategyNone
	}
	v := s.Vars[bestIdx]
	return &BinaryDecision{Store: s.Store, X: v, Value: s.Store.Domain(v).Min()}, search.StrategyDecision
}
