package search

import "context"

// PropagationEngine is the external collaborator that runs constraint
// filtering to a fixpoint over whatever the current trail state encodes.
// It must be deterministic for a given trail state.
type PropagationEngine interface {
	// Propagate runs filtering to fixpoint. The CutResult carries the
	// normal contradiction signal; a non-nil error means a structural
	// collaborator failure (e.g. ctx cancellation) that the driver does
	// not recover from.
	Propagate(ctx context.Context) (CutResult, error)
}

// NoopPropagationEngine is the engine assigned by Reset — it always
// succeeds: Reset reassigns propagation to a no-op engine.
type NoopPropagationEngine struct{}

// Propagate implements PropagationEngine by doing nothing.
func (NoopPropagationEngine) Propagate(context.Context) (CutResult, error) {
	return Applied, nil
}

// StrategyOutcome is the three-way result of asking a BranchingStrategy
// for the next decision.
type StrategyOutcome int

const (
	// StrategyDecision means Decision is non-nil and ready to push.
	StrategyDecision StrategyOutcome = iota
	// StrategyNone means every variable is already decided: treat the
	// node as a solution even though it is not a leaf of the decision
	// chain.
	StrategyNone
	// StrategyInconsistent means the strategy detected unsatisfiability
	// up front, before any decision could be built.
	StrategyInconsistent
)

// BranchingStrategy chooses the next decision at an open node. Concrete
// strategies (variable/value ordering, domain splitting) live outside
// this package — csp.LexStrategy and csp.FirstFailStrategy are two
// examples.
type BranchingStrategy interface {
	// GetDecision inspects the current (trail-backed) state and returns
	// the next decision to branch on, or StrategyNone/StrategyInconsistent.
	GetDecision() (Decision, StrategyOutcome)
}

// JumpHinter is an optional capability a BranchingStrategy may implement
// to request a multi-world pop on the next UP_BRANCH (a backjumping
// hint). The driver checks for it once per decision, right after
// OPEN_NODE pushes it, and otherwise defaults jump_to to 1. No strategy
// shipped in package csp implements this; it exists so a future
// backjumping strategy can use jump_to without the driver changing.
type JumpHinter interface {
	JumpHint() int
}
