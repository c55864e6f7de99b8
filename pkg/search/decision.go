package search

// Decision is a polymorphic branching choice: binary equality/disequality,
// value enumeration, or domain split are all concrete implementations
// living outside this package (package csp ships BinaryDecision). The
// driver only ever calls these four methods, never inspects a concrete
// type: a capability-set interface, not an inheritance hierarchy.
type Decision interface {
	// ApplyLeft posts the left branch (e.g. x = v) against the
	// network. It returns CutContradiction if posting it alone already
	// empties a domain; the driver then skips propagation and treats the
	// branch as failed.
	ApplyLeft() CutResult
	// ApplyRight posts the next branch (e.g. x != v).
	ApplyRight() CutResult
	// HasNextBranch reports whether ApplyRight has not yet been applied
	// and more branches exist.
	HasNextBranch() bool
	// Free releases any resources the decision holds. Called exactly
	// once, when the decision is popped past in UP_BRANCH or during a
	// root restore.
	Free()
}

// rootDecision is the sentinel ROOT decision: never freed, has no
// predecessor, and every non-root decision's chain terminates here. Per
// ROOT is a per-Driver singleton rather than package-level state, so a
// Driver carries no shared mutable state with any other Driver instance.
type rootDecision struct{}

func (rootDecision) ApplyLeft() CutResult  { return Applied }
func (rootDecision) ApplyRight() CutResult { return Applied }
func (rootDecision) HasNextBranch() bool   { return false }
func (rootDecision) Free()                 {}

// node links a pushed Decision to its predecessor, forming the singly
// linked chain rooted at ROOT. The chain's length is the current search
// depth.
type node struct {
	decision Decision
	previous *node
}

// decisionStack is the linked history of applied decisions. It owns
// its chain: popping past a node frees it immediately, there is no
// separate ownership structure to reconcile: the chain is the ownership.
type decisionStack struct {
	root *node
	top  *node
}

// newDecisionStack returns a stack positioned at its own ROOT sentinel.
func newDecisionStack() *decisionStack {
	root := &node{decision: rootDecision{}}
	return &decisionStack{root: root, top: root}
}

// push installs d as the new top, predecessor-linked to the current top.
func (s *decisionStack) push(d Decision) {
	s.top = &node{decision: d, previous: s.top}
}

// popAndFree removes the current top, frees it, and descends to its
// predecessor. Calling this at ROOT is a caller bug; the driver never
// does (UP_BRANCH checks atRoot first).
func (s *decisionStack) popAndFree() {
	tmp := s.top
	s.top = tmp.previous
	tmp.decision.Free()
}

// current returns the current top decision.
func (s *decisionStack) current() Decision {
	return s.top.decision
}

// atRoot reports whether the stack is positioned at ROOT.
func (s *decisionStack) atRoot() bool {
	return s.top == s.root
}

// depth walks the chain; O(depth), matching Driver.CurrentDepth's
// documented cost.
func (s *decisionStack) depth() int {
	n := 0
	for p := s.top; p != s.root; p = p.previous {
		n++
	}
	return n
}

// clearToRoot repeatedly pops and frees until the stack is back at ROOT,
// used by RESTART and by reset().
func (s *decisionStack) clearToRoot() {
	for !s.atRoot() {
		s.popAndFree()
	}
}
