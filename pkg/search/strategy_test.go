package search

import "testing"

func TestNoopPropagationEngineAlwaysApplies(t *testing.T) {
	e := NoopPropagationEngine{}
	res, err := e.Propagate(nil)
	if err != nil || res != Applied {
		t.Fatalf("Propagate() = (%v, %v), want (Applied, nil)", res, err)
	}
}

type jumpStrategy struct {
	scriptedStrategy
	hint int
}

func (s *jumpStrategy) JumpHint() int { return s.hint }

func TestJumpHintOverridesDefaultJumpTo(t *testing.T) {
	trail := &fakeTrail{}
	engine := &scriptedEngine{results: []CutResult{Applied, Applied}}
	dec := &fakeDecision{leftResult: Applied, hasNext: false}
	strat := &jumpStrategy{scriptedStrategy: scriptedStrategy{decisions: []Decision{dec}}, hint: 2}
	d := New(trail, engine, strat)

	if err := d.Launch(false); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	// Without the hint, reaching ROOT from a single pushed decision takes
	// 2 WorldPop calls (one per UP_BRANCH: the first frees the decision,
	// which has no right branch, the second finds ROOT).
	// With jump_to=2 applied on the first ascent, the same trip costs one
	// extra pop in that ascent, for 3 total.
	if trail.popCalls != 3 {
		t.Fatalf("WorldPop called %d times, want 3 (jump_to=2 consumed on the first ascent)", trail.popCalls)
	}
}
