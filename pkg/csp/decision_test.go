package csp

import (
	"testing"

	"github.com/solverkit/fdsearch/pkg/search"
)

func TestBinaryDecisionLeftThenRight(t *testing.T) {
	s := NewStore(3)
	v := s.NewVar()
	d := &BinaryDecision{Store: s, X: v, Value: 2}

	if !d.HasNextBranch() {
		t.Fatalf("HasNextBranch() = false before any branch applied")
	}
	if res := d.ApplyLeft(); res != search.Applied {
		t.Fatalf("ApplyLeft() = %v", res)
	}
	if !s.Domain(v).IsSingleton() || s.Domain(v).Value() != 2 {
		t.Fatalf("ApplyLeft did not assign the value")
	}

	// undo the left branch the way UP_BRANCH would, via a world pop
	s2 := NewStore(3)
	v2 := s2.NewVar()
	s2.WorldPush()
	d2 := &BinaryDecision{Store: s2, X: v2, Value: 2}
	d2.ApplyLeft()
	s2.WorldPop()

	if res := d2.ApplyRight(); res != search.Applied {
		t.Fatalf("ApplyRight() = %v", res)
	}
	if s2.Domain(v2).Has(2) {
		t.Fatalf("ApplyRight did not remove the value")
	}
	if d2.HasNextBranch() {
		t.Fatalf("HasNextBranch() = true after the right branch was applied")
	}
}

func TestBinaryDecisionContradiction(t *testing.T) {
	s := NewStore(1)
	v := s.NewVar()
	_ = s.Assign(v, 1)
	d := &BinaryDecision{Store: s, X: v, Value: 1}
	if res := d.ApplyRight(); res != search.CutContradiction {
		t.Fatalf("ApplyRight() = %v, want CutContradiction", res)
	}
}
