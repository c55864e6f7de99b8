package csp

import (
	"context"
	"testing"

	"github.com/solverkit/fdsearch/pkg/search"
)

func TestDiagonalDifferentFilter(t *testing.T) {
	s := NewStore(4)
	vars := s.NewVars(2)
	s.Post(DiagonalDifferent{X: vars[0], Y: vars[1], Offset: 2})

	if err := s.Assign(vars[0], 3); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := s.Propagate(context.Background()); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if s.Domain(vars[1]).Has(1) {
		t.Fatalf("value 1 (3-2) should have been removed from Y")
	}
	if !s.Domain(vars[1]).Has(2) || !s.Domain(vars[1]).Has(3) || !s.Domain(vars[1]).Has(4) {
		t.Fatalf("values other than X-Offset and X+Offset should remain")
	}
}

func TestDiagonalDifferentRemovesBothOffsets(t *testing.T) {
	s := NewStore(9)
	vars := s.NewVars(2)
	s.Post(DiagonalDifferent{X: vars[0], Y: vars[1], Offset: 3})

	if err := s.Assign(vars[0], 5); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := s.Propagate(context.Background()); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if s.Domain(vars[1]).Has(2) {
		t.Fatalf("value 2 (5-3) should have been removed from Y")
	}
	if s.Domain(vars[1]).Has(8) {
		t.Fatalf("value 8 (5+3) should have been removed from Y")
	}
	if !s.Domain(vars[1]).Has(5) {
		t.Fatalf("value 5 itself should remain (0 offset is not excluded by this constraint)")
	}
}

func TestLinearEqualsClipsToReachableRange(t *testing.T) {
	s := NewStore(20)
	vars := s.NewVars(2)
	// 10*x + y == 25, x,y in 1..20 -> x can only be 1 or 2 (10+y<=30, 20+y<=45
	// but y>=1 so 10x <= 24 => x <= 2; 10x >= 25-20=5 => x>=1).
	s.Post(LinearEquals{Terms: vars, Coeffs: []int{10, 1}, Target: 25})

	if _, err := s.Propagate(context.Background()); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if s.Domain(vars[0]).Has(3) {
		t.Fatalf("x=3 makes 10x=30 > 25-min(y), should have been removed")
	}
}

func TestLinearEqualsContradiction(t *testing.T) {
	s := NewStore(5)
	vars := s.NewVars(2)
	s.Post(LinearEquals{Terms: vars, Coeffs: []int{1, 1}, Target: 100})

	res, err := s.Propagate(context.Background())
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if res != search.CutContradiction {
		t.Fatalf("Propagate() = %v, want CutContradiction (100 unreachable with two 1..5 vars)", res)
	}
}

func TestBoundVarTightenBelowAndAbove(t *testing.T) {
	s := NewStore(10)
	v := s.NewVar()
	bv := NewBoundVar(s, v)

	if res := bv.TightenBelow(5); res != search.Applied {
		t.Fatalf("TightenBelow(5) = %v, want Applied", res)
	}
	if s.Domain(v).Has(5) || s.Domain(v).Has(6) {
		t.Fatalf("TightenBelow(5) should remove 5 and everything above")
	}
	if !s.Domain(v).Has(4) {
		t.Fatalf("TightenBelow(5) should not remove 4")
	}

	if res := bv.TightenAbove(2); res != search.Applied {
		t.Fatalf("TightenAbove(2) = %v, want Applied", res)
	}
	if s.Domain(v).Has(1) || s.Domain(v).Has(2) {
		t.Fatalf("TightenAbove(2) should remove 2 and everything below")
	}
	if !s.Domain(v).Has(3) {
		t.Fatalf("TightenAbove(2) should not remove 3")
	}
}

func TestBoundVarTightenToContradiction(t *testing.T) {
	s := NewStore(3)
	v := s.NewVar()
	if err := s.Assign(v, 2); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	bv := NewBoundVar(s, v)
	if res := bv.TightenBelow(2); res != search.CutContradiction {
		t.Fatalf("TightenBelow(2) on a var fixed at 2 = %v, want CutContradiction", res)
	}
}

// TestBoundVarCutSurvivesWorldPop is the regression case for the
// incumbent bound: a plain Remove recorded on the trail would be
// undone by the very next WorldPop, letting the search wander back
// into already-excluded territory. Because TightenBelow pins a
// standing propagator, a subsequent Propagate reapplies the cut even
// after backtracking past the world where it was first posted.
func TestBoundVarCutSurvivesWorldPop(t *testing.T) {
	s := NewStore(10)
	v := s.NewVar()
	bv := NewBoundVar(s, v)

	s.WorldPush()
	if res := bv.TightenBelow(5); res != search.Applied {
		t.Fatalf("TightenBelow(5) = %v, want Applied", res)
	}
	if s.Domain(v).Has(5) {
		t.Fatalf("TightenBelow(5) should have removed 5 immediately")
	}

	s.WorldPop()
	if !s.Domain(v).Has(5) {
		t.Fatalf("WorldPop should have restored 5 to the domain")
	}

	if _, err := s.Propagate(context.Background()); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if s.Domain(v).Has(5) {
		t.Fatalf("pinned cut should have re-removed 5 on the next Propagate after backtracking")
	}
	if !s.Domain(v).Has(4) {
		t.Fatalf("pinned cut should not touch values below the bound")
	}
}
