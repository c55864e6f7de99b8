package search

import (
	"context"
	"testing"
)

func TestDefaultConfigBacktracksNormally(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.StateAfterSolution != AfterUpBranch || cfg.StateAfterFail != AfterUpBranch {
		t.Fatalf("DefaultConfig() = %+v, want both fields AfterUpBranch", cfg)
	}
}

func TestWithConfigOverridesStateAfterSolution(t *testing.T) {
	trail := &fakeTrail{}
	engine := &scriptedEngine{results: []CutResult{Applied}}
	d := New(trail, engine, noneStrategy{}, WithConfig(Config{
		StateAfterSolution: AfterRestart,
		StateAfterFail:     AfterUpBranch,
	}))
	if d.cfg.StateAfterSolution != AfterRestart {
		t.Fatalf("cfg.StateAfterSolution = %v, want AfterRestart", d.cfg.StateAfterSolution)
	}
}

func TestWithObjectiveInstallsManager(t *testing.T) {
	trail := &fakeTrail{}
	engine := &scriptedEngine{results: []CutResult{Applied}}
	v := &fakeObjectiveVar{tightenResult: Applied}
	mgr := NewMinimizeObjective(v)
	d := New(trail, engine, noneStrategy{}, WithObjective(mgr))
	if !d.Objective().IsOptimization() {
		t.Fatalf("Objective() is not an optimization manager after WithObjective")
	}
}

func TestWithContextPropagatesToEngine(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	seen := make(chan context.Context, 1)
	engine := &contextCapturingEngine{seen: seen}
	trail := &fakeTrail{}
	d := New(trail, engine, noneStrategy{}, WithContext(ctx))

	if err := d.Launch(false); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	select {
	case got := <-seen:
		if got.Value(ctxKey{}) != "marker" {
			t.Fatalf("engine did not receive the configured context")
		}
	default:
		t.Fatalf("engine.Propagate was never called")
	}
}

type contextCapturingEngine struct {
	seen chan context.Context
}

func (e *contextCapturingEngine) Propagate(ctx context.Context) (CutResult, error) {
	select {
	case e.seen <- ctx:
	default:
	}
	return Applied, nil
}
