package search

import (
	"context"
	"time"
)

// Driver is the flat state-machine dispatcher that owns the search
// loop's lifecycle. It exclusively owns next_state, the counters in
// Measures, and the decision chain; it shares the trail, the
// propagation engine, the strategy, and monitors with whatever
// constructs it (their lifetime is the caller's, not the Driver's).
type Driver struct {
	trail    Trail
	engine   PropagationEngine
	strategy BranchingStrategy

	objective *ObjectiveManager
	monitors  *monitorList
	measures  *Measures
	decisions *decisionStack

	cfg Config

	next  State
	alive bool

	timeStamp int64

	rootWorld   int
	searchWorld int
	jumpTo      int

	hasReachedLimit     bool
	stopAtFirstSolution bool
	interrupted         bool
	reason              Reason

	ctx context.Context
}

// New builds a Driver over the given trail, propagation engine, and
// initial branching strategy. It starts in StateInit and a plain
// satisfaction objective; use WithObjective, WithMonitor, or WithConfig
// to customize before the first Launch.
func New(trail Trail, engine PropagationEngine, strategy BranchingStrategy, opts ...Option) *Driver {
	d := &Driver{
		trail:       trail,
		engine:      engine,
		strategy:    strategy,
		objective:   NewSatisfactionObjective(),
		monitors:    newMonitorList(),
		measures:    newMeasures(),
		decisions:   newDecisionStack(),
		cfg:         DefaultConfig(),
		next:        StateInit,
		rootWorld:   unsetWorld,
		searchWorld: unsetWorld,
		jumpTo:      1,
		ctx:         context.Background(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// SetStrategy replaces the branching strategy. Valid only before Launch
// or after Reset.
func (d *Driver) SetStrategy(s BranchingStrategy) {
	d.strategy = s
}

// Measures returns the driver's counters and outcome.
func (d *Driver) Measures() *Measures { return d.measures }

// Objective returns the driver's objective manager.
func (d *Driver) Objective() *ObjectiveManager { return d.objective }

// CurrentDepth walks the decision chain; O(depth).
func (d *Driver) CurrentDepth() int { return d.decisions.depth() }

// TimeStamp returns the monotonically increasing counter bumped on every
// branching transition and on reset, letting delta-consumers detect
// whether the world has changed since they last looked.
func (d *Driver) TimeStamp() int64 { return d.timeStamp }

// PlugMonitor appends m to the monitor list unless already present.
func (d *Driver) PlugMonitor(m Monitor) {
	d.monitors.plug(m)
}

// Interrupt stops the loop after the current transition finishes,
// recording reason. Safe to call from any monitor; idempotent — a
// second call does not re-fire AfterInterrupt.
func (d *Driver) Interrupt(reason Reason) {
	if d.interrupted {
		return
	}
	d.interrupted = true
	d.reason = reason
	d.alive = false
	d.next = StateResume
	d.monitors.before("after_interrupt", func(m Monitor) { m.AfterInterrupt(d, reason) })
}

// Restart sets next_state to RESTART. Safe from any monitor; a restart
// requested mid-transition is honored before the next transition runs
// because it only takes effect on the following dispatch iteration.
func (d *Driver) Restart() {
	if d.alive {
		d.next = StateRestart
	}
}

// ReachLimit sets has_reached_limit and interrupts with ReasonLimit.
func (d *Driver) ReachLimit() {
	d.hasReachedLimit = true
	d.Interrupt(ReasonLimit)
}

// Reason returns the termination reason recorded by the most recent
// Launch.
func (d *Driver) Reason() Reason { return d.reason }

// Launch begins solving. It fails with ErrNotInitialized if next_state
// is not StateInit (i.e. a previous run hasn't been Reset). It returns
// only after close has run.
func (d *Driver) Launch(stopAtFirst bool) error {
	if d.next != StateInit {
		return ErrNotInitialized
	}
	d.stopAtFirstSolution = stopAtFirst
	d.measures.startedAt = time.Now()
	d.runToClose()
	return nil
}

// Resume re-enters the dispatch loop after an external pause (e.g. a
// caller that asked for one solution at a time). The caller sets
// next_state to wherever the search should continue from — typically
// StateOpenNode, to look for the next solution without repeating
// INITIAL_PROPAGATION — before calling Resume. Resume fails with
// ErrNotInitialized if Launch has never run: the caller must set
// next_state before dispatch.
func (d *Driver) Resume(from State) error {
	if d.rootWorld == unsetWorld {
		return ErrNotInitialized
	}
	d.next = from
	d.runToClose()
	return nil
}

// runToClose runs the dispatch loop to exhaustion/interruption and then
// the close sequence, shared by Launch and Resume.
func (d *Driver) runToClose() {
	d.alive = true
	d.interrupted = false
	d.reason = ReasonNone

	for d.alive {
		current := d.next
		d.fireBefore(current)
		d.dispatch(current)
		d.fireAfter(current)
		if !d.alive {
			break
		}
	}

	d.monitors.before("before_close", func(m Monitor) { m.BeforeClose(d) })
	d.closeDriver()
	d.monitors.after("after_close", func(m Monitor) { m.AfterClose(d) })
}

// Reset pops the trail back to root_world, clears the objective manager,
// zeroes measures, reassigns propagation to a no-op engine, bumps
// time_stamp, and unsets the world markers. Idempotent if nothing ran.
func (d *Driver) Reset() {
	if d.rootWorld != unsetWorld {
		_ = d.trail.WorldPopUntil(d.rootWorld)
	}
	d.decisions.clearToRoot()
	d.objective.reset()
	d.measures.reset()
	d.engine = NoopPropagationEngine{}
	d.timeStamp++
	d.rootWorld = unsetWorld
	d.searchWorld = unsetWorld
	d.jumpTo = 1
	d.hasReachedLimit = false
	d.interrupted = false
	d.reason = ReasonNone
	d.next = StateInit
	d.alive = false
}

// fireBefore/fireAfter dispatch the paired monitor hooks for state,
// before_X and after_X are paired, even if the transition was
// short-circuited by a contradiction.
func (d *Driver) fireBefore(state State) {
	switch state {
	case StateInit:
		d.monitors.before("before_init", func(m Monitor) { m.BeforeInit(d) })
	case StateInitialPropagation:
		d.monitors.before("before_initial_propagation", func(m Monitor) { m.BeforeInitialPropagation(d) })
	case StateOpenNode:
		d.monitors.before("before_open_node", func(m Monitor) { m.BeforeOpenNode(d) })
	case StateDownLeft:
		d.monitors.before("before_down_left", func(m Monitor) { m.BeforeDownLeft(d) })
	case StateDownRight:
		d.monitors.before("before_down_right", func(m Monitor) { m.BeforeDownRight(d) })
	case StateUpBranch:
		d.monitors.before("before_up_branch", func(m Monitor) { m.BeforeUpBranch(d) })
	case StateRestart:
		d.monitors.before("before_restart", func(m Monitor) { m.BeforeRestart(d) })
	case StateResume:
		d.monitors.before("before_resume", func(m Monitor) { m.BeforeResume(d) })
	}
}

func (d *Driver) fireAfter(state State) {
	switch state {
	case StateInit:
		d.monitors.after("after_init", func(m Monitor) { m.AfterInit(d) })
	case StateInitialPropagation:
		d.monitors.after("after_initial_propagation", func(m Monitor) { m.AfterInitialPropagation(d) })
	case StateOpenNode:
		d.monitors.after("after_open_node", func(m Monitor) { m.AfterOpenNode(d) })
	case StateDownLeft:
		d.monitors.after("after_down_left", func(m Monitor) { m.AfterDownLeft(d) })
	case StateDownRight:
		d.monitors.after("after_down_right", func(m Monitor) { m.AfterDownRight(d) })
	case StateUpBranch:
		d.monitors.after("after_up_branch", func(m Monitor) { m.AfterUpBranch(d) })
	case StateRestart:
		d.monitors.after("after_restart", func(m Monitor) { m.AfterRestart(d) })
	case StateResume:
		d.monitors.after("after_resume", func(m Monitor) { m.AfterResume(d) })
	}
}

// dispatch calls the transition handler for state. Every handler must
// update d.next or call d.Interrupt.
func (d *Driver) dispatch(state State) {
	switch state {
	case StateInit:
		d.doInit()
	case StateInitialPropagation:
		d.doInitialPropagation()
	case StateOpenNode:
		d.doOpenNode()
	case StateDownLeft:
		d.doDownLeft()
	case StateDownRight:
		d.doDownRight()
	case StateUpBranch:
		d.doUpBranch()
	case StateRestart:
		d.doRestart()
	case StateResume:
		// Re-entering after an external pause exits the loop; the
		// caller must set next_state before the next dispatch.
		d.alive = false
	}
}

func (d *Driver) doInit() {
	d.rootWorld = d.trail.WorldIndex()
	d.next = StateInitialPropagation
}

func (d *Driver) doInitialPropagation() {
	d.trail.WorldPush()
	result, err := d.engine.Propagate(d.ctx)
	if err != nil {
		d.Interrupt(ReasonInit)
		return
	}
	if result == CutContradiction {
		// No search tree exists yet to exhaust, but the infeasibility is
		// proven outright — the same "no solution exists" guarantee the
		// table's exhaustion row describes.
		d.measures.close(d.objective.IsOptimization(), d.stopAtFirstSolution, d.hasReachedLimit, true)
		d.Interrupt(ReasonInit)
		return
	}
	d.trail.WorldPush()
	d.searchWorld = d.trail.WorldIndex()
	d.next = StateOpenNode
}

func (d *Driver) doOpenNode() {
	d.measures.recordNode()
	d.measures.recordDepth(d.decisions.depth())

	decision, outcome := d.strategy.GetDecision()
	switch outcome {
	case StrategyInconsistent:
		d.Interrupt(ReasonSearchInit)
	case StrategyNone:
		d.recordSolutionAndContinue()
	case StrategyDecision:
		d.decisions.push(decision)
		if hinter, ok := d.strategy.(JumpHinter); ok {
			if hint := hinter.JumpHint(); hint > 0 {
				d.jumpTo = hint
			}
		}
		d.next = StateDownLeft
	}
}

// recordSolutionAndContinue implements the shared tail of OPEN_NODE for
// both "all variables instantiated" and "strategy returned None" —
// the driver treats them identically.
func (d *Driver) recordSolutionAndContinue() {
	d.measures.recordSolution()
	d.monitors.before("on_solution", func(m Monitor) { m.OnSolution(d) })

	if d.stopAtFirstSolution {
		d.Interrupt(ReasonFirstSolution)
		return
	}

	d.objective.UpdateBest(d.currentObjectiveValue())
	if d.objective.PostCut() == CutContradiction {
		// The cut proves no strictly-better solution is reachable from
		// here; UP_BRANCH will either prove exhaustion (if we are
		// already at ROOT) or continue backtracking otherwise.
		d.next = StateUpBranch
		return
	}

	d.next = d.cfg.StateAfterSolution
	if d.cfg.StateAfterSolution == AfterRestart && d.trail.WorldIndex() == d.searchWorld {
		// Already at search_world: no trail movement necessary.
		d.next = StateOpenNode
	}
}

// currentObjectiveValue reads the objective variable's bound; satisfaction
// searches have no objective variable configured and never read it
// (PostCut is a no-op for them).
func (d *Driver) currentObjectiveValue() int {
	if d.objective.v == nil {
		return 0
	}
	return d.objective.v.Value()
}

func (d *Driver) doDownLeft() {
	d.timeStamp++
	d.trail.WorldPush()
	branchResult := d.decisions.current().ApplyLeft()
	d.propagateAfterBranch(branchResult)
}

func (d *Driver) doDownRight() {
	d.timeStamp++
	d.trail.WorldPush()
	branchResult := d.decisions.current().ApplyRight()
	d.propagateAfterBranch(branchResult)
}

// propagateAfterBranch runs propagation to fixpoint after a decision's
// branch has been posted, recovering a contradiction from either step
// into state_after_fail ("on contradiction, set next_state =
// state_after_fail. On success, next_state = OPEN_NODE.").
func (d *Driver) propagateAfterBranch(branchResult CutResult) {
	if branchResult == CutContradiction {
		d.measures.recordFail()
		d.next = d.cfg.StateAfterFail
		return
	}
	result, err := d.engine.Propagate(d.ctx)
	if err != nil {
		d.Interrupt(ReasonInit)
		return
	}
	if result == CutContradiction {
		d.measures.recordFail()
		d.next = d.cfg.StateAfterFail
		return
	}
	d.next = StateOpenNode
}

func (d *Driver) doUpBranch() {
	jump := d.jumpTo
	d.jumpTo = 1
	for i := 0; i < jump; i++ {
		d.trail.WorldPop()
	}

	if d.decisions.atRoot() {
		// Reaching this point means no interrupt has fired yet (Interrupt
		// always stops the loop before the next UP_BRANCH dispatch), so
		// the tree is genuinely exhausted.
		d.measures.close(d.objective.IsOptimization(), d.stopAtFirstSolution, d.hasReachedLimit, true)
		d.Interrupt(ReasonRoot)
		return
	}

	d.measures.recordBacktrack()
	if d.decisions.current().HasNextBranch() {
		d.next = StateDownRight
		return
	}
	d.decisions.popAndFree()
	d.next = StateUpBranch
}

func (d *Driver) doRestart() {
	_ = d.trail.WorldPopUntil(d.searchWorld)
	d.decisions.clearToRoot()
	d.timeStamp++
	d.measures.recordRestart()

	result, err := d.engine.Propagate(d.ctx)
	if err != nil {
		d.Interrupt(ReasonInit)
		return
	}
	if result == CutContradiction {
		// Every permanently posted cut — in particular the objective's
		// incumbent bound — is re-applied at search_world by this
		// Propagate call. A contradiction here means no value at
		// search_world survives it: optimality is proven without
		// walking any further branch.
		d.measures.close(d.objective.IsOptimization(), d.stopAtFirstSolution, d.hasReachedLimit, true)
		d.Interrupt(ReasonCut)
		return
	}
	d.next = StateOpenNode
}

// closeDriver fills the outcome on measures if nothing already did
// (every code path that interrupts with ReasonRoot, ReasonCut, or
// ReasonInit already called measures.close with the right `exhausted`
// flag; every other reason — limit, first-solution, search-init,
// external — means the search was cut short, so exhausted is false).
func (d *Driver) closeDriver() {
	d.alive = false
	if d.reason == ReasonRoot || d.reason == ReasonCut || d.reason == ReasonInit {
		return
	}
	d.measures.close(d.objective.IsOptimization(), d.stopAtFirstSolution, d.hasReachedLimit, false)
}
